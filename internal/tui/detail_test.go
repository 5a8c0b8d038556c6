package tui

import (
	"testing"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/detail"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestApp_OpenDetail(t *testing.T) {
	a := startedApp(t, newFakeAPI())

	press(t, a, "enter")

	require.Equal(t, screenDetail, a.screen)
	require.Equal(t, detail.StatusLoaded, a.detail.Status())

	view := a.View()
	require.Contains(t, view, "Chicken Waffle")
	require.Contains(t, view, "$12.99")
	require.Contains(t, view, "Mcdonalds")

	press(t, a, "esc")
	require.Equal(t, screenCatalog, a.screen)
}

func TestApp_AddToCartShowsNotice(t *testing.T) {
	a := startedApp(t, newFakeAPI())
	press(t, a, "enter")

	_, first := a.Update(keyMsg("a"))
	require.NotNil(t, first)
	_, second := a.Update(keyMsg("a"))
	require.Nil(t, second, "second add while pending is ignored")
	require.Contains(t, a.View(), "Adding to cart")

	now := time.Now()
	a.now = func() time.Time { return now }
	drain(t, a, first)
	require.True(t, a.detail.NoticeVisible(now))
	require.Contains(t, a.View(), "Added to cart")

	a.now = func() time.Time { return now.Add(a.detail.NoticeDuration()) }
	require.NotContains(t, a.View(), "Added to cart")
}

func TestApp_AddToCartRejected(t *testing.T) {
	api := newFakeAPI()
	api.notAdded = true
	a := startedApp(t, api)

	press(t, a, "enter", "a")

	require.Equal(t, detail.StatusFailed, a.detail.Status())
	view := a.View()
	require.NotContains(t, view, "Added to cart")
	require.Contains(t, view, "Could not add to cart")

	press(t, a, "r")
	require.Equal(t, detail.StatusLoaded, a.detail.Status())
}

func TestApp_DetailLoadFailure(t *testing.T) {
	a := startedApp(t, newFakeAPI())

	tag := a.detail.Load(999)
	a.screen = screenDetail
	drain(t, a, fetchFoodCmd(a.api, 999, tag))

	require.Equal(t, detail.StatusFailed, a.detail.Status())
	require.Contains(t, a.View(), "Could not load food")
}

func TestApp_NoticeTimerOfEarlierFoodIsIgnored(t *testing.T) {
	a := startedApp(t, newFakeAPI())
	now := time.Now()
	a.now = func() time.Time { return now }

	press(t, a, "enter")
	stale := a.detail.Tag()
	press(t, a, "esc", "down", "enter")
	_, cmd := a.Update(keyMsg("a"))
	// the add resolves without running the notice timer
	a.Update(run(cmd).(tea.BatchMsg)[0]())
	require.True(t, a.detail.NoticeVisible(now))

	// even once the clock passes the deadline, a timer from the first food leaves the notice alone
	a.now = func() time.Time { return now.Add(a.detail.NoticeDuration()) }
	a.Update(noticeExpiredMsg{tag: stale})
	require.True(t, a.detail.NoticeVisible(now))

	// the current food's timer clears it
	a.Update(noticeExpiredMsg{tag: a.detail.Tag()})
	require.False(t, a.detail.NoticeVisible(now))
}
