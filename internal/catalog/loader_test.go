package catalog

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/stretchr/testify/require"
)

// foods returns n foods with ids starting at first
func foods(first, n int) []models.Food {
	out := make([]models.Food, n)
	for i := range out {
		id := int64(first + i)
		out[i] = models.Food{ID: id, Name: fmt.Sprintf("food-%d", id), Price: "1.00"}
	}
	return out
}

func page(req Request, totalItems int, items []models.Food) *models.FoodPage {
	return &models.FoodPage{
		Foods:      items,
		TotalItems: totalItems,
		TotalPages: models.TotalPages(totalItems, req.Filter.PageSize),
		Page:       req.Filter.Page,
		PageSize:   req.Filter.PageSize,
	}
}

func TestLoader_InitialState(t *testing.T) {
	l := NewLoader(15, NewSelection(), nil)

	require.Equal(t, PhaseIdle, l.Phase())
	require.Zero(t, l.Len())
	require.Zero(t, l.CurrentPage())
	require.Equal(t, UnknownTotal, l.TotalPages())
	require.False(t, l.Exhausted())
	require.True(t, l.ShouldPrefetch(0, 5))
}

func TestLoader_PagesUntilExhausted(t *testing.T) {
	l := NewLoader(15, NewSelection(), nil)

	req, ok := l.Next()
	require.True(t, ok)
	require.Equal(t, 1, req.Filter.Page)
	require.Equal(t, 15, req.Filter.PageSize)
	require.True(t, l.Apply(req.Tag, page(req, 40, foods(1, 15))))
	require.Equal(t, 15, l.Len())
	require.Equal(t, 3, l.TotalPages())
	require.Equal(t, 40, l.TotalItems())
	require.False(t, l.Exhausted())

	// cursor far from the bottom does not prefetch
	require.False(t, l.ShouldPrefetch(0, 5))
	require.True(t, l.ShouldPrefetch(12, 5))

	req, ok = l.Next()
	require.True(t, ok)
	require.Equal(t, 2, req.Filter.Page)
	require.True(t, l.Apply(req.Tag, page(req, 40, foods(16, 15))))
	require.Equal(t, 30, l.Len())
	require.False(t, l.Exhausted())

	req, ok = l.Next()
	require.True(t, ok)
	require.Equal(t, 3, req.Filter.Page)
	require.True(t, l.Apply(req.Tag, page(req, 40, foods(31, 10))))
	require.Equal(t, 40, l.Len())
	require.Equal(t, 3, l.CurrentPage())
	require.True(t, l.Exhausted())

	_, ok = l.Next()
	require.False(t, ok, "no fetch once exhausted")
	require.False(t, l.ShouldPrefetch(39, 5))

	for i, f := range l.Items() {
		require.Equal(t, int64(i+1), f.ID, "items keep page order")
	}
}

func TestLoader_AtMostOneFetchInFlight(t *testing.T) {
	l := NewLoader(15, NewSelection(), nil)

	first, ok := l.Next()
	require.True(t, ok)

	for i := 0; i < 5; i++ {
		_, ok := l.Next()
		require.False(t, ok, "scroll while fetching must be ignored")
		require.False(t, l.ShouldPrefetch(0, 5))
	}
	require.True(t, l.Fetching())

	require.True(t, l.Apply(first.Tag, page(first, 40, foods(1, 15))))
	require.False(t, l.Apply(first.Tag, page(first, 40, foods(1, 15))), "duplicate response is dropped")
	require.Equal(t, 15, l.Len())
}

func TestLoader_NoPageRequestedTwice(t *testing.T) {
	l := NewLoader(10, NewSelection(), nil)
	seen := map[int]bool{}

	for {
		req, ok := l.Next()
		if !ok {
			break
		}
		require.False(t, seen[req.Filter.Page], "page %d requested twice", req.Filter.Page)
		seen[req.Filter.Page] = true

		// a burst of scroll events between request and response
		for i := 0; i < 3; i++ {
			_, again := l.Next()
			require.False(t, again)
		}

		remaining := 35 - (req.Filter.Page-1)*10
		require.True(t, l.Apply(req.Tag, page(req, 35, foods(l.Len()+1, min(10, remaining)))))
	}

	require.Len(t, seen, 4)
	require.Equal(t, 35, l.Len())
}

func TestLoader_SelectionChangeResets(t *testing.T) {
	l := NewLoader(15, NewSelection(), nil)

	req, _ := l.Next()
	l.Apply(req.Tag, page(req, 40, foods(1, 15)))
	req, _ = l.Next()
	l.Apply(req.Tag, page(req, 40, foods(16, 15)))
	require.Equal(t, 2, l.CurrentPage())

	l.SetSelection(l.Selection().ToggleCategory(7))

	require.Equal(t, PhaseIdle, l.Phase())
	require.Zero(t, l.Len())
	require.Zero(t, l.CurrentPage())
	require.Equal(t, UnknownTotal, l.TotalPages())

	req, ok := l.Next()
	require.True(t, ok)
	require.Equal(t, 1, req.Filter.Page)
	require.Equal(t, []int64{7}, req.Filter.CategoryIDs)

	require.True(t, l.Apply(req.Tag, page(req, 3, foods(100, 3))))
	require.Equal(t, 3, l.Len())
	require.Equal(t, int64(100), l.Items()[0].ID)
	require.True(t, l.Exhausted())
}

func TestLoader_EveryMutationInvalidates(t *testing.T) {
	mutations := map[string]func(Selection) Selection{
		"toggle category": func(s Selection) Selection { return s.ToggleCategory(3) },
		"toggle provider": func(s Selection) Selection { return s.ToggleProvider(2) },
		"match all":       func(s Selection) Selection { return s.SetMatchAll(true) },
		"pickup from":     func(s Selection) Selection { return s.SetPickupFrom(mustTime(t, "2024-05-01T10:00:00")) },
		"pickup to":       func(s Selection) Selection { return s.SetPickupTo(mustTime(t, "2024-05-01T18:00:00")) },
		"clear pickup":    func(s Selection) Selection { return s.ClearPickupRange() },
		"sort":            func(s Selection) Selection { return s.SetSort(NextSort(s.Sort())) },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			l := NewLoader(15, NewSelection(), nil)
			req, _ := l.Next()
			l.Apply(req.Tag, page(req, 40, foods(1, 15)))

			l.SetSelection(mutate(l.Selection()))

			require.Zero(t, l.Len(), "no stale items survive")
			require.Zero(t, l.CurrentPage())
			next, ok := l.Next()
			require.True(t, ok)
			require.Equal(t, 1, next.Filter.Page)
		})
	}
}

func TestLoader_StaleResponseAfterSelectionChange(t *testing.T) {
	l := NewLoader(15, NewSelection(), nil)

	old, ok := l.Next()
	require.True(t, ok)

	// filter toggled while the old page request is still in flight
	l.SetSelection(l.Selection().ToggleProvider(1))
	fresh, ok := l.Next()
	require.True(t, ok)
	require.NotEqual(t, old.Tag, fresh.Tag)

	require.False(t, l.Apply(old.Tag, page(old, 40, foods(1, 15))), "old page must not land")
	require.False(t, l.Fail(old.Tag, errors.New("late failure")))
	require.True(t, l.Fetching())
	require.Zero(t, l.Len())

	require.True(t, l.Apply(fresh.Tag, page(fresh, 2, foods(500, 2))))
	require.Equal(t, int64(500), l.Items()[0].ID)
}

func TestLoader_ErrorStopsUntilRetry(t *testing.T) {
	l := NewLoader(15, NewSelection(), nil)
	loadErr := errors.New("load failed")

	req, _ := l.Next()
	require.True(t, l.Fail(req.Tag, loadErr))
	require.Equal(t, PhaseErrored, l.Phase())
	require.ErrorIs(t, l.Err(), loadErr)

	_, ok := l.Next()
	require.False(t, ok, "no automatic retry")
	require.False(t, l.ShouldPrefetch(0, 5))

	require.True(t, l.Retry())
	require.NoError(t, l.Err())
	req, ok = l.Next()
	require.True(t, ok)
	require.Equal(t, 1, req.Filter.Page)
}

func TestLoader_EmptyResult(t *testing.T) {
	l := NewLoader(15, NewSelection(), nil)

	req, _ := l.Next()
	require.True(t, l.Apply(req.Tag, &models.FoodPage{}))
	require.True(t, l.Exhausted())
	require.Zero(t, l.Len())
}

func TestLoader_NilPageIsFailure(t *testing.T) {
	l := NewLoader(15, NewSelection(), nil)

	req, _ := l.Next()
	require.True(t, l.Apply(req.Tag, nil))
	require.ErrorIs(t, l.Err(), ErrEmptyResponse)
}

func TestIsAllowedTransition(t *testing.T) {
	phases := []Phase{PhaseIdle, PhaseFetching, PhaseLoaded, PhaseErrored}
	allowed := map[[2]Phase]bool{
		{PhaseIdle, PhaseIdle}:        true,
		{PhaseIdle, PhaseFetching}:    true,
		{PhaseFetching, PhaseIdle}:    true,
		{PhaseFetching, PhaseLoaded}:  true,
		{PhaseFetching, PhaseErrored}: true,
		{PhaseLoaded, PhaseIdle}:      true,
		{PhaseLoaded, PhaseFetching}:  true,
		{PhaseErrored, PhaseIdle}:     true,
	}

	for _, from := range phases {
		for _, to := range phases {
			want := allowed[[2]Phase{from, to}]
			require.Equal(t, want, isAllowedTransition(from, to), "%s -> %s", from, to)
		}
	}
}
