package tui

import (
	"context"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/catalog"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/foodapi"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	tea "github.com/charmbracelet/bubbletea"
)

type referencesMsg struct {
	refs *foodapi.References
	err  error
}

// pageMsg answers a page request issued by loader
type pageMsg struct {
	loader *catalog.Loader
	tag    catalog.Tag
	page   *models.FoodPage
	err    error
}

type foodMsg struct {
	tag  uint64
	food *models.Food
	err  error
}

type addedMsg struct {
	tag   uint64
	added bool
	err   error
}

type noticeExpiredMsg struct{ tag uint64 }

type createdMsg struct {
	food *models.Food
	err  error
}

func loadReferencesCmd(api API) tea.Cmd {
	return func() tea.Msg {
		refs, err := api.LoadReferences(context.Background())
		return referencesMsg{refs: refs, err: err}
	}
}

func fetchPageCmd(api API, l *catalog.Loader, req catalog.Request) tea.Cmd {
	return func() tea.Msg {
		page, err := api.ListFoods(context.Background(), req.Filter)
		return pageMsg{loader: l, tag: req.Tag, page: page, err: err}
	}
}

func fetchFoodCmd(api API, id int64, tag uint64) tea.Cmd {
	return func() tea.Msg {
		food, err := api.GetFood(context.Background(), id)
		return foodMsg{tag: tag, food: food, err: err}
	}
}

func addToCartCmd(api API, id int64, tag uint64) tea.Cmd {
	return func() tea.Msg {
		added, err := api.AddToCart(context.Background(), id)
		return addedMsg{tag: tag, added: added, err: err}
	}
}

func createFoodCmd(api API, req models.CreateFoodRequest) tea.Cmd {
	return func() tea.Msg {
		food, err := api.CreateFood(context.Background(), req)
		return createdMsg{food: food, err: err}
	}
}

func noticeTimerCmd(d time.Duration, tag uint64) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return noticeExpiredMsg{tag: tag}
	})
}
