package tui

import (
	"strings"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/detail"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (a *App) updateDetail(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit

	case key.Matches(msg, a.keys.Back):
		a.screen = a.back
		a.detail.Dismiss()

	case key.Matches(msg, a.keys.AddToCart):
		id, tag, ok := a.detail.BeginAddToCart()
		if !ok {
			return nil
		}
		return a.withSpinner(addToCartCmd(a.api, id, tag))

	case key.Matches(msg, a.keys.Retry):
		if a.detail.Status() != detail.StatusFailed {
			return nil
		}
		id := a.detail.ID()
		tag := a.detail.Load(id)
		return a.withSpinner(fetchFoodCmd(a.api, id, tag))
	}
	return nil
}

func (a *App) detailView() string {
	var b strings.Builder

	food := a.detail.Food()
	switch {
	case a.detail.Status() == detail.StatusLoading:
		return a.spinner.View() + " Loading food..."
	case food == nil:
		b.WriteString(errorStyle.Render("Could not load food: "+errString(a.detail.Err())) + "\n")
		b.WriteString(dimStyle.Render("press r to retry"))
		return b.String()
	}

	b.WriteString(titleStyle.Render(food.Name) + "\n")
	b.WriteString(priceStyle.Render(FormatPrice(food.Price)) + "\n\n")
	if food.Description != "" {
		b.WriteString(food.Description + "\n")
	}
	b.WriteString(dimStyle.Render("Pickup: "+FormatPickup(food.PickupTime)) + "\n")
	if food.ProductProviderName != "" {
		b.WriteString(dimStyle.Render("From: "+food.ProductProviderName) + "\n")
	}
	if labels := food.DietaryLabels(); len(labels) > 0 {
		b.WriteString(dimStyle.Render(strings.Join(labels, " · ")) + "\n")
	}
	if food.Image != "" {
		b.WriteString(dimStyle.Render(food.Image) + "\n")
	}
	b.WriteString("\n")

	switch {
	case a.detail.Adding():
		b.WriteString(a.spinner.View() + " Adding to cart...")
	case a.detail.NoticeVisible(a.now()):
		b.WriteString(noticeStyle.Render("Added to cart"))
	case a.detail.Status() == detail.StatusFailed:
		b.WriteString(errorStyle.Render("Could not add to cart: " + errString(a.detail.Err())))
		b.WriteString("\n" + dimStyle.Render("press r to reload"))
	}
	return b.String()
}

func errString(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
