package tui

import (
	"fmt"
	"strings"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/catalog"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// providerName resolves the configured provider id against the loaded references
func (a *App) providerName() (string, error) {
	if a.refsErr != nil {
		return "", fmt.Errorf("provider list unavailable: %w", a.refsErr)
	}
	for _, p := range a.refs.Providers {
		if p.ID == a.providerID {
			return p.Name, nil
		}
	}
	return "", fmt.Errorf("provider #%d is not known to the server", a.providerID)
}

// openManage shows the listings of the configured provider. The list is
// fetched on first visit and kept across visits.
func (a *App) openManage() tea.Cmd {
	a.screen = screenManage

	name, err := a.providerName()
	if err != nil {
		a.mineErr = err
		return nil
	}
	a.mineErr = nil

	if sel := a.mine.Selection(); sel.ProviderName() != name {
		return a.setSelection(a.mine, sel.SetProviderName(name))
	}
	if a.mine.CurrentPage() == 0 {
		return a.fetchNext(a.mine)
	}
	return nil
}

func (a *App) updateManage(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll

	case key.Matches(msg, a.keys.Back):
		a.screen = screenCatalog

	case key.Matches(msg, a.keys.Up):
		if a.mineCursor > 0 {
			a.mineCursor--
		}

	case key.Matches(msg, a.keys.Down):
		if a.mineCursor < a.mine.Len()-1 {
			a.mineCursor++
		}
		return a.prefetch(a.mine)

	case key.Matches(msg, a.keys.Open):
		return a.openDetail(a.mine)

	case key.Matches(msg, a.keys.NewListing):
		return a.openForm()

	case a.mineErr != nil && key.Matches(msg, a.keys.Retry):
		if a.refsErr != nil {
			return loadReferencesCmd(a.api)
		}
		return a.openManage()

	case a.mineErr != nil:
		return nil

	case key.Matches(msg, a.keys.Sort):
		sel := a.mine.Selection()
		return a.setSelection(a.mine, sel.SetSort(catalog.NextSort(sel.Sort())))

	case key.Matches(msg, a.keys.Retry):
		return a.retry(a.mine)
	}
	return nil
}

func (a *App) manageView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("My listings"))
	if name := a.mine.Selection().ProviderName(); name != "" {
		b.WriteString(dimStyle.Render("  " + name))
	}
	b.WriteString(dimStyle.Render("  sort: " + a.mine.Selection().Sort().Label()))
	b.WriteString("\n\n")

	if a.mineErr != nil {
		b.WriteString(errorStyle.Render(a.mineErr.Error()) + "\n")
		b.WriteString(dimStyle.Render("press r to retry or n to add a new food"))
		return b.String()
	}

	a.writeList(&b, a.mine, "No listings yet. Press n to add a new food")
	return b.String()
}
