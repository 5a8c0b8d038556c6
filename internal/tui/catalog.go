package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/catalog"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// boundLayout is how pickup bounds are typed and shown in the filter panel
const boundLayout = "2006-01-02 15:04"

type rowKind int

const (
	rowCategory rowKind = iota
	rowMatchAll
	rowProvider
	rowPickupFrom
	rowPickupTo
)

type panelRow struct {
	kind  rowKind
	id    int64
	label string
}

// filterPanel is the overlay listing every filter choice
type filterPanel struct {
	open     bool
	cursor   int
	editing  bool
	input    textinput.Model
	inputErr error
}

func newFilterPanel() filterPanel {
	ti := textinput.New()
	ti.Placeholder = "2024-05-01 17:30"
	ti.CharLimit = len(models.LocalTimeLayout)
	ti.Width = 20
	return filterPanel{input: ti}
}

func (a *App) panelRows() []panelRow {
	rows := make([]panelRow, 0, len(a.refs.Categories)+len(a.refs.Providers)+3)
	for _, c := range a.refs.Categories {
		rows = append(rows, panelRow{kind: rowCategory, id: c.ID, label: c.Name})
	}
	rows = append(rows, panelRow{kind: rowMatchAll, label: "Match all categories"})
	for _, p := range a.refs.Providers {
		rows = append(rows, panelRow{kind: rowProvider, id: p.ID, label: p.Name})
	}
	return append(rows,
		panelRow{kind: rowPickupFrom, label: "Pickup from"},
		panelRow{kind: rowPickupTo, label: "Pickup to"},
	)
}

func (a *App) updateCatalog(msg tea.KeyMsg) tea.Cmd {
	if a.panel.open {
		return a.updatePanel(msg)
	}

	sel := a.loader.Selection()
	switch {
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Down):
		if a.cursor < a.loader.Len()-1 {
			a.cursor++
		}
		return a.prefetch(a.loader)

	case key.Matches(msg, a.keys.Open):
		return a.openDetail(a.loader)

	case key.Matches(msg, a.keys.Filter):
		a.panel.open = true

	case key.Matches(msg, a.keys.Sort):
		return a.setSelection(a.loader, sel.SetSort(catalog.NextSort(sel.Sort())))

	case key.Matches(msg, a.keys.ClearPickup):
		return a.setSelection(a.loader, sel.ClearPickupRange())

	case key.Matches(msg, a.keys.Retry):
		return a.retry(a.loader)

	case key.Matches(msg, a.keys.NewListing):
		return a.openForm()

	case key.Matches(msg, a.keys.MyListings):
		return a.openManage()
	}
	return nil
}

func (a *App) updatePanel(msg tea.KeyMsg) tea.Cmd {
	if a.panel.editing {
		return a.updatePickupInput(msg)
	}

	rows := a.panelRows()
	sel := a.loader.Selection()
	switch {
	case key.Matches(msg, a.keys.Back), key.Matches(msg, a.keys.Filter):
		a.panel.open = false

	case key.Matches(msg, a.keys.Up):
		if a.panel.cursor > 0 {
			a.panel.cursor--
		}

	case key.Matches(msg, a.keys.Down):
		if a.panel.cursor < len(rows)-1 {
			a.panel.cursor++
		}

	case key.Matches(msg, a.keys.ClearPickup):
		return a.setSelection(a.loader, sel.ClearPickupRange())

	case key.Matches(msg, a.keys.Toggle):
		if a.panel.cursor >= len(rows) {
			return nil
		}
		row := rows[a.panel.cursor]
		switch row.kind {
		case rowCategory:
			return a.setSelection(a.loader, sel.ToggleCategory(row.id))
		case rowMatchAll:
			return a.setSelection(a.loader, sel.SetMatchAll(!sel.MatchAll()))
		case rowProvider:
			return a.setSelection(a.loader, sel.ToggleProvider(row.id))
		case rowPickupFrom, rowPickupTo:
			bound := sel.PickupFrom()
			if row.kind == rowPickupTo {
				bound = sel.PickupTo()
			}
			a.panel.editing = true
			a.panel.inputErr = nil
			a.panel.input.SetValue(boundInput(bound))
			return a.panel.input.Focus()
		}
	}
	return nil
}

// updatePickupInput edits a pickup bound; an empty value clears it
func (a *App) updatePickupInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Back):
		a.panel.editing = false
		a.panel.input.Blur()
		return nil

	case key.Matches(msg, a.keys.Open):
		bound, err := parseBound(a.panel.input.Value())
		if err != nil {
			a.panel.inputErr = err
			return nil
		}
		a.panel.editing = false
		a.panel.input.Blur()

		sel := a.loader.Selection()
		if a.panelRows()[a.panel.cursor].kind == rowPickupTo {
			return a.setSelection(a.loader, sel.SetPickupTo(bound))
		}
		return a.setSelection(a.loader, sel.SetPickupFrom(bound))
	}

	var cmd tea.Cmd
	a.panel.input, cmd = a.panel.input.Update(msg)
	return cmd
}

// updateInputs forwards non-key messages, such as cursor blinks, to the focused text input
func (a *App) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case a.screen == screenCatalog && a.panel.editing:
		a.panel.input, cmd = a.panel.input.Update(msg)
	case a.screen == screenForm && a.focus < len(a.inputs):
		a.inputs[a.focus], cmd = a.inputs[a.focus].Update(msg)
	}
	return cmd
}

// cursorOf returns the cursor of the list l feeds
func (a *App) cursorOf(l *catalog.Loader) *int {
	if l == a.mine {
		return &a.mineCursor
	}
	return &a.cursor
}

// setSelection replaces the selection of l and starts loading page 1 when it changed.
// An equal selection keeps the loaded list.
func (a *App) setSelection(l *catalog.Loader, sel catalog.Selection) tea.Cmd {
	if sel.Equal(l.Selection()) {
		return nil
	}
	l.SetSelection(sel)
	*a.cursorOf(l) = 0
	return a.fetchNext(l)
}

// reload discards what l has loaded and fetches page 1 again
func (a *App) reload(l *catalog.Loader) tea.Cmd {
	l.Reset()
	*a.cursorOf(l) = 0
	return a.fetchNext(l)
}

func (a *App) retry(l *catalog.Loader) tea.Cmd {
	var refs tea.Cmd
	if a.refsErr != nil {
		refs = loadReferencesCmd(a.api)
	}
	if l.Retry() {
		return tea.Batch(refs, a.fetchNext(l))
	}
	return refs
}

func (a *App) fetchNext(l *catalog.Loader) tea.Cmd {
	req, ok := l.Next()
	if !ok {
		return nil
	}
	return a.withSpinner(fetchPageCmd(a.api, l, req))
}

func (a *App) prefetch(l *catalog.Loader) tea.Cmd {
	if !l.ShouldPrefetch(*a.cursorOf(l), prefetchThreshold) {
		return nil
	}
	return a.fetchNext(l)
}

func (a *App) applyPage(msg pageMsg) tea.Cmd {
	l := msg.loader
	if l == nil {
		return nil
	}
	if msg.err != nil {
		l.Fail(msg.tag, msg.err)
		return nil
	}
	if !l.Apply(msg.tag, msg.page) {
		return nil
	}
	return a.prefetch(l)
}

// openDetail shows the food under the cursor of l; back returns to the current screen
func (a *App) openDetail(l *catalog.Loader) tea.Cmd {
	items := l.Items()
	cursor := *a.cursorOf(l)
	if cursor >= len(items) {
		return nil
	}
	id := items[cursor].ID
	tag := a.detail.Load(id)
	a.back = a.screen
	a.screen = screenDetail
	return a.withSpinner(fetchFoodCmd(a.api, id, tag))
}

func (a *App) catalogView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Foods"))
	b.WriteString(dimStyle.Render("  sort: " + a.loader.Selection().Sort().Label()))
	b.WriteString("\n")
	if summary := a.selectionSummary(); summary != "" {
		b.WriteString(dimStyle.Render(summary) + "\n")
	}
	if a.refsErr != nil {
		b.WriteString(errorStyle.Render("Filters unavailable: "+a.refsErr.Error()) + "\n")
	}
	b.WriteString("\n")

	if a.panel.open {
		b.WriteString(panelStyle.Render(a.panelView()))
		return b.String()
	}

	a.writeList(&b, a.loader, "No foods match your filters")
	return b.String()
}

// writeList renders the loaded rows of l around its cursor and the paging state
func (a *App) writeList(b *strings.Builder, l *catalog.Loader, empty string) {
	if err := l.Err(); err != nil {
		b.WriteString(errorStyle.Render("Failed to load foods: "+err.Error()) + "\n")
		b.WriteString(dimStyle.Render("press r to retry"))
		return
	}

	items := l.Items()
	cursor := *a.cursorOf(l)
	start, end := visibleRange(len(items), cursor, a.listHeight())
	for i := start; i < end; i++ {
		b.WriteString(foodRow(items[i], i == cursor) + "\n")
	}

	switch {
	case l.Fetching():
		b.WriteString(a.spinner.View() + " Loading...")
	case l.Exhausted() && len(items) == 0:
		b.WriteString(dimStyle.Render(empty))
	case l.Exhausted():
		b.WriteString(dimStyle.Render(fmt.Sprintf("End of list (%d foods)", l.TotalItems())))
	}
}

func foodRow(f models.Food, selected bool) string {
	line := fmt.Sprintf("%-32s %s  %s  %s",
		f.Name,
		priceStyle.Render(FormatPrice(f.Price)),
		FormatPickup(f.PickupTime),
		dimStyle.Render(f.ProductProviderName),
	)
	if selected {
		return selectedStyle.Render("> ") + line
	}
	return "  " + line
}

func (a *App) panelView() string {
	sel := a.loader.Selection()
	rows := a.panelRows()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Filters") + "\n")
	for i, row := range rows {
		var value string
		switch row.kind {
		case rowCategory:
			value = checkbox(sel.HasCategory(row.id))
		case rowMatchAll:
			value = checkbox(sel.MatchAll())
		case rowProvider:
			value = checkbox(sel.HasProvider(row.id))
		case rowPickupFrom:
			value = "[" + formatBound(sel.PickupFrom()) + "]"
		case rowPickupTo:
			value = "[" + formatBound(sel.PickupTo()) + "]"
		}
		if a.panel.editing && i == a.panel.cursor {
			value = a.panel.input.View()
		}

		line := value + " " + row.label
		if i == a.panel.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	if a.panel.inputErr != nil {
		b.WriteString(errorStyle.Render(a.panel.inputErr.Error()) + "\n")
	}
	return b.String()
}

func (a *App) selectionSummary() string {
	sel := a.loader.Selection()
	var parts []string

	if ids := sel.CategoryIDs(); len(ids) > 0 {
		mode := "any"
		if sel.MatchAll() {
			mode = "all"
		}
		parts = append(parts, fmt.Sprintf("categories (%s): %s", mode, a.names(ids, rowCategory)))
	}
	if ids := sel.ProviderIDs(); len(ids) > 0 {
		parts = append(parts, "providers: "+a.names(ids, rowProvider))
	}
	if !sel.PickupFrom().IsZero() || !sel.PickupTo().IsZero() {
		parts = append(parts, fmt.Sprintf("pickup: %s to %s", formatBound(sel.PickupFrom()), formatBound(sel.PickupTo())))
	}
	return strings.Join(parts, " | ")
}

// names resolves ids to reference names, falling back to the id itself
func (a *App) names(ids []int64, kind rowKind) string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		name := fmt.Sprintf("#%d", id)
		for _, row := range a.panelRows() {
			if row.kind == kind && row.id == id {
				name = row.label
				break
			}
		}
		out = append(out, name)
	}
	return strings.Join(out, ", ")
}

func (a *App) listHeight() int {
	if a.height <= 0 {
		return a.loader.PageSize()
	}
	return max(a.height-10, 3)
}

// visibleRange returns the window of rows to draw so that cursor stays visible
func visibleRange(n, cursor, height int) (int, int) {
	if n <= height {
		return 0, n
	}
	start := max(cursor-height/2, 0)
	if start+height > n {
		start = n - height
	}
	return start, start + height
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func formatBound(t time.Time) string {
	if t.IsZero() {
		return "any"
	}
	return t.Format(boundLayout)
}

func boundInput(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(boundLayout)
}

func parseBound(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "any" {
		return time.Time{}, nil
	}
	return models.ParseLocalTime(s)
}
