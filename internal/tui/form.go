package tui

import (
	"fmt"
	"strings"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/listing"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func fieldPlaceholder(f listing.Field) string {
	switch f {
	case listing.FieldProductType:
		return "FOOD or CLOTHES"
	case listing.FieldPrice:
		return "12.99"
	case listing.FieldPickupTime:
		return "2024-05-01 17:30"
	case listing.FieldImage:
		return "https://..."
	default:
		return ""
	}
}

// openForm starts a fresh listing draft
func (a *App) openForm() tea.Cmd {
	a.form = listing.NewForm(a.providerID)
	a.inputs = make([]textinput.Model, len(listing.Fields))
	for i, field := range listing.Fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = fieldPlaceholder(field)
		ti.Width = 40
		ti.SetValue(a.form.Value(field))
		a.inputs[i] = ti
	}
	a.focus = 0
	a.back = a.screen
	a.screen = screenForm
	return a.inputs[0].Focus()
}

// formRows is the number of focusable rows: text fields, flags and the submit button
func (a *App) formRows() int {
	return len(a.inputs) + len(listing.Flags) + 1
}

func (a *App) focusField(i int) tea.Cmd {
	n := a.formRows()
	i = (i%n + n) % n
	if a.focus < len(a.inputs) {
		a.inputs[a.focus].Blur()
	}
	a.focus = i
	if i < len(a.inputs) {
		return a.inputs[i].Focus()
	}
	return nil
}

func (a *App) updateForm(msg tea.KeyMsg) tea.Cmd {
	onInput := a.focus < len(a.inputs)

	switch {
	case key.Matches(msg, a.keys.Back):
		a.screen = a.back
		return nil
	case key.Matches(msg, a.keys.Submit):
		return a.submitForm()
	case key.Matches(msg, a.keys.NextField):
		return a.focusField(a.focus + 1)
	case key.Matches(msg, a.keys.PrevField):
		return a.focusField(a.focus - 1)
	case onInput && key.Matches(msg, a.keys.Open):
		return a.focusField(a.focus + 1)
	}

	if onInput {
		var cmd tea.Cmd
		a.inputs[a.focus], cmd = a.inputs[a.focus].Update(msg)
		field := listing.Fields[a.focus]
		if v := a.inputs[a.focus].Value(); v != a.form.Value(field) {
			a.form.Set(field, v)
		}
		return cmd
	}

	if key.Matches(msg, a.keys.Toggle) {
		if i := a.focus - len(a.inputs); i < len(listing.Flags) {
			a.form.Toggle(listing.Flags[i])
			return nil
		}
		return a.submitForm()
	}
	return nil
}

func (a *App) submitForm() tea.Cmd {
	req, err := a.form.BeginSubmit()
	if err != nil {
		a.log.Debug("listing not submitted", "error", err)
		return nil
	}
	return a.withSpinner(createFoodCmd(a.api, req))
}

func (a *App) applyCreated(msg createdMsg) tea.Cmd {
	if a.form == nil || a.form.Status() != listing.StatusSubmitting {
		return nil
	}
	a.form.Complete(msg.food, msg.err)
	created := a.form.Created()
	if a.form.Status() != listing.StatusSubmitted || created == nil {
		a.log.Warn("create listing failed", "error", a.form.Err())
		return nil
	}
	a.log.Info("listing created", "food_id", created.ID, "name", created.Name)

	// the new listing may sort into pages already loaded
	cmds := []tea.Cmd{a.reload(a.loader)}
	if a.mine.Selection().ProviderName() != "" {
		cmds = append(cmds, a.reload(a.mine))
	}
	return tea.Batch(cmds...)
}

func (a *App) formView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("New listing") + "\n\n")

	marker := func(i int) string {
		if i == a.focus {
			return selectedStyle.Render("> ")
		}
		return "  "
	}

	for i, field := range listing.Fields {
		fmt.Fprintf(&b, "%s%-13s %s\n", marker(i), field, a.inputs[i].View())
	}
	b.WriteString("\n")
	for j, flag := range listing.Flags {
		fmt.Fprintf(&b, "%s%s %s\n", marker(len(a.inputs)+j), checkbox(a.form.Flag(flag)), flag)
	}
	fmt.Fprintf(&b, "\n%s[ Submit ]\n\n", marker(a.formRows()-1))

	switch a.form.Status() {
	case listing.StatusSubmitting:
		b.WriteString(a.spinner.View() + " Submitting...")
	case listing.StatusSubmitted:
		if created := a.form.Created(); created != nil {
			b.WriteString(noticeStyle.Render(fmt.Sprintf("Created #%d %s", created.ID, created.Name)))
		}
	case listing.StatusFailed:
		for _, line := range strings.Split(errString(a.form.Err()), "\n") {
			b.WriteString(errorStyle.Render(line) + "\n")
		}
	}
	return b.String()
}
