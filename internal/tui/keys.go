package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Open        key.Binding
	Back        key.Binding
	Filter      key.Binding
	Toggle      key.Binding
	ClearPickup key.Binding
	Sort        key.Binding
	Retry       key.Binding
	AddToCart   key.Binding
	NewListing  key.Binding
	MyListings  key.Binding
	NextField   key.Binding
	PrevField   key.Binding
	Submit      key.Binding
	Help        key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
}

var keys = keyMap{
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Open:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Filter:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filters")),
	Toggle:      key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
	ClearPickup: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear pickup range")),
	Sort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
	Retry:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
	AddToCart:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to cart")),
	NewListing:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new listing")),
	MyListings:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "my listings")),
	NextField:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	PrevField:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	Submit:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
	Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
	Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c")),
}

// screenKeys adapts a per-screen binding list to help.KeyMap
type screenKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

func (s screenKeys) ShortHelp() []key.Binding { return s.short }
func (s screenKeys) FullHelp() [][]key.Binding { return s.full }

func (k keyMap) catalogHelp() screenKeys {
	return screenKeys{
		short: []key.Binding{k.Open, k.Filter, k.Sort, k.Quit, k.Help},
		full: [][]key.Binding{
			{k.Up, k.Down, k.Open},
			{k.Filter, k.Sort, k.ClearPickup},
			{k.NewListing, k.MyListings, k.Retry},
			{k.Help, k.Quit},
		},
	}
}

func (k keyMap) manageHelp() screenKeys {
	return screenKeys{
		short: []key.Binding{k.Open, k.NewListing, k.Sort, k.Back},
		full: [][]key.Binding{
			{k.Up, k.Down, k.Open},
			{k.NewListing, k.Sort, k.Retry},
			{k.Back, k.Quit},
		},
	}
}

func (k keyMap) panelHelp() screenKeys {
	return screenKeys{
		short: []key.Binding{k.Toggle, k.ClearPickup, k.Back},
		full:  [][]key.Binding{{k.Up, k.Down}, {k.Toggle, k.ClearPickup, k.Back}},
	}
}

func (k keyMap) detailHelp() screenKeys {
	return screenKeys{
		short: []key.Binding{k.AddToCart, k.Back, k.Quit},
		full:  [][]key.Binding{{k.AddToCart, k.Retry}, {k.Back, k.Quit}},
	}
}

func (k keyMap) formHelp() screenKeys {
	return screenKeys{
		short: []key.Binding{k.NextField, k.Submit, k.Back},
		full:  [][]key.Binding{{k.NextField, k.PrevField}, {k.Toggle, k.Submit, k.Back}},
	}
}
