package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Back       key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Scroll key.Binding

	// Listing
	FirstPage   key.Binding
	PrevPage    key.Binding
	NextPage    key.Binding
	LastPage    key.Binding
	ToggleSort  key.Binding
	PriceFilter key.Binding
	PriceRange  key.Binding
	Category    key.Binding
	PerPage     key.Binding

	// Details
	QtyUp   key.Binding
	QtyDown key.Binding
	AddCart key.Binding

	// Dialogs
	Confirm key.Binding
	Cancel  key.Binding
	Switch  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "Back"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "Up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "Down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open item"),
		),
		Scroll: key.NewBinding(
			key.WithKeys("pgup", "pgdown", "ctrl+u", "ctrl+d"),
			key.WithHelp("pgup/pgdn", "Scroll description"),
		),

		FirstPage: key.NewBinding(
			key.WithKeys("<", "home"),
			key.WithHelp("<", "First page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "left"),
			key.WithHelp("p/←", "Previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n/→", "Next page"),
		),
		LastPage: key.NewBinding(
			key.WithKeys(">", "end"),
			key.WithHelp(">", "Last page"),
		),
		ToggleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Toggle sort"),
		),
		PriceFilter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Price filter on/off"),
		),
		PriceRange: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Edit price range"),
		),
		Category: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Next category"),
		),
		PerPage: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "Items per page"),
		),

		QtyUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "More"),
		),
		QtyDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Fewer"),
		),
		AddCart: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add to cart"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Apply"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "Switch field"),
		),
	}
}

// searchHelp and detailHelp adapt the keymap to bubbles/help for each view.
type searchHelp struct{ keyMap }

func (k searchHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.NextPage, k.PrevPage, k.ToggleSort, k.PriceFilter, k.Category, k.Help, k.Quit}
}

func (k searchHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Back},
		{k.FirstPage, k.PrevPage, k.NextPage, k.LastPage},
		{k.ToggleSort, k.PriceFilter, k.PriceRange, k.Category, k.PerPage},
		{k.CycleTheme, k.Help, k.Quit},
	}
}

type detailHelp struct{ keyMap }

func (k detailHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.QtyUp, k.QtyDown, k.AddCart, k.Open, k.Back, k.Help, k.Quit}
}

func (k detailHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Back},
		{k.QtyUp, k.QtyDown, k.AddCart, k.Scroll},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
