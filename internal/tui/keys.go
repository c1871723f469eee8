package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the board responds to.
type KeyMap struct {
	MonthView    key.Binding
	WeekView     key.Binding
	TimelineView key.Binding
	Focus        key.Binding

	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Today    key.Binding
	Clear    key.Binding

	Cycle  key.Binding
	Add    key.Binding
	Filter key.Binding
	Lanes  key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		MonthView:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "month")),
		WeekView:     key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "week")),
		TimelineView: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "timeline")),
		Focus:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "grid/list")),

		Left:     key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/l", "day")),
		Right:    key.NewBinding(key.WithKeys("l", "right")),
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/j", "up/down")),
		Down:     key.NewBinding(key.WithKeys("j", "down")),
		PrevPage: key.NewBinding(key.WithKeys("[", "H"), key.WithHelp("[/]", "prev/next page")),
		NextPage: key.NewBinding(key.WithKeys("]", "L")),
		Today:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Clear:    key.NewBinding(key.WithKeys("esc", "c"), key.WithHelp("c", "clear date")),

		Cycle:  key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "cycle status")),
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Filter: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		Lanes:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "lanes")),

		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.MonthView, k.WeekView, k.TimelineView, k.Add, k.Cycle, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.MonthView, k.WeekView, k.TimelineView, k.Focus},
		{k.Left, k.Up, k.PrevPage, k.Today, k.Clear},
		{k.Add, k.Cycle, k.Filter, k.Lanes},
		{k.Help, k.Quit},
	}
}
