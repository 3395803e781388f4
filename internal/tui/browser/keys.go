package browser

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the browser's keybindings
type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Activate    key.Binding
	Expand      key.Binding
	Collapse    key.Binding
	CollapseAll key.Binding
	Search      key.Binding
	ClearSearch key.Binding
	SwitchPane  key.Binding
	Analyze     key.Binding
	Export      key.Binding
	Scan        key.Binding
	Browse      key.Binding
	EditProject key.Binding
	BrowseOut   key.Binding
	EditOutput  key.Binding
	ResetOut    key.Binding
	CheckAll    key.Binding
	Settings    key.Binding
	SavePlan    key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "bottom"),
		),
		Activate: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle"),
		),
		Expand: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "expand"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "collapse"),
		),
		CollapseAll: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "collapse all"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		ClearSearch: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear search"),
		),
		SwitchPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Analyze: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "analyze"),
		),
		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export"),
		),
		Scan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		Browse: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "browse project"),
		),
		EditProject: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "enter project path"),
		),
		BrowseOut: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "browse output"),
		),
		EditOutput: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "enter output path"),
		),
		ResetOut: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "auto output"),
		),
		CheckAll: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "check resolved includes"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "settings"),
		),
		SavePlan: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "save plan"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Activate, k.Search, k.Analyze, k.Export, k.SwitchPane, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Activate, k.Expand, k.Collapse, k.CollapseAll, k.Search, k.ClearSearch},
		{k.Analyze, k.CheckAll, k.Export, k.SwitchPane, k.SavePlan},
		{k.Scan, k.Browse, k.EditProject, k.BrowseOut, k.EditOutput, k.ResetOut, k.Settings, k.Help, k.Quit},
	}
}
