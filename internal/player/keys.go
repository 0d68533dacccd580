package player

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle       key.Binding
	Start        key.Binding
	End          key.Binding
	Faster       key.Binding
	Slower       key.Binding
	Larger       key.Binding
	Smaller      key.Binding
	MirrorH      key.Binding
	MirrorV      key.Binding
	Align        key.Binding
	Theme        key.Binding
	SaveSettings key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle:       key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "play/pause")),
		Start:        key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "start")),
		End:          key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "end")),
		Faster:       key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "speed")),
		Slower:       key.NewBinding(key.WithKeys("-", "_")),
		Larger:       key.NewBinding(key.WithKeys("]"), key.WithHelp("]/[", "size")),
		Smaller:      key.NewBinding(key.WithKeys("[")),
		MirrorH:      key.NewBinding(key.WithKeys("h"), key.WithHelp("h/v", "mirror")),
		MirrorV:      key.NewBinding(key.WithKeys("v")),
		Align:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "align")),
		Theme:        key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		SaveSettings: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "save")),
		Quit:         key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Start, k.End, k.Faster, k.Larger, k.MirrorH, k.Align, k.Theme, k.SaveSettings, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Start, k.End},
		{k.Faster, k.Slower, k.Larger, k.Smaller},
		{k.MirrorH, k.MirrorV, k.Align, k.Theme},
		{k.SaveSettings, k.Quit},
	}
}
