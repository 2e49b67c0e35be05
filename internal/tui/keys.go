package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Confirm key.Binding
	First   key.Binding
	Second  key.Binding
	Left    key.Binding
	Right   key.Binding
	Toggle  key.Binding
	Jump    key.Binding
	Bag     key.Binding
	Use     key.Binding
	GiveUp  key.Binding
	Hint    key.Binding
	Restart key.Binding
	Save    key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "continue")),
	First:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "first choice")),
	Second:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "second choice")),
	Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	Toggle:  key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "pack/unpack")),
	Jump:    key.NewBinding(key.WithKeys(" ", "space", "up", "k"), key.WithHelp("space", "jump")),
	Bag:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "open bag")),
	Use:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "use")),
	GiveUp:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "give up")),
	Hint:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "hint")),
	Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
	Save:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save card")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// helpKeys is the set of bindings live on the current screen.
type helpKeys []key.Binding

func (h helpKeys) ShortHelp() []key.Binding  { return h }
func (h helpKeys) FullHelp() [][]key.Binding { return [][]key.Binding{h} }

func withHelp(b key.Binding, desc string) key.Binding {
	b.SetHelp(b.Help().Key, desc)
	return b
}
