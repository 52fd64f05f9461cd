package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit          key.Binding
	ForceQuit     key.Binding
	ToggleHints   key.Binding
	NextTab       key.Binding
	PrevTab       key.Binding
	Tabs          []key.Binding // 1..5 jump to a tab
	Up            key.Binding
	Down          key.Binding
	Open          key.Binding // enter: card click, opens detail
	Back          key.Binding
	Like          key.Binding // l: like control, never opens the card
	Favorite      key.Binding // f: favorite control, never opens the card
	Search        key.Binding
	Category      key.Binding
	Difficulty    key.Binding
	Refresh       key.Binding
	SwitchKind    key.Binding // a: articles/activities in Favorites and Liked
	Comment       key.Binding // c: comment inline
	CommentEditor key.Binding // C: comment via $EDITOR
	Delete        key.Binding
	Confirm       key.Binding
	Submit        key.Binding
	New           key.Binding // n: new profile
	Edit          key.Binding // e: edit the selected profile
	Save          key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	tabs := make([]key.Binding, 0, 5)
	for _, k := range []string{"1", "2", "3", "4", "5"} {
		tabs = append(tabs, key.NewBinding(key.WithKeys(k), key.WithHelp(k, "tab "+k)))
	}
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		ToggleHints: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "keys"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		Tabs: tabs,
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Like: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "like"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorite"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Category: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "category"),
		),
		Difficulty: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "difficulty"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		SwitchKind: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "articles/activities"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment"),
		),
		CommentEditor: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "comment ($EDITOR)"),
		),
		Delete: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "confirm"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "post"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
	}
}

// GlobalHelp lists the keys the root answers to on every tab.
func (k KeyMap) GlobalHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.PrevTab, k.ToggleHints, k.Quit}
}

// DetailHelp is the short help shown under the detail view.
func (k KeyMap) DetailHelp() []key.Binding {
	return []key.Binding{k.Like, k.Favorite, k.Comment, k.CommentEditor, k.Back}
}
