package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"tsuzuku/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

const helpMarkdown = `# Commands

All commands also work from the palette with a leading slash:

- **add** text [due:2006-01-02T15:04] [repeat:daily|weekly|monthly]
- **done** / **edit** / **delete** target (list position or id prefix)
- **show** streak|stats
- **filter** all|active|completed
- **sort** newest|oldest
- **search** text (empty clears)
`

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.keyBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	m.helpViewport.SetContent(views.RenderMarkdown(helpMarkdown))
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}) + "\n" + m.helpViewport.View(),
	})
}

func (m Model) keyBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Add, Action: "add task"},
		{Key: "space/enter", Action: "toggle complete"},
		{Key: m.Keys.Edit, Action: "edit task text"},
		{Key: m.Keys.Delete, Action: "delete task"},
		{Key: "j/k", Action: "move selection"},
		{Key: m.Keys.Filter, Action: "cycle filter"},
		{Key: m.Keys.Sort, Action: "toggle sort order"},
		{Key: m.Keys.Stats, Action: "toggle stats panel"},
		{Key: m.Keys.Palette, Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.keyBindings()))
	for _, kb := range m.keyBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
