package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// presetItem adapts a preset caption/creator pair to the list component.
type presetItem struct {
	caption string
	creator string
}

func (i presetItem) Title() string       { return i.caption }
func (i presetItem) Description() string { return i.creator }
func (i presetItem) FilterValue() string { return i.caption }

type pickerModel struct {
	list   list.Model
	choice int
	done   bool
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		// Don't intercept keys while the fuzzy filter is open.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			m.choice = m.list.Index()
			m.done = true
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			m.choice = -1
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	return m.list.View()
}

// PickPreset runs an interactive picker over the preset captions and returns
// the selected zero-based index. Cancelling the picker returns an error.
func PickPreset(captions, creators []string) (int, error) {
	items := make([]list.Item, len(captions))
	for i, caption := range captions {
		creator := ""
		if i < len(creators) {
			creator = creators[i]
		}
		items[i] = presetItem{caption: caption, creator: creator}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Choose a film preset"
	l.SetShowStatusBar(false)

	program := tea.NewProgram(pickerModel{list: l, choice: -1}, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return 0, fmt.Errorf("run preset picker: %w", err)
	}
	model, ok := final.(pickerModel)
	if !ok || !model.done || model.choice < 0 {
		return 0, fmt.Errorf("no preset selected")
	}
	return model.choice, nil
}
