// Package entryPicker is the multi-select list the sender flow uses to pick
// which vault entries to transfer.
package entryPicker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/qrvault/qrvault/internal/style"
	"github.com/qrvault/qrvault/internal/util"
	"github.com/qrvault/qrvault/pkg/vault"
)

// SelectedEntriesMsg is emitted when the operator confirms the selection.
type SelectedEntriesMsg struct {
	IDs []string
}

// --- Key Map ---
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	ToggleSelect key.Binding
	Confirm      key.Binding
}

var DefaultKeyMap = KeyMap{
	Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "move up")),
	Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "move down")),
	ToggleSelect: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle select")),
	Confirm:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
}

// --- Model ---
type Model struct {
	entries  []vault.Entry
	selected map[string]struct{}
	cursor   int
	keys     KeyMap
	height   int // For viewport height
	offset   int // For scrolling
}

func InitialModel() Model {
	return Model{
		selected: make(map[string]struct{}),
		keys:     DefaultKeyMap,
	}
}

// SetEntries replaces the selectable entries and clears any prior selection.
func (m *Model) SetEntries(entries []vault.Entry) {
	m.entries = entries
	m.selected = make(map[string]struct{})
	m.cursor = 0
	m.offset = 0
}

// --- Bubble Tea Methods ---
func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset--
				}
			}

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.entries)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.visibleItems() {
					m.offset++
				}
			}

		case key.Matches(msg, m.keys.ToggleSelect):
			if len(m.entries) > 0 {
				id := m.entries[m.cursor].ID
				if _, ok := m.selected[id]; ok {
					delete(m.selected, id)
				} else {
					m.selected[id] = struct{}{}
				}
			}

		case key.Matches(msg, m.keys.Confirm):
			if len(m.selected) > 0 {
				// Preserve list order rather than map iteration order.
				ids := make([]string, 0, len(m.selected))
				for _, e := range m.entries {
					if _, ok := m.selected[e.ID]; ok {
						ids = append(ids, e.ID)
					}
				}
				return m, func() tea.Msg {
					return SelectedEntriesMsg{IDs: ids}
				}
			}
		}
	}

	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString("Select the entries to transfer. " + m.helpView() + "\n\n")

	if len(m.entries) == 0 {
		s.WriteString(style.HelpStyle.Render("The vault is empty.") + "\n")
		return s.String()
	}

	nameWidth := 28
	typeWidth := 16
	issuerWidth := 20

	s.WriteString(
		style.HeaderStyle.Render(util.PadRight("", 6)) +
			style.HeaderStyle.Render(util.PadRight("Name", nameWidth)) + " " +
			style.HeaderStyle.Render(util.PadRight("Type", typeWidth)) + " " +
			style.HeaderStyle.Render(util.PadRight("Issuer", issuerWidth)) + "\n",
	)

	visibleItems := m.visibleItems()
	start := m.offset
	end := m.offset + visibleItems
	if end > len(m.entries) {
		end = len(m.entries)
	}
	if start > end {
		start = end
	}

	for i, entry := range m.entries[start:end] {
		actualIndex := start + i
		if m.cursor == actualIndex {
			s.WriteString(style.CursorStyle.String())
		} else {
			s.WriteString(style.NoCursorStyle.String())
		}

		if _, ok := m.selected[entry.ID]; ok {
			s.WriteString(style.SelectedStyle.String())
		} else {
			s.WriteString(style.DeselectedStyle.String())
		}

		typeCell := util.PadRight(string(entry.Type), typeWidth)
		if entry.Type.Sensitive() {
			typeCell = style.SensitiveStyle.Render(typeCell)
		}

		s.WriteString(util.PadRight(entry.Name, nameWidth) + " " +
			typeCell + " " +
			util.PadRight(entry.Issuer, issuerWidth) + "\n")
	}

	if len(m.entries) > visibleItems {
		s.WriteString(fmt.Sprintf("\n... %d/%d ...\n", m.cursor+1, len(m.entries)))
	}

	return s.String()
}

// Selected returns how many entries are currently marked.
func (m Model) Selected() int {
	return len(m.selected)
}

func (m Model) helpView() string {
	return style.HelpStyle.Render(
		fmt.Sprintf("Use '%s'/'%s' to move, '%s' to toggle, '%s' to confirm",
			m.keys.Up.Help().Key, m.keys.Down.Help().Key, m.keys.ToggleSelect.Help().Key, m.keys.Confirm.Help().Key),
	)
}

func (m Model) visibleItems() int {
	headerHeight := 4
	visible := m.height - headerHeight
	if visible < 1 {
		visible = 10
	}
	return visible
}
