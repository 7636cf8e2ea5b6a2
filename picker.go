package anew

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type pickerModel struct {
	all       []string
	filtered  []string
	cursor    int
	input     textinput.Model
	chosen    string
	cancelled bool
}

func newPickerModel(names []string) pickerModel {
	ti := textinput.New()
	ti.Placeholder = "filter templates..."
	ti.CharLimit = 64
	ti.Width = 30
	ti.Focus()

	return pickerModel{all: names, filtered: names, input: ti}
}

func (m pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			if len(m.filtered) > 0 {
				m.chosen = m.filtered[m.cursor]
				return m, tea.Quit
			}
			return m, nil
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.filter()
	return m, cmd
}

func (m *pickerModel) filter() {
	q := strings.ToLower(strings.TrimSpace(m.input.Value()))
	m.filtered = m.filtered[:0:0]
	for _, n := range m.all {
		if q == "" || strings.Contains(strings.ToLower(n), q) {
			m.filtered = append(m.filtered, n)
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
}

func (m pickerModel) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Apply which template?") + "\n")
	b.WriteString(m.input.View() + "\n\n")

	if len(m.filtered) == 0 {
		b.WriteString(dimStyle.Render("  no matching templates") + "\n")
	}
	for i, n := range m.filtered {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> "+n) + "\n")
			continue
		}
		b.WriteString("  " + n + "\n")
	}

	b.WriteString("\n" + dimStyle.Render("↑/↓ move • enter apply • esc cancel") + "\n")
	return b.String()
}

// PickTemplate lets the user choose one of names. An empty result with a nil
// error means the user cancelled.
func PickTemplate(names []string) (string, error) {
	if len(names) == 0 {
		return "", fmt.Errorf("no templates to choose from")
	}

	final, err := tea.NewProgram(newPickerModel(names), tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return "", err
	}

	m := final.(pickerModel)
	if m.cancelled {
		return "", nil
	}
	return m.chosen, nil
}
