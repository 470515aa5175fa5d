package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/matzehuels/ecsdump/pkg/ecs"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ScheduleListModel - Interactive schedule selection
// =============================================================================

// ScheduleListModel is the bubbletea model for interactive schedule selection.
type ScheduleListModel struct {
	Labels   []ecs.Label
	Cursor   int
	Selected ecs.Label
	Height   int
	Offset   int
}

// NewScheduleListModel creates a new schedule list model.
func NewScheduleListModel(labels []ecs.Label) ScheduleListModel {
	return ScheduleListModel{
		Labels: labels,
		Height: 15,
	}
}

func (m ScheduleListModel) Init() tea.Cmd {
	return nil
}

func (m ScheduleListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Labels)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Labels) == 0 {
				return m, tea.Quit
			}
			m.Selected = m.Labels[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m ScheduleListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Schedule"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Labels))
	for i := m.Offset; i < end; i++ {
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + string(m.Labels[i])))
		} else {
			b.WriteString(listNormalStyle.Render("  " + string(m.Labels[i])))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Labels))))

	return b.String()
}

// =============================================================================
// Terminal Detection
// =============================================================================

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// interactive reports whether a picker can be shown.
func interactive() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}
