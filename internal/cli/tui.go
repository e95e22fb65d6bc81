package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/pgraphlab/pgraph/pkg/archive"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// SolutionListModel - Interactive solution browsing
// =============================================================================

// SolutionListModel is the bubbletea model for browsing retained
// solutions. The best solution sits at the top; the detail pane below
// the table shows the selection's units and, under the flow bound, their
// activity levels.
type SolutionListModel struct {
	Problem   string
	Solutions []archive.Solution
	Cursor    int
	Selected  *archive.Solution
	Height    int
	Offset    int
}

// NewSolutionListModel creates a solution list model.
func NewSolutionListModel(problem string, solutions []archive.Solution) SolutionListModel {
	return SolutionListModel{
		Problem:   problem,
		Solutions: solutions,
		Height:    15,
	}
}

func (m SolutionListModel) Init() tea.Cmd {
	return nil
}

func (m SolutionListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Solutions)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = &m.Solutions[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m SolutionListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Solutions: " + m.Problem))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ render  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Solutions) {
		end = len(m.Solutions)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		sol := m.Solutions[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		best := ""
		if i == 0 {
			best = "★"
		}

		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.2f", sol.Value),
			fmt.Sprintf("%d", len(sol.Units)),
			best,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Cost", "Units", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.Offset + row
			if actualIdx == m.Cursor {
				return listSelectedStyle
			}
			if actualIdx == 0 {
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(m.detail())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Solutions))))

	return b.String()
}

// detail renders the unit list of the cursor's solution, with activity
// levels when present.
func (m SolutionListModel) detail() string {
	if len(m.Solutions) == 0 {
		return ""
	}
	sol := m.Solutions[m.Cursor]

	var b strings.Builder
	b.WriteString("  " + StyleValue.Render("{"+strings.Join(sol.Units, ", ")+"}"))
	b.WriteString("\n")

	for _, unit := range slices.Sorted(maps.Keys(sol.Activities)) {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("    %-12s %.3f", unit, sol.Activities[unit])))
		b.WriteString("\n")
	}
	return b.String()
}
