package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/roadnet/pkg/criteria"
	"github.com/matzehuels/roadnet/pkg/roadsys"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// ViolationListModel - Interactive violation browser
// =============================================================================

// ViolationListModel is the bubbletea model for paging through violations.
// The segments of the row under the cursor are shown below the table.
type ViolationListModel struct {
	Violations []*criteria.Violation
	Cursor     int
	Selected   *criteria.Violation
	Height     int
	Offset     int
}

// NewViolationListModel creates a new violation list model.
func NewViolationListModel(violations []*criteria.Violation) ViolationListModel {
	return ViolationListModel{Violations: violations, Height: 12}
}

func (m ViolationListModel) Init() tea.Cmd {
	return nil
}

func (m ViolationListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Violations)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Violations) > 0 {
				m.Selected = m.Violations[m.Cursor]
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		// table chrome plus the detail pane
		m.Height = max(msg.Height-16, 3)
	}
	return m, nil
}

func (m ViolationListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Violations"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	if len(m.Violations) == 0 {
		b.WriteString(StyleSuccess.Render("No violations"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Violations))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		v := m.Violations[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, v.Criterion().Name(), v.Criterion().Type().String(), segmentNames(v.Segments())})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Criterion", "Kind", "Segments").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle()
			if col == 2 {
				base = base.Foreground(colorGray)
			}
			if m.Offset+row == m.Cursor {
				return base.Foreground(colorRed).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Violations))))
	b.WriteString("\n\n")
	b.WriteString(segmentDetails(m.Violations[m.Cursor].Segments()))

	return b.String()
}

// segmentDetails lists each segment with its type and set attributes.
func segmentDetails(segments []*roadsys.Segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(StyleValue.Render(s.Name()))
		b.WriteString(" ")
		b.WriteString(listDimStyle.Render(s.Type().String()))
		b.WriteString("\n")
		for _, acc := range s.AttributeAccessors() {
			v := acc.Value()
			if v == nil {
				continue
			}
			b.WriteString(listDimStyle.Render(fmt.Sprintf("    %-16s %v", acc.Type(), v)))
			b.WriteString("\n")
		}
	}
	return b.String()
}
