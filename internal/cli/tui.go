package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/JHertz5/role-assignment/pkg/pipeline"
	"github.com/JHertz5/role-assignment/pkg/project"
)

var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listDetailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

// ResultsModel is the bubbletea model behind assign --interactive. It
// pages through the assignment, one row per candidate, and shows the
// selected candidate's outcome below the table.
type ResultsModel struct {
	Report   *project.Report
	Warnings map[string][]string // candidate -> warning text
	Cursor   int
	Offset   int
	Height   int

	// ShowUnmatched switches the list to the unfilled slots.
	ShowUnmatched bool
}

func newResultsModel(res *pipeline.Result) ResultsModel {
	warnings := make(map[string][]string)
	for _, w := range res.Warnings {
		warnings[w.Label] = append(warnings[w.Label], w.String())
	}
	return ResultsModel{Report: res.Report, Warnings: warnings, Height: 15}
}

func (m ResultsModel) Init() tea.Cmd {
	return nil
}

func (m ResultsModel) rows() int {
	if m.ShowUnmatched {
		return len(m.Report.Unmatched)
	}
	return len(m.Report.Records)
}

func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < m.rows()-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			if n := m.rows(); n > 0 {
				m.Cursor = n - 1
				m.Offset = max(0, n-m.Height)
			}
		case "tab", "u":
			m.ShowUnmatched = !m.ShowUnmatched
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-12, 5)
	}
	return m, nil
}

func (m ResultsModel) View() string {
	var b strings.Builder

	title := "Assignment"
	if m.ShowUnmatched {
		title = "Unfilled roles"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("total cost %d", m.Report.TotalCost)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  tab toggle unfilled  q quit"))
	b.WriteString("\n\n")

	if m.rows() == 0 {
		b.WriteString(listDimStyle.Render("  (none)"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, m.rows())
	if m.ShowUnmatched {
		b.WriteString(m.unmatchedView(end))
	} else {
		b.WriteString(m.recordsView(end))
		b.WriteString("\n")
		b.WriteString(m.detail(m.Report.Records[m.Cursor]))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, m.rows())))
	return b.String()
}

func (m ResultsModel) recordsView(end int) string {
	var rows [][]string
	for i := m.Offset; i < end; i++ {
		rec := m.Report.Records[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		flag := ""
		if len(m.Warnings[rec.Candidate]) > 0 {
			flag = iconWarning
		}
		rows = append(rows, []string{cursor, rec.Candidate, strconv.Itoa(rec.Cost), rec.Role, flag})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Grad", "Cost", "Role", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			idx := m.Offset + row
			if idx >= len(m.Report.Records) {
				return lipgloss.NewStyle()
			}
			style := lipgloss.NewStyle()
			switch col {
			case 2:
				style = costStyle(m.Report.Records[idx].Cost)
			case 4:
				style = StyleWarning
			}
			if idx == m.Cursor {
				style = style.Bold(true)
			}
			return style
		}).
		Render()
}

func (m ResultsModel) unmatchedView(end int) string {
	var b strings.Builder
	for i := m.Offset; i < end; i++ {
		line := "  " + m.Report.Unmatched[i]
		if i == m.Cursor {
			line = StyleHighlight.Bold(true).Render("▸ " + m.Report.Unmatched[i])
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m ResultsModel) detail(rec project.Record) string {
	var b strings.Builder
	b.WriteString(StyleValue.Bold(true).Render(rec.Candidate))
	b.WriteString(" " + iconArrow + " ")
	b.WriteString(StyleHighlight.Render(rec.Role))
	b.WriteString("\n")
	b.WriteString(costStyle(rec.Cost).Render(rankLabel(rec.Cost)))
	for _, w := range m.Warnings[rec.Candidate] {
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render(iconWarning + " " + w))
	}
	return listDetailStyle.Render(b.String())
}

// rankLabel describes what a cost means to the candidate.
func rankLabel(c int) string {
	switch c {
	case 0:
		return "1st choice"
	case 1:
		return "2nd choice"
	case 2:
		return "3rd choice"
	default:
		return fmt.Sprintf("unranked (cost %d)", c)
	}
}
