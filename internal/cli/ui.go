package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/JHertz5/role-assignment/pkg/project"
	"github.com/JHertz5/role-assignment/pkg/validate"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary
	colorGreen  = lipgloss.Color("35")  // Green - first choice, success
	colorYellow = lipgloss.Color("220") // Amber - second choice, warnings
	colorOrange = lipgloss.Color("208") // Orange - third choice
	colorRed    = lipgloss.Color("167") // Soft red - unranked, errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// rankStyles colour a cost cell by the rank it represents.
var rankStyles = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(colorGreen),
	lipgloss.NewStyle().Foreground(colorYellow),
	lipgloss.NewStyle().Foreground(colorOrange),
}

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Run Display
// =============================================================================

// printStats prints run statistics on a single line.
func printStats(w io.Writer, candidates, slots int, cached bool) {
	parts := []string{
		fmt.Sprintf("%d candidates", candidates),
		fmt.Sprintf("%d slots", slots),
	}

	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	line += StyleDim.Render(" · ") + statusStyle.Render(status)
	fmt.Fprintln(w, line)
}

// printWarnings lists validator warnings.
func printWarnings(w io.Writer, ws []validate.Warning) {
	for _, warn := range ws {
		printWarning(w, "%s", warn.String())
	}
}

// histogramLines renders "N got 1st choice" style lines, skipping zero
// counts.
func histogramLines(h project.Histogram) []string {
	var lines []string
	add := func(n int, what string) {
		if n > 0 {
			lines = append(lines, fmt.Sprintf("%d got %s", n, what))
		}
	}
	add(h.First, "1st choice")
	add(h.Second, "2nd choice")
	add(h.Third, "3rd choice")
	add(h.Default, "an unranked role")
	add(h.Other, "another cost")
	return lines
}

func printSummary(w io.Writer, rep *project.Report) {
	for _, line := range histogramLines(rep.Histogram) {
		printDetail(w, "%s", line)
	}
	printKeyValue(w, "Total cost", strconv.Itoa(rep.TotalCost))
	if len(rep.Unmatched) > 0 {
		printKeyValue(w, "Unfilled", strings.Join(rep.Unmatched, ", "))
	}
	if len(rep.UnmatchedCandidates) > 0 {
		printKeyValue(w, "Unplaced", strings.Join(rep.UnmatchedCandidates, ", "))
	}
}

// costStyle picks the colour for a cost value.
func costStyle(c int) lipgloss.Style {
	if c >= 0 && c < len(rankStyles) {
		return rankStyles[c]
	}
	return lipgloss.NewStyle().Foreground(colorRed)
}

// reportTable renders the records of rep as a bordered table.
func reportTable(rep *project.Report) string {
	rows := make([][]string, len(rep.Records))
	for i, rec := range rep.Records {
		rows[i] = []string{rec.Candidate, strconv.Itoa(rec.Cost), rec.Role}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Grad", "Cost", "Role").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == -1 {
				return styleHeader.Padding(0, 1)
			}
			if col == 1 && row >= 0 && row < len(rep.Records) {
				return costStyle(rep.Records[row].Cost).Padding(0, 1)
			}
			return base
		})
	return t.Render()
}
