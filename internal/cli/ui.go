package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/roadnet/pkg/criteria"
	"github.com/matzehuels/roadnet/pkg/roadsys"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - violations
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber    = lipgloss.NewStyle().Foreground(colorCyan)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
	StyleViolation = lipgloss.NewStyle().Foreground(colorRed)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "    "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(24)
	fmt.Fprintln(w, "  "+keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Network Report
// =============================================================================

// printStats prints network statistics on a single line.
func printStats(w io.Writer, n *network) {
	criteriaCount := fmt.Sprintf("%d criteria", len(n.criteria))
	if len(n.criteria) == 1 {
		criteriaCount = "1 criterion"
	}
	parts := []string{
		plural(len(n.rs.Segments()), "segment"),
		plural(len(n.rs.Connections()), "connection"),
		criteriaCount,
	}
	fmt.Fprintln(w, "  "+StyleDim.Render(strings.Join(parts, " · ")))
}

// printReport prints the violations of n grouped by criterion, in the
// order the criteria were configured.
func printReport(w io.Writer, n *network) {
	vm := n.manager.ViolationManager()
	if vm.Len() == 0 {
		printSuccess(w, "%s: no violations", n.path)
		printStats(w, n)
		return
	}

	printError(w, "%s: %s", n.path, StyleViolation.Render(plural(vm.Len(), "violation")))
	printStats(w, n)
	for _, crit := range n.manager.Criteria() {
		vs := vm.ViolationsOf(crit)
		if len(vs) == 0 {
			continue
		}
		printKeyValue(w, crit.Name(), StyleNumber.Render(fmt.Sprint(len(vs)))+" "+StyleDim.Render(crit.Type().String()))
		for _, v := range vs {
			printDetail(w, "%s", segmentNames(v.Segments()))
		}
	}
}

func segmentNames(segments []*roadsys.Segment) string {
	names := make([]string, len(segments))
	for i, s := range segments {
		names[i] = s.Name()
	}
	return strings.Join(names, ", ")
}

// criterionNames lists the distinct criteria behind vs.
func criterionNames(vs []*criteria.Violation) string {
	var names []string
	seen := make(map[criteria.Criterion]bool)
	for _, v := range vs {
		if c := v.Criterion(); !seen[c] {
			seen[c] = true
			names = append(names, c.Name())
		}
	}
	return strings.Join(names, ", ")
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
