package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/thrackle/pkg/thrackle"
)

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success, legal crossings
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors, illegal crossings
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleError for failures and illegal crossings.
	StyleError = lipgloss.NewStyle().Foreground(colorRed)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand  = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey      = lipgloss.NewStyle().Foreground(colorGray).Width(18)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

func printSuccess(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+StyleValue.Render(value))
}

func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// printStats prints drawing statistics on a single line.
func printStats(g *thrackle.Graph, cached bool) {
	parts := []string{
		fmt.Sprintf("%d vertices", g.VertexCount()),
		fmt.Sprintf("%d edges", g.EdgeCount()),
		fmt.Sprintf("%d of %d crossings", len(g.Crossings()), g.ThrackleNumber()),
	}
	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}

	var b strings.Builder
	b.WriteString("  ")
	for i, part := range parts {
		if i > 0 {
			b.WriteString(StyleDim.Render(" · "))
		}
		b.WriteString(StyleDim.Render(part))
	}
	b.WriteString(StyleDim.Render(" · ") + statusStyle.Render(status))
	fmt.Fprintln(stdout, b.String())
}

// printSummary prints the crossing summary of g as key-value lines.
func printSummary(g *thrackle.Graph) {
	cat := g.CrossingsCategories()
	printKeyValue("vertices", fmt.Sprint(g.VertexCount()))
	printKeyValue("edges", fmt.Sprint(g.EdgeCount()))
	printKeyValue("thrackle number", fmt.Sprint(g.ThrackleNumber()))
	printKeyValue("crossings", fmt.Sprint(len(g.Crossings())))
	printKeyValue("  legal", StyleSuccess.Render(fmt.Sprint(cat.Legal)))
	printKeyValue("  neighbor", illegalCount(cat.Neighbor))
	printKeyValue("  self", illegalCount(cat.Self))
	printKeyValue("  repeated pairs", illegalCount(cat.Multiple))
	printKeyValue("curve complexity", fmt.Sprint(g.CurveComplexity()))
}

func illegalCount(n int) string {
	if n == 0 {
		return StyleDim.Render("0")
	}
	return StyleError.Render(fmt.Sprint(n))
}

// crossingTable renders crossings as a bordered table.
func crossingTable(cs []thrackle.Crossing) string {
	rows := make([][]string, len(cs))
	for i, c := range cs {
		kind := "legal"
		switch {
		case c.SelfCrossing:
			kind = "self"
		case !c.Legal:
			kind = "neighbor"
		}
		if c.MoreThanOnce {
			kind += ", repeated"
		}
		rows[i] = []string{
			fmt.Sprint(i + 1),
			c.Edges[0] + " × " + c.Edges[1],
			fmt.Sprintf("(%.2f, %.2f)", c.At.X, c.At.Y),
			kind,
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Edges", "At", "Kind").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 3 {
				if cs[row].Legal {
					return base.Foreground(colorGreen)
				}
				return base.Foreground(colorRed)
			}
			return base
		}).
		Render()
}
