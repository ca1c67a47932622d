package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // huge tiles, titles
	colorGreen  = lipgloss.Color("35")  // companions, success
	colorYellow = lipgloss.Color("220") // skipped relocations
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240") // clearance cells, muted text
)

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	styleValue       = lipgloss.NewStyle().Foreground(colorWhite)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed    = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconCached = "cached"
	iconFresh  = "fresh"
)

// statusKind pairs an icon with the style used to draw it.
type statusKind struct {
	icon  string
	style lipgloss.Style
	tint  bool // also color the message
}

var (
	statusSuccess = statusKind{"✓", lipgloss.NewStyle().Foreground(colorGreen), false}
	statusError   = statusKind{"✗", lipgloss.NewStyle().Foreground(colorRed), false}
	statusWarning = statusKind{"!", lipgloss.NewStyle().Foreground(colorYellow), true}
	statusInfo    = statusKind{"›", lipgloss.NewStyle().Foreground(colorGray), false}
)

// stdout receives all user-facing status output.
var stdout io.Writer = os.Stdout

// =============================================================================
// Status Output
// =============================================================================

func printStatus(k statusKind, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if k.tint {
		msg = k.style.Render(msg)
	}
	fmt.Fprintln(stdout, k.style.Render(k.icon)+" "+msg)
}

func printSuccess(format string, args ...any) { printStatus(statusSuccess, format, args...) }
func printError(format string, args ...any)   { printStatus(statusError, format, args...) }
func printWarning(format string, args ...any) { printStatus(statusWarning, format, args...) }
func printInfo(format string, args ...any)    { printStatus(statusInfo, format, args...) }

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints the path of a written layout.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+styleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+styleValue.Render(value))
}

// printNextStep suggests a command to run next.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(stdout)
}

// =============================================================================
// Layout Stats
// =============================================================================

// statsLine summarizes a layout pass, e.g. "8 tiles · 3 rows · 4 columns · fresh".
func statsLine(tiles, rows, columns int, cached bool) string {
	status := styleComputed.Render(iconFresh)
	if cached {
		status = styleCached.Render(iconCached)
	}
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d tiles", tiles)),
		StyleDim.Render(fmt.Sprintf("%d rows", rows)),
		StyleDim.Render(fmt.Sprintf("%d columns", columns)),
		status,
	}
	return "  " + strings.Join(parts, StyleDim.Render(" · "))
}

func printStats(tiles, rows, columns int, cached bool) {
	fmt.Fprintln(stdout, statsLine(tiles, rows, columns, cached))
}
