package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

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
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
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
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printer writes styled status lines. The zero value is not usable; build
// one with newPrinter.
type printer struct {
	w io.Writer
}

func newPrinter(w io.Writer) printer { return printer{w: w} }

func (p printer) line(s string) { fmt.Fprintln(p.w, s) }

// success prints a success message.
func (p printer) success(format string, args ...any) {
	p.line(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

// failure prints an error message.
func (p printer) failure(format string, args ...any) {
	p.line(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

// warning prints a warning message.
func (p printer) warning(format string, args ...any) {
	p.line(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// info prints an info/status message.
func (p printer) info(format string, args ...any) {
	p.line(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// detail prints an indented dim line.
func (p printer) detail(format string, args ...any) {
	p.line("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints an output file line with its size.
func (p printer) file(path, size string) {
	line := "  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path)
	if size != "" {
		line += " " + StyleDim.Render("("+size+")")
	}
	p.line(line)
}

// keyValue prints a labeled value.
func (p printer) keyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	p.line(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// stats prints chart statistics on a single line.
func (p printer) stats(segments, layers, cached, total int) {
	parts := []string{
		fmt.Sprintf("%d segments", segments),
		fmt.Sprintf("%d layers", layers),
	}
	status, style := iconFresh, styleComputed
	if total > 0 && cached == total {
		status, style = iconCached, styleCached
	} else if cached > 0 {
		status = fmt.Sprintf("%d/%d %s", cached, total, iconCached)
	}
	parts = append(parts, style.Render(status))

	var b strings.Builder
	b.WriteString("  ")
	for i, part := range parts {
		if i > 0 {
			b.WriteString(StyleDim.Render(" · "))
		}
		b.WriteString(StyleDim.Render(part))
	}
	p.line(b.String())
}

// nextStep prints a suggested next command.
func (p printer) nextStep(description, cmd string) {
	p.line(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func (p printer) newline() { fmt.Fprintln(p.w) }
