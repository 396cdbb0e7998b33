// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Tree components.
	Kind       lipgloss.Style
	Position   lipgloss.Style
	Branch     lipgloss.Style
	Value      lipgloss.Style
	Annotation lipgloss.Style

	// Outline components.
	Stars    lipgloss.Style
	Todo     lipgloss.Style
	Done     lipgloss.Style
	Priority lipgloss.Style
	Tags     lipgloss.Style
	Title    lipgloss.Style

	// Misc.
	Error   lipgloss.Style
	Success lipgloss.Style
	Dim     lipgloss.Style
	Bold    lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Kind:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Position:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Branch:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Value:      lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Annotation: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),

		Stars:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Todo:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Done:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Priority: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Tags:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Title:    lipgloss.NewStyle().Bold(true),

		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold:    lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Kind:       plain,
		Position:   plain,
		Branch:     plain,
		Value:      plain,
		Annotation: plain,
		Stars:      plain,
		Todo:       plain,
		Done:       plain,
		Priority:   plain,
		Tags:       plain,
		Title:      plain,
		Error:      plain,
		Success:    plain,
		Dim:        plain,
		Bold:       plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// Check NO_COLOR environment variable (https://no-color.org/)
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		// Check if output is a TTY
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

// TerminalWidth returns the column width of the writer's terminal, or the
// fallback when the writer is not a terminal.
func TerminalWidth(writer io.Writer, fallback int) int {
	if f, ok := writer.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}
