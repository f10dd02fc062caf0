package output

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorScheme defines the colors used for different elements in the output
type ColorScheme struct {
	Heading     *color.Color
	Key         *color.Color
	Value       *color.Color
	Pattern     *color.Color
	Transformer *color.Color
	Path        *color.Color
	Success     *color.Color
	Error       *color.Color
	Muted       *color.Color
}

// DefaultColorScheme returns the default color scheme
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Heading:     color.New(color.FgMagenta, color.Bold),
		Key:         color.New(color.FgYellow),
		Value:       color.New(color.FgWhite),
		Pattern:     color.New(color.FgCyan),
		Transformer: color.New(color.FgBlue, color.Bold),
		Path:        color.New(color.FgWhite, color.Bold),
		Success:     color.New(color.FgGreen),
		Error:       color.New(color.FgRed),
		Muted:       color.New(color.Faint),
	}
}

// NoColorScheme returns a color scheme with all colors disabled
func NoColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()

	for _, c := range scheme.all() {
		c.DisableColor()
	}

	return scheme
}

// ForceColorScheme returns the default scheme with colors enabled even when
// the output is not a terminal.
func ForceColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()

	for _, c := range scheme.all() {
		c.EnableColor()
	}

	return scheme
}

func (s *ColorScheme) all() []*color.Color {
	return []*color.Color{s.Heading, s.Key, s.Value, s.Pattern, s.Transformer, s.Path, s.Success, s.Error, s.Muted}
}

// SuccessIcon returns a checkmark symbol with appropriate color
func SuccessIcon(noColor bool) string {
	if noColor {
		return "✓"
	}
	return color.New(color.FgGreen).Sprint("✓")
}

// ErrorIcon returns an X symbol with appropriate color
func ErrorIcon(noColor bool) string {
	if noColor {
		return "✗"
	}
	return color.New(color.FgRed).Sprint("✗")
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
