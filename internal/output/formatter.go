package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wesleyorama2/runcfg/internal/config"
	"github.com/wesleyorama2/runcfg/internal/discovery"
)

// Formatter is responsible for formatting resolved configurations in text format
type Formatter struct {
	Verbose bool
	NoColor bool

	scheme *ColorScheme
}

// NewFormatter creates a new formatter with the given options
func NewFormatter(verbose, noColor bool) *Formatter {
	scheme := ForceColorScheme()
	if noColor {
		scheme = NoColorScheme()
	}
	return &Formatter{
		Verbose: verbose,
		NoColor: noColor,
		scheme:  scheme,
	}
}

// FormatConfiguration formats a resolved configuration for display
func (f *Formatter) FormatConfiguration(cfg *config.Configuration) (string, error) {
	var buf strings.Builder
	s := f.scheme

	buf.WriteString(fmt.Sprintf("▶ %s\n", s.Heading.Sprint("CONFIGURATION")))

	preset := cfg.PresetName()
	if preset == "" {
		preset = s.Muted.Sprint("(none)")
	} else {
		preset = s.Value.Sprint(preset)
	}
	f.writeField(&buf, "preset", preset)
	f.writeField(&buf, "clearMocks", s.Value.Sprint(cfg.ClearMocksBetweenTests()))
	f.writeField(&buf, "verbose", s.Value.Sprint(cfg.VerboseOutput()))
	f.writeField(&buf, "moduleFileExtensions", s.Value.Sprint(strings.Join(cfg.RecognizedFileExtensions(), ", ")))

	patterns := cfg.TestFileMatchPatterns()
	if len(patterns) == 0 {
		f.writeField(&buf, "testMatch", s.Muted.Sprint("(none)"))
	} else {
		f.writeField(&buf, "testMatch", "")
		for _, p := range patterns {
			buf.WriteString(fmt.Sprintf("    - %s\n", s.Pattern.Sprint(p)))
		}
	}

	rules := cfg.TransformRules()
	if len(rules) == 0 {
		f.writeField(&buf, "transform", s.Muted.Sprint("(none)"))
		return buf.String(), nil
	}

	f.writeField(&buf, "transform", "")
	for i, rule := range rules {
		line := fmt.Sprintf("    %d. %s → %s", i+1, s.Pattern.Sprint(rule.Pattern), s.Transformer.Sprint(rule.Transformer))
		if f.Verbose && rule.Options != nil {
			options, err := json.Marshal(rule.Options)
			if err != nil {
				return "", fmt.Errorf("error formatting options for %s: %w", rule.Pattern, err)
			}
			line += " " + s.Muted.Sprint(string(options))
		}
		buf.WriteString(line + "\n")
	}

	return buf.String(), nil
}

// FormatTestFiles formats discovered test files for display
func (f *Formatter) FormatTestFiles(files []discovery.TestFile) (string, error) {
	var buf strings.Builder
	s := f.scheme

	buf.WriteString(fmt.Sprintf("▶ %s (%d)\n", s.Heading.Sprint("TEST FILES"), len(files)))
	for _, file := range files {
		line := "  " + s.Path.Sprint(file.Path)
		if file.Transform != nil {
			line += " → " + s.Transformer.Sprint(file.Transform.Transformer)
		}
		if f.Verbose {
			line += " " + s.Muted.Sprintf("(matched %s)", file.Pattern)
		}
		buf.WriteString(line + "\n")
	}

	return buf.String(), nil
}

// FormatPresets formats the builtin preset names. A non-empty dir is listed
// as the directory searched before them.
func (f *Formatter) FormatPresets(names []string, dir string) string {
	var buf strings.Builder
	s := f.scheme

	buf.WriteString(fmt.Sprintf("▶ %s\n", s.Heading.Sprint("PRESETS")))
	if dir != "" {
		buf.WriteString(fmt.Sprintf("  %s %s\n", s.Path.Sprint(dir+"/"), s.Muted.Sprint("(searched first)")))
	}
	for _, name := range names {
		buf.WriteString(fmt.Sprintf("  %s %s\n", s.Value.Sprint(name), s.Muted.Sprint("(builtin)")))
	}
	return buf.String()
}

// FormatViolations formats every violation of an invalid configuration
func (f *Formatter) FormatViolations(err *config.InvalidConfigurationError) string {
	var buf strings.Builder
	s := f.scheme

	buf.WriteString(fmt.Sprintf("%s %s\n", ErrorIcon(f.NoColor), s.Error.Sprint("Configuration validation errors:")))
	for _, v := range err.Violations {
		buf.WriteString(fmt.Sprintf("  - %s: %s %s\n", s.Key.Sprint(v.Field), v.Message, s.Muted.Sprintf("[%s]", v.Invariant)))
	}
	return buf.String()
}

// FormatValid formats the confirmation printed for a valid configuration
func (f *Formatter) FormatValid(source string) string {
	return fmt.Sprintf("%s %s\n", SuccessIcon(f.NoColor), f.scheme.Success.Sprintf("%s is valid", source))
}

func (f *Formatter) writeField(buf *strings.Builder, name, value string) {
	key := f.scheme.Key.Sprintf("%s:", name)
	if value == "" {
		buf.WriteString(fmt.Sprintf("  %s\n", key))
		return
	}
	// pad on the uncolored key so alignment survives escape codes
	padding := strings.Repeat(" ", max(1, 21-len(name)))
	buf.WriteString(fmt.Sprintf("  %s%s%s\n", key, padding, value))
}
