package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/runcfg/internal/config"
	"github.com/wesleyorama2/runcfg/internal/discovery"
)

// OutputFormat represents the available output formats
type OutputFormat string

const (
	// FormatText is the default human-readable text format
	FormatText OutputFormat = "text"
	// FormatJSON outputs in JSON format
	FormatJSON OutputFormat = "json"
	// FormatYAML outputs in YAML format
	FormatYAML OutputFormat = "yaml"
)

// ParseFormat converts a flag value into an OutputFormat.
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(s)) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected text, json or yaml)", s)
	}
}

// FormatProvider is an interface for different output formatters
type FormatProvider interface {
	FormatConfiguration(cfg *config.Configuration) (string, error)
	FormatTestFiles(files []discovery.TestFile) (string, error)
}

// GetFormatter returns the formatter for the given format
func GetFormatter(format OutputFormat, verbose, noColor bool) FormatProvider {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return NewFormatter(verbose, noColor)
	}
}

// testFileData is the structured form of a discovered test file
type testFileData struct {
	Path        string                 `json:"path" yaml:"path"`
	Pattern     string                 `json:"pattern" yaml:"pattern"`
	Transformer string                 `json:"transformer,omitempty" yaml:"transformer,omitempty"`
	Options     map[string]interface{} `json:"options,omitempty" yaml:"options,omitempty"`
}

func toTestFileData(files []discovery.TestFile) []testFileData {
	data := make([]testFileData, 0, len(files))
	for _, f := range files {
		d := testFileData{Path: f.Path, Pattern: f.Pattern}
		if f.Transform != nil {
			d.Transformer = f.Transform.Transformer
			d.Options = f.Transform.Options
		}
		data = append(data, d)
	}
	return data
}

// JSONFormatter formats output as indented JSON
type JSONFormatter struct{}

// FormatConfiguration formats a resolved configuration as JSON
func (f *JSONFormatter) FormatConfiguration(cfg *config.Configuration) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error formatting configuration as JSON: %w", err)
	}
	return string(data) + "\n", nil
}

// FormatTestFiles formats discovered test files as JSON
func (f *JSONFormatter) FormatTestFiles(files []discovery.TestFile) (string, error) {
	data, err := json.MarshalIndent(toTestFileData(files), "", "  ")
	if err != nil {
		return "", fmt.Errorf("error formatting test files as JSON: %w", err)
	}
	return string(data) + "\n", nil
}

// YAMLFormatter formats output as YAML
type YAMLFormatter struct{}

// FormatConfiguration formats a resolved configuration as YAML
func (f *YAMLFormatter) FormatConfiguration(cfg *config.Configuration) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("error formatting configuration as YAML: %w", err)
	}
	return string(data), nil
}

// FormatTestFiles formats discovered test files as YAML
func (f *YAMLFormatter) FormatTestFiles(files []discovery.TestFile) (string, error) {
	data, err := yaml.Marshal(toTestFileData(files))
	if err != nil {
		return "", fmt.Errorf("error formatting test files as YAML: %w", err)
	}
	return string(data), nil
}
