package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFileNames are the configuration file names DiscoverFile looks for, in order.
var DefaultFileNames = []string{
	"runcfg.config.json",
	"runcfg.config.yaml",
	"runcfg.config.yml",
}

// ErrConfigNotFound is returned by DiscoverFile when no configuration file exists.
var ErrConfigNotFound = errors.New("config file not found")

// LoadFile loads a configuration document from a file.
//
// The file format is determined by extension:
//   - .json -> JSON
//   - .yaml, .yml, anything else -> YAML
func LoadFile(path string) (Raw, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Raw{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return Raw{}, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data, path)
}

// Parse parses a configuration document.
//
// The format is determined by the file extension in path, or defaults to YAML
// if the path is empty or has an unknown extension. The document is checked
// against DocumentSchema before it is decoded; schema failures are returned
// as *InvalidConfigurationError.
func Parse(data []byte, path string) (Raw, error) {
	var raw Raw

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		var doc interface{}
		if err := json.Unmarshal(data, &doc); err != nil {
			return Raw{}, fmt.Errorf("failed to parse JSON config: %w", err)
		}
		if err := checkDocument(doc); err != nil {
			return Raw{}, err
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return Raw{}, fmt.Errorf("failed to decode JSON config: %w", err)
		}
	default:
		doc, err := parseYAMLDocument(data)
		if err != nil {
			return Raw{}, err
		}
		if err := checkDocument(doc); err != nil {
			return Raw{}, err
		}
		if len(bytes.TrimSpace(data)) > 0 {
			if err := yaml.Unmarshal(data, &raw); err != nil {
				return Raw{}, fmt.Errorf("failed to decode YAML config: %w", err)
			}
		}
	}

	return raw, nil
}

// parseYAMLDocument decodes YAML into JSON-shaped values so it can be
// checked against the document schema. An empty document is an empty object.
func parseYAMLDocument(data []byte) (interface{}, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if doc == nil {
		return map[string]interface{}{}, nil
	}

	normalized, err := normalizeJSON(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	return normalized, nil
}

// DiscoverFile returns the first of DefaultFileNames present in dir.
func DiscoverFile(dir string) (string, error) {
	for _, name := range DefaultFileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("error checking %s: %w", path, err)
		}
	}
	return "", fmt.Errorf("%w in %s (looked for %s)", ErrConfigNotFound, dir, strings.Join(DefaultFileNames, ", "))
}
