package config

import (
	"encoding/json"
	"reflect"
	"regexp"
	"slices"
)

// Configuration is a resolved, validated configuration. It is immutable:
// accessors return copies, so a Configuration may be shared freely between
// goroutines.
type Configuration struct {
	clearMocks bool
	extensions []string
	testMatch  []string
	preset     string
	transform  TransformRules
	verbose    bool

	// compiled holds one regexp per transform rule, in rule order
	compiled []*regexp.Regexp
}

// ClearMocksBetweenTests reports whether mock call state is reset between tests.
func (c *Configuration) ClearMocksBetweenTests() bool { return c.clearMocks }

// RecognizedFileExtensions returns the module file extensions in resolution priority order.
func (c *Configuration) RecognizedFileExtensions() []string { return slices.Clone(c.extensions) }

// TestFileMatchPatterns returns the glob patterns used to discover test files.
func (c *Configuration) TestFileMatchPatterns() []string { return slices.Clone(c.testMatch) }

// PresetName returns the preset the configuration was resolved with, or "".
func (c *Configuration) PresetName() string { return c.preset }

// TransformRules returns the transform rules in match order.
func (c *Configuration) TransformRules() []TransformRule { return c.transform.Clone() }

// VerboseOutput reports whether per-test output was requested.
func (c *Configuration) VerboseOutput() bool { return c.verbose }

// RecognizesExtension reports whether ext (without leading dot) is a module file extension.
func (c *Configuration) RecognizesExtension(ext string) bool {
	return slices.Contains(c.extensions, ext)
}

// TransformFor returns the first transform rule whose pattern matches path.
func (c *Configuration) TransformFor(path string) (TransformRule, bool) {
	for i, re := range c.compiled {
		if re.MatchString(path) {
			return c.transform[i].Clone(), true
		}
	}
	return TransformRule{}, false
}

// Raw returns the configuration as a fully specified Raw document.
// Resolving the result yields a Configuration equal to c.
func (c *Configuration) Raw() Raw {
	raw := Raw{
		ClearMocks:           Bool(c.clearMocks),
		ModuleFileExtensions: slices.Clone(c.extensions),
		TestMatch:            slices.Clone(c.testMatch),
		Transform:            c.transform.Clone(),
		Verbose:              Bool(c.verbose),
	}
	if c.preset != "" {
		raw.Preset = String(c.preset)
	}
	return raw
}

// Equal reports whether c and other hold the same settings.
func (c *Configuration) Equal(other *Configuration) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.clearMocks != other.clearMocks || c.verbose != other.verbose || c.preset != other.preset {
		return false
	}
	if !slices.Equal(c.extensions, other.extensions) || !slices.Equal(c.testMatch, other.testMatch) {
		return false
	}
	if len(c.transform) != len(other.transform) {
		return false
	}
	for i := range c.transform {
		a, b := c.transform[i], other.transform[i]
		if a.Pattern != b.Pattern || a.Transformer != b.Transformer || !reflect.DeepEqual(a.Options, b.Options) {
			return false
		}
	}
	return true
}

// document is the wire form of a resolved Configuration; unlike Raw every
// field is always written.
type document struct {
	ClearMocks           bool           `json:"clearMocks" yaml:"clearMocks"`
	ModuleFileExtensions []string       `json:"moduleFileExtensions" yaml:"moduleFileExtensions"`
	TestMatch            []string       `json:"testMatch" yaml:"testMatch"`
	Preset               string         `json:"preset,omitempty" yaml:"preset,omitempty"`
	Transform            TransformRules `json:"transform" yaml:"transform"`
	Verbose              bool           `json:"verbose" yaml:"verbose"`
}

func (c *Configuration) document() document {
	return document{
		ClearMocks:           c.clearMocks,
		ModuleFileExtensions: c.extensions,
		TestMatch:            c.testMatch,
		Preset:               c.preset,
		Transform:            c.transform,
		Verbose:              c.verbose,
	}
}

// MarshalJSON writes every setting, including defaults.
func (c *Configuration) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.document())
}

// MarshalYAML writes every setting, including defaults.
func (c *Configuration) MarshalYAML() (interface{}, error) {
	return c.document(), nil
}
