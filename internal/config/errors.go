package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoPresetLookup is wrapped by UnknownPresetError when a preset is named
// but the resolver has no way to look presets up.
var ErrNoPresetLookup = errors.New("no preset lookup configured")

// UnknownPresetError reports a preset name that could not be resolved.
type UnknownPresetError struct {
	Name string
	Err  error
}

func (e *UnknownPresetError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unknown preset %q: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("unknown preset %q", e.Name)
}

func (e *UnknownPresetError) Unwrap() error { return e.Err }

// Invariant names a configuration rule that a Violation broke.
type Invariant string

const (
	// InvariantNonEmpty: moduleFileExtensions has at least one entry
	InvariantNonEmpty Invariant = "non-empty"
	// InvariantUnique: moduleFileExtensions has no duplicates
	InvariantUnique Invariant = "unique"
	// InvariantValidExtension: extensions are non-empty and carry no leading dot
	InvariantValidExtension Invariant = "valid-extension"
	// InvariantValidGlob: testMatch entries are valid glob patterns
	InvariantValidGlob Invariant = "valid-glob"
	// InvariantValidPattern: transform patterns are valid regular expressions
	InvariantValidPattern Invariant = "valid-pattern"
	// InvariantResolvableTransformer: transformers are known
	InvariantResolvableTransformer Invariant = "resolvable-transformer"
	// InvariantValidOptions: transformer options satisfy the transformer's schema
	InvariantValidOptions Invariant = "valid-options"
	// InvariantSchema: the document matches the configuration schema
	InvariantSchema Invariant = "schema"
)

// Violation is one broken invariant at a field path such as
// "moduleFileExtensions[1]" or `transform["^.+\\.ts$"]`.
type Violation struct {
	Field     string
	Invariant Invariant
	Message   string
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s: %s (%s)", v.Field, v.Message, v.Invariant)
}

// InvalidConfigurationError carries every violation found while validating
// a configuration. It always holds at least one Violation.
type InvalidConfigurationError struct {
	Violations []Violation
}

func (e *InvalidConfigurationError) Error() string {
	if len(e.Violations) == 1 {
		return "invalid configuration: " + e.Violations[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("invalid configuration: %d violations:\n", len(e.Violations)))
	for i, v := range e.Violations {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, v.Error()))
	}
	return sb.String()
}

// Has reports whether any violation broke inv.
func (e *InvalidConfigurationError) Has(inv Invariant) bool {
	for _, v := range e.Violations {
		if v.Invariant == inv {
			return true
		}
	}
	return false
}

// add records a violation.
func (e *InvalidConfigurationError) add(field string, inv Invariant, format string, args ...interface{}) {
	e.Violations = append(e.Violations, Violation{
		Field:     field,
		Invariant: inv,
		Message:   fmt.Sprintf(format, args...),
	})
}

// errOrNil returns e if it holds violations.
func (e *InvalidConfigurationError) errOrNil() error {
	if len(e.Violations) == 0 {
		return nil
	}
	return e
}
