package config

import (
	"github.com/wesleyorama2/runcfg/internal/config"
	"github.com/wesleyorama2/runcfg/internal/preset"
	"github.com/wesleyorama2/runcfg/internal/transform"
)

// Raw is a configuration document as authored; unset fields are nil.
type Raw = config.Raw

// TransformRule maps a source path pattern to a transformer.
type TransformRule = config.TransformRule

// TransformRules is the ordered transform mapping.
type TransformRules = config.TransformRules

// Configuration is a resolved, validated and immutable configuration.
type Configuration = config.Configuration

// Resolver resolves documents against presets and transformers.
type Resolver = config.Resolver

// PresetLookup maps a preset name to the defaults it provides.
type PresetLookup = config.PresetLookup

// PresetLookupFunc adapts a function to PresetLookup.
type PresetLookupFunc = config.PresetLookupFunc

// TransformerResolver validates transformer names and options.
type TransformerResolver = config.TransformerResolver

// Error types returned by Resolve.
type (
	UnknownPresetError        = config.UnknownPresetError
	InvalidConfigurationError = config.InvalidConfigurationError
	Violation                 = config.Violation
	Invariant                 = config.Invariant
)

// Rules reported in Violation.Invariant.
const (
	InvariantNonEmpty              = config.InvariantNonEmpty
	InvariantUnique                = config.InvariantUnique
	InvariantValidExtension        = config.InvariantValidExtension
	InvariantValidGlob             = config.InvariantValidGlob
	InvariantValidPattern          = config.InvariantValidPattern
	InvariantResolvableTransformer = config.InvariantResolvableTransformer
	InvariantValidOptions          = config.InvariantValidOptions
	InvariantSchema                = config.InvariantSchema
)

var (
	// ErrConfigNotFound is returned when no configuration file exists.
	ErrConfigNotFound = config.ErrConfigNotFound

	// ErrNoPresetLookup is wrapped by UnknownPresetError when a preset is
	// named but no lookup was supplied.
	ErrNoPresetLookup = config.ErrNoPresetLookup

	// ErrPresetNotFound is wrapped by UnknownPresetError when a lookup does
	// not know the preset.
	ErrPresetNotFound = preset.ErrNotFound
)

// Resolve merges raw over its preset, applies defaults and validates the result.
func Resolve(raw Raw, presets PresetLookup) (*Configuration, error) {
	return config.Resolve(raw, presets)
}

// LoadFile loads a JSON or YAML configuration document.
func LoadFile(path string) (Raw, error) {
	return config.LoadFile(path)
}

// Parse parses a configuration document; the extension of path selects the format.
func Parse(data []byte, path string) (Raw, error) {
	return config.Parse(data, path)
}

// DiscoverFile returns the default configuration file in dir.
func DiscoverFile(dir string) (string, error) {
	return config.DiscoverFile(dir)
}

// DocumentSchema returns the JSON Schema documents are checked against.
func DocumentSchema() string {
	return config.DocumentSchema()
}

// BuiltinPresets returns the presets that ship with runcfg.
func BuiltinPresets() PresetLookup {
	return preset.Builtin()
}

// DirPresets looks presets up as <root>/<name>/runcfg-preset.{json,yaml,yml},
// falling back to the builtin presets.
func DirPresets(root string) PresetLookup {
	return preset.Chain{preset.NewDir(root), preset.Builtin()}
}

// BuiltinTransformers returns the transformers that ship with runcfg.
func BuiltinTransformers() TransformerResolver {
	return transform.Builtin()
}

// Bool returns a pointer to b, for setting Raw flags.
func Bool(b bool) *bool { return config.Bool(b) }

// String returns a pointer to s, for setting Raw.Preset.
func String(s string) *string { return config.String(s) }
