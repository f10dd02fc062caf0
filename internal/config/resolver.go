package config

import (
	"go.uber.org/zap"
)

// PresetLookup maps a preset name to the defaults it provides.
type PresetLookup interface {
	Lookup(name string) (Raw, error)
}

// PresetLookupFunc adapts a function to PresetLookup.
type PresetLookupFunc func(name string) (Raw, error)

// Lookup calls f(name).
func (f PresetLookupFunc) Lookup(name string) (Raw, error) { return f(name) }

// Resolver turns Raw documents into validated Configurations.
// The zero value resolves without presets and accepts any transformer name.
type Resolver struct {
	// Presets resolves the preset field; nil means presets are unavailable
	Presets PresetLookup

	// Transformers validates transformer names and options; nil accepts any name
	Transformers TransformerResolver

	// Logger receives debug output; nil disables logging
	Logger *zap.Logger
}

// Resolve resolves raw against presets with no transformer checks beyond
// requiring a name.
func Resolve(raw Raw, presets PresetLookup) (*Configuration, error) {
	r := Resolver{Presets: presets}
	return r.Resolve(raw)
}

// Resolve merges raw over its preset, applies defaults and validates the result.
//
// Errors are *UnknownPresetError when the preset cannot be resolved and
// *InvalidConfigurationError when an invariant does not hold. On error no
// Configuration is returned.
func (r *Resolver) Resolve(raw Raw) (*Configuration, error) {
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var base Raw
	if raw.Preset != nil {
		name := *raw.Preset
		if r.Presets == nil {
			return nil, &UnknownPresetError{Name: name, Err: ErrNoPresetLookup}
		}
		preset, err := r.Presets.Lookup(name)
		if err != nil {
			log.Debug("preset lookup failed", zap.String("preset", name), zap.Error(err))
			return nil, &UnknownPresetError{Name: name, Err: err}
		}
		log.Debug("preset resolved", zap.String("preset", name))
		base = preset
	}

	merged := merge(base, raw)
	cfg := build(merged)

	if err := validate(cfg, r.Transformers); err != nil {
		log.Debug("configuration rejected", zap.Error(err))
		return nil, err
	}

	log.Debug("configuration resolved",
		zap.String("preset", cfg.preset),
		zap.Strings("moduleFileExtensions", cfg.extensions),
		zap.Int("transformRules", len(cfg.transform)),
	)
	return cfg, nil
}

// merge overlays explicit fields of top on base, one top-level field at a
// time. Transform rules are replaced wholesale, never merged rule by rule.
// The preset's own preset field is not followed.
func merge(base, top Raw) Raw {
	out := base.Clone()
	out.Preset = nil

	if top.ClearMocks != nil {
		out.ClearMocks = Bool(*top.ClearMocks)
	}
	if top.ModuleFileExtensions != nil {
		out.ModuleFileExtensions = cloneStrings(top.ModuleFileExtensions)
	}
	if top.TestMatch != nil {
		out.TestMatch = cloneStrings(top.TestMatch)
	}
	if top.Preset != nil {
		out.Preset = String(*top.Preset)
	}
	if top.Transform != nil {
		out.Transform = top.Transform.Clone()
	}
	if top.Verbose != nil {
		out.Verbose = Bool(*top.Verbose)
	}
	return out
}

// build applies the built-in defaults to every field still unset.
func build(raw Raw) *Configuration {
	cfg := &Configuration{
		extensions: []string{},
		testMatch:  []string{},
		transform:  TransformRules{},
	}
	if raw.ClearMocks != nil {
		cfg.clearMocks = *raw.ClearMocks
	}
	if raw.ModuleFileExtensions != nil {
		cfg.extensions = raw.ModuleFileExtensions
	}
	if raw.TestMatch != nil {
		cfg.testMatch = raw.TestMatch
	}
	if raw.Preset != nil {
		cfg.preset = *raw.Preset
	}
	if raw.Transform != nil {
		cfg.transform = raw.Transform
	}
	if raw.Verbose != nil {
		cfg.verbose = *raw.Verbose
	}
	return cfg
}
