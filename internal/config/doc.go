// Package config resolves test runner configuration documents.
//
// A document is loaded into a Raw value, in which every field is optional,
// and resolved into an immutable Configuration:
//
//	raw, err := config.LoadFile("runcfg.config.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	r := config.Resolver{Presets: preset.Builtin(), Transformers: transform.Builtin()}
//	cfg, err := r.Resolve(raw)
//
// Resolution merges the document over its preset (explicit fields win, and
// transform rules replace the preset's rules wholesale), fills in the
// built-in defaults, then validates the result. Failures are reported as
// *UnknownPresetError or *InvalidConfigurationError.
package config
