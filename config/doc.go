// Package config resolves test runner configuration documents.
//
// A document names file extensions, test match patterns, an optional preset
// and a transform pipeline mapping source file patterns to transformers:
//
//	{
//	  "preset": "esm-ts",
//	  "clearMocks": true,
//	  "transform": {
//	    "^.+\\.ts$": ["ts-jest", {"useESM": true}]
//	  }
//	}
//
// Basic Usage:
//
//	raw, err := config.LoadFile("runcfg.config.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cfg, err := config.Resolve(raw, config.BuiltinPresets())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.RecognizedFileExtensions())
//
// Resolution:
//
// The preset is the base layer. Every field set in the document replaces the
// preset's value wholesale, including an explicitly empty list. Fields set by
// neither get defaults, and the merged result is validated.
//
// Errors:
//
// Resolve fails with *UnknownPresetError when the preset cannot be found and
// with *InvalidConfigurationError listing every violated rule otherwise:
//
//	var invalid *config.InvalidConfigurationError
//	if errors.As(err, &invalid) {
//	    for _, v := range invalid.Violations {
//	        log.Printf("%s: %s", v.Field, v.Message)
//	    }
//	}
//
// Use a Resolver with BuiltinTransformers to also check transformer names
// and their options.
package config
