package preset

import "github.com/wesleyorama2/runcfg/internal/config"

// Names of the presets registered by Builtin.
const (
	Default          = "default"
	ESMTypeScript    = "esm-ts"
	TSJestDefault    = "ts-jest/presets/default"
	TSJestDefaultESM = "ts-jest/presets/default-esm"
)

var defaultExtensions = []string{"js", "mjs", "cjs", "jsx", "ts", "tsx", "json", "node"}

var defaultTestMatch = []string{
	"**/__tests__/**/*.{js,jsx,ts,tsx}",
	"**/*.{spec,test}.{js,jsx,ts,tsx}",
}

// Builtin returns a registry holding the presets that ship with runcfg.
func Builtin() *Registry {
	r := NewRegistry()

	r.Register(Default, config.Raw{
		ModuleFileExtensions: defaultExtensions,
		TestMatch:            defaultTestMatch,
	})

	r.Register(ESMTypeScript, config.Raw{
		ModuleFileExtensions: []string{"js", "ts"},
		TestMatch:            []string{"**/*.test.ts"},
	})

	r.Register(TSJestDefault, config.Raw{
		ModuleFileExtensions: defaultExtensions,
		TestMatch:            defaultTestMatch,
		Transform: config.TransformRules{
			{Pattern: `^.+\.tsx?$`, Transformer: "ts-jest"},
		},
	})

	r.Register(TSJestDefaultESM, config.Raw{
		ModuleFileExtensions: defaultExtensions,
		TestMatch:            defaultTestMatch,
		Transform: config.TransformRules{
			{Pattern: `^.+\.tsx?$`, Transformer: "ts-jest", Options: map[string]interface{}{"useESM": true}},
		},
	})

	return r
}
