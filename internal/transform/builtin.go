package transform

const tsTransformerOptions = `{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"useModuleSyntax": { "type": "boolean" }
	}
}`

const tsJestOptions = `{
	"type": "object",
	"properties": {
		"useESM": { "type": "boolean" },
		"isolatedModules": { "type": "boolean" },
		"tsconfig": { "type": ["string", "object", "boolean"] },
		"diagnostics": { "type": ["boolean", "object"] }
	}
}`

// Builtin returns a registry with the transformers runcfg knows about.
func Builtin() *Registry {
	r := NewRegistry()

	for _, t := range []Transformer{
		{
			ID:            "ts-transformer",
			Description:   "compiles typed source, optionally emitting module syntax",
			OptionsSchema: tsTransformerOptions,
		},
		{
			ID:            "ts-jest",
			Description:   "TypeScript preprocessor with source map support",
			OptionsSchema: tsJestOptions,
		},
		{
			ID:          "babel-jest",
			Description: "Babel based JavaScript transformer",
		},
	} {
		if err := r.Register(t); err != nil {
			panic(err)
		}
	}

	return r
}
