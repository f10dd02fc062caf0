package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/runcfg/internal/config"
)

// the registry must be usable wherever the resolver expects a transformer resolver
var _ config.TransformerResolver = (*Registry)(nil)

func TestBuiltin_IDs(t *testing.T) {
	assert.Equal(t, []string{"babel-jest", "ts-jest", "ts-transformer"}, Builtin().IDs())
}

func TestRegistry_ValidateOptions(t *testing.T) {
	r := Builtin()

	tests := []struct {
		name    string
		id      string
		options map[string]interface{}
		wantErr string
	}{
		{name: "module syntax flag", id: "ts-transformer", options: map[string]interface{}{"useModuleSyntax": true}},
		{name: "no options", id: "ts-transformer"},
		{
			name:    "flag of the wrong type",
			id:      "ts-transformer",
			options: map[string]interface{}{"useModuleSyntax": "yes"},
			wantErr: "/useModuleSyntax",
		},
		{
			name:    "unknown option",
			id:      "ts-transformer",
			options: map[string]interface{}{"target": "es2022"},
			wantErr: "target",
		},
		{name: "ts-jest allows extra options", id: "ts-jest", options: map[string]interface{}{"useESM": true, "extra": 1.0}},
		{name: "ts-jest tsconfig path", id: "ts-jest", options: map[string]interface{}{"tsconfig": "tsconfig.test.json"}},
		{name: "ts-jest with bad useESM", id: "ts-jest", options: map[string]interface{}{"useESM": 1.0}, wantErr: "useESM"},
		{name: "schemaless transformer", id: "babel-jest", options: map[string]interface{}{"anything": []interface{}{}}},
		{name: "unknown transformer", id: "coffee", wantErr: "unknown transformer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.ValidateOptions(tt.id, tt.options)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	assert.Error(t, r.Register(Transformer{}))
	assert.Error(t, r.Register(Transformer{ID: "broken", OptionsSchema: `{"type": 5}`}))
	assert.False(t, r.HasTransformer("broken"))

	require.NoError(t, r.Register(Transformer{ID: "swc", Description: "fast"}))
	got, ok := r.Lookup("swc")
	require.True(t, ok)
	assert.Equal(t, "fast", got.Description)
	assert.True(t, r.HasTransformer("swc"))
}

func TestRegistry_WithResolver(t *testing.T) {
	resolver := config.Resolver{Transformers: Builtin()}

	cfg, err := resolver.Resolve(config.Raw{
		ModuleFileExtensions: []string{"js", "ts"},
		Transform: config.TransformRules{
			{Pattern: `\.ts$`, Transformer: "ts-transformer", Options: map[string]interface{}{"useModuleSyntax": true}},
		},
	})
	require.NoError(t, err)
	assert.Len(t, cfg.TransformRules(), 1)

	_, err = resolver.Resolve(config.Raw{
		ModuleFileExtensions: []string{"ts"},
		Transform: config.TransformRules{
			{Pattern: `\.ts$`, Transformer: "ts-transformer", Options: map[string]interface{}{"useModuleSyntax": "on"}},
		},
	})
	var invalid *config.InvalidConfigurationError
	require.ErrorAs(t, err, &invalid)
	assert.True(t, invalid.Has(config.InvariantValidOptions))
}
