package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/runcfg/config"
)

func TestResolve_BuiltinPreset(t *testing.T) {
	raw, err := config.Parse([]byte(`
preset: esm-ts
transform:
  '\.ts$': [ts-transformer, {useModuleSyntax: true}]
`), "runcfg.config.yaml")
	require.NoError(t, err)

	cfg, err := config.Resolve(raw, config.BuiltinPresets())
	require.NoError(t, err)

	assert.Equal(t, []string{"js", "ts"}, cfg.RecognizedFileExtensions())
	assert.Equal(t, []string{"**/*.test.ts"}, cfg.TestFileMatchPatterns())
	require.Len(t, cfg.TransformRules(), 1)
	assert.Equal(t, "ts-transformer", cfg.TransformRules()[0].Transformer)
	assert.Equal(t, true, cfg.TransformRules()[0].Options["useModuleSyntax"])
}

func TestResolve_Errors(t *testing.T) {
	_, err := config.Resolve(config.Raw{Preset: config.String("missing")}, config.BuiltinPresets())
	var unknown *config.UnknownPresetError
	require.True(t, errors.As(err, &unknown))
	assert.True(t, errors.Is(err, config.ErrPresetNotFound))

	_, err = config.Resolve(config.Raw{Preset: config.String("esm-ts")}, nil)
	assert.True(t, errors.Is(err, config.ErrNoPresetLookup))

	_, err = config.Resolve(config.Raw{ModuleFileExtensions: []string{}}, nil)
	var invalid *config.InvalidConfigurationError
	require.True(t, errors.As(err, &invalid))
	assert.True(t, invalid.Has(config.InvariantNonEmpty))
}

func TestResolver_BuiltinTransformers(t *testing.T) {
	r := config.Resolver{
		Presets:      config.BuiltinPresets(),
		Transformers: config.BuiltinTransformers(),
	}

	_, err := r.Resolve(config.Raw{
		Transform: config.TransformRules{
			{Pattern: `\.ts$`, Transformer: "ts-transformer", Options: map[string]interface{}{"useModuleSyntax": "yes"}},
			{Pattern: `\.coffee$`, Transformer: "coffee"},
		},
	})
	var invalid *config.InvalidConfigurationError
	require.True(t, errors.As(err, &invalid))
	assert.True(t, invalid.Has(config.InvariantValidOptions))
	assert.True(t, invalid.Has(config.InvariantResolvableTransformer))

	cfg, err := r.Resolve(config.Raw{Preset: config.String("ts-jest/presets/default-esm")})
	require.NoError(t, err)
	rule, ok := cfg.TransformFor("src/app.tsx")
	require.True(t, ok)
	assert.Equal(t, "ts-jest", rule.Transformer)
}

func TestDirPresets(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "team"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "team", "runcfg-preset.json"),
		[]byte(`{"moduleFileExtensions": ["mjs"], "clearMocks": true}`), 0o644))

	presets := config.DirPresets(root)

	cfg, err := config.Resolve(config.Raw{Preset: config.String("team")}, presets)
	require.NoError(t, err)
	assert.Equal(t, []string{"mjs"}, cfg.RecognizedFileExtensions())
	assert.True(t, cfg.ClearMocksBetweenTests())

	// builtin presets remain reachable
	_, err = config.Resolve(config.Raw{Preset: config.String("esm-ts")}, presets)
	assert.NoError(t, err)
}

func TestResolve_Idempotent(t *testing.T) {
	cfg, err := config.Resolve(config.Raw{Preset: config.String("ts-jest/presets/default")}, config.BuiltinPresets())
	require.NoError(t, err)

	again, err := config.Resolve(cfg.Raw(), config.BuiltinPresets())
	require.NoError(t, err)
	assert.True(t, cfg.Equal(again))
}

func TestResolve_TSJestESMProject(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "runcfg.config.json"), []byte(`{
  "clearMocks": true,
  "moduleFileExtensions": ["js", "ts"],
  "testMatch": ["**/*.test.ts"],
  "preset": "ts-jest/presets/default-esm",
  "transform": {
    "^.+\\.ts$": ["ts-jest", {"useESM": true}]
  },
  "verbose": true
}`), 0o644))

	path, err := config.DiscoverFile(dir)
	require.NoError(t, err)
	raw, err := config.LoadFile(path)
	require.NoError(t, err)

	r := config.Resolver{Presets: config.BuiltinPresets(), Transformers: config.BuiltinTransformers()}
	cfg, err := r.Resolve(raw)
	require.NoError(t, err)

	assert.True(t, cfg.ClearMocksBetweenTests())
	assert.True(t, cfg.VerboseOutput())
	assert.Equal(t, "ts-jest/presets/default-esm", cfg.PresetName())
	assert.Equal(t, []string{"js", "ts"}, cfg.RecognizedFileExtensions())
	assert.Equal(t, []string{"**/*.test.ts"}, cfg.TestFileMatchPatterns())

	// the explicit rule replaces the preset's tsx rule
	rules := cfg.TransformRules()
	require.Len(t, rules, 1)
	assert.Equal(t, `^.+\.ts$`, rules[0].Pattern)
	assert.Equal(t, map[string]interface{}{"useESM": true}, rules[0].Options)

	_, ok := cfg.TransformFor("src/view.tsx")
	assert.False(t, ok)
}
