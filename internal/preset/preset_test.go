package preset

import (
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/runcfg/internal/config"
)

func TestRegistry_LookupReturnsCopies(t *testing.T) {
	r := NewRegistry()
	exts := []string{"js", "ts"}
	r.Register("p", config.Raw{ModuleFileExtensions: exts})

	// changing the registered slice does not change the preset
	exts[0] = "changed"

	raw, err := r.Lookup("p")
	require.NoError(t, err)
	assert.Equal(t, []string{"js", "ts"}, raw.ModuleFileExtensions)

	raw.ModuleFileExtensions[1] = "changed"
	again, err := r.Lookup("p")
	require.NoError(t, err)
	assert.Equal(t, []string{"js", "ts"}, again.ModuleFileExtensions)
}

func TestRegistry_NotFound(t *testing.T) {
	_, err := NewRegistry().Lookup("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "missing")
}

func TestBuiltin(t *testing.T) {
	r := Builtin()
	assert.Equal(t, []string{Default, ESMTypeScript, TSJestDefault, TSJestDefaultESM}, r.Names())

	// every builtin preset resolves to a valid configuration on its own
	for _, name := range r.Names() {
		t.Run(name, func(t *testing.T) {
			cfg, err := config.Resolve(config.Raw{Preset: config.String(name)}, r)
			require.NoError(t, err)
			assert.Equal(t, name, cfg.PresetName())
			assert.NotEmpty(t, cfg.RecognizedFileExtensions())
			assert.NotEmpty(t, cfg.TestFileMatchPatterns())
		})
	}

	raw, err := r.Lookup(TSJestDefaultESM)
	require.NoError(t, err)
	require.Len(t, raw.Transform, 1)
	assert.Equal(t, "ts-jest", raw.Transform[0].Transformer)
	assert.Equal(t, true, raw.Transform[0].Options["useESM"])
}

func TestBuiltin_ESMTypeScriptMatchesExplicitTransform(t *testing.T) {
	raw := config.Raw{
		Preset: config.String(ESMTypeScript),
		Transform: config.TransformRules{
			{Pattern: `\.ts$`, Transformer: "ts-transformer", Options: map[string]interface{}{"useModuleSyntax": true}},
		},
	}

	cfg, err := config.Resolve(raw, Builtin())
	require.NoError(t, err)
	assert.Equal(t, []string{"js", "ts"}, cfg.RecognizedFileExtensions())
	assert.Equal(t, []string{"**/*.test.ts"}, cfg.TestFileMatchPatterns())
	assert.False(t, cfg.ClearMocksBetweenTests())
	assert.Len(t, cfg.TransformRules(), 1)
}

func TestDir_Lookup(t *testing.T) {
	fsys := fstest.MapFS{
		"acme/runcfg-preset.json": {Data: []byte(`{"moduleFileExtensions": ["js"], "verbose": true}`)},
		"acme/esm/runcfg-preset.yaml": {Data: []byte("moduleFileExtensions: [js, ts]\n" +
			"transform:\n  '\\.ts$': [ts-transformer, {useModuleSyntax: true}]\n")},
		"broken/runcfg-preset.json": {Data: []byte(`{"verbose": "loud"}`)},
	}
	d := &Dir{FS: fsys}

	tests := []struct {
		name        string
		preset      string
		wantErr     bool
		notFound    bool
		wantExts    []string
		wantRuleLen int
	}{
		{name: "json preset", preset: "acme", wantExts: []string{"js"}},
		{name: "nested yaml preset", preset: "acme/esm", wantExts: []string{"js", "ts"}, wantRuleLen: 1},
		{name: "missing preset", preset: "nope", wantErr: true, notFound: true},
		{name: "escaping the root", preset: "../acme", wantErr: true, notFound: true},
		{name: "absolute name", preset: "/acme", wantErr: true, notFound: true},
		{name: "empty name", preset: "", wantErr: true, notFound: true},
		{name: "invalid preset document", preset: "broken", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := d.Lookup(tt.preset)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.notFound, errors.Is(err, ErrNotFound), "ErrNotFound mismatch: %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantExts, raw.ModuleFileExtensions)
			assert.Len(t, raw.Transform, tt.wantRuleLen)
		})
	}
}

func TestDir_InvalidPresetError(t *testing.T) {
	d := &Dir{
		FS:   fstest.MapFS{"broken/runcfg-preset.json": {Data: []byte(`{"verbose": "loud"}`)}},
		Root: "presets",
	}

	_, err := d.Lookup("broken")

	var invalidPreset *InvalidPresetError
	require.ErrorAs(t, err, &invalidPreset)
	assert.Equal(t, "broken", invalidPreset.Name)
	assert.Equal(t, filepath.Join("presets", "broken", "runcfg-preset.json"), invalidPreset.Path)

	var invalid *config.InvalidConfigurationError
	require.ErrorAs(t, err, &invalid)
	assert.True(t, invalid.Has(config.InvariantSchema))
}

func TestChain(t *testing.T) {
	local := NewRegistry()
	local.Register(Default, config.Raw{ModuleFileExtensions: []string{"local"}})

	failing := config.PresetLookupFunc(func(name string) (config.Raw, error) {
		if name == "explode" {
			return config.Raw{}, errors.New("disk on fire")
		}
		return config.Raw{}, ErrNotFound
	})

	chain := Chain{local, failing, Builtin()}

	raw, err := chain.Lookup(Default)
	require.NoError(t, err)
	assert.Equal(t, []string{"local"}, raw.ModuleFileExtensions, "earlier lookups win")

	raw, err = chain.Lookup(ESMTypeScript)
	require.NoError(t, err)
	assert.Equal(t, []string{"js", "ts"}, raw.ModuleFileExtensions, "not-found falls through")

	_, err = chain.Lookup("explode")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))

	_, err = chain.Lookup("nowhere")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestChain_UnknownPresetThroughResolver(t *testing.T) {
	_, err := config.Resolve(config.Raw{Preset: config.String("nonexistent")}, Chain{Builtin()})

	var presetErr *config.UnknownPresetError
	require.ErrorAs(t, err, &presetErr)
	assert.ErrorIs(t, err, ErrNotFound)
}
