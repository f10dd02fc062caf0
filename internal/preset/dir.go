package preset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/wesleyorama2/runcfg/internal/config"
)

// FileNames are the preset files Dir looks for inside a preset directory, in order.
var FileNames = []string{"runcfg-preset.json", "runcfg-preset.yaml", "runcfg-preset.yml"}

// Dir looks presets up in a directory tree: the preset "ts/esm" is read
// from ts/esm/runcfg-preset.json (or .yaml/.yml) below the root.
type Dir struct {
	FS fs.FS

	// Root prefixes file paths in errors; empty for in-memory trees
	Root string
}

// NewDir creates a Dir rooted at root on the local filesystem.
func NewDir(root string) *Dir {
	return &Dir{FS: os.DirFS(root), Root: root}
}

// InvalidPresetError reports a preset file that exists but does not parse
// or fails the document schema.
type InvalidPresetError struct {
	Name string
	Path string
	Err  error
}

func (e *InvalidPresetError) Error() string {
	return fmt.Sprintf("invalid preset %s: %v", e.Path, e.Err)
}

func (e *InvalidPresetError) Unwrap() error { return e.Err }

// Lookup implements config.PresetLookup.
func (d *Dir) Lookup(name string) (config.Raw, error) {
	if name == "" || name == "." || !fs.ValidPath(name) {
		return config.Raw{}, fmt.Errorf("%w: invalid preset name %q", ErrNotFound, name)
	}

	for _, file := range FileNames {
		p := path.Join(name, file)
		data, err := fs.ReadFile(d.FS, p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return config.Raw{}, fmt.Errorf("failed to read preset %s: %w", p, err)
		}

		raw, err := config.Parse(data, p)
		if err != nil {
			return config.Raw{}, &InvalidPresetError{Name: name, Path: d.filePath(p), Err: err}
		}
		return raw, nil
	}

	return config.Raw{}, fmt.Errorf("%w: %s", ErrNotFound, name)
}

func (d *Dir) filePath(p string) string {
	if d.Root == "" {
		return p
	}
	return filepath.Join(d.Root, filepath.FromSlash(p))
}
