package discovery

import (
	"context"
	"io/fs"
	"path"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/wesleyorama2/runcfg/internal/config"
)

// SkippedDirs are never descended into.
var SkippedDirs = []string{"node_modules"}

// TestFile is a discovered test suite.
type TestFile struct {
	// Path is slash separated and relative to the walked root
	Path string

	// Pattern is the test match pattern that selected the file
	Pattern string

	// Transform is the rule that applies to the file, if any
	Transform *config.TransformRule
}

// Options tune Discover.
type Options struct {
	// Logger receives debug output; nil disables logging
	Logger *zap.Logger
}

// Discover walks fsys and returns the test files cfg selects, sorted by path.
//
// A file is a test file when its extension is one of the configuration's
// module file extensions and its path matches a test match pattern.
// Directories named in SkippedDirs and hidden directories are skipped.
func Discover(ctx context.Context, fsys fs.FS, cfg *config.Configuration, opts Options) ([]TestFile, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	matcher, err := NewMatcher(cfg.TestFileMatchPatterns())
	if err != nil {
		return nil, err
	}

	var files []TestFile
	err = fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if p != "." && skipDir(d.Name()) {
				log.Debug("skipping directory", zap.String("path", p))
				return fs.SkipDir
			}
			return nil
		}

		ext := strings.TrimPrefix(path.Ext(p), ".")
		if ext == "" || !cfg.RecognizesExtension(ext) {
			return nil
		}

		pattern, ok := matcher.MatchPattern(p)
		if !ok {
			return nil
		}

		file := TestFile{Path: p, Pattern: pattern}
		if rule, ok := cfg.TransformFor(p); ok {
			file.Transform = &rule
		}
		files = append(files, file)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	log.Debug("discovery finished", zap.Int("testFiles", len(files)))
	return files, nil
}

func skipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, skipped := range SkippedDirs {
		if name == skipped {
			return true
		}
	}
	return false
}
