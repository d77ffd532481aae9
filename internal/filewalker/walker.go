package filewalker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"locparse/internal/parser"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"
)

// Walker finds localization files under a directory.
type Walker struct {
	exclude []string
}

// NewWalker creates a Walker that skips files matching any of the exclude
// globs. Patterns use doublestar syntax and are matched against the
// slash-separated path relative to the walk root.
func NewWalker(exclude ...string) *Walker {
	return &Walker{exclude: exclude}
}

// FileEntry is a discovered file and the format inferred from its name.
type FileEntry struct {
	Path string
	Kind parser.Kind
}

// Walk discovers all supported files under the given root directory.
func (w *Walker) Walk(root string) ([]FileEntry, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	var entries []FileEntry

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}
		if d.IsDir() {
			return nil
		}

		kind, err := parser.SelectByFilePath(path)
		if err != nil {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relative path: %w", err)
		}
		if w.excluded(filepath.ToSlash(rel)) {
			log.Debug().Str("path", rel).Msg("Excluded file")
			return nil
		}

		entries = append(entries, FileEntry{Path: path, Kind: kind})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	log.Info().Int("count", len(entries)).Str("root", root).Msg("Discovered files")
	return entries, nil
}

func (w *Walker) excluded(rel string) bool {
	for _, pattern := range w.exclude {
		ok, err := doublestar.Match(pattern, rel)
		if err != nil {
			log.Warn().Err(err).Str("pattern", pattern).Msg("Invalid exclude pattern")
			continue
		}
		if ok {
			return true
		}
	}
	return false
}
