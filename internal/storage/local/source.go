package local

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Source is a DocumentSource reading decision files from a local directory tree.
// Keys are slash-separated paths relative to the root.
type Source struct {
	root string
}

// NewSource returns a Source rooted at dir.
func NewSource(dir string) *Source {
	return &Source{root: dir}
}

func (s *Source) List(ctx context.Context) ([]string, error) {
	var keys []string
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), ".txt") {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("localSource.List: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Source) Fetch(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("localSource.Fetch: key %q escapes the import directory", key)
	}
	data, err := os.ReadFile(filepath.Join(s.root, clean))
	if err != nil {
		return nil, fmt.Errorf("localSource.Fetch: %w", err)
	}
	return data, nil
}

func (s *Source) Name() string {
	return "dir://" + s.root
}
