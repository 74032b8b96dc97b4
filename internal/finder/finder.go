// Package finder enumerates view files under a views root.
//
// Files are returned in lexical order of their relative path. Include and
// exclude filters are doublestar globs matched against the slash-separated
// path relative to the root. Entries whose name starts with a dot are never
// visited.
package finder

import (
	"context"
	"fmt"
	iofs "io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/3-lines-studio/viewpack/internal/adapters/fs"
	"github.com/3-lines-studio/viewpack/internal/core"
)

type Filter = core.ViewFilter

type Finder struct {
	fs fs.FileSystem
}

func New(fsys fs.FileSystem) *Finder {
	return &Finder{fs: fsys}
}

// Find walks root and returns one descriptor per matching file.
func (f *Finder) Find(ctx context.Context, root string, filter Filter) ([]core.PathDescriptor, error) {
	if err := validatePatterns(filter.Include, "include"); err != nil {
		return nil, err
	}
	if err := validatePatterns(filter.Exclude, "exclude"); err != nil {
		return nil, err
	}

	var found []core.PathDescriptor
	err := f.fs.WalkDir(root, func(path string, d iofs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return iofs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if matchAny(filter.Exclude, rel) || matchAny(filter.Exclude, rel+"/") {
				return iofs.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() && d.Type()&iofs.ModeSymlink == 0 {
			return nil
		}
		if len(filter.Include) > 0 && !matchAny(filter.Include, rel) {
			return nil
		}
		if matchAny(filter.Exclude, rel) {
			return nil
		}

		found = append(found, core.NewPathDescriptor(rel, path, f.reader(path)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate views in %s: %w", root, err)
	}

	slices.SortStableFunc(found, func(a, b core.PathDescriptor) int {
		return strings.Compare(a.RelativePath, b.RelativePath)
	})
	return found, nil
}

func (f *Finder) reader(path string) core.ReadFunc {
	return func(ctx context.Context) ([]byte, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return f.fs.ReadFile(path)
	}
}

func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
	}
	return false
}

func validatePatterns(patterns []string, label string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid %s pattern %q: %w", label, pattern, doublestar.ErrBadPattern)
		}
	}
	return nil
}
