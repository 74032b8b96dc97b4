package core

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"
)

var appRootSentinel = regexp.MustCompile(`^@/*`)

// NormalizeAppRoot returns root with exactly one trailing slash.
func NormalizeAppRoot(root string) string {
	root = filepath.ToSlash(root)
	return strings.TrimRight(root, "/") + "/"
}

// FilterPath returns the include rewriter handed to engines. Paths starting
// with "@" are resolved against appRoot; anything else is returned as is.
func FilterPath(appRoot string) func(string) string {
	root := NormalizeAppRoot(appRoot)
	return func(path string) string {
		return appRootSentinel.ReplaceAllLiteralString(path, root)
	}
}

// ResolveViewsRoot resolves a configured views root against the app root.
func ResolveViewsRoot(appRoot, viewsRoot string) string {
	if viewsRoot == "" {
		return filepath.Clean(appRoot)
	}
	if filepath.IsAbs(viewsRoot) {
		return filepath.Clean(viewsRoot)
	}
	return filepath.Join(appRoot, viewsRoot)
}

type ReadFunc func(ctx context.Context) ([]byte, error)

// PathDescriptor describes one discovered view file.
type PathDescriptor struct {
	RelativePath string
	Extension    string
	AbsolutePath string
	read         ReadFunc
}

func NewPathDescriptor(relativePath, absolutePath string, read ReadFunc) PathDescriptor {
	rel := filepath.ToSlash(relativePath)
	return PathDescriptor{
		RelativePath: rel,
		Extension:    ExtensionOf(rel),
		AbsolutePath: absolutePath,
		read:         read,
	}
}

func (p PathDescriptor) Read(ctx context.Context) ([]byte, error) {
	if p.read == nil {
		return nil, &MissingReaderError{Path: p.AbsolutePath}
	}
	return p.read(ctx)
}

// ExtensionOf returns the lower-cased extension of path without the dot.
func ExtensionOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// ViewFilter selects files under a views root with doublestar globs.
type ViewFilter struct {
	Include []string
	Exclude []string
}
