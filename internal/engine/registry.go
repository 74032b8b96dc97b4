// Package engine holds the template engines a views build can use and the
// registry that maps file extensions to them.
package engine

import (
	"slices"
	"strings"

	"github.com/3-lines-studio/viewpack/internal/core"
	"github.com/3-lines-studio/viewpack/internal/types"
)

// FileReader is what engines need to load includes.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// Registry maps extensions (without the leading dot) to engines. Register
// everything before the first build; lookups are read-only afterwards.
type Registry struct {
	engines map[string]types.Engine
}

func NewRegistry() *Registry {
	return &Registry{engines: make(map[string]types.Engine)}
}

// Default returns a registry with the built-in mustache and html engines.
func Default(files FileReader) *Registry {
	r := NewRegistry()
	r.Register(MustacheExtension, NewMustache(files))
	r.Register(HTMLExtension, NewHTML())
	return r
}

func (r *Registry) Register(extension string, e types.Engine) {
	r.engines[normalizeExtension(extension)] = e
}

func (r *Registry) Lookup(extension string) (types.Engine, error) {
	e, ok := r.engines[normalizeExtension(extension)]
	if !ok || e == nil {
		return nil, core.NoEngineError(extension, "")
	}
	return e, nil
}

func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.engines))
	for ext := range r.engines {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

func normalizeExtension(extension string) string {
	return strings.ToLower(strings.TrimPrefix(extension, "."))
}
