// Package runtime holds the server side of compiled views while the
// application runs.
package runtime

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"sync"

	"github.com/3-lines-studio/viewpack/internal/core"
	"github.com/3-lines-studio/viewpack/internal/types"
)

// State is the registry request handlers render from. Publish swaps the
// whole tree at once; readers never observe a partial build.
type State struct {
	mu      sync.RWMutex
	views   map[string]types.RenderFunc
	version uint64
}

func NewState() *State {
	return &State{views: map[string]types.RenderFunc{}}
}

// Publish installs views as the current tree. The map is copied.
func (s *State) Publish(views map[string]types.RenderFunc) {
	next := maps.Clone(views)
	if next == nil {
		next = map[string]types.RenderFunc{}
	}

	s.mu.Lock()
	s.views = next
	s.version++
	s.mu.Unlock()
}

func (s *State) Lookup(key string) (types.RenderFunc, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn, ok := s.views[key]
	return fn, ok
}

func (s *State) Render(w io.Writer, key string, locals types.Locals) error {
	fn, ok := s.Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %q", core.ErrViewNotFound, key)
	}
	return fn(w, locals)
}

func (s *State) Keys() []string {
	s.mu.RLock()
	keys := slices.Collect(maps.Keys(s.views))
	s.mu.RUnlock()
	slices.Sort(keys)
	return keys
}

// Version counts publishes; zero means nothing was published yet.
func (s *State) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
