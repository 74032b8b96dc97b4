package core

import (
	"slices"

	"github.com/3-lines-studio/viewpack/internal/types"
)

type CompiledEntry struct {
	Server types.RenderFunc
	Client string
}

func (e CompiledEntry) Complete() bool {
	return e.Server != nil && e.Client != ""
}

// ViewsTree maps namespace keys to compiled views. It is not safe for
// concurrent use; the compiler fills it from a single goroutine.
type ViewsTree struct {
	entries map[string]CompiledEntry
	sources map[string]string
	order   []string
}

func NewViewsTree() *ViewsTree {
	return &ViewsTree{
		entries: make(map[string]CompiledEntry),
		sources: make(map[string]string),
	}
}

// Set stores entry under key. Later writes win; the previous source path is
// returned when a key was already taken.
func (t *ViewsTree) Set(key, source string, entry CompiledEntry) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	if !entry.Complete() {
		return "", false, ErrIncomplete
	}

	prev, replaced := t.sources[key]
	if !replaced {
		t.order = append(t.order, key)
	}
	t.entries[key] = entry
	t.sources[key] = source
	return prev, replaced, nil
}

func (t *ViewsTree) Get(key string) (CompiledEntry, bool) {
	entry, ok := t.entries[key]
	return entry, ok
}

func (t *ViewsTree) Source(key string) string {
	return t.sources[key]
}

func (t *ViewsTree) Len() int {
	return len(t.entries)
}

// Keys returns keys in first-insertion order.
func (t *ViewsTree) Keys() []string {
	return slices.Clone(t.order)
}

func (t *ViewsTree) SortedKeys() []string {
	keys := t.Keys()
	slices.Sort(keys)
	return keys
}

func (t *ViewsTree) ServerTree() map[string]types.RenderFunc {
	result := make(map[string]types.RenderFunc, len(t.entries))
	for key, entry := range t.entries {
		result[key] = entry.Server
	}
	return result
}

func (t *ViewsTree) ClientTree() map[string]string {
	result := make(map[string]string, len(t.entries))
	for key, entry := range t.entries {
		result[key] = entry.Client
	}
	return result
}
