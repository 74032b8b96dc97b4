package usecase

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/3-lines-studio/viewpack/internal/core"
	"github.com/3-lines-studio/viewpack/internal/types"
)

func entry(client string) core.CompiledEntry {
	return core.CompiledEntry{
		Server: func(io.Writer, types.Locals) error { return nil },
		Client: client,
	}
}

func TestCompileCache(t *testing.T) {
	c := NewCompileCache()
	c.Put("/a", "h1", entry("a"))

	got, ok := c.Get("/a", "h1")
	assert.True(t, ok)
	assert.Equal(t, "a", got.Client)

	_, ok = c.Get("/a", "h2")
	assert.False(t, ok, "content change misses")

	_, ok = c.Get("/b", "h1")
	assert.False(t, ok)
}

func TestCompileCacheInvalidate(t *testing.T) {
	c := NewCompileCache()
	c.Put("/a", "h", entry("a"))
	c.Put("/b", "h", entry("b"))

	c.Invalidate([]string{"/a"})
	assert.Equal(t, 1, c.Len())

	c.Invalidate([]string{"/partials/_header.mustache"})
	assert.Equal(t, 0, c.Len(), "unknown paths may be partials and clear everything")
}

func TestCompileCacheNil(t *testing.T) {
	var c *CompileCache
	c.Put("/a", "h", entry("a"))
	c.Invalidate([]string{"/a"})
	c.Retain(nil)
	_, ok := c.Get("/a", "h")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}
