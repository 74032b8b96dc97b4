package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBundle(t *testing.T) {
	data := `
packages:
  fontello:
    views:
      root: ./assets/views
      include:
        - "**/*.jade"
        - "**/*.mustache"
      exclude: "**/_*"
  admin:
    views:
      include: "**/*.html"
`

	b, err := ParseBundle([]byte(data))
	require.NoError(t, err)
	require.Len(t, b.Packages, 2)

	views, err := b.ViewsFor("")
	require.NoError(t, err)
	assert.Equal(t, "./assets/views", views.Root)
	assert.Equal(t, Patterns{"**/*.jade", "**/*.mustache"}, views.Include)
	assert.Equal(t, Patterns{"**/_*"}, views.Exclude)

	admin, err := b.ViewsFor("admin")
	require.NoError(t, err)
	assert.Equal(t, "views", admin.Root, "root defaults to views")
	assert.Equal(t, Patterns{"**/*.html"}, admin.Include)
	assert.Empty(t, admin.Exclude)
}

func TestParseBundleEmptyPattern(t *testing.T) {
	b, err := ParseBundle([]byte("packages:\n  fontello:\n    views:\n      include: \"\"\n"))
	require.NoError(t, err)

	views, err := b.ViewsFor(DefaultPackage)
	require.NoError(t, err)
	assert.Empty(t, views.Include)
}

func TestParseBundleInvalidPatterns(t *testing.T) {
	_, err := ParseBundle([]byte("packages:\n  fontello:\n    views:\n      include:\n        a: b\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected pattern or list of patterns")
}

func TestParseBundleInvalidYAML(t *testing.T) {
	_, err := ParseBundle([]byte("packages: [\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse bundle YAML")
}

func TestViewsForMissingPackage(t *testing.T) {
	b, err := ParseBundle([]byte("packages: {}\n"))
	require.NoError(t, err)

	_, err = b.ViewsFor("shop")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `package "shop" not found`)
}

func TestLoadBundle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bundle.yml")
	require.NoError(t, os.WriteFile(path, []byte("packages:\n  fontello:\n    views:\n      root: views\n"), 0644))

	b, err := LoadBundle(path)
	require.NoError(t, err)

	views, err := b.ViewsFor(DefaultPackage)
	require.NoError(t, err)
	assert.Equal(t, "views", views.Root)

	_, err = LoadBundle(filepath.Join(dir, "missing.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read bundle file")
}

func TestMarshalBundleRoundTrip(t *testing.T) {
	b := &Bundle{Packages: map[string]Package{
		"fontello": {Views: Views{Root: "views", Include: Patterns{"**/*.jade"}}},
	}}

	data, err := MarshalBundle(b)
	require.NoError(t, err)

	parsed, err := ParseBundle(data)
	require.NoError(t, err)
	assert.Equal(t, b.Packages["fontello"].Views, parsed.Packages["fontello"].Views)
}
