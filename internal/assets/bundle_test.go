package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3-lines-studio/viewpack/internal/adapters/fs"
	"github.com/3-lines-studio/viewpack/internal/core"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

func sampleTree() map[string]string {
	return map[string]string{
		"widget":  "function () {\n  return \"w\";\n}",
		"foo.bar": "function (locals) {\n  return Mustache.render(\"{{x}}\", locals, {});\n}",
		"admin":   "function () {\n  return \"a\";\n}",
	}
}

func TestRenderClientTreeSnapshot(t *testing.T) {
	snaps.WithConfig(snaps.Ext(".js")).MatchStandaloneSnapshot(t, string(RenderClientTree(sampleTree(), "this.N.views")))
}

func TestRenderClientTree(t *testing.T) {
	got := string(RenderClientTree(sampleTree(), "this.N.views"))

	want := "/* generated by viewpack, do not edit */\n" +
		"this.N = this.N || {};\n" +
		"this.N.views = this.N.views || {};\n" +
		"this.N.views[\"admin\"] = function () {\n  return \"a\";\n};\n" +
		"this.N.views[\"foo.bar\"] = function (locals) {\n  return Mustache.render(\"{{x}}\", locals, {});\n};\n" +
		"this.N.views[\"widget\"] = function () {\n  return \"w\";\n};\n"
	assert.Equal(t, want, got)
}

func TestRenderClientTreeIsDeterministic(t *testing.T) {
	first := RenderClientTree(sampleTree(), "this.N.views")
	for range 5 {
		assert.Equal(t, first, RenderClientTree(sampleTree(), "this.N.views"))
	}
}

func TestGuardLines(t *testing.T) {
	tests := []struct {
		namespace string
		want      []string
	}{
		{namespace: "this.N.views", want: []string{"this.N = this.N || {};", "this.N.views = this.N.views || {};"}},
		{namespace: "window.views", want: []string{"window.views = window.views || {};"}},
		{namespace: "App.views", want: []string{"var App = App || {};", "App.views = App.views || {};"}},
		{namespace: "views", want: []string{"var views = views || {};"}},
	}

	for _, tt := range tests {
		t.Run(tt.namespace, func(t *testing.T) {
			assert.Equal(t, tt.want, guardLines(tt.namespace))
		})
	}
}

func TestRenderClientTreeEmpty(t *testing.T) {
	got := string(RenderClientTree(map[string]string{}, "this.N.views"))
	assert.Equal(t, "/* generated by viewpack, do not edit */\nthis.N = this.N || {};\nthis.N.views = this.N.views || {};\n", got)
}

func TestWriteClientTree(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "public", BundleFile)

	require.NoError(t, WriteClientTree(fs.NewOSFileSystem(), path, sampleTree(), "this.N.views"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, RenderClientTree(sampleTree(), "this.N.views"), data)
}

func TestWriteClientTreeReadOnly(t *testing.T) {
	err := WriteClientTree(fs.NewReadOnlyFileSystem(os.DirFS(t.TempDir())), "/views.js", sampleTree(), "this.N.views")
	assert.ErrorIs(t, err, fs.ErrReadOnly)
}

func TestManifestRoundTrip(t *testing.T) {
	fsys := fs.NewOSFileSystem()
	path := ManifestPath(filepath.Join(t.TempDir(), BundleFile))

	m := &core.Manifest{
		Bundle:    "views.js",
		Namespace: "this.N.views",
		Hash:      "abc",
		Views: map[string]core.ManifestEntry{
			"foo.bar": {Source: "foo/bar.mustache", Hash: "123"},
		},
	}
	require.NoError(t, WriteManifest(fsys, path, m))

	loaded, err := LoadManifest(fsys, path)
	require.NoError(t, err)
	assert.Equal(t, m, loaded)
	assert.True(t, loaded.Has("foo.bar"))
	assert.False(t, loaded.Has("missing"))
}
