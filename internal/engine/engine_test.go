package engine

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3-lines-studio/viewpack/internal/core"
	"github.com/3-lines-studio/viewpack/internal/types"
)

type mapReader map[string]string

func (m mapReader) ReadFile(path string) ([]byte, error) {
	data, ok := m[filepath.ToSlash(path)]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(data), nil
}

func render(t *testing.T, fn types.RenderFunc, locals types.Locals) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, fn(&buf, locals))
	return buf.String()
}

func TestRegistryLookup(t *testing.T) {
	r := Default(mapReader{})

	tests := []struct {
		ext     string
		wantErr bool
	}{
		{ext: "mustache"},
		{ext: ".mustache"},
		{ext: "HTML"},
		{ext: "jade", wantErr: true},
		{ext: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			e, err := r.Lookup(tt.ext)
			if tt.wantErr {
				assert.ErrorIs(t, err, core.ErrNoEngine)
				assert.Nil(t, e)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, e)
		})
	}

	assert.Equal(t, []string{"html", "mustache"}, r.Extensions())
}

func TestMustacheServerRenders(t *testing.T) {
	m := NewMustache(mapReader{})
	fn, err := m.Server(context.Background(), []byte("Hello {{name}}!"), types.CompileOptions{Filename: "/app/views/hello.mustache"})
	require.NoError(t, err)

	assert.Equal(t, "Hello world!", render(t, fn, types.Locals{"name": "world"}))
	assert.Equal(t, "Hello !", render(t, fn, nil))
}

func TestMustacheClientArtifact(t *testing.T) {
	m := NewMustache(mapReader{})
	got, err := m.Client(context.Background(), []byte("<p>{{name}}</p>"), types.CompileOptions{Filename: "/app/views/p.mustache"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "function (locals) {"), got)
	assert.Contains(t, got, `Mustache.render("\u003cp\u003e{{name}}\u003c/p\u003e", locals, {})`)
}

func TestMustachePartials(t *testing.T) {
	files := mapReader{
		"/app/views/header.mustache":     "<h1>{{title}}</h1>{{> common/nav}}",
		"/app/views/common/nav.mustache": "<nav>{{user}}</nav>",
		"/app/shared/footer.mustache":    "<footer>bye</footer>",
	}
	m := NewMustache(files)
	opts := types.CompileOptions{
		Filename:   "/app/views/page.mustache",
		FilterPath: core.FilterPath("/app"),
	}
	src := []byte("{{> header}}<main>{{body}}</main>{{> @/shared/footer}}")

	fn, err := m.Server(context.Background(), src, opts)
	require.NoError(t, err)
	got := render(t, fn, types.Locals{"title": "T", "user": "ann", "body": "B"})
	assert.Equal(t, "<h1>T</h1><nav>ann</nav><main>B</main><footer>bye</footer>", got)

	client, err := m.Client(context.Background(), src, opts)
	require.NoError(t, err)
	assert.Contains(t, client, `"shared/footer.mustache":`)
	assert.Contains(t, client, `"views/common/nav.mustache":`)
	assert.Contains(t, client, `"views/header.mustache":`)
	assert.Contains(t, client, `{{\u003e views/header.mustache}}`)
}

func TestMustacheSameNamedPartialsStayApart(t *testing.T) {
	files := mapReader{
		"/app/views/a/x.mustache":    "{{> meta}}",
		"/app/views/a/meta.mustache": "A-meta",
		"/app/views/b/x.mustache":    "{{> meta}}",
		"/app/views/b/meta.mustache": "B-meta",
	}
	m := NewMustache(files)
	opts := types.CompileOptions{
		Filename:   "/app/views/page.mustache",
		FilterPath: core.FilterPath("/app"),
	}
	src := []byte("{{> a/x}}|{{> b/x}}")

	fn, err := m.Server(context.Background(), src, opts)
	require.NoError(t, err)
	assert.Equal(t, "A-meta|B-meta", render(t, fn, nil))

	client, err := m.Client(context.Background(), src, opts)
	require.NoError(t, err)
	assert.Contains(t, client, `"views/a/meta.mustache":"A-meta"`)
	assert.Contains(t, client, `"views/b/meta.mustache":"B-meta"`)
}

func TestMustacheDependencies(t *testing.T) {
	files := mapReader{
		"/app/views/header.mustache":     "{{> common/nav}}",
		"/app/views/common/nav.mustache": "nav",
		"/app/shared/footer.mustache":    "footer",
	}
	m := NewMustache(files)
	opts := types.CompileOptions{
		Filename:   "/app/views/page.mustache",
		FilterPath: core.FilterPath("/app"),
	}

	deps, err := m.Dependencies(context.Background(), []byte("{{> header}}{{> @/shared/footer}}{{> header}}"), opts)
	require.NoError(t, err)
	want := []string{
		filepath.FromSlash("/app/shared/footer.mustache"),
		filepath.FromSlash("/app/views/common/nav.mustache"),
		filepath.FromSlash("/app/views/header.mustache"),
	}
	assert.Equal(t, want, deps)

	_, err = m.Dependencies(context.Background(), []byte("{{> gone}}"), opts)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestMustacheNestedPartialResolvesFromIncludingFile(t *testing.T) {
	files := mapReader{
		"/app/views/blog/post.mustache": "{{> meta}}",
		"/app/views/blog/meta.mustache": "meta",
		"/app/views/meta.mustache":      "wrong",
	}
	m := NewMustache(files)
	fn, err := m.Server(context.Background(), []byte("{{> blog/post}}"), types.CompileOptions{Filename: "/app/views/index.mustache"})
	require.NoError(t, err)
	assert.Equal(t, "meta", render(t, fn, nil))
}

func TestMustacheMissingPartial(t *testing.T) {
	m := NewMustache(mapReader{})
	opts := types.CompileOptions{Filename: "/app/views/page.mustache"}

	_, err := m.Server(context.Background(), []byte("{{> nope}}"), opts)
	var ce *core.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, core.SideServer, ce.Side)
	assert.Equal(t, "/app/views/page.mustache", ce.Filename)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = m.Client(context.Background(), []byte("{{> nope}}"), opts)
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, core.SideClient, ce.Side)
}

func TestMustacheSyntaxError(t *testing.T) {
	m := NewMustache(mapReader{})
	opts := types.CompileOptions{Filename: "broken.mustache"}

	_, err := m.Server(context.Background(), []byte("{{#open}}never closed"), opts)
	var ce *core.CompileError
	assert.ErrorAs(t, err, &ce)

	_, err = m.Client(context.Background(), []byte("{{#open}}never closed"), opts)
	assert.ErrorAs(t, err, &ce)
}

func TestMustacheHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMustache(mapReader{"/v/a.mustache": "a"})
	_, err := m.Server(ctx, []byte("{{> a}}"), types.CompileOptions{Filename: "/v/x.mustache"})
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestHTMLEngine(t *testing.T) {
	h := NewHTML()
	src := []byte("<p>static</p>")

	fn, err := h.Server(context.Background(), src, types.CompileOptions{})
	require.NoError(t, err)
	src[0] = 'X'
	assert.Equal(t, "<p>static</p>", render(t, fn, types.Locals{"ignored": true}))

	client, err := h.Client(context.Background(), []byte("<p>static</p>"), types.CompileOptions{})
	require.NoError(t, err)
	assert.Equal(t, "function () {\n  return \"\\u003cp\\u003estatic\\u003c/p\\u003e\";\n}", client)
}
