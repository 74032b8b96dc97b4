package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/cbroglie/mustache"

	"github.com/3-lines-studio/viewpack/internal/core"
	"github.com/3-lines-studio/viewpack/internal/types"
)

const MustacheExtension = "mustache"

// partialTag matches {{> name}}. Custom delimiters are not followed.
var partialTag = regexp.MustCompile(`\{\{>\s*([^\s}]+)\s*\}\}`)

// Mustache compiles logic-less templates. The client artifact calls the
// global Mustache.render from mustache.js with the partials inlined.
type Mustache struct {
	files FileReader
}

func NewMustache(files FileReader) *Mustache {
	return &Mustache{files: files}
}

func (m *Mustache) Server(ctx context.Context, src []byte, opts types.CompileOptions) (types.RenderFunc, error) {
	root, partials, _, err := m.expand(ctx, string(src), opts)
	if err != nil {
		return nil, compileError(opts, core.SideServer, err)
	}

	tmpl, err := mustache.ParseStringPartials(root, &mustache.StaticProvider{Partials: partials})
	if err != nil {
		return nil, compileError(opts, core.SideServer, err)
	}

	return func(w io.Writer, locals types.Locals) error {
		return tmpl.FRender(w, map[string]any(locals))
	}, nil
}

func (m *Mustache) Client(ctx context.Context, src []byte, opts types.CompileOptions) (string, error) {
	root, partials, _, err := m.expand(ctx, string(src), opts)
	if err != nil {
		return "", compileError(opts, core.SideClient, err)
	}

	if _, err := mustache.ParseStringPartials(root, &mustache.StaticProvider{Partials: partials}); err != nil {
		return "", compileError(opts, core.SideClient, err)
	}

	partialsJSON, err := json.Marshal(partials)
	if err != nil {
		return "", compileError(opts, core.SideClient, err)
	}

	var b strings.Builder
	b.WriteString("function (locals) {\n")
	b.WriteString("  return Mustache.render(")
	b.WriteString(quote(root))
	b.WriteString(", locals, ")
	b.Write(partialsJSON)
	b.WriteString(");\n}")
	return b.String(), nil
}

// Dependencies lists the partial files src pulls in, sorted.
func (m *Mustache) Dependencies(ctx context.Context, src []byte, opts types.CompileOptions) ([]string, error) {
	_, _, files, err := m.expand(ctx, string(src), opts)
	if err != nil {
		return nil, compileError(opts, "", err)
	}
	slices.Sort(files)
	return files, nil
}

type partialRef struct {
	name string
	path string
}

// expand loads every partial reachable from src. Partial tags are rewritten
// to the resolved file's path relative to the app root, so two partials
// written with the same name in different directories stay apart. It
// returns the rewritten src, the rewritten partials by key and the files
// they were read from.
func (m *Mustache) expand(ctx context.Context, src string, opts types.CompileOptions) (string, map[string]string, []string, error) {
	base := partialBase(opts)
	partials := map[string]string{}
	var (
		queue []partialRef
		files []string
	)

	rewrite := func(text, from string) string {
		return partialTag.ReplaceAllStringFunc(text, func(tag string) string {
			name := partialTag.FindStringSubmatch(tag)[1]
			path := m.resolve(name, from, opts)
			queue = append(queue, partialRef{name: name, path: path})
			return "{{> " + partialKey(base, path) + "}}"
		})
	}

	root := rewrite(src, opts.Filename)
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return "", nil, nil, err
		}

		next := queue[0]
		queue = queue[1:]
		key := partialKey(base, next.path)
		if _, ok := partials[key]; ok {
			continue
		}

		if m.files == nil {
			return "", nil, nil, fmt.Errorf("partial %q: no file reader configured", next.name)
		}
		data, err := m.files.ReadFile(next.path)
		if err != nil {
			return "", nil, nil, fmt.Errorf("partial %q: %w", next.name, err)
		}

		partials[key] = rewrite(string(data), next.path)
		files = append(files, next.path)
	}

	return root, partials, files, nil
}

// partialBase is the app root when an "@" rewriter is configured, else the
// directory of the compiled file.
func partialBase(opts types.CompileOptions) string {
	if opts.FilterPath != nil {
		if root := opts.FilterPath("@"); root != "@" {
			return filepath.Clean(filepath.FromSlash(root))
		}
	}
	return filepath.Dir(opts.Filename)
}

func partialKey(base, path string) string {
	if rel, err := filepath.Rel(base, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}

func (m *Mustache) resolve(name, from string, opts types.CompileOptions) string {
	path := name
	if opts.FilterPath != nil {
		path = opts.FilterPath(path)
	}
	path = filepath.FromSlash(path)
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(from), path)
	}
	if filepath.Ext(path) == "" {
		path += "." + MustacheExtension
	}
	return path
}

func compileError(opts types.CompileOptions, side core.Side, err error) error {
	return &core.CompileError{Filename: opts.Filename, Side: side, Err: err}
}

func quote(s string) string {
	return core.QuoteJS(s)
}
