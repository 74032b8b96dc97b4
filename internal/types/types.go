package types

import (
	"context"
	"io"
)

type Locals map[string]any

// RenderFunc is a compiled server-side view.
type RenderFunc func(w io.Writer, locals Locals) error

type CompileOptions struct {
	// Filename is the absolute path of the view, used in diagnostics and to
	// resolve relative includes.
	Filename string
	// FilterPath rewrites include paths before they are resolved.
	FilterPath func(path string) string
}

type Engine interface {
	Server(ctx context.Context, src []byte, opts CompileOptions) (RenderFunc, error)
	Client(ctx context.Context, src []byte, opts CompileOptions) (string, error)
}

type EngineFunc struct {
	ServerFunc func(ctx context.Context, src []byte, opts CompileOptions) (RenderFunc, error)
	ClientFunc func(ctx context.Context, src []byte, opts CompileOptions) (string, error)
}

func (f EngineFunc) Server(ctx context.Context, src []byte, opts CompileOptions) (RenderFunc, error) {
	return f.ServerFunc(ctx, src, opts)
}

func (f EngineFunc) Client(ctx context.Context, src []byte, opts CompileOptions) (string, error) {
	return f.ClientFunc(ctx, src, opts)
}

// DependencyReporter is implemented by engines whose output depends on
// files other than the compiled one, such as partials. Paths are absolute.
type DependencyReporter interface {
	Dependencies(ctx context.Context, src []byte, opts CompileOptions) ([]string, error)
}
