package engine

import (
	"bytes"
	"context"
	"io"

	"github.com/3-lines-studio/viewpack/internal/types"
)

const HTMLExtension = "html"

// HTML serves static fragments. Locals are ignored.
type HTML struct{}

func NewHTML() *HTML {
	return &HTML{}
}

func (h *HTML) Server(ctx context.Context, src []byte, opts types.CompileOptions) (types.RenderFunc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content := bytes.Clone(src)
	return func(w io.Writer, _ types.Locals) error {
		_, err := w.Write(content)
		return err
	}, nil
}

func (h *HTML) Client(ctx context.Context, src []byte, opts types.CompileOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "function () {\n  return " + quote(string(src)) + ";\n}", nil
}
