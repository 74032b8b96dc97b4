package http

import (
	"bytes"
	"errors"
	"html"
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/3-lines-studio/viewpack/internal/core"
	"github.com/3-lines-studio/viewpack/internal/runtime"
	"github.com/3-lines-studio/viewpack/internal/types"
)

type Renderer interface {
	Render(w io.Writer, key string, locals types.Locals) error
}

// ViewHandler renders a single view by key for previewing, e.g.
// GET /_views/foo.bar?name=ann. Query parameters become locals.
type ViewHandler struct {
	views  Renderer
	prefix string
	isDev  bool
}

func NewViewHandler(views Renderer, prefix string, isDev bool) http.Handler {
	return &ViewHandler{
		views:  views,
		prefix: prefix,
		isDev:  isDev,
	}
}

func (h *ViewHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	key := strings.Trim(strings.TrimPrefix(req.URL.Path, h.prefix), "/")
	if key == "" {
		http.NotFound(w, req)
		return
	}

	var buf bytes.Buffer
	if err := h.views.Render(&buf, key, localsFromQuery(req)); err != nil {
		if errors.Is(err, core.ErrViewNotFound) {
			http.NotFound(w, req)
			return
		}
		h.serveError(w, err)
		return
	}

	body := buf.String()
	if h.isDev {
		body = runtime.AppendReloadScript(body)
		w.Header().Set("Cache-Control", "no-cache")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, body)
}

func localsFromQuery(req *http.Request) types.Locals {
	locals := types.Locals{}
	for name, values := range req.URL.Query() {
		if len(values) == 1 {
			locals[name] = values[0]
		} else {
			locals[name] = values
		}
	}
	return locals
}

func (h *ViewHandler) serveError(w http.ResponseWriter, err error) {
	data := errorData{
		Message: err.Error(),
		IsDev:   h.isDev,
	}

	var buf bytes.Buffer
	if err := errorTemplate.Execute(&buf, data); err != nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<!doctype html><html><body><pre>" + html.EscapeString(data.Message) + "</pre></body></html>"))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write(buf.Bytes())
}

type errorData struct {
	Message string
	IsDev   bool
}

var errorTemplate = template.Must(template.New("error").Parse(`<!doctype html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>View error</title>
    <style>
        body { font-family: system-ui, sans-serif; max-width: 800px; margin: 50px auto; padding: 0 20px; }
        h1 { color: #e74c3c; }
        pre { background: #f8f9fa; padding: 15px; border-radius: 5px; overflow-x: auto; }
    </style>
</head>
<body>
    <h1>View failed to render</h1>
    {{if .IsDev}}
    <pre>{{.Message}}</pre>
    {{else}}
    <p>An error occurred while rendering this view.</p>
    {{end}}
</body>
</html>`))
