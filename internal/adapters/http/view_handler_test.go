package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/3-lines-studio/viewpack/internal/core"
	"github.com/3-lines-studio/viewpack/internal/types"
)

type fakeRenderer struct{}

func (fakeRenderer) Render(w io.Writer, key string, locals types.Locals) error {
	switch key {
	case "hello":
		_, err := fmt.Fprintf(w, "<p>hi %v %v</p>", locals["name"], locals["tag"])
		return err
	case "broken":
		return errors.New("missing <partial>")
	default:
		return fmt.Errorf("%w: %q", core.ErrViewNotFound, key)
	}
}

func TestViewHandler(t *testing.T) {
	tests := []struct {
		name       string
		isDev      bool
		path       string
		wantStatus int
		wantBody   string
		noBody     string
	}{
		{name: "renders with query locals", path: "/_views/hello?name=ann&tag=a&tag=b", wantStatus: http.StatusOK, wantBody: "<p>hi ann [a b]</p>", noBody: "<script>"},
		{name: "dev adds reload script", isDev: true, path: "/_views/hello", wantStatus: http.StatusOK, wantBody: "__viewpack_reload"},
		{name: "unknown key", path: "/_views/nope", wantStatus: http.StatusNotFound},
		{name: "empty key", path: "/_views/", wantStatus: http.StatusNotFound},
		{name: "prod hides error", path: "/_views/broken", wantStatus: http.StatusInternalServerError, wantBody: "An error occurred", noBody: "partial"},
		{name: "dev shows escaped error", isDev: true, path: "/_views/broken", wantStatus: http.StatusInternalServerError, wantBody: "missing &lt;partial&gt;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewViewHandler(fakeRenderer{}, "/_views/", tt.isDev)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
			if tt.noBody != "" {
				assert.False(t, strings.Contains(rec.Body.String(), tt.noBody), rec.Body.String())
			}
		})
	}
}
