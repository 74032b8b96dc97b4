package http

import (
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/3-lines-studio/viewpack/internal/adapters/fs"
	"github.com/3-lines-studio/viewpack/internal/assets"
	"github.com/3-lines-studio/viewpack/internal/core"
)

// AssetHandler serves the generated bundle and manifest out of dir. Other
// paths fall through to NotFound.
type AssetHandler struct {
	fs    fs.FileSystem
	dir   string
	isDev bool
}

func NewAssetHandler(fsys fs.FileSystem, dir string, isDev bool) http.Handler {
	return &AssetHandler{
		fs:    fsys,
		dir:   dir,
		isDev: isDev,
	}
}

func (h *AssetHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	name := path.Base(strings.TrimPrefix(req.URL.Path, "/"))
	if name != assets.BundleFile && name != assets.ManifestFile {
		http.NotFound(w, req)
		return
	}

	data, err := h.fs.ReadFile(filepath.Join(h.dir, name))
	if err != nil {
		http.NotFound(w, req)
		return
	}

	etag := `"` + core.HashContent(data) + `"`
	w.Header().Set("Content-Type", core.GetContentType(name))
	w.Header().Set("ETag", etag)
	if h.isDev {
		w.Header().Set("Cache-Control", "no-cache")
	}

	if match := req.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	_, _ = w.Write(data)
}
