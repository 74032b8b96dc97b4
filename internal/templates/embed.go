// Package templates embeds the starter projects written by viewpack init.
package templates

import (
	"embed"
	"errors"
	"io/fs"
)

//go:embed all:minimal
var minimalFS embed.FS

//go:embed all:static
var staticFS embed.FS

// DefaultViewsRoot is the views root every starter uses.
const DefaultViewsRoot = "views"

var ErrInvalidTemplate = errors.New("invalid template name")

func Names() []string {
	return []string{"minimal", "static"}
}

func GetTemplate(name string) (fs.FS, error) {
	switch name {
	case "minimal":
		return fs.Sub(minimalFS, "minimal")
	case "static":
		return fs.Sub(staticFS, "static")
	default:
		return nil, ErrInvalidTemplate
	}
}
