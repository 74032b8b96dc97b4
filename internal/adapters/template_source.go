package adapters

import (
	"io/fs"

	"github.com/3-lines-studio/viewpack/internal/templates"
)

// TemplateSource serves the starter projects embedded in the binary.
type TemplateSource struct{}

func NewTemplateSource() *TemplateSource {
	return &TemplateSource{}
}

func (t *TemplateSource) GetTemplate(name string) (fs.FS, error) {
	return templates.GetTemplate(name)
}

func (t *TemplateSource) Names() []string {
	return templates.Names()
}
