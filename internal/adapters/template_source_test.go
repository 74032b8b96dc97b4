package adapters

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3-lines-studio/viewpack/internal/templates"
)

func TestTemplateSource(t *testing.T) {
	source := NewTemplateSource()
	assert.Equal(t, []string{"minimal", "static"}, source.Names())

	fsys, err := source.GetTemplate("minimal")
	require.NoError(t, err)
	_, err = fs.Stat(fsys, "bundle.yml.tmpl")
	assert.NoError(t, err)

	_, err = source.GetTemplate("svelte")
	assert.ErrorIs(t, err, templates.ErrInvalidTemplate)
}
