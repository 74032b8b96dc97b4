package usecase

import (
	"context"
	"io"
	iofs "io/fs"

	"github.com/3-lines-studio/viewpack/internal/adapters/fs"
	"github.com/3-lines-studio/viewpack/internal/core"
	"github.com/3-lines-studio/viewpack/internal/types"
)

type Finder interface {
	Find(ctx context.Context, root string, filter core.ViewFilter) ([]core.PathDescriptor, error)
}

type Engines interface {
	Lookup(extension string) (types.Engine, error)
	Extensions() []string
}

// ViewsSink receives the server tree of a finished build.
type ViewsSink interface {
	Publish(views map[string]types.RenderFunc)
}

type CLIOutput interface {
	PrintHeader(msg string)
	PrintStep(emoji, msg string, args ...any)
	PrintSuccess(msg string, args ...any)
	PrintWarning(msg string, args ...any)
	PrintError(msg string, args ...any)
	PrintFile(path string)
	PrintDone(msg string)

	Green(text string) string
	Yellow(text string) string
	Red(text string) string
	Gray(text string) string
	Writer() io.Writer
	ErrWriter() io.Writer
}

// TemplateSource hands out starter projects by name.
type TemplateSource interface {
	GetTemplate(name string) (iofs.FS, error)
}

type FileSystem = fs.FileSystem
