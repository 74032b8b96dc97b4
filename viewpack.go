// Package viewpack compiles a directory of view templates into server render
// functions and a browser bundle.
//
// Each template is compiled twice, once into a RenderFunc the application
// calls while serving requests and once into JavaScript source that is
// collected into views.js under a global namespace (this.N.views by
// default). Keys are derived from the template's path relative to the
// views root: "foo/bar.mustache" becomes "foo.bar" and repeated segments
// collapse, so "widget/widget.html" becomes "widget".
package viewpack

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/3-lines-studio/viewpack/internal/adapters/fs"
	viewhttp "github.com/3-lines-studio/viewpack/internal/adapters/http"
	"github.com/3-lines-studio/viewpack/internal/assets"
	"github.com/3-lines-studio/viewpack/internal/config"
	"github.com/3-lines-studio/viewpack/internal/core"
	"github.com/3-lines-studio/viewpack/internal/engine"
	"github.com/3-lines-studio/viewpack/internal/finder"
	"github.com/3-lines-studio/viewpack/internal/runtime"
	"github.com/3-lines-studio/viewpack/internal/types"
	"github.com/3-lines-studio/viewpack/internal/usecase"
	"github.com/3-lines-studio/viewpack/internal/watch"
)

type (
	Locals         = types.Locals
	RenderFunc     = types.RenderFunc
	Engine         = types.Engine
	EngineFunc     = types.EngineFunc
	CompileOptions = types.CompileOptions
	Views          = config.Views
	FileSystem     = fs.FileSystem
)

var (
	ErrNoEngine     = core.ErrNoEngine
	ErrViewNotFound = core.ErrViewNotFound
)

const (
	DefaultNamespace = config.DefaultNamespace
	// PreviewPrefix is where Handler renders single views.
	PreviewPrefix = "/_views/"
)

type router interface {
	http.Handler
	Handle(pattern string, handler http.Handler)
}

type Option func(*App)

// App owns the engines, the published views and the compile pipeline.
type App struct {
	appRoot   string
	namespace string
	views     config.Views
	fs        fs.FileSystem
	logger    *slog.Logger
	out       usecase.CLIOutput
	manifest  bool
	isDev     bool
	extra     map[string]types.Engine

	engines *engine.Registry
	state   *runtime.State
	reload  *runtime.ReloadHub
	cache   *usecase.CompileCache
	service *usecase.CompileService

	mu     sync.Mutex
	rootMu sync.RWMutex
	root   string
}

func New(opts ...Option) *App {
	a := &App{
		appRoot:   ".",
		namespace: DefaultNamespace,
		views:     config.Views{Root: "views"},
		fs:        fs.NewOSFileSystem(),
		logger:    slog.Default(),
		isDev:     runtime.IsDev(),
		extra:     make(map[string]types.Engine),
	}
	for _, opt := range opts {
		opt(a)
	}

	if abs, err := filepath.Abs(a.appRoot); err == nil {
		a.appRoot = abs
	}

	a.engines = engine.Default(a.fs)
	for ext, e := range a.extra {
		a.engines.Register(ext, e)
	}

	a.state = runtime.NewState()
	a.reload = runtime.NewReloadHub()

	a.service = usecase.NewCompileService(finder.New(a.fs), a.engines, a.state, a.fs, a.out, a.logger)
	if a.cache != nil {
		a.service.WithCache(a.cache)
	}

	return a
}

// WithAppRoot sets the directory "@" includes and the views root resolve
// against. Defaults to the working directory.
func WithAppRoot(dir string) Option {
	return func(a *App) { a.appRoot = dir }
}

func WithNamespace(namespace string) Option {
	return func(a *App) { a.namespace = namespace }
}

func WithViews(views Views) Option {
	return func(a *App) { a.views = views }
}

// WithEngine registers e for files with the given extension, replacing a
// built-in engine when the extension is already taken.
func WithEngine(extension string, e Engine) Option {
	return func(a *App) { a.extra[extension] = e }
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *App) { a.logger = logger }
}

func WithFileSystem(fsys FileSystem) Option {
	return func(a *App) { a.fs = fsys }
}

// WithManifest also writes views.manifest.json next to views.js.
func WithManifest() Option {
	return func(a *App) { a.manifest = true }
}

// WithCache reuses compiled entries of unchanged files across builds.
func WithCache() Option {
	return func(a *App) { a.cache = usecase.NewCompileCache() }
}

func WithDev(isDev bool) Option {
	return func(a *App) { a.isDev = isDev }
}

func WithOutput(out usecase.CLIOutput) Option {
	return func(a *App) { a.out = out }
}

// Compile builds every view, publishes the server functions and writes
// root/views.js. An empty root means the app root. Builds are serialized.
// Reload subscribers are notified once the bundle is on disk.
func (a *App) Compile(ctx context.Context, root string) error {
	if root == "" {
		root = a.appRoot
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	result := a.service.CompileViews(ctx, usecase.CompileInput{
		Root:      root,
		AppRoot:   a.appRoot,
		Views:     a.views,
		Namespace: a.namespace,
		Manifest:  a.manifest,
	})
	if result.Error != nil {
		return result.Error
	}

	a.rootMu.Lock()
	a.root = root
	a.rootMu.Unlock()

	a.reload.Notify()
	return nil
}

func (a *App) Render(w io.Writer, key string, locals Locals) error {
	return a.state.Render(w, key, locals)
}

func (a *App) RenderString(key string, locals Locals) (string, error) {
	var buf bytes.Buffer
	if err := a.Render(&buf, key, locals); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Keys lists the published view keys in sorted order.
func (a *App) Keys() []string {
	return a.state.Keys()
}

func (a *App) Extensions() []string {
	return a.engines.Extensions()
}

// Invalidate forgets cached compilations of the given absolute paths.
func (a *App) Invalidate(paths []string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cache.Invalidate(paths)
}

// Watch compiles once and then again whenever a template under the app
// root changes. It blocks until ctx is cancelled. Failed builds are logged
// and keep the previously published views.
func (a *App) Watch(ctx context.Context, root string, debounce time.Duration) error {
	a.mu.Lock()
	if a.cache == nil {
		a.cache = usecase.NewCompileCache()
		a.service.WithCache(a.cache)
	}
	a.mu.Unlock()

	if err := a.Compile(ctx, root); err != nil {
		a.logger.Error("initial build failed", "error", err)
	}

	w, err := watch.New(watch.Config{
		BaseDir:  a.appRoot,
		Patterns: watch.PatternsForExtensions(a.Extensions()),
		Debounce: debounce,
		Logger:   a.logger,
		OnChange: func(ctx context.Context, changed []string) error {
			a.logger.Info("views changed", "files", len(changed))
			a.Invalidate(changed)
			return a.Compile(ctx, root)
		},
	})
	if err != nil {
		return err
	}
	return w.Run(ctx)
}

// Wrap mounts the reload endpoint on api and serves the generated bundle
// and the view preview in front of it.
func (a *App) Wrap(api router) http.Handler {
	if a.isDev {
		api.Handle(runtime.ReloadPath, a.reload)
	}
	preview := viewhttp.NewViewHandler(a, PreviewPrefix, a.isDev)

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if strings.HasPrefix(req.URL.Path, PreviewPrefix) {
			preview.ServeHTTP(w, req)
			return
		}
		switch path.Base(req.URL.Path) {
		case assets.BundleFile, assets.ManifestFile:
			viewhttp.NewAssetHandler(a.fs, a.bundleDir(), a.isDev).ServeHTTP(w, req)
			return
		}
		api.ServeHTTP(w, req)
	})
}

func (a *App) Handler() http.Handler {
	return a.Wrap(http.NewServeMux())
}

func (a *App) bundleDir() string {
	a.rootMu.RLock()
	defer a.rootMu.RUnlock()
	if a.root == "" {
		return a.appRoot
	}
	return a.root
}

// CompileViews is New followed by Compile.
func CompileViews(ctx context.Context, root string, opts ...Option) (*App, error) {
	a := New(opts...)
	if err := a.Compile(ctx, root); err != nil {
		return nil, err
	}
	return a, nil
}
