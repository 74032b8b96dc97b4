package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/3-lines-studio/viewpack/internal/adapters/cli"
	"github.com/3-lines-studio/viewpack/internal/assets"
	"github.com/3-lines-studio/viewpack/internal/config"
	"github.com/3-lines-studio/viewpack/internal/core"
	"github.com/3-lines-studio/viewpack/internal/types"
)

type CompileInput struct {
	// Root is the directory views.js is written to.
	Root      string
	AppRoot   string
	Views     config.Views
	Namespace string
	Manifest  bool
}

type CompileOutput struct {
	Success    bool
	Error      error
	Tree       *core.ViewsTree
	BundlePath string
	Cached     int
}

// CompileService turns a views directory into a published server tree and
// a client bundle.
type CompileService struct {
	finder  Finder
	engines Engines
	sink    ViewsSink
	fs      FileSystem
	cli     CLIOutput
	logger  *slog.Logger
	cache   *CompileCache
}

func NewCompileService(finder Finder, engines Engines, sink ViewsSink, fs FileSystem, out CLIOutput, logger *slog.Logger) *CompileService {
	if out == nil {
		out = cli.NewWriterOutput(io.Discard, io.Discard)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CompileService{
		finder:  finder,
		engines: engines,
		sink:    sink,
		fs:      fs,
		cli:     out,
		logger:  logger,
	}
}

// WithCache makes later builds reuse entries of unchanged files.
func (s *CompileService) WithCache(cache *CompileCache) *CompileService {
	s.cache = cache
	return s
}

func (s *CompileService) CompileViews(ctx context.Context, input CompileInput) CompileOutput {
	namespace := input.Namespace
	if namespace == "" {
		namespace = config.DefaultNamespace
	}
	bundlePath := filepath.Join(input.Root, assets.BundleFile)
	if err := config.ValidateNamespace(namespace); err != nil {
		s.logger.Error("invalid namespace", "namespace", namespace, "error", err)
		return CompileOutput{Success: false, Error: err, BundlePath: bundlePath}
	}
	viewsRoot := core.ResolveViewsRoot(input.AppRoot, input.Views.Root)
	filterPath := core.FilterPath(input.AppRoot)

	report := cli.NewBuildReport(s.cli, bundlePath)
	fail := func(step *cli.BuildStep, view string, message string, err error) CompileOutput {
		report.EndStep(step, false, err.Error())
		report.AddError(view, message, []string{err.Error()})
		report.Render()
		s.logger.Error(message, "view", view, "error", err)
		return CompileOutput{Success: false, Error: err, BundlePath: bundlePath}
	}

	stepFind := report.StartStep("Finding views")
	paths, err := s.finder.Find(ctx, viewsRoot, core.ViewFilter{
		Include: input.Views.Include,
		Exclude: input.Views.Exclude,
	})
	if err != nil {
		return fail(stepFind, viewsRoot, "Failed to find views", err)
	}
	report.EndStep(stepFind, true, "")
	report.SetViewCount(len(paths))
	s.logger.Debug("views found", "root", viewsRoot, "count", len(paths))

	tree := core.NewViewsTree()
	views := make(map[string]core.ManifestEntry, len(paths))
	seen := make(map[string]struct{}, len(paths))
	cached := 0

	stepCompile := report.StartStep("Compiling views")
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return fail(stepCompile, p.RelativePath, "Build cancelled", err)
		}

		entry, hash, hit, err := s.compileFile(ctx, p, filterPath)
		if err != nil {
			return fail(stepCompile, p.RelativePath, "Failed to compile view", err)
		}
		if hit {
			cached++
		}
		seen[p.AbsolutePath] = struct{}{}

		key := core.KeyForDescriptor(p)
		prev, replaced, err := tree.Set(key, p.RelativePath, entry)
		if err != nil {
			return fail(stepCompile, p.RelativePath, "Failed to add view", err)
		}
		if replaced {
			s.logger.Warn("namespace key collision", "key", key, "previous", prev, "source", p.RelativePath)
			report.AddWarning(key, "Namespace key collision", []string{prev + " replaced by " + p.RelativePath})
		}
		views[key] = core.ManifestEntry{Source: p.RelativePath, Hash: hash}
	}
	report.EndStep(stepCompile, true, "")
	s.cache.Retain(seen)

	stepPublish := report.StartStep("Publishing server views")
	s.sink.Publish(tree.ServerTree())
	report.EndStep(stepPublish, true, "")

	stepWrite := report.StartStep("Writing " + assets.BundleFile)
	client := tree.ClientTree()
	if err := assets.WriteClientTree(s.fs, bundlePath, client, namespace); err != nil {
		return fail(stepWrite, bundlePath, "Failed to write client bundle", err)
	}
	report.EndStep(stepWrite, true, "")

	if input.Manifest {
		stepManifest := report.StartStep("Writing " + assets.ManifestFile)
		manifest := &core.Manifest{
			Bundle:    assets.BundleFile,
			Namespace: namespace,
			Hash:      core.HashContent(assets.RenderClientTree(client, namespace)),
			Views:     views,
		}
		if err := assets.WriteManifest(s.fs, assets.ManifestPath(bundlePath), manifest); err != nil {
			return fail(stepManifest, bundlePath, "Failed to write manifest", err)
		}
		report.EndStep(stepManifest, true, "")
	}

	report.Render()
	s.logger.Info("views compiled", "count", tree.Len(), "cached", cached, "bundle", bundlePath)

	return CompileOutput{
		Success:    true,
		Tree:       tree,
		BundlePath: bundlePath,
		Cached:     cached,
	}
}

// compileFile runs the server and client compilations of one file side by
// side. The first failure cancels the other.
func (s *CompileService) compileFile(ctx context.Context, p core.PathDescriptor, filterPath func(string) string) (core.CompiledEntry, string, bool, error) {
	engine, err := s.engines.Lookup(p.Extension)
	if err != nil {
		return core.CompiledEntry{}, "", false, core.NoEngineError(p.Extension, p.RelativePath)
	}

	src, err := p.Read(ctx)
	if err != nil {
		return core.CompiledEntry{}, "", false, err
	}

	opts := types.CompileOptions{
		Filename:   p.AbsolutePath,
		FilterPath: filterPath,
	}

	hash := core.HashContent(src)
	cacheKey := ""
	if s.cache != nil {
		cacheKey, err = s.cacheKey(ctx, engine, src, opts)
		if err != nil {
			return core.CompiledEntry{}, "", false, err
		}
		if entry, ok := s.cache.Get(p.AbsolutePath, cacheKey); ok {
			return entry, hash, true, nil
		}
	}

	var (
		server types.RenderFunc
		client string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fn, err := engine.Server(gctx, src, opts)
		server = fn
		return err
	})
	g.Go(func() error {
		js, err := engine.Client(gctx, src, opts)
		client = js
		return err
	})
	if err := g.Wait(); err != nil {
		return core.CompiledEntry{}, "", false, err
	}

	entry := core.CompiledEntry{Server: server, Client: client}
	if entry.Complete() {
		s.cache.Put(p.AbsolutePath, cacheKey, entry)
	}
	return entry, hash, false, nil
}

// cacheKey hashes src together with the current content of every file the
// engine reports as a dependency, so an edited partial misses the cache.
func (s *CompileService) cacheKey(ctx context.Context, e types.Engine, src []byte, opts types.CompileOptions) (string, error) {
	reporter, ok := e.(types.DependencyReporter)
	if !ok {
		return core.HashContent(src), nil
	}

	deps, err := reporter.Dependencies(ctx, src, opts)
	if err != nil {
		return "", err
	}

	var b bytes.Buffer
	b.Write(src)
	for _, dep := range deps {
		data, err := s.fs.ReadFile(dep)
		if err != nil {
			return "", fmt.Errorf("failed to read dependency %s: %w", dep, err)
		}
		b.WriteString("\x00" + dep + "\x00")
		b.Write(data)
	}
	return core.HashContent(b.Bytes()), nil
}
