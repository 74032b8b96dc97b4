package usecase

import (
	"context"
	"fmt"
	"slices"

	"github.com/3-lines-studio/viewpack/internal/config"
	"github.com/3-lines-studio/viewpack/internal/core"
)

type DoctorInput struct {
	AppRoot string
	Views   config.Views
}

// Collision is a namespace key produced by more than one file. The last
// source wins at build time.
type Collision struct {
	Key     string
	Sources []string
}

type DoctorOutput struct {
	Views         int
	Engines       []string
	MissingEngine []string
	Collisions    []Collision
	Error         error
}

func (o DoctorOutput) Healthy() bool {
	return o.Error == nil && len(o.MissingEngine) == 0 && len(o.Collisions) == 0
}

// DoctorService inspects a views tree without compiling it.
type DoctorService struct {
	finder  Finder
	engines Engines
	cli     CLIOutput
}

func NewDoctorService(finder Finder, engines Engines, cli CLIOutput) *DoctorService {
	return &DoctorService{
		finder:  finder,
		engines: engines,
		cli:     cli,
	}
}

func (s *DoctorService) Diagnose(ctx context.Context, input DoctorInput) DoctorOutput {
	s.cli.PrintHeader("viewpack doctor")

	out := DoctorOutput{Engines: s.engines.Extensions()}
	s.cli.PrintStep("🔧", "Engines: %v", out.Engines)

	viewsRoot := core.ResolveViewsRoot(input.AppRoot, input.Views.Root)
	paths, err := s.finder.Find(ctx, viewsRoot, core.ViewFilter{
		Include: input.Views.Include,
		Exclude: input.Views.Exclude,
	})
	if err != nil {
		s.cli.PrintError("%v", err)
		out.Error = err
		return out
	}
	out.Views = len(paths)
	s.cli.PrintStep("📂", "%d views under %s", len(paths), viewsRoot)

	sources := make(map[string][]string)
	var order []string
	for _, p := range paths {
		if _, err := s.engines.Lookup(p.Extension); err != nil {
			out.MissingEngine = append(out.MissingEngine, p.RelativePath)
			s.cli.PrintError("%s: %v", p.RelativePath, core.NoEngineError(p.Extension, ""))
			continue
		}

		key := core.KeyForDescriptor(p)
		if _, ok := sources[key]; !ok {
			order = append(order, key)
		}
		sources[key] = append(sources[key], p.RelativePath)
	}

	for _, key := range order {
		if len(sources[key]) < 2 {
			continue
		}
		out.Collisions = append(out.Collisions, Collision{Key: key, Sources: slices.Clone(sources[key])})
		s.cli.PrintWarning("key %q is produced by %v; %s wins", key, sources[key], sources[key][len(sources[key])-1])
	}

	if out.Healthy() {
		s.cli.PrintSuccess("%d views, no problems found", out.Views)
	} else {
		s.cli.PrintWarning("%s", fmt.Sprintf("%d missing engines, %d collisions", len(out.MissingEngine), len(out.Collisions)))
	}
	return out
}
