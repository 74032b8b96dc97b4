package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/3-lines-studio/viewpack/internal/adapters/cli"
	"github.com/3-lines-studio/viewpack/internal/adapters/fs"
	"github.com/3-lines-studio/viewpack/internal/adapters/logging"
	"github.com/3-lines-studio/viewpack/internal/config"
)

// Version is set with -ldflags at release time.
var Version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "viewpack",
		Short: "Compile view templates into server renderers and a browser bundle",
		Long: `viewpack walks the views directory of a bundle, compiles every template
for the server and the browser, and writes the client side to views.js.

Settings come from flags, then VIEWPACK_* environment variables
(VIEWPACK_APP_ROOT, VIEWPACK_PACKAGE, ...), then defaults.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("config", config.DefaultBundle, "bundle file, relative to the app root")
	flags.StringP("package", "p", config.DefaultPackage, "package block of the bundle to build")
	flags.String("app-root", ".", "application root")
	flags.StringP("out", "o", "", "directory views.js is written to (default: app root)")
	flags.String("namespace", config.DefaultNamespace, "global property path the client views are assigned to")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Bool("manifest", false, "also write views.manifest.json")

	root.AddCommand(newBuildCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newInitCmd())

	return root
}

// environment is what every subcommand needs after flags are parsed.
type environment struct {
	settings config.Settings
	logger   *slog.Logger
	out      *cli.Output
	fs       fs.FileSystem
}

func loadEnvironment(cmd *cobra.Command) (*environment, error) {
	v := config.NewViper()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	settings, err := config.ReadSettings(v)
	if err != nil {
		return nil, err
	}

	return &environment{
		settings: settings,
		logger:   logging.Install(cmd.ErrOrStderr(), settings.LogLevel),
		out:      newOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()),
		fs:       fs.NewOSFileSystem(),
	}, nil
}

// views loads the bundle file and picks the selected package.
func (e *environment) views() (config.Views, error) {
	bundle, err := config.LoadBundle(e.settings.ConfigFile)
	if err != nil {
		return config.Views{}, err
	}
	return bundle.ViewsFor(e.settings.Package)
}

func newOutput(out, errOut io.Writer) *cli.Output {
	if out == os.Stdout && errOut == os.Stderr {
		return cli.NewOutput()
	}
	return cli.NewWriterOutput(out, errOut)
}
