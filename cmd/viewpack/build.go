package main

import (
	"github.com/spf13/cobra"

	"github.com/3-lines-studio/viewpack/internal/engine"
	"github.com/3-lines-studio/viewpack/internal/finder"
	"github.com/3-lines-studio/viewpack/internal/runtime"
	"github.com/3-lines-studio/viewpack/internal/usecase"
)

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Compile all views once and write views.js",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(cmd)
			if err != nil {
				return err
			}
			views, err := env.views()
			if err != nil {
				return err
			}

			env.out.PrintHeader("viewpack build")
			service := usecase.NewCompileService(
				finder.New(env.fs),
				engine.Default(env.fs),
				runtime.NewState(),
				env.fs,
				env.out,
				env.logger,
			)

			result := service.CompileViews(cmd.Context(), usecase.CompileInput{
				Root:      env.settings.OutDir,
				AppRoot:   env.settings.AppRoot,
				Views:     views,
				Namespace: env.settings.Namespace,
				Manifest:  env.settings.Manifest,
			})
			if result.Error != nil {
				return result.Error
			}

			env.out.PrintDone("Build completed successfully")
			return nil
		},
	}
}
