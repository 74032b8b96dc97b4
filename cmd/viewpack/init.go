package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/3-lines-studio/viewpack/internal/adapters"
	"github.com/3-lines-studio/viewpack/internal/adapters/fs"
	"github.com/3-lines-studio/viewpack/internal/usecase"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a bundle.yml and a starter views directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectDir := "."
			if len(args) > 0 {
				projectDir = args[0]
			}
			absDir, err := filepath.Abs(projectDir)
			if err != nil {
				return err
			}

			template, _ := cmd.Flags().GetString("template")
			pkg := ""
			if cmd.Flags().Changed("package") {
				pkg, _ = cmd.Flags().GetString("package")
			}

			service := usecase.NewInitService(fs.NewOSFileSystem(), adapters.NewTemplateSource(), newOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()))
			result := service.InitProject(usecase.InitInput{
				ProjectDir: absDir,
				Template:   template,
				Package:    pkg,
			})
			return result.Error
		},
	}

	cmd.Flags().StringP("template", "t", "minimal", "starter template ("+strings.Join(adapters.NewTemplateSource().Names(), ", ")+")")
	return cmd
}
