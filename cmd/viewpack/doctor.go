package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/3-lines-studio/viewpack/internal/engine"
	"github.com/3-lines-studio/viewpack/internal/finder"
	"github.com/3-lines-studio/viewpack/internal/usecase"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the views tree for missing engines and key collisions",
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

			service := usecase.NewDoctorService(finder.New(env.fs), engine.Default(env.fs), env.out)
			result := service.Diagnose(cmd.Context(), usecase.DoctorInput{
				AppRoot: env.settings.AppRoot,
				Views:   views,
			})
			if result.Error != nil {
				return result.Error
			}
			if !result.Healthy() {
				return fmt.Errorf("%d views without an engine, %d key collisions", len(result.MissingEngine), len(result.Collisions))
			}
			return nil
		},
	}
}
