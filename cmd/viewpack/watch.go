package main

import (
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/3-lines-studio/viewpack"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild views whenever a template changes",
		Long: `watch compiles the views once and again after every change to a template
under the app root. With --serve it also serves views.js, a preview of every
view under /_views/<key> and a live reload stream.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(cmd)
			if err != nil {
				return err
			}
			views, err := env.views()
			if err != nil {
				return err
			}

			opts := []viewpack.Option{
				viewpack.WithAppRoot(env.settings.AppRoot),
				viewpack.WithViews(views),
				viewpack.WithNamespace(env.settings.Namespace),
				viewpack.WithLogger(env.logger),
				viewpack.WithFileSystem(env.fs),
				viewpack.WithOutput(env.out),
				viewpack.WithDev(true),
				viewpack.WithCache(),
			}
			if env.settings.Manifest {
				opts = append(opts, viewpack.WithManifest())
			}
			app := viewpack.New(opts...)

			addr, _ := cmd.Flags().GetString("serve")
			if addr != "" {
				srv := &http.Server{Addr: addr, Handler: app.Handler()}
				go func() {
					env.logger.Info("serving views", "addr", addr)
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						env.logger.Error("server stopped", "error", err)
					}
				}()
				defer srv.Close()
			}

			env.out.PrintHeader("viewpack watch")
			return app.Watch(cmd.Context(), env.settings.OutDir, env.settings.Debounce)
		},
	}

	cmd.Flags().Duration("debounce", 0, "quiet period before a rebuild (default 300ms)")
	cmd.Flags().String("serve", "", "address to serve views.js and previews on, e.g. :8080")
	return cmd
}
