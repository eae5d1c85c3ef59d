package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-asrdeploy/internal/api"
	"github.com/goliatone/go-asrdeploy/pkg/apispec"
	"github.com/goliatone/go-asrdeploy/pkg/demo"
)

func serveCommand(global *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web configurator and the script API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.Load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			logger := cfg.NewLogger(cmd.ErrOrStderr())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			defaults, err := cfg.Script()
			if err != nil {
				return err
			}
			orch, err := newOrchestrator(cfg, logger)
			if err != nil {
				return err
			}
			spec, err := apispec.Load(ctx)
			if err != nil {
				return err
			}
			stream := api.NewDemoStream(logger,
				demo.WithInterval(cfg.Demo.Interval),
				demo.WithFinalizeDelay(cfg.Demo.FinalizeDelay),
				demo.WithPhrases(cfg.Demo.Phrases),
			)

			srv := &http.Server{
				Addr: cfg.Server.Addr,
				Handler: api.NewRouter(api.Deps{
					Orchestrator: orch,
					Spec:         spec,
					Stream:       stream,
					Defaults:     defaults,
					BasePath:     cfg.Server.BasePath,
					Logger:       logger,
				}),
				ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", "addr", cfg.Server.Addr, "base_path", cfg.Server.BasePath)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}
