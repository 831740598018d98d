package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hrbridge/internal/server"
	"hrbridge/internal/store"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			resolver, err := newResolver(ctx)
			if err != nil {
				return err
			}

			cat, err := loadPatterns()
			if err != nil {
				return err
			}

			hist, err := store.Open(cfg.Store.Path)
			if err != nil {
				return err
			}
			defer hist.Close()

			handler, err := server.New(server.Config{
				BasePath:      cfg.Server.BasePath,
				MaxConcurrent: cfg.Server.MaxConcurrent,
				Resolver:      resolver,
				Compiler:      newCompiler(),
				Engine:        newEngine(),
				Patterns:      cat,
				Store:         hist,
				Log:           log,
			})
			if err != nil {
				return err
			}

			srv := &http.Server{Addr: cfg.Server.Addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}

			go func() {
				<-ctx.Done()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()

				_ = srv.Shutdown(shutdownCtx)
			}()

			log.Info("listening",
				zap.String("addr", cfg.Server.Addr),
				zap.String("base_path", cfg.Server.BasePath),
				zap.Bool("ai", cfg.AI.APIKey != ""))

			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}

			return nil
		},
	}

	cmd.Flags().String("addr", "", "listen address")
	_ = v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}
