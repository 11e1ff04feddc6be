package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	appconfig "github.com/ledgerbridge/ledgerbridge/internal/config"
	"github.com/ledgerbridge/ledgerbridge/internal/provider"
	"github.com/ledgerbridge/ledgerbridge/internal/reconcile"
	"github.com/ledgerbridge/ledgerbridge/internal/server"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server exposing link-session creation, public-token
exchange, account listing, and reconciled transaction retrieval.`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", ":8080", "listen address")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := appconfig.Load()
	if err != nil {
		return err
	}

	gateway, err := provider.NewClient(cfg.Provider)
	if err != nil {
		return fmt.Errorf("failed to create provider client: %w", err)
	}

	reconciler := reconcile.New(gateway, cfg.Reconcile)
	srv := server.New(cfg.Server, gateway, reconciler)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	slog.Info("Server listening",
		"addr", cfg.Server.Addr,
		"environment", cfg.Provider.Environment)

	select {
	case <-cmd.Context().Done():
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
