package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"LIBRARY-backend/internal/catalog"
	"LIBRARY-backend/internal/platform/db"
	"LIBRARY-backend/internal/platform/logging"
)

const defaultConfigPath = "config/config.yaml"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "library-backend",
		Short:        "Library catalogue and lending API",
		SilenceUsage: true,
		// サブコマンド省略時は serve
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config.yaml")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Migrate the database and serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "initdb",
		Short: "Create tables and load the seed catalogue, then exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInitDB(cmd.Context(), configPath)
		},
	})
	return root
}

// open は設定読み込み → 接続 → マイグレーションまでを行う
func open(ctx context.Context, configPath string) (*db.Config, *db.DB, *slog.Logger, error) {
	cfg, err := db.LoadConfig(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := logging.New(cfg.Mode)
	logger.Info("config loaded", "mode", cfg.Mode, "driver", cfg.DB.Driver)

	conn, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := db.Migrate(ctx, conn); err != nil {
		conn.Close()
		return nil, nil, nil, err
	}
	logger.Info("connected to DB", "driver", conn.Driver(), "dbname", cfg.DB.DBName, "path", cfg.DB.Path)
	return cfg, conn, logger, nil
}

func runInitDB(ctx context.Context, configPath string) error {
	_, conn, logger, err := open(ctx, configPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	n, err := catalog.NewService(conn).Seed(ctx)
	if err != nil {
		return fmt.Errorf("seed catalogue: %w", err)
	}
	logger.Info("database initialised", "seeded_books", n)
	return nil
}

func runServe(ctx context.Context, configPath string) error {
	cfg, conn, logger, err := open(ctx, configPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	if cfg.SeedEnabled() {
		n, err := catalog.NewService(conn).Seed(ctx)
		if err != nil {
			return fmt.Errorf("seed catalogue: %w", err)
		}
		if n > 0 {
			logger.Info("seeded empty catalogue", "books", n)
		}
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newRouter(cfg, conn, loc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		var err error
		if cfg.TLSEnabled() {
			logger.Info("listening", "addr", srv.Addr, "tls", true)
			err = srv.ListenAndServeTLS(cfg.Certificate.Cert, cfg.Certificate.Key)
		} else {
			logger.Info("listening", "addr", srv.Addr, "tls", false)
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-quit:
	}

	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
