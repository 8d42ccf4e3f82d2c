package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/charlesng35/restaurants/internal/app"
	"github.com/charlesng35/restaurants/internal/database"
	"github.com/charlesng35/restaurants/internal/store"
	"github.com/charlesng35/restaurants/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}

	root := &cobra.Command{
		Use:           "restaurants-api",
		Short:         "Restaurants and dishes REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration directory or file")

	root.AddCommand(serve, newSeedCommand(&configPath))
	return root
}

func newSeedCommand(configPath *string) *cobra.Command {
	var ownerEmail string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample restaurant catalogue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd.Context(), *configPath, ownerEmail)
		},
	}
	cmd.Flags().StringVar(&ownerEmail, "owner", "", "Email of the user that owns the sample restaurants")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}

func runServe(ctx context.Context, configPath string) error {
	cfg, err := prepareConfig(configPath)
	if err != nil {
		return err
	}
	defer logger.Sync() // best effort

	log := logger.WithModule("bootstrap")

	stack, err := bootstrapRuntime(cfg, log)
	if err != nil {
		return err
	}
	defer stack.Shutdown(context.Background(), log)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           stack.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	if err, ok := <-serverErr; ok && err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	log.Info("server stopped gracefully")
	return nil
}

func runSeed(ctx context.Context, configPath, ownerEmail string) error {
	cfg, err := prepareConfig(configPath)
	if err != nil {
		return err
	}
	defer logger.Sync() // best effort

	log := logger.WithModule("seed")

	db, err := initialiseDatabase(cfg)
	if err != nil {
		return err
	}
	defer closeDatabase(db, log)

	users, err := store.NewUserStore(db)
	if err != nil {
		return err
	}
	owner, err := users.FindByEmail(ctx, strings.TrimSpace(ownerEmail))
	if err != nil {
		return fmt.Errorf("find owner %q: %w", ownerEmail, err)
	}

	created, err := database.SeedSampleRestaurants(db, owner.ID)
	if err != nil {
		return err
	}
	log.Info("sample restaurants seeded", zap.Int("created", created), zap.Int("owner_id", owner.ID))
	return nil
}

func prepareConfig(configPath string) (*app.Config, error) {
	cfg, err := loadApplicationConfig(configPath)
	if err != nil {
		return nil, err
	}

	generated, err := app.ApplyRuntimeDefaults(cfg)
	if err != nil {
		return nil, err
	}

	if err := app.ConfigureLogging(cfg.Server); err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}

	for key := range generated {
		logger.WithModule("bootstrap").Warn("generated runtime secret; tokens will not survive a restart", zap.String("key", key))
	}
	return cfg, nil
}

func loadApplicationConfig(path string) (*app.Config, error) {
	switch {
	case strings.TrimSpace(path) == "":
		return app.LoadConfig()
	default:
		info, err := os.Stat(path)
		if err == nil {
			if info.IsDir() {
				return app.LoadConfig(path)
			}
			return app.LoadConfig(filepath.Dir(path))
		}
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config path %q does not exist", path)
		}
		return nil, fmt.Errorf("stat config path: %w", err)
	}
}
