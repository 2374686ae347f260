package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"pg-connect/internal/app"
	"pg-connect/internal/config"
	insightdomain "pg-connect/internal/domain/insight"
	"pg-connect/pkg/logger"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "pg-connect"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type globalFlags struct {
	logLevel  string
	logFormat string
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Accommodation management dashboard API",
		Long: `pg-connect serves the resident, room, fee, ticket and chat API for a
paying-guest accommodation, backed by a pluggable slot store.

Running without a subcommand is the same as "serve".`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(flags)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides LOG_LEVEL")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format (text, json); overrides LOG_FORMAT")

	cmd.AddCommand(
		serveCmd(flags),
		seedCmd(flags),
		blueprintCmd(flags),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)
	return cmd
}

func serveCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(flags)
		},
	}
}

func seedCmd(flags *globalFlags) *cobra.Command {
	var reset bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the demo directory to the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.NewWithOverrides(flags.logLevel, flags.logFormat)
			ctx := cmd.Context()

			application, err := build(ctx, log)
			if err != nil {
				return err
			}
			defer closeApp(application, log)

			if err := application.Seed(ctx, reset); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			log.Info("seed: done", "reset", reset)
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "Replace stored collections with the demo directory")
	return cmd
}

func blueprintCmd(flags *globalFlags) *cobra.Command {
	var component string
	names := make([]string, 0)
	for _, c := range insightdomain.Components() {
		names = append(names, c.Name)
	}

	cmd := &cobra.Command{
		Use:   "blueprint",
		Short: "Generate backend code for one component",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.NewWithOverrides(flags.logLevel, flags.logFormat)
			cfg, err := config.Load(log)
			if err != nil {
				return err
			}
			// Blueprints never touch the store.
			cfg.Store.Driver = config.StoreDriverMemory
			cfg.Events.NATSURL = ""

			application, err := app.New(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer closeApp(application, log)

			code, err := application.Services().Insight.Blueprint(cmd.Context(), component)
			if err != nil {
				return fmt.Errorf("%w: %q (want one of %s)", err, component, strings.Join(names, ", "))
			}
			fmt.Fprintln(cmd.OutOrStdout(), code)
			return nil
		},
	}
	cmd.Flags().StringVar(&component, "component", "sql", "Component to generate: "+strings.Join(names, ", "))
	return cmd
}

func build(ctx context.Context, log logger.Logger) (*app.App, error) {
	cfg, err := config.Load(log)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return app.New(ctx, cfg, log)
}

func closeApp(application *app.App, log logger.Logger) {
	if err := application.Close(); err != nil {
		log.Error("app: close failed", "err", err)
	}
}

func serve(flags *globalFlags) error {
	log := logger.NewWithOverrides(flags.logLevel, flags.logFormat)
	log.Info("app: starting", "version", Version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := build(ctx, log)
	if err != nil {
		log.Critical("app: init failed", "err", err)
		return err
	}

	srv := application.HTTPServer()
	log.Info("http: listening", "addr", srv.Addr)

	serverErrCh := make(chan error, 1)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	var failures []error
	select {
	case <-ctx.Done():
		log.Info("app: shutdown signal received")
	case err := <-serverErrCh:
		if err != nil {
			log.Critical("http: server failed", "addr", srv.Addr, "err", err)
			failures = append(failures, err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http: graceful shutdown failed", "err", err)
		failures = append(failures, err)
	}

	if err := application.Close(); err != nil {
		log.Error("app: close failed", "err", err)
		failures = append(failures, err)
	}

	if len(failures) == 0 {
		log.Info("app: stopped")
		return nil
	}
	return errors.Join(failures...)
}
