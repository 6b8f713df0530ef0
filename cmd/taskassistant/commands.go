package main

import (
	"context"
	"database/sql"
	"fmt"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"taskassistant/internal/app"
	"taskassistant/internal/config"
	"taskassistant/internal/repositories"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "taskassistant",
	Short:         "Task assistant API server",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		log, err := app.NewLogger(cfg.Log)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() { _ = log.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := app.New(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()
		return a.Run(ctx)
	},
}

var applySchema bool

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the database schema, or apply it with --apply",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !applySchema {
			fmt.Fprint(cmd.OutOrStdout(), repositories.Schema, "\n")
			return nil
		}
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if cfg.Database.DSN == "" {
			return fmt.Errorf("database url is not configured")
		}
		db, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		if err := repositories.EnsureSchema(context.Background(), db); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Schema applied.")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "path to the YAML config file")
	schemaCmd.Flags().BoolVar(&applySchema, "apply", false, "apply the schema to the configured database")
	rootCmd.AddCommand(serveCmd, schemaCmd)
}
