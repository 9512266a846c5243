package main

import (
	"fmt"
	"os"
	"strconv"

	"immunization-tracker/cmd/bootstrap"
	"immunization-tracker/config"
	"immunization-tracker/internal/catalog"
	"immunization-tracker/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "immunization-tracker",
	Short: "Child immunization record keeper",
	RunE:  runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return database.MigrateUp(cfg.DB)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Roll back migrations (default 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := 1
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("steps must be a positive integer, got %q", args[0])
			}
			steps = n
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return database.MigrateDown(cfg.DB, steps)
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Vaccine catalog tools",
}

var catalogCheckCmd = &cobra.Command{
	Use:   "check <path>",
	Short: "Validate a vaccine catalog document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalog.Load(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d vaccines\n", args[0], c.Len())
		return nil
	},
}

func runServe(cmd *cobra.Command, args []string) error {
	app, err := bootstrap.New()
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	app.Run()
	return nil
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	catalogCmd.AddCommand(catalogCheckCmd)
	rootCmd.AddCommand(serveCmd, migrateCmd, catalogCmd)
	rootCmd.SilenceUsage = true
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
