// Package cmd contains all CLI command definitions.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fitz/taskflow/internal/config"
	"github.com/fitz/taskflow/internal/docker"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
)

var rootCmd = &cobra.Command{
	Use:   "taskflow",
	Short: "Taskflow - task scheduling with month, week and timeline views",
	Long: `Taskflow keeps a list of tasks with a status, a date and time span and a
category, and lays them out on a month grid, a week grid and a timeline.

The same controller is available as an interactive terminal board, an MCP
tool server for AI agents and an HTTP JSON API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if skipSetup(cmd) {
			return nil
		}

		dir, _ := cmd.Flags().GetString("dir")
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("invalid directory: %w", err)
		}

		loaded, err := config.Load(absDir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w\nRun 'taskflow config list' to inspect the configuration", err)
		}
		cfg = loaded

		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: cfg.SlogLevel(),
		}))
		slog.SetDefault(logger)

		if noDocker, _ := cmd.Flags().GetBool("no-docker"); noDocker || !cfg.UsesNeo4j() {
			return nil
		}
		return ensureNeo4jContainer(cmd.Context())
	},
}

// skipSetup reports whether cmd runs without configuration, such as the
// config subcommands and cobra's built-ins.
func skipSetup(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "completion", "help", configCmd.Name():
			return true
		}
	}
	return false
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringP("dir", "d", ".", "Directory holding the local .env file")
	rootCmd.PersistentFlags().Bool("no-docker", false, "Do not start the Neo4j container automatically")
}

// exitWithError prints an error message and exits with code 1.
func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// ensureNeo4jContainer ensures that the Neo4j Docker container is running.
func ensureNeo4jContainer(ctx context.Context) error {
	containerCfg := &docker.ContainerConfig{
		Name:     cfg.ContainerName,
		Image:    cfg.Neo4jImage,
		URI:      cfg.Neo4jURI,
		Username: cfg.Neo4jUsername,
		Password: cfg.Neo4jPassword,
	}

	manager := docker.NewManager(nil)
	created, err := manager.Ensure(ctx, containerCfg)
	if err != nil {
		return fmt.Errorf("failed to ensure Neo4j container: %w", err)
	}

	if created {
		fmt.Fprintf(os.Stderr, "✓ Created Neo4j container '%s'\n", containerCfg.Name)
		fmt.Fprintf(os.Stderr, "  Waiting for Neo4j to be ready...\n")

		if err := manager.WaitReady(ctx, containerCfg.Name, 30*time.Second); err != nil {
			fmt.Fprintf(os.Stderr, "  Warning: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "  ✓ Neo4j is ready\n")
		}
	}

	return nil
}
