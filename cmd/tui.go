package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fitz/taskflow/internal/config"
	"github.com/fitz/taskflow/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive task board",
	Long: `Open the terminal board with the month, week and timeline views and the
task list. Press ? inside the board for key bindings.

Logs go to ~/.taskflow/tui.log while the board owns the terminal.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runTUI(cmd); err != nil {
			exitWithError(err)
		}
	},
}

func runTUI(cmd *cobra.Command) error {
	if err := config.EnsureGlobalConfigDir(); err != nil {
		return err
	}
	logPath := filepath.Join(config.GetGlobalConfigDir(), "tui.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	logger = slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx := cmd.Context()
	rt, err := openRuntime(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	return tui.Run(ctx, rt.controller)
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
