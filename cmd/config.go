package cmd

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/fitz/taskflow/internal/config"
	"github.com/spf13/cobra"
)

// secretKeys are masked by config list.
var secretKeys = []string{config.KeyNeo4jPassword}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration settings",
	Long:  `View and modify configuration settings for Taskflow.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the .env file (local or global).

Use --global flag to set in the global configuration (~/.taskflow/config).
Otherwise, sets in the local .env file.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		key, value := args[0], args[1]
		if !slices.Contains(config.Keys, key) {
			exitWithError(fmt.Errorf("unknown key %q (valid: %v)", key, config.Keys))
		}

		if global, _ := cmd.Flags().GetBool("global"); global {
			if err := config.SetGlobalConfig(key, value); err != nil {
				exitWithError(err)
			}
			fmt.Printf("✓ Set %s (global)\n", key)
			return
		}

		absDir := mustAbsDir(cmd)
		if err := config.Set(absDir, key, value); err != nil {
			exitWithError(err)
		}
		fmt.Printf("✓ Set %s (local)\n", key)
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get a configuration value",
	Long:  `Retrieve a configuration value from the local .env file, or the global file with --global.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key := args[0]

		var value string
		var err error
		if global, _ := cmd.Flags().GetBool("global"); global {
			value, err = config.GetGlobalConfig(key)
		} else {
			value, err = config.Get(mustAbsDir(cmd), key)
		}
		if err != nil {
			exitWithError(err)
		}

		fmt.Printf("%s=%s\n", key, value)
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Long:  `Display every resolved configuration value with its default applied.`,
	Run: func(cmd *cobra.Command, args []string) {
		loaded, err := config.Load(mustAbsDir(cmd))
		if err != nil {
			// If validation fails, still show what we can load
			fmt.Printf("Configuration (invalid: %v):\n", err)
		} else {
			fmt.Println("Configuration:")
		}

		values := loaded.Values()
		for _, key := range config.Keys {
			value := values[key]
			if slices.Contains(secretKeys, key) {
				value = maskPassword(value)
			} else if value == "" {
				value = "(not set)"
			}
			fmt.Printf("  %s: %s\n", key, value)
		}
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)

	configSetCmd.Flags().Bool("global", false, "Set in global config instead of local")
	configGetCmd.Flags().Bool("global", false, "Read from global config instead of local")
}

func mustAbsDir(cmd *cobra.Command) string {
	dir, _ := cmd.Flags().GetString("dir")
	absDir, err := filepath.Abs(dir)
	if err != nil {
		exitWithError(fmt.Errorf("invalid directory: %w", err))
	}
	return absDir
}

// maskPassword masks a password string for display.
func maskPassword(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + "****" + s[len(s)-2:]
}
