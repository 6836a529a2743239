package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"log-analyzer/internal/shared/configs"

	"github.com/spf13/cobra"
)

// DefaultConfigPath is read when --config is not given and the file exists.
const DefaultConfigPath = "configs/configs.yml"

// NewRootCommand builds the log-analyzer command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "log-analyzer",
		Short: "log-analyzer builds per-URL request time reports from nginx access logs",
		Long: `log-analyzer finds the newest rotated nginx UI access log, aggregates request
times per URL and writes an HTML and JSON report named after the log's date.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default: "+DefaultConfigPath+" when present)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: trace, debug, info, warn, error")

	rootCmd.AddCommand(newReportCommand())
	rootCmd.AddCommand(newServeCommand())
	return rootCmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), styleError.Render("error: "+err.Error()))
		return 1
	}
	return 0
}

// loadConfig merges the config file with the flags the user set on cmd.
func loadConfig(cmd *cobra.Command) (*configs.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if path == "" {
		if _, err := os.Stat(DefaultConfigPath); err == nil {
			path = DefaultConfigPath
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to check default config %s: %w", DefaultConfigPath, err)
		}
	}
	return configs.LoadConfig(path, cmd.Flags())
}
