package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/dsckit/internal/config"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for dsckit
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dsckit",
		Short: "Build utilities for DSC resource repositories",
		Long: `dsckit carries the build tasks shared by DSC resource repositories.

test-mdsyntax lints the repository's markdown documentation and writes every
finding to a single report file. describe-tests lists the execution
descriptors attached to the repository's test scripts.`,
		Version: Version,
		// main prints the error; usage is not repeated
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: .dsckit/config.yaml)")
	cmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error (default from config)")

	cmd.AddCommand(NewTestMdSyntaxCommand())
	cmd.AddCommand(NewDescribeTestsCommand())

	return cmd
}

// loadConfig resolves the configuration for a subcommand: the --config file
// (or .dsckit/config.yaml), then --log-level, then validation.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if cmd.Flags().Changed("log-level") {
		level, _ := cmd.Flags().GetString("log-level")
		cfg.MergeWithFlags(&level, nil)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
