package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/harrison/dsckit/internal/config"
	"github.com/harrison/dsckit/internal/testmeta"
)

// NewDescribeTestsCommand creates the describe-tests subcommand
func NewDescribeTestsCommand() *cobra.Command {
	var root string
	var sorted bool

	cmd := &cobra.Command{
		Use:   "describe-tests",
		Short: "List test script descriptors as YAML",
		Long: `Scan test scripts for IntegrationTest/UnitTest decorations and print
the execution descriptors (kind, order number, container name and image).

Scripts are matched with the configured test_pattern (default **/*.Tests.ps1)
below --path. Descriptors are listed in discovery order, or by order number
with --sorted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return describeTests(root, sorted, cfg, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&root, "path", ".", "Directory searched for test scripts")
	cmd.Flags().BoolVar(&sorted, "sorted", false, "Order by order number (unordered tests last)")

	return cmd
}

func describeTests(root string, sorted bool, cfg *config.Config, out io.Writer) error {
	descriptors, err := testmeta.Discover(root, cfg.TestPattern)
	if err != nil {
		return fmt.Errorf("failed to discover test descriptors: %w", err)
	}
	if sorted {
		testmeta.SortByOrder(descriptors)
	}
	if descriptors == nil {
		descriptors = []testmeta.Descriptor{}
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(descriptors); err != nil {
		return fmt.Errorf("failed to encode descriptors: %w", err)
	}
	return enc.Close()
}
