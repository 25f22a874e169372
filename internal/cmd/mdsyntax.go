package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harrison/dsckit/internal/config"
	"github.com/harrison/dsckit/internal/display"
	"github.com/harrison/dsckit/internal/fileutil"
	"github.com/harrison/dsckit/internal/logger"
	"github.com/harrison/dsckit/internal/mdlint"
	"github.com/harrison/dsckit/internal/pipeline"
)

// NewTestMdSyntaxCommand creates the test-mdsyntax subcommand
func NewTestMdSyntaxCommand() *cobra.Command {
	var opts config.LintOptions
	var listFiles bool

	cmd := &cobra.Command{
		Use:   "test-mdsyntax",
		Short: "Lint markdown documentation into markdownissues.txt",
		Long: `Lint markdown files and aggregate every finding into one report.

Inputs:
  --dscresourcespath <dir>  every *.md at any depth below <dir>
  --rootpath <dir>          *.md directly inside <dir>

Both flags may be repeated. Rule settings are read from --settingspath
(default ./.markdownlint.json). The report joins each file's findings with
CRLF; clean files contribute empty entries.

Exit code: 0 on success, 1 if any file could not be linted or the task failed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("output") {
				output, _ := cmd.Flags().GetString("output")
				cfg.MergeWithFlags(nil, &output)
			}
			if listFiles {
				return listMdFiles(opts, cmd.OutOrStdout())
			}
			return runMdSyntax(cmd.Context(), opts, cfg, cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringArrayVar(&opts.ResourcePaths, "dscresourcespath", nil, "Directory searched recursively for *.md files")
	cmd.Flags().StringArrayVar(&opts.RootPaths, "rootpath", nil, "Directory whose top-level *.md files are linted")
	cmd.Flags().StringVar(&opts.SettingsPath, "settingspath", "", "Lint rule-settings file (default: ./.markdownlint.json)")
	cmd.Flags().String("output", "", "Report file (default: markdownissues.txt)")
	cmd.Flags().BoolVar(&listFiles, "list-files", false, "Print the matched files in lint order without linting")

	return cmd
}

// listMdFiles prints every input in report order, one per line.
func listMdFiles(opts config.LintOptions, out io.Writer) error {
	files, err := fileutil.ExpandPatterns(fileutil.BuildPatterns(opts))
	if err != nil {
		return err
	}
	for _, file := range files {
		fmt.Fprintln(out, file)
	}
	return nil
}

// runMdSyntax runs the lint task with logs and warnings written to errOut.
func runMdSyntax(ctx context.Context, opts config.LintOptions, cfg *config.Config, errOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log := logger.NewConsoleLogger(errOut, cfg.LogLevel)

	if opts.Empty() {
		display.WarnNoInputs().Display(errOut)
	}

	settingsPath := opts.ResolveSettingsPath(cfg)
	task := &pipeline.Task{
		Patterns: fileutil.BuildPatterns(opts),
		Output:   cfg.Output,
		Logger:   log,
		LoadSettings: func() (mdlint.Settings, error) {
			log.LogTrace("settings " + settingsPath)
			return mdlint.LoadSettings(settingsPath)
		},
	}

	outcome, err := task.Run(ctx)
	if err != nil && errors.Is(err, pipeline.ErrLintFailures) {
		files := make([]string, 0, len(outcome.Failed))
		for _, fe := range outcome.Failed {
			files = append(files, fe.Path)
		}
		display.WarnFailedFiles(files).Display(errOut)
		return fmt.Errorf("%w (%d of %d files)", pipeline.ErrLintFailures, len(outcome.Failed), outcome.Summary.Files)
	}
	return err
}
