// Package pipeline runs the documentation lint task: it streams files matched
// by glob patterns through the markdown linter and writes one aggregated
// report.
//
// The task is three stages linked by unbuffered channels:
//
//	source (glob expansion) -> lint (one evaluation per file) -> sink (report)
//
// Discovery and linting interleave; each FileRecord is owned by exactly one
// stage at a time. The report is written once, after every stage finished.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/harrison/dsckit/internal/config"
	"github.com/harrison/dsckit/internal/filelock"
	"github.com/harrison/dsckit/internal/fileutil"
	"github.com/harrison/dsckit/internal/mdlint"
	"github.com/harrison/dsckit/internal/models"
)

// ErrLintFailures is returned (joined with every FileError) when one or more
// files could not be evaluated. The report has still been written.
var ErrLintFailures = errors.New("markdown lint failed for one or more files")

// Linter evaluates markdown files. *mdlint.Linter satisfies it.
type Linter interface {
	Lint(opts mdlint.Options) (mdlint.Result, error)
}

// Logger receives task events. *logger.ConsoleLogger satisfies it.
type Logger interface {
	LogRunStart(runID string, patterns []string)
	LogFileLinted(path string, findings int)
	LogFileError(path string, err error)
	LogRunComplete(summary models.LintSummary)
}

// WriteFunc persists the aggregated report.
type WriteFunc func(path string, data []byte) error

// SettingsFunc supplies the rule settings. It is called once, when the first
// file is discovered, and never when no file matches.
type SettingsFunc func() (mdlint.Settings, error)

// FileError is a per-file lint failure.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// LintedRecord is a FileRecord after evaluation, with the per-file error
// forwarded alongside rather than halting the pipeline.
type LintedRecord struct {
	Record models.FileRecord
	Err    error
}

// Outcome is what a completed run produced.
type Outcome struct {
	Report  *models.Report
	Summary models.LintSummary
	Failed  []*FileError
}

// Task is one invocation of the documentation lint task.
type Task struct {
	Patterns []string // ordered glob patterns; may be empty
	Output   string   // report path

	LoadSettings SettingsFunc // defaults to mdlint.DefaultSettings

	Linter   Linter        // defaults to the built-in mdlint rule set
	Logger   Logger        // defaults to discarding events
	Write    WriteFunc     // defaults to filelock.LockAndWrite
	NewRunID func() string // defaults to uuid.NewString
}

// Run executes the task. Fatal errors (bad pattern, settings that cannot be
// loaded, cancelled context, write failure) return without a report
// guarantee. Per-file errors are logged, the file contributes an empty entry,
// the report is written, and the returned error wraps ErrLintFailures.
func (t *Task) Run(ctx context.Context) (*Outcome, error) {
	t.applyDefaults()

	start := time.Now()
	runID := t.NewRunID()
	t.Logger.LogRunStart(runID, t.Patterns)

	report := &models.Report{}
	var failed []*FileError

	g, gctx := errgroup.WithContext(ctx)
	discovered := make(chan models.FileRecord)
	linted := make(chan LintedRecord)

	g.Go(func() error {
		defer close(discovered)
		return t.discover(gctx, discovered)
	})

	g.Go(func() error {
		defer close(linted)
		var settings mdlint.Settings
		loaded := false
		for record := range discovered {
			if !loaded {
				var err error
				if settings, err = t.LoadSettings(); err != nil {
					return err
				}
				loaded = true
			}
			select {
			case linted <- t.lintRecord(record, settings):
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	g.Go(func() error {
		for lr := range linted {
			report.Add(lr.Record)
			if lr.Err != nil {
				failed = append(failed, &FileError{Path: lr.Record.Path, Err: lr.Err})
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := t.Write(t.Output, report.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}

	outcome := &Outcome{
		Report: report,
		Failed: failed,
		Summary: models.LintSummary{
			RunID:             runID,
			Patterns:          t.Patterns,
			Files:             report.Len(),
			FilesWithFindings: report.FilesWithFindings(),
			FailedFiles:       len(failed),
			Output:            t.Output,
			Duration:          time.Since(start),
		},
	}
	t.Logger.LogRunComplete(outcome.Summary)

	if len(failed) > 0 {
		errs := make([]error, 0, len(failed)+1)
		errs = append(errs, ErrLintFailures)
		for _, fe := range failed {
			errs = append(errs, fe)
		}
		return outcome, errors.Join(errs...)
	}
	return outcome, nil
}

func (t *Task) applyDefaults() {
	if t.Linter == nil {
		t.Linter = mdlint.New()
	}
	if t.Logger == nil {
		t.Logger = discardLogger{}
	}
	if t.LoadSettings == nil {
		t.LoadSettings = func() (mdlint.Settings, error) {
			return mdlint.DefaultSettings(), nil
		}
	}
	if t.Write == nil {
		t.Write = filelock.LockAndWrite
	}
	if t.NewRunID == nil {
		t.NewRunID = uuid.NewString
	}
	if t.Output == "" {
		t.Output = config.DefaultOutput
	}
}

// discover expands every pattern in order, emitting one record per match.
func (t *Task) discover(ctx context.Context, out chan<- models.FileRecord) error {
	for _, pattern := range t.Patterns {
		err := fileutil.WalkPattern(pattern, func(path string) error {
			select {
			case out <- models.FileRecord{Path: path}:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// lintRecord evaluates one file. Non-empty result text replaces the record's
// contents; on error the contents stay empty.
func (t *Task) lintRecord(record models.FileRecord, settings mdlint.Settings) LintedRecord {
	result, err := t.Linter.Lint(mdlint.Options{
		Files:  []string{record.Path},
		Config: settings,
	})
	if err != nil {
		t.Logger.LogFileError(record.Path, err)
		return LintedRecord{Record: record, Err: err}
	}

	if text := result.String(); text != "" {
		record.Contents = []byte(text)
	}
	t.Logger.LogFileLinted(record.Path, result.Count())
	return LintedRecord{Record: record}
}

type discardLogger struct{}

func (discardLogger) LogRunStart(string, []string)      {}
func (discardLogger) LogFileLinted(string, int)         {}
func (discardLogger) LogFileError(string, error)        {}
func (discardLogger) LogRunComplete(models.LintSummary) {}
