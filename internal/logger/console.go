// Package logger provides console logging for dsckit tasks.
//
// The ConsoleLogger writes timestamped, level-filtered lines and renders the
// lint task's run, per-file and summary events. It is safe for concurrent use.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/harrison/dsckit/internal/models"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger logs task progress to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps.
// Color output is enabled when the writer is a terminal.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
// NO_COLOR (via color.NoColor) always disables colors.
func isTerminal(w io.Writer) bool {
	if w == nil || color.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	default:
		return "info"
	}
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

// logWithLevel writes "[HH:MM:SS] [LEVEL] message" if filtering allows it.
func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil {
		return
	}
	if !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	label := level
	if cl.colorOutput {
		label = colorForLevel(level).Sprint(level)
	}
	fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", timestamp(), label, message)
}

func colorForLevel(level string) *color.Color {
	switch level {
	case "TRACE":
		return color.New(color.FgHiBlack)
	case "DEBUG":
		return color.New(color.FgCyan)
	case "WARN":
		return color.New(color.FgYellow)
	case "ERROR":
		return color.New(color.FgRed)
	default:
		return color.New(color.FgBlue)
	}
}

// LogRunStart logs the start of a lint run at INFO level.
// Format: "[HH:MM:SS] [INFO] Lint run <id>: <n> patterns"
func (cl *ConsoleLogger) LogRunStart(runID string, patterns []string) {
	cl.LogInfo(fmt.Sprintf("Lint run %s: %d patterns", runID, len(patterns)))
	for _, p := range patterns {
		cl.LogTrace("  pattern " + p)
	}
}

// LogFileLinted logs one linted file at DEBUG level.
func (cl *ConsoleLogger) LogFileLinted(path string, findings int) {
	if findings == 0 {
		cl.LogDebug(path + ": clean")
		return
	}
	cl.LogDebug(fmt.Sprintf("%s: %d findings", path, findings))
}

// LogFileError logs a per-file lint failure at WARN level.
func (cl *ConsoleLogger) LogFileError(path string, err error) {
	cl.LogWarn(fmt.Sprintf("%s: lint failed: %v", path, err))
}

// LogRunComplete logs the run summary at INFO level, or ERROR when any file failed.
// Format: "[HH:MM:SS] [INFO] Linted N files (M with findings, K failed) -> out (1.2s)"
func (cl *ConsoleLogger) LogRunComplete(summary models.LintSummary) {
	findings := fmt.Sprintf("%d with findings", summary.FilesWithFindings)
	failed := fmt.Sprintf("%d failed", summary.FailedFiles)
	if cl.colorOutput {
		if summary.FilesWithFindings > 0 {
			findings = color.New(color.FgYellow).Sprint(findings)
		} else {
			findings = color.New(color.FgGreen).Sprint(findings)
		}
		if summary.FailedFiles > 0 {
			failed = color.New(color.FgRed).Sprint(failed)
		}
	}
	line := fmt.Sprintf("Linted %d files (%s, %s) -> %s (%s)",
		summary.Files, findings, failed, summary.Output, formatDuration(summary.Duration))
	if summary.FailedFiles > 0 {
		cl.LogError(line)
		return
	}
	cl.LogInfo(line)
}

// timestamp returns the current time formatted as HH:MM:SS.
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration renders d compactly: "850ms", "1.2s", "3m5s".
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return d.Round(time.Second).String()
	}
}
