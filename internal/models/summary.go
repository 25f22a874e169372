package models

import "time"

// LintSummary describes one completed lint run
type LintSummary struct {
	RunID             string        // Unique identifier of the run
	Patterns          []string      // Glob patterns that were expanded
	Files             int           // Number of file records processed
	FilesWithFindings int           // Records whose contents are non-empty
	FailedFiles       int           // Records whose lint invocation returned an error
	Output            string        // Report file written
	Duration          time.Duration // Wall time of the run
}
