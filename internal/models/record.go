package models

// FileRecord is one discovered markdown file flowing through the lint pipeline.
// Contents start empty; files are never read up front, the linter only needs Path.
type FileRecord struct {
	Path     string // Path as produced by glob expansion
	Contents []byte // Lint findings for the file (empty when clean)
}

// HasFindings reports whether the record carries lint output
func (r *FileRecord) HasFindings() bool {
	return len(r.Contents) > 0
}
