package models

import "bytes"

// ReportSeparator joins report entries.
const ReportSeparator = "\r\n"

// Report is the ordered concatenation of every processed FileRecord.
type Report struct {
	Records []FileRecord
}

// Add appends a record to the report in arrival order
func (r *Report) Add(record FileRecord) {
	r.Records = append(r.Records, record)
}

// Len returns the number of entries in the report
func (r *Report) Len() int {
	return len(r.Records)
}

// FilesWithFindings counts records whose contents are non-empty
func (r *Report) FilesWithFindings() int {
	count := 0
	for i := range r.Records {
		if r.Records[i].HasFindings() {
			count++
		}
	}
	return count
}

// Bytes joins every record's contents with ReportSeparator.
// Records with empty contents still contribute an (empty) entry.
func (r *Report) Bytes() []byte {
	parts := make([][]byte, len(r.Records))
	for i := range r.Records {
		parts[i] = r.Records[i].Contents
	}
	return bytes.Join(parts, []byte(ReportSeparator))
}
