// Package tokenadapter adapts the two input shapes a Vectorizer accepts
// (plain token strings, and field-bearing records) into the single string
// stream the segmentation pipeline consumes.
package tokenadapter

import "strings"

// Record is a field-bearing input row. Missing fields are treated as empty
// strings, never as an error.
type Record map[string]string

// Extract joins the named fields of rec, in order, with a single space.
func Extract(rec Record, fields []string) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = rec[f]
	}
	return strings.Join(parts, " ")
}

// AdaptRecords extracts and joins fields from each record, producing the
// same plain token-string shape a Vectorizer consumes directly.
func AdaptRecords(records []Record, fields []string) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = Extract(r, fields)
	}
	return out
}
