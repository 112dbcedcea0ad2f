package keys

import (
	"context"

	"key-redeemer/internal/model"
)

// Loader defines the interface for loading candidate lists.
type Loader interface {
	// Load reads a candidate list and returns the (title, key) pairs in
	// document order.
	Load(ctx context.Context, path string) ([]model.CandidateEntry, error)
}

// Format identifies the layout of a candidate list.
type Format string

const (
	// FormatCSV is one "title,key" row per line, with an optional header.
	FormatCSV Format = "csv"
	// FormatYAML is a list of {title, key} mappings.
	FormatYAML Format = "yaml"
	// FormatText is an exported document: a title line followed by a key line.
	FormatText Format = "text"
)

// ParseFormat converts a string into a Format.
func ParseFormat(s string) (Format, bool) {
	switch Format(s) {
	case FormatCSV, FormatYAML, FormatText:
		return Format(s), true
	default:
		return "", false
	}
}
