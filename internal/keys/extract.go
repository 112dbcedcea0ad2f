package keys

import (
	"regexp"
	"strings"

	"key-redeemer/internal/model"
)

var datePattern = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}$`)

// Extract pairs titles with keys from a sequence of text runs.
// A run that is a valid key is paired with the most recent title; any
// other run becomes the pending title, except dates, which clear it.
// Keys without a pending title are dropped.
func Extract(runs []string) []model.CandidateEntry {
	var entries []model.CandidateEntry
	title := ""

	for _, run := range runs {
		text := strings.TrimSpace(run)

		switch {
		case IsValidKey(text):
			if title != "" {
				entries = append(entries, model.CandidateEntry{Title: title, Key: text})
				title = ""
			}
		case datePattern.MatchString(text):
			title = ""
		default:
			title = text
		}
	}

	return entries
}
