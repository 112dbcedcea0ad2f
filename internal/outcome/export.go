package outcome

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"key-redeemer/internal/model"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ExportFile is the name of the export-mode report.
const ExportFile = "exported_keys.csv"

var exportHeader = []string{"Game Title", "Steam Key", "Owned"}

// OwnershipChecker reports whether a title is already owned.
type OwnershipChecker func(title string) bool

// Export writes every candidate with its ownership verdict to dir and
// returns the path written. Titles are CSV-quoted rather than rewritten. An
// existing report is replaced.
func Export(dir string, entries []model.CandidateEntry, owned OwnershipChecker) (string, error) {
	path := filepath.Join(dir, ExportFile)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file %s: %w", path, err)
	}
	defer file.Close()

	encoder := transform.NewWriter(file, unicode.UTF8BOM.NewEncoder())
	w := csv.NewWriter(encoder)

	if err := w.Write(exportHeader); err != nil {
		return "", fmt.Errorf("failed to write export header: %w", err)
	}

	for _, entry := range entries {
		verdict := "No"
		if owned(entry.Title) {
			verdict = "Yes"
		}
		if err := w.Write([]string{entry.Title, entry.Key, verdict}); err != nil {
			return "", fmt.Errorf("failed to write export row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush export file: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("failed to finish export file: %w", err)
	}

	return path, file.Close()
}
