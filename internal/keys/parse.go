package keys

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"key-redeemer/internal/model"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"
)

// csvHeaderTitle is the first header cell skipped by the csv parser.
const csvHeaderTitle = "game title"

// Parse decodes a candidate list in the given format.
func Parse(r io.Reader, format Format) ([]model.CandidateEntry, error) {
	switch format {
	case FormatCSV:
		return parseCSV(r)
	case FormatYAML:
		return parseYAML(r)
	case FormatText:
		return parseText(r)
	default:
		return nil, fmt.Errorf("unsupported candidate format %q: %w", format, model.ErrInvalidCandidates)
	}
}

func parseCSV(r io.Reader) ([]model.CandidateEntry, error) {
	reader := csv.NewReader(skipBOM(r))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var entries []model.CandidateEntry
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv line %d: %w", line, err)
		}

		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), csvHeaderTitle) {
			continue
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("csv line %d has %d fields, want at least 2: %w", line, len(record), model.ErrInvalidCandidates)
		}

		entries = append(entries, model.CandidateEntry{
			Title: strings.TrimSpace(record[0]),
			Key:   strings.TrimSpace(record[1]),
		})
	}

	return entries, nil
}

func parseYAML(r io.Reader) ([]model.CandidateEntry, error) {
	var entries []model.CandidateEntry

	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&entries); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode yaml candidates: %w", err)
	}

	for i := range entries {
		entries[i].Title = strings.TrimSpace(entries[i].Title)
		entries[i].Key = strings.TrimSpace(entries[i].Key)
	}

	return entries, nil
}

func parseText(r io.Reader) ([]model.CandidateEntry, error) {
	scanner := bufio.NewScanner(skipBOM(r))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var runs []string
	for scanner.Scan() {
		// Blank lines are kept: they separate a title from an unrelated key.
		runs = append(runs, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read text candidates: %w", err)
	}

	return Extract(runs), nil
}

// skipBOM drops a leading UTF-8 byte order mark, which spreadsheet exports add.
func skipBOM(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.UTF8BOM.NewDecoder())
}
