package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type sampleEntry struct {
	Title string `yaml:"title"`
	Key   string `yaml:"key"`
}

// generateSampleCandidates writes the same candidate list in every supported
// format so each loader can be tried by hand.
// Valid keys: Portal 2, Half-Life 3, Foo, Bar
// Malformed key: Typo Quest
// Empty key: Bonus Soundtrack
func main() {
	dataDir := "data/candidates"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	entries := []sampleEntry{
		{Title: "Portal 2", Key: "AAAAA-BBBBB-CCCCC"},
		{Title: "Half-Life 3", Key: "DDDDD-EEEEE-FFFFF"},
		{Title: "Foo, Bar", Key: "GGGGG-HHHHH-IIIII"},
		{Title: "Typo Quest", Key: "JJJJ-KKKKK-LLLLL"},
		{Title: "Bonus Soundtrack", Key: ""},
	}

	writers := map[string]func(string, []sampleEntry) error{
		"keys.csv":  writeCSV,
		"keys.yaml": writeYAML,
		"keys.txt":  writeText,
	}

	for filename, write := range writers {
		filePath := filepath.Join(dataDir, filename)

		if err := write(filePath, entries); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d entries\n", filePath, len(entries))
	}

	fmt.Println("\nSample candidate files created successfully!")
	fmt.Println("\nRun with, for example:")
	fmt.Println("  CANDIDATES_PATH=data/candidates/keys.yaml CANDIDATES_FORMAT=yaml REDEEM_MODE=export go run ./cmd/redeemer")
}

func writeCSV(filePath string, entries []sampleEntry) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"Game Title", "Steam Key"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, entry := range entries {
		if err := writer.Write([]string{entry.Title, entry.Key}); err != nil {
			return fmt.Errorf("failed to write entry: %w", err)
		}
	}
	writer.Flush()

	return writer.Error()
}

func writeYAML(filePath string, entries []sampleEntry) error {
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode entries: %w", err)
	}

	return os.WriteFile(filePath, data, 0644)
}

// writeText mimics text pulled out of a bundle page: a purchase date, then
// title and key lines.
func writeText(filePath string, entries []sampleEntry) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := fmt.Fprintln(file, "10/16/2026"); err != nil {
		return fmt.Errorf("failed to write date: %w", err)
	}
	for _, entry := range entries {
		if entry.Key == "" {
			continue
		}
		if _, err := fmt.Fprintf(file, "%s\n%s\n", entry.Title, entry.Key); err != nil {
			return fmt.Errorf("failed to write entry: %w", err)
		}
	}

	return nil
}
