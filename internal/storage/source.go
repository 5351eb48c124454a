// ABOUTME: Reads the newline-delimited JSON conversation archive source
// ABOUTME: One message record per line, blank lines ignored
package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/zain/mindsearch/internal/models"
)

// LoadRecords reads message records from an NDJSON file. A malformed line is
// an error: the source archive is the system of record and silently skipping
// lines would hide corruption.
func LoadRecords(path string) ([]models.MessageRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening source file: %w", err)
	}
	defer f.Close()

	var records []models.MessageRecord
	scanner := bufio.NewScanner(f)
	// Single messages can be long; allow lines up to 16MB.
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var r models.MessageRecord
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			return nil, fmt.Errorf("parsing %s line %d: %w", path, lineNo, err)
		}
		records = append(records, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading source file: %w", err)
	}
	return records, nil
}
