package ops

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hpungsan/daybook/internal/entry"
	"github.com/hpungsan/daybook/internal/errors"
)

// maxImportLineBytes bounds a single JSONL line during import.
const maxImportLineBytes = 1 << 20

// ImportInput contains parameters for the Import operation.
type ImportInput struct {
	Path  string // required
	AppID string // optional; overrides the appId of every imported entry
}

// ImportOutput contains the result of the Import operation.
type ImportOutput struct {
	Count int `json:"count"`
}

// Import reads a JSONL export file and upserts its entries with replace
// semantics, so re-importing the same file is idempotent.
func Import(ctx context.Context, database *sql.DB, input ImportInput) (*ImportOutput, error) {
	if input.Path == "" {
		return nil, errors.NewInvalidRequest("import path is required")
	}

	file, err := os.Open(input.Path)
	if err != nil {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("cannot open import file: %v", err))
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxImportLineBytes)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, errors.NewInternal(err)
		}
		return nil, errors.NewInvalidRequest("import file is empty")
	}

	var header ExportHeader
	if err := json.Unmarshal(scanner.Bytes(), &header); err != nil || !header.DaybookExport {
		return nil, errors.NewInvalidRequest("not a daybook export file (missing header)")
	}
	if header.SchemaVersion != exportSchemaVersion {
		return nil, errors.NewInvalidRequest(
			fmt.Sprintf("unsupported export schema version %q", header.SchemaVersion))
	}

	var entries []entry.Entry
	line := 1
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var e entry.Entry
		if err := json.Unmarshal([]byte(text), &e); err != nil {
			return nil, errors.NewInvalidRequest(fmt.Sprintf("malformed entry on line %d: %v", line, err))
		}
		if input.AppID != "" {
			e.AppID = input.AppID
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	out, err := Upsert(ctx, database, UpsertInput{Entries: entries})
	if err != nil {
		return nil, err
	}

	return &ImportOutput{Count: out.Count}, nil
}
