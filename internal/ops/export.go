package ops

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hpungsan/daybook/internal/db"
	"github.com/hpungsan/daybook/internal/entry"
	"github.com/hpungsan/daybook/internal/errors"
)

// exportSchemaVersion identifies the export file format.
const exportSchemaVersion = "1.0"

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	AppID string // required
	Path  string // required; parent directories are created
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path       string `json:"path"`
	Count      int    `json:"count"`
	ExportedAt int64  `json:"exported_at"`
}

// ExportHeader is the first line of a JSONL export file.
type ExportHeader struct {
	DaybookExport bool   `json:"_daybook_export"`
	SchemaVersion string `json:"schema_version"`
	AppID         string `json:"app_id"`
	ExportedAt    int64  `json:"exported_at"`
}

// Export writes one app's entries to a JSONL file: a header line followed
// by one entry per line, newest first.
func Export(ctx context.Context, database *sql.DB, input ExportInput) (*ExportOutput, error) {
	if input.AppID == "" {
		return nil, errors.NewMissingParameter("appId")
	}
	if input.Path == "" {
		return nil, errors.NewInvalidRequest("export path is required")
	}

	// LIMIT -1 is "no limit" in SQLite; exports always cover the whole app.
	rows, err := db.ListByApp(ctx, database, input.AppID, -1, 0)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(input.Path), 0700); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	file, err := os.OpenFile(input.Path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export file: %w", err))
	}
	defer file.Close()

	exportedAt := time.Now().Unix()
	w := bufio.NewWriter(file)
	enc := json.NewEncoder(w)

	header := ExportHeader{
		DaybookExport: true,
		SchemaVersion: exportSchemaVersion,
		AppID:         input.AppID,
		ExportedAt:    exportedAt,
	}
	if err := enc.Encode(header); err != nil {
		return nil, errors.NewInternal(err)
	}

	for _, r := range rows {
		if err := enc.Encode(entry.FromRow(r)); err != nil {
			return nil, errors.NewInternal(err)
		}
	}

	if err := w.Flush(); err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := file.Close(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return &ExportOutput{
		Path:       input.Path,
		Count:      len(rows),
		ExportedAt: exportedAt,
	}, nil
}
