package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/daybook/internal/db"
	"github.com/hpungsan/daybook/internal/entry"
	"github.com/hpungsan/daybook/internal/errors"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	AppID    string // required
	Limit    int    // default: 100
	Offset   int    // default: 0
	MaxLimit int    // cap from config; 0 means MaxListLimit
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Entries []entry.Entry
}

// List retrieves entries for one app, newest first. Rows are decoded to the
// wire shape so listing and sync return the same representation.
func List(ctx context.Context, database *sql.DB, input ListInput) (*ListOutput, error) {
	if input.AppID == "" {
		return nil, errors.NewMissingParameter("appId")
	}

	limit := clampLimit(input.Limit, input.MaxLimit)
	offset := max(input.Offset, 0)

	rows, err := db.ListByApp(ctx, database, input.AppID, limit, offset)
	if err != nil {
		return nil, err
	}

	entries := make([]entry.Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, entry.FromRow(r))
	}

	return &ListOutput{Entries: entries}, nil
}
