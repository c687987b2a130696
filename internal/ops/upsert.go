package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/daybook/internal/db"
	"github.com/hpungsan/daybook/internal/entry"
	"github.com/hpungsan/daybook/internal/errors"
)

// UpsertInput contains parameters for the Upsert operation. The HTTP
// boundary normalizes a single-object body into a one-element slice.
type UpsertInput struct {
	Entries []entry.Entry
}

// UpsertOutput contains the result of the Upsert operation.
type UpsertOutput struct {
	Count int `json:"count"`
}

// Upsert writes each entry with replace-on-conflict semantics keyed on id:
// resubmitting the same id overwrites the row rather than duplicating it.
// Writes are sequential, one statement per entry, with no all-or-nothing
// guarantee; a mid-batch failure leaves earlier entries persisted.
func Upsert(ctx context.Context, database *sql.DB, input UpsertInput) (*UpsertOutput, error) {
	for _, e := range input.Entries {
		if e.ID == "" {
			return nil, errors.NewInvalidRequest("entry id is required")
		}
	}

	for _, e := range input.Entries {
		if err := db.InsertEntry(ctx, database, entry.ToRow(e), db.ConflictReplace); err != nil {
			return nil, err
		}
	}

	return &UpsertOutput{Count: len(input.Entries)}, nil
}
