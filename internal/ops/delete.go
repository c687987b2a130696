package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/daybook/internal/db"
	"github.com/hpungsan/daybook/internal/errors"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	ID string
}

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	Success bool `json:"success"`
}

// Delete removes the entry with the given id across all apps. Ids are
// assumed globally unique, so no appId scoping is applied. Deleting an id
// that does not exist is a successful no-op.
func Delete(ctx context.Context, database *sql.DB, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.NewInvalidRequest("entry id is required")
	}

	if err := db.DeleteByID(ctx, database, input.ID); err != nil {
		return nil, err
	}

	return &DeleteOutput{Success: true}, nil
}
