package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/daybook/internal/db"
)

// AppsOutput contains the result of the Apps operation.
type AppsOutput struct {
	Apps []db.AppCount `json:"apps"`
}

// Apps returns the inventory of app namespaces with their entry counts.
func Apps(ctx context.Context, database *sql.DB) (*AppsOutput, error) {
	counts, err := db.CountByApp(ctx, database)
	if err != nil {
		return nil, err
	}
	if counts == nil {
		counts = []db.AppCount{}
	}

	return &AppsOutput{Apps: counts}, nil
}
