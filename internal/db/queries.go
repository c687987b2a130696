package db

import (
	"context"
	"database/sql"

	"github.com/hpungsan/daybook/internal/entry"
	"github.com/hpungsan/daybook/internal/errors"
)

// ConflictMode selects what happens when an insert collides on uuid.
type ConflictMode int

const (
	// ConflictReplace overwrites the existing row (INSERT OR REPLACE).
	ConflictReplace ConflictMode = iota
	// ConflictIgnore keeps the existing row untouched (INSERT OR IGNORE).
	ConflictIgnore
)

// entryColumns is the column list shared by all entry queries.
const entryColumns = "uuid, app_id, content, category, tags, date, date_iso, timestamp"

// InsertEntry writes one entry row. The mode decides whether an existing
// row with the same uuid is replaced or left untouched.
func InsertEntry(ctx context.Context, db *sql.DB, r entry.Row, mode ConflictMode) error {
	verb := "INSERT OR REPLACE"
	if mode == ConflictIgnore {
		verb = "INSERT OR IGNORE"
	}

	query := verb + ` INTO entries (` + entryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := db.ExecContext(ctx, query,
		r.UUID, r.AppID, r.Content, r.Category,
		r.TagsJSON, r.Date, r.DateISO, r.Timestamp,
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	return nil
}

// ListByApp retrieves rows for one app ordered by timestamp descending,
// bounded by limit and offset.
func ListByApp(ctx context.Context, db *sql.DB, appID string, limit, offset int) ([]entry.Row, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE app_id = ?
		ORDER BY timestamp DESC
		LIMIT ? OFFSET ?
	`

	rows, err := db.QueryContext(ctx, query, appID, limit, offset)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	return scanEntryRows(rows)
}

// AllByApp retrieves every row for one app. The sync reconciler does a full
// scan per call; acceptable only at small-to-moderate per-app table sizes.
func AllByApp(ctx context.Context, db *sql.DB, appID string) ([]entry.Row, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE app_id = ?`

	rows, err := db.QueryContext(ctx, query, appID)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	return scanEntryRows(rows)
}

// DeleteByID removes every row with the given uuid, across all apps.
// Ids are globally unique, so this touches at most one row in practice.
// Deleting a nonexistent id is not an error.
func DeleteByID(ctx context.Context, db *sql.DB, id string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM entries WHERE uuid = ?`, id)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// AppCount is one row of the per-app inventory.
type AppCount struct {
	AppID string `json:"appId"`
	Count int    `json:"count"`
}

// CountByApp returns the distinct app ids and their entry counts.
func CountByApp(ctx context.Context, db *sql.DB) ([]AppCount, error) {
	query := `
		SELECT app_id, COUNT(*)
		FROM entries
		GROUP BY app_id
		ORDER BY app_id
	`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var counts []AppCount
	for rows.Next() {
		var c AppCount
		if err := rows.Scan(&c.AppID, &c.Count); err != nil {
			return nil, errors.NewInternal(err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return counts, nil
}

// scanEntryRows scans a result set into entry rows.
func scanEntryRows(rows *sql.Rows) ([]entry.Row, error) {
	var result []entry.Row
	for rows.Next() {
		var r entry.Row
		err := rows.Scan(
			&r.UUID, &r.AppID, &r.Content, &r.Category,
			&r.TagsJSON, &r.Date, &r.DateISO, &r.Timestamp,
		)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return result, nil
}
