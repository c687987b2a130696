package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/daybook/internal/db"
	"github.com/hpungsan/daybook/internal/entry"
	"github.com/hpungsan/daybook/internal/errors"
)

// SyncInput contains parameters for the Sync operation.
type SyncInput struct {
	AppID        string // required
	LocalEntries []entry.Entry
}

// SyncOutput contains the result of the Sync operation. Downloaded holds
// the server entries the client was missing; Uploaded counts submission
// attempts, including entries ignored because the server already had the id.
type SyncOutput struct {
	Downloaded []entry.Entry `json:"downloaded"`
	Uploaded   int           `json:"uploaded"`
}

// Sync reconciles a client's local entry set with the server's set for one
// app in a single round trip, with no sync cursor or change log.
//
// The diff is a pure set difference by id: a server entry is sent down only
// when its id is absent from the client's set. No content or timestamp
// comparison happens, so a stale local copy with a matching id is treated
// as already present. Uploads use ignore-on-conflict, the opposite of
// Upsert's replace: an id the server already holds keeps the server copy.
// Sync therefore never lets a client overwrite server data.
//
// The reconciliation is not transactional. A failure mid-upload leaves a
// partial upload, but re-running is safe: inserts ignore existing ids and
// the diff recomputes from current state.
func Sync(ctx context.Context, database *sql.DB, input SyncInput) (*SyncOutput, error) {
	if input.AppID == "" {
		return nil, errors.NewMissingParameter("appId")
	}

	// Full scan of the server's side. O(entries per app) per call.
	serverRows, err := db.AllByApp(ctx, database, input.AppID)
	if err != nil {
		return nil, err
	}

	localIDs := make(map[string]struct{}, len(input.LocalEntries))
	for _, e := range input.LocalEntries {
		localIDs[e.ID] = struct{}{}
	}

	downloaded := make([]entry.Entry, 0)
	for _, r := range serverRows {
		if _, ok := localIDs[r.UUID]; !ok {
			downloaded = append(downloaded, entry.FromRow(r))
		}
	}

	// Upload under the request's appId regardless of what each entry
	// carries; the sync namespace is the appId parameter.
	for _, e := range input.LocalEntries {
		e.AppID = input.AppID
		if err := db.InsertEntry(ctx, database, entry.ToRow(e), db.ConflictIgnore); err != nil {
			return nil, err
		}
	}

	return &SyncOutput{
		Downloaded: downloaded,
		Uploaded:   len(input.LocalEntries),
	}, nil
}
