package ops

import (
	"context"
	"testing"

	"github.com/hpungsan/daybook/internal/db"
	"github.com/hpungsan/daybook/internal/entry"
	"github.com/stretchr/testify/require"
)

// TestFullWorkflow exercises the complete entry lifecycle across two peers:
// upsert → list → sync down to a client → client syncs its own entries up →
// delete → sync again
func TestFullWorkflow(t *testing.T) {
	database, err := db.Init(t.TempDir())
	require.NoError(t, err)
	defer database.Close()

	ctx := context.Background()
	appID := "workflow"

	// 1. A browser client writes two entries directly
	first := entry.Entry{
		ID:        "client-a-1",
		AppID:     appID,
		Content:   "morning pages",
		Category:  "journal",
		Tags:      []string{"morning"},
		Date:      "Sep 1, 2026",
		DateISO:   "2026-09-01T08:00:00Z",
		Timestamp: 1000,
	}
	second := first
	second.ID = "client-a-2"
	second.Content = "evening notes"
	second.Timestamp = 2000

	upOut, err := Upsert(ctx, database, UpsertInput{Entries: []entry.Entry{first, second}})
	require.NoError(t, err)
	require.Equal(t, 2, upOut.Count)

	// 2. List shows both, newest first, fully decoded
	listOut, err := List(ctx, database, ListInput{AppID: appID})
	require.NoError(t, err)
	require.Len(t, listOut.Entries, 2)
	require.Equal(t, "client-a-2", listOut.Entries[0].ID)
	require.Equal(t, []string{"morning"}, listOut.Entries[1].Tags)

	// 3. A second client with an empty local set syncs: downloads everything
	syncOut, err := Sync(ctx, database, SyncInput{AppID: appID})
	require.NoError(t, err)
	require.Len(t, syncOut.Downloaded, 2)
	require.Equal(t, 0, syncOut.Uploaded)

	// 4. That client writes its own entry locally and syncs both sides
	local := append(syncOut.Downloaded, entry.Entry{
		ID:        "client-b-1",
		Content:   "offline thought",
		Timestamp: 1500,
	})
	syncOut, err = Sync(ctx, database, SyncInput{AppID: appID, LocalEntries: local})
	require.NoError(t, err)
	require.Empty(t, syncOut.Downloaded)
	require.Equal(t, 3, syncOut.Uploaded)

	listOut, err = List(ctx, database, ListInput{AppID: appID})
	require.NoError(t, err)
	require.Len(t, listOut.Entries, 3)

	// 5. Delete one entry
	delOut, err := Delete(ctx, database, DeleteInput{ID: "client-a-1"})
	require.NoError(t, err)
	require.True(t, delOut.Success)

	// 6. The first client still holds client-a-1 locally; sync re-uploads it
	// because the diff recomputes from current server state.
	syncOut, err = Sync(ctx, database, SyncInput{
		AppID:        appID,
		LocalEntries: []entry.Entry{first, second},
	})
	require.NoError(t, err)
	require.Equal(t, 2, syncOut.Uploaded)

	downloadedIDs := make([]string, 0, len(syncOut.Downloaded))
	for _, e := range syncOut.Downloaded {
		downloadedIDs = append(downloadedIDs, e.ID)
	}
	require.Equal(t, []string{"client-b-1"}, downloadedIDs)

	listOut, err = List(ctx, database, ListInput{AppID: appID})
	require.NoError(t, err)
	require.Len(t, listOut.Entries, 3)
}
