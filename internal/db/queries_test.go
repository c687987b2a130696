package db

import (
	"context"
	"database/sql"
	"testing"

	"github.com/hpungsan/daybook/internal/entry"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func testRow(id, appID string, ts int64) entry.Row {
	return entry.Row{
		UUID:      id,
		AppID:     appID,
		Content:   "content for " + id,
		TagsJSON:  "[]",
		Timestamp: ts,
	}
}

func TestInsertEntry_Replace(t *testing.T) {
	database := setupDB(t)
	ctx := context.Background()

	r := testRow("id-1", "daily", 100)
	if err := InsertEntry(ctx, database, r, ConflictReplace); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}

	r.Content = "updated"
	if err := InsertEntry(ctx, database, r, ConflictReplace); err != nil {
		t.Fatalf("second insert failed: %v", err)
	}

	rows, err := AllByApp(ctx, database, "daily")
	if err != nil {
		t.Fatalf("AllByApp failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if rows[0].Content != "updated" {
		t.Errorf("Content = %q, want 'updated' (replace semantics)", rows[0].Content)
	}
}

func TestInsertEntry_Ignore(t *testing.T) {
	database := setupDB(t)
	ctx := context.Background()

	r := testRow("id-1", "daily", 100)
	if err := InsertEntry(ctx, database, r, ConflictReplace); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	r.Content = "should not win"
	if err := InsertEntry(ctx, database, r, ConflictIgnore); err != nil {
		t.Fatalf("ignore insert failed: %v", err)
	}

	rows, err := AllByApp(ctx, database, "daily")
	if err != nil {
		t.Fatalf("AllByApp failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if rows[0].Content != "content for id-1" {
		t.Errorf("Content = %q, want original (ignore semantics)", rows[0].Content)
	}
}

func TestListByApp_OrderAndBounds(t *testing.T) {
	database := setupDB(t)
	ctx := context.Background()

	for i, id := range []string{"a", "b", "c", "d"} {
		if err := InsertEntry(ctx, database, testRow(id, "daily", int64(i)), ConflictReplace); err != nil {
			t.Fatalf("insert %q failed: %v", id, err)
		}
	}
	// Other app must not leak in
	if err := InsertEntry(ctx, database, testRow("x", "other", 50), ConflictReplace); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	rows, err := ListByApp(ctx, database, "daily", 2, 0)
	if err != nil {
		t.Fatalf("ListByApp failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	// Timestamp descending: d (3), c (2)
	if rows[0].UUID != "d" || rows[1].UUID != "c" {
		t.Errorf("page 1 = [%s %s], want [d c]", rows[0].UUID, rows[1].UUID)
	}

	rows2, err := ListByApp(ctx, database, "daily", 2, 2)
	if err != nil {
		t.Fatalf("ListByApp offset failed: %v", err)
	}
	if len(rows2) != 2 || rows2[0].UUID != "b" || rows2[1].UUID != "a" {
		t.Errorf("page 2 = %v, want [b a]", rows2)
	}
}

func TestDeleteByID_Idempotent(t *testing.T) {
	database := setupDB(t)
	ctx := context.Background()

	if err := InsertEntry(ctx, database, testRow("gone", "daily", 1), ConflictReplace); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if err := DeleteByID(ctx, database, "gone"); err != nil {
		t.Fatalf("first delete failed: %v", err)
	}
	if err := DeleteByID(ctx, database, "gone"); err != nil {
		t.Errorf("second delete failed: %v", err)
	}
	if err := DeleteByID(ctx, database, "never-existed"); err != nil {
		t.Errorf("delete of unknown id failed: %v", err)
	}

	rows, err := AllByApp(ctx, database, "daily")
	if err != nil {
		t.Fatalf("AllByApp failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("len(rows) = %d, want 0", len(rows))
	}
}

func TestDeleteByID_CrossesApps(t *testing.T) {
	database := setupDB(t)
	ctx := context.Background()

	// Same id should never occur across apps, but delete is app-agnostic on purpose.
	if err := InsertEntry(ctx, database, testRow("shared", "daily", 1), ConflictReplace); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if err := DeleteByID(ctx, database, "shared"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	counts, err := CountByApp(ctx, database)
	if err != nil {
		t.Fatalf("CountByApp failed: %v", err)
	}
	if len(counts) != 0 {
		t.Errorf("counts = %v, want empty", counts)
	}
}

func TestCountByApp(t *testing.T) {
	database := setupDB(t)
	ctx := context.Background()

	for _, r := range []entry.Row{
		testRow("1", "daily", 1),
		testRow("2", "daily", 2),
		testRow("3", "work", 3),
	} {
		if err := InsertEntry(ctx, database, r, ConflictReplace); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	counts, err := CountByApp(ctx, database)
	if err != nil {
		t.Fatalf("CountByApp failed: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("len(counts) = %d, want 2", len(counts))
	}
	if counts[0].AppID != "daily" || counts[0].Count != 2 {
		t.Errorf("counts[0] = %+v, want daily/2", counts[0])
	}
	if counts[1].AppID != "work" || counts[1].Count != 1 {
		t.Errorf("counts[1] = %+v, want work/1", counts[1])
	}
}
