package ops

import (
	"context"
	"testing"

	"github.com/hpungsan/daybook/internal/errors"
)

func TestList_MissingAppID(t *testing.T) {
	database := setupDB(t)

	_, err := List(context.Background(), database, ListInput{})
	if !errors.Is(err, errors.ErrMissingParameter) {
		t.Errorf("err = %v, want MISSING_PARAMETER", err)
	}
}

func TestList_TimestampDescending(t *testing.T) {
	database := setupDB(t)
	seedEntries(t, database,
		testEntry("old", 100),
		testEntry("new", 300),
		testEntry("mid", 200),
	)

	out, err := List(context.Background(), database, ListInput{AppID: "daily"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(out.Entries) != 3 {
		t.Fatalf("len(Entries) = %d, want 3", len(out.Entries))
	}
	want := []string{"new", "mid", "old"}
	for i, id := range want {
		if out.Entries[i].ID != id {
			t.Errorf("Entries[%d].ID = %q, want %q", i, out.Entries[i].ID, id)
		}
	}
}

func TestList_PaginationSlicesAreDisjoint(t *testing.T) {
	database := setupDB(t)
	for i := int64(0); i < 5; i++ {
		seedEntries(t, database, testEntry(string(rune('a'+i)), i))
	}

	var all []string
	for offset := 0; offset < 5; offset += 2 {
		out, err := List(context.Background(), database, ListInput{
			AppID:  "daily",
			Limit:  2,
			Offset: offset,
		})
		if err != nil {
			t.Fatalf("List offset %d failed: %v", offset, err)
		}
		for _, e := range out.Entries {
			all = append(all, e.ID)
		}
	}

	// Concatenation of pages equals the full descending set
	want := []string{"e", "d", "c", "b", "a"}
	if len(all) != len(want) {
		t.Fatalf("concatenated pages = %v, want %v", all, want)
	}
	for i := range want {
		if all[i] != want[i] {
			t.Errorf("all[%d] = %q, want %q", i, all[i], want[i])
		}
	}
}

func TestList_DecodesTags(t *testing.T) {
	database := setupDB(t)
	e := testEntry("tagged", 1)
	e.Tags = []string{"go", "journal"}
	seedEntries(t, database, e)

	out, err := List(context.Background(), database, ListInput{AppID: "daily"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(out.Entries) != 1 {
		t.Fatalf("len(Entries) = %d, want 1", len(out.Entries))
	}
	got := out.Entries[0].Tags
	if len(got) != 2 || got[0] != "go" || got[1] != "journal" {
		t.Errorf("Tags = %v, want [go journal]", got)
	}
}

func TestList_EmptyApp(t *testing.T) {
	database := setupDB(t)

	out, err := List(context.Background(), database, ListInput{AppID: "nothing-here"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if out.Entries == nil {
		t.Error("Entries is nil, want empty slice")
	}
	if len(out.Entries) != 0 {
		t.Errorf("len(Entries) = %d, want 0", len(out.Entries))
	}
}
