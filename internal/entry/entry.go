package entry

import "encoding/json"

// DefaultAppID is the namespace assigned to entries written without an appId.
const DefaultAppID = "daily"

// Entry is the wire representation of a journal entry as clients send and
// receive it. The id is client-generated and globally unique; appId scopes
// the entry to one application namespace.
type Entry struct {
	ID        string   `json:"id"`
	AppID     string   `json:"appId,omitempty"`
	Content   string   `json:"content"`
	Category  string   `json:"category,omitempty"`
	Tags      []string `json:"tags"`
	Date      string   `json:"date"`
	DateISO   string   `json:"dateISO"`
	Timestamp int64    `json:"timestamp"`
}

// Row is the storage representation: one row of the entries table, with
// tags serialized as JSON array text.
type Row struct {
	UUID      string
	AppID     string
	Content   string
	Category  string
	TagsJSON  string
	Date      string
	DateISO   string
	Timestamp int64
}

// ToRow converts an Entry to its storage representation, applying defaults:
// appId falls back to "daily", category to "", tags to the empty array.
func ToRow(e Entry) Row {
	appID := e.AppID
	if appID == "" {
		appID = DefaultAppID
	}
	return Row{
		UUID:      e.ID,
		AppID:     appID,
		Content:   e.Content,
		Category:  e.Category,
		TagsJSON:  EncodeTags(e.Tags),
		Date:      e.Date,
		DateISO:   e.DateISO,
		Timestamp: e.Timestamp,
	}
}

// FromRow converts a storage row back to the wire shape. Tags that fail to
// decode degrade to the empty slice rather than failing the read.
func FromRow(r Row) Entry {
	return Entry{
		ID:        r.UUID,
		AppID:     r.AppID,
		Content:   r.Content,
		Category:  r.Category,
		Tags:      DecodeTags(r.TagsJSON),
		Date:      r.Date,
		DateISO:   r.DateISO,
		Timestamp: r.Timestamp,
	}
}

// EncodeTags serializes tags to JSON array text. Nil encodes as "[]".
func EncodeTags(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// DecodeTags parses JSON array text into a tag slice. Malformed or empty
// text yields the empty slice, never an error.
func DecodeTags(tagsJSON string) []string {
	if tagsJSON == "" {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal([]byte(tagsJSON), &tags); err != nil {
		return []string{}
	}
	if tags == nil {
		return []string{}
	}
	return tags
}
