package web

import (
	"bytes"
	"embed"
	"encoding/json"
	stderrors "errors"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/yuin/goldmark"

	"github.com/hpungsan/daybook/internal/entry"
	"github.com/hpungsan/daybook/internal/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// renderError writes a JSON error body with the error's HTTP status.
// Untyped errors map to 500.
func renderError(w http.ResponseWriter, err error) {
	var aErr *errors.APIError
	if !stderrors.As(err, &aErr) {
		aErr = errors.NewInternal(err)
	}

	renderJSON(w, aErr.Status, map[string]any{"error": aErr.Message})
}

// uiEntry is one rendered entry on the /ui page.
type uiEntry struct {
	Entry   entry.Entry
	Content template.HTML
	When    string
}

// uiPageData is the template data for the entries page.
type uiPageData struct {
	AppID   string
	Version string
	Entries []uiEntry
}

// uiRenderer renders the read-only HTML entry listing.
type uiRenderer struct {
	tmpl    *template.Template
	version string
}

func newUIRenderer(version string) *uiRenderer {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/entries.html"))
	return &uiRenderer{tmpl: tmpl, version: version}
}

// renderEntries writes the HTML listing, with entry content rendered as
// markdown.
func (u *uiRenderer) renderEntries(w http.ResponseWriter, appID string, entries []entry.Entry) {
	page := uiPageData{
		AppID:   appID,
		Version: u.version,
		Entries: make([]uiEntry, 0, len(entries)),
	}
	for _, e := range entries {
		page.Entries = append(page.Entries, uiEntry{
			Entry:   e,
			Content: renderMarkdown(e.Content),
			When:    formatTimestamp(e.Timestamp),
		})
	}

	var buf bytes.Buffer
	if err := u.tmpl.Execute(&buf, page); err != nil {
		log.Printf("template execution error: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// renderMarkdown converts markdown text to HTML using goldmark.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// formatTimestamp formats a millisecond timestamp as "2006-01-02 15:04" UTC.
// Zero stays blank.
func formatTimestamp(ms int64) string {
	if ms == 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format("2006-01-02 15:04")
}
