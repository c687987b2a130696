package web

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/hpungsan/daybook/internal/config"
	"github.com/hpungsan/daybook/internal/entry"
	"github.com/hpungsan/daybook/internal/errors"
	"github.com/hpungsan/daybook/internal/ops"
)

// Handlers contains HTTP route handlers for the daybook API.
type Handlers struct {
	db  *sql.DB
	cfg *config.Config
	ui  *uiRenderer
}

// HandleList handles GET /api/entries — list entries for an app.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	input := ops.ListInput{
		AppID:    r.URL.Query().Get("appId"),
		Limit:    parseIntParam(r, "limit", ops.DefaultListLimit),
		Offset:   parseIntParam(r, "offset", 0),
		MaxLimit: h.cfg.ListMaxLimit,
	}

	result, err := ops.List(r.Context(), h.db, input)
	if err != nil {
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, result.Entries)
}

// HandleUpsert handles POST /api/entries — store one entry or a batch.
func (h *Handlers) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	entries, err := decodeEntries(r.Body)
	if err != nil {
		renderError(w, err)
		return
	}

	result, err := ops.Upsert(r.Context(), h.db, ops.UpsertInput{Entries: entries})
	if err != nil {
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   result.Count,
	})
}

// HandleDelete handles DELETE /api/entries/{id} — remove one entry.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Delete(r.Context(), h.db, ops.DeleteInput{ID: r.PathValue("id")})
	if err != nil {
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, map[string]any{"success": result.Success})
}

// syncRequest is the POST /api/sync body.
type syncRequest struct {
	AppID        string        `json:"appId"`
	LocalEntries []entry.Entry `json:"localEntries"`
}

// HandleSync handles POST /api/sync — one-shot bidirectional reconciliation.
func (h *Handlers) HandleSync(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, errors.NewInvalidRequest("malformed JSON body"))
		return
	}

	result, err := ops.Sync(r.Context(), h.db, ops.SyncInput{
		AppID:        req.AppID,
		LocalEntries: req.LocalEntries,
	})
	if err != nil {
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, result)
}

// HandleApps handles GET /api/apps — app namespaces with entry counts.
func (h *Handlers) HandleApps(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Apps(r.Context(), h.db)
	if err != nil {
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, result)
}

// HandleUI handles GET /ui — a read-only HTML view of recent entries.
func (h *Handlers) HandleUI(w http.ResponseWriter, r *http.Request) {
	appID := r.URL.Query().Get("appId")
	if appID == "" {
		appID = entry.DefaultAppID
	}

	result, err := ops.List(r.Context(), h.db, ops.ListInput{
		AppID:    appID,
		Limit:    parseIntParam(r, "limit", 50),
		Offset:   parseIntParam(r, "offset", 0),
		MaxLimit: h.cfg.ListMaxLimit,
	})
	if err != nil {
		renderError(w, err)
		return
	}

	h.ui.renderEntries(w, appID, result.Entries)
}

// HandleNotFound answers every unrouted path.
func (h *Handlers) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte("Not Found"))
}

// decodeEntries decodes a POST /api/entries body, which is either a single
// entry object or an array of entries. The shape is discriminated by the
// first JSON token and normalized to a slice.
func decodeEntries(body io.Reader) ([]entry.Entry, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.NewInvalidRequest("cannot read request body")
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, errors.NewInvalidRequest("request body is empty")
	}

	if trimmed[0] == '[' {
		var entries []entry.Entry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, errors.NewInvalidRequest("malformed JSON body")
		}
		return entries, nil
	}

	var single entry.Entry
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return nil, errors.NewInvalidRequest("malformed JSON body")
	}
	return []entry.Entry{single}, nil
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}
