package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ayusman/mudra/internal/store"
)

// SessionHandler serves the read-only command journal.
type SessionHandler struct {
	store *store.Store
}

// NewSessionHandler creates a SessionHandler with the given store.
func NewSessionHandler(s *store.Store) *SessionHandler {
	return &SessionHandler{store: s}
}

// ServeHTTP routes /api/sessions, /api/sessions/{id} and
// /api/sessions/{id}/commands.
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/sessions")
	path = strings.Trim(path, "/")

	switch parts := strings.Split(path, "/"); {
	case path == "":
		h.list(w, r)
	case len(parts) == 1:
		h.get(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "commands":
		h.commands(w, r, parts[0])
	default:
		http.NotFound(w, r)
	}
}

type sessionResponse struct {
	ID        string  `json:"id"`
	Mode      string  `json:"mode"`
	StartedAt string  `json:"started_at"`
	EndedAt   *string `json:"ended_at"`
	Commands  int     `json:"commands"`
}

type listSessionsResponse struct {
	Sessions []sessionResponse `json:"sessions"`
}

type commandResponse struct {
	Seq       int64    `json:"seq"`
	Kind      string   `json:"kind"`
	X         *float64 `json:"x,omitempty"`
	Y         *float64 `json:"y,omitempty"`
	CreatedAt string   `json:"created_at"`
}

type listCommandsResponse struct {
	SessionID string            `json:"session_id"`
	Commands  []commandResponse `json:"commands"`
	Next      int64             `json:"next"`
}

func (h *SessionHandler) toSessionResponse(s *store.Session) (sessionResponse, error) {
	n, err := h.store.Commands().CountBySession(s.ID)
	if err != nil {
		return sessionResponse{}, err
	}
	resp := sessionResponse{
		ID:        s.ID,
		Mode:      s.Mode,
		StartedAt: formatTime(s.StartedAt),
		Commands:  n,
	}
	if s.EndedAt != nil {
		ended := formatTime(*s.EndedAt)
		resp.EndedAt = &ended
	}
	return resp, nil
}

func (h *SessionHandler) list(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, "limit must be an integer")
		return
	}

	sessions, err := h.store.Sessions().List(int(limit))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list sessions")
		return
	}

	response := listSessionsResponse{Sessions: make([]sessionResponse, 0, len(sessions))}
	for _, s := range sessions {
		sr, err := h.toSessionResponse(s)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to count commands")
			return
		}
		response.Sessions = append(response.Sessions, sr)
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *SessionHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	s, ok := h.lookup(w, id)
	if !ok {
		return
	}
	sr, err := h.toSessionResponse(s)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count commands")
		return
	}
	writeJSON(w, http.StatusOK, sr)
}

// commands pages through a session's journal. after is the last sequence
// number the client has seen; next is the value to pass for the next page.
func (h *SessionHandler) commands(w http.ResponseWriter, r *http.Request, id string) {
	if _, ok := h.lookup(w, id); !ok {
		return
	}
	after, err := queryInt(r, "after")
	if err != nil {
		writeError(w, http.StatusBadRequest, "after must be an integer")
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, "limit must be an integer")
		return
	}

	records, err := h.store.Commands().ListBySession(id, after, int(limit))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list commands")
		return
	}

	response := listCommandsResponse{
		SessionID: id,
		Commands:  make([]commandResponse, 0, len(records)),
		Next:      after,
	}
	for _, c := range records {
		cr := commandResponse{Seq: c.Seq, Kind: c.Kind, CreatedAt: formatTime(c.CreatedAt)}
		if c.Kind == "pointer-move" {
			x, y := c.X, c.Y
			cr.X, cr.Y = &x, &y
		}
		response.Commands = append(response.Commands, cr)
		response.Next = c.Seq
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *SessionHandler) lookup(w http.ResponseWriter, id string) (*store.Session, bool) {
	s, err := h.store.Sessions().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return nil, false
		}
		writeError(w, http.StatusInternalServerError, "Failed to get session")
		return nil, false
	}
	return s, true
}

func queryInt(r *http.Request, name string) (int64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	return strconv.ParseInt(v, 10, 64)
}
