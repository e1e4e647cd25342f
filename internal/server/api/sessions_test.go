package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ayusman/mudra/internal/store"
)

func seedSession(t *testing.T, s *store.Store, kinds ...string) *store.Session {
	t.Helper()
	sess, err := s.Sessions().Start("pinch")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	for i, kind := range kinds {
		rec := &store.CommandRecord{SessionID: sess.ID, Seq: int64(i + 1), Kind: kind, X: 960, Y: 540}
		if err := s.Commands().Append(rec); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
	return sess
}

func TestSessionHandler_List(t *testing.T) {
	s := newTestStore(t)
	sess := seedSession(t, s, "button-press", "button-release")
	if err := s.Sessions().End(sess.ID); err != nil {
		t.Fatalf("End() error = %v", err)
	}
	handler := NewSessionHandler(s)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sessions", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	var resp listSessionsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(resp.Sessions))
	}
	got := resp.Sessions[0]
	if got.ID != sess.ID || got.Mode != "pinch" || got.Commands != 2 {
		t.Errorf("unexpected session: %+v", got)
	}
	if got.EndedAt == nil {
		t.Error("expected ended_at to be set")
	}
}

func TestSessionHandler_Get(t *testing.T) {
	s := newTestStore(t)
	sess := seedSession(t, s)
	handler := NewSessionHandler(s)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sessions/"+sess.ID, nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sessions/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestSessionHandler_CommandsPaging(t *testing.T) {
	s := newTestStore(t)
	sess := seedSession(t, s, "pointer-move", "button-press", "pointer-move", "button-release")
	handler := NewSessionHandler(s)

	get := func(query string) listCommandsResponse {
		t.Helper()
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sessions/"+sess.ID+"/commands"+query, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
		}
		var resp listCommandsResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		return resp
	}

	first := get("?limit=3")
	if len(first.Commands) != 3 || first.Next != 3 {
		t.Fatalf("first page = %d commands, next %d; want 3, 3", len(first.Commands), first.Next)
	}
	if first.Commands[0].X == nil || *first.Commands[0].X != 960 {
		t.Error("pointer-move should carry coordinates")
	}
	if first.Commands[1].X != nil {
		t.Error("button-press should not carry coordinates")
	}

	rest := get("?after=3")
	if len(rest.Commands) != 1 || rest.Commands[0].Kind != "button-release" {
		t.Errorf("second page = %+v, want one button-release", rest.Commands)
	}

	empty := get("?after=4")
	if len(empty.Commands) != 0 || empty.Next != 4 {
		t.Errorf("exhausted page = %+v", empty)
	}
}

func TestSessionHandler_BadRequests(t *testing.T) {
	s := newTestStore(t)
	sess := seedSession(t, s)
	handler := NewSessionHandler(s)

	tests := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/api/sessions?limit=x", http.StatusBadRequest},
		{http.MethodGet, "/api/sessions/" + sess.ID + "/commands?after=x", http.StatusBadRequest},
		{http.MethodGet, "/api/sessions/missing/commands", http.StatusNotFound},
		{http.MethodGet, "/api/sessions/" + sess.ID + "/other", http.StatusNotFound},
		{http.MethodPost, "/api/sessions", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		if rec.Code != tt.want {
			t.Errorf("%s %s: expected status %d, got %d", tt.method, tt.path, tt.want, rec.Code)
		}
	}
}
