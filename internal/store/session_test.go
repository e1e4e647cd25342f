package store

import (
	"errors"
	"testing"
)

func TestSessionRepository_StartEnd(t *testing.T) {
	s := newTestStore(t)
	repo := s.Sessions()

	sess, err := repo.Start("media")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if sess.ID == "" || sess.StartedAt.IsZero() {
		t.Fatalf("Start() = %+v, want an ID and start time", sess)
	}

	got, err := repo.GetByID(sess.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Mode != "media" || got.EndedAt != nil {
		t.Errorf("GetByID() = %+v, want open media session", got)
	}

	if err := repo.End(sess.ID); err != nil {
		t.Fatalf("End() error = %v", err)
	}
	got, _ = repo.GetByID(sess.ID)
	if got.EndedAt == nil {
		t.Fatal("EndedAt should be set after End")
	}
	first := *got.EndedAt

	if err := repo.End(sess.ID); err != nil {
		t.Fatalf("second End() error = %v", err)
	}
	got, _ = repo.GetByID(sess.ID)
	if !got.EndedAt.Equal(first) {
		t.Errorf("EndedAt moved from %v to %v", first, *got.EndedAt)
	}
}

func TestSessionRepository_NotFound(t *testing.T) {
	repo := newTestStore(t).Sessions()

	if _, err := repo.GetByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
	if err := repo.End("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("End() error = %v, want ErrNotFound", err)
	}
}

func TestSessionRepository_List(t *testing.T) {
	repo := newTestStore(t).Sessions()

	for _, mode := range []string{"media", "pinch", "media"} {
		if _, err := repo.Start(mode); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
	}

	all, err := repo.List(0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List() returned %d sessions, want 3", len(all))
	}

	limited, _ := repo.List(2)
	if len(limited) != 2 {
		t.Errorf("List(2) returned %d sessions", len(limited))
	}
}
