package server

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestStreamHandler(t *testing.T) {
	p := newFakePipeline()
	p.jpeg = []byte{0xFF, 0xD8, 0xFF, 0xD9}
	handler := NewStreamHandler(p, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "multipart/x-mixed-replace") {
		t.Errorf("Content-Type = %q", ct)
	}

	parts := 0
	sc := bufio.NewScanner(strings.NewReader(rec.Body.String()))
	for sc.Scan() {
		if sc.Text() == "--frame\r" || sc.Text() == "--frame" {
			parts++
		}
	}
	if parts != 1 {
		t.Errorf("wrote %d parts for an unchanged frame, want 1", parts)
	}
	if !strings.Contains(rec.Body.String(), "Content-Length: 4") {
		t.Error("missing Content-Length header")
	}
}

func TestStreamHandler_NoFrameYet(t *testing.T) {
	handler := NewStreamHandler(newFakePipeline(), 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stream", nil).WithContext(ctx))

	if rec.Body.Len() != 0 {
		t.Errorf("expected no body before the first frame, got %q", rec.Body.String())
	}
}

func TestStreamHandler_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	NewStreamHandler(newFakePipeline(), 0).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/stream", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}
