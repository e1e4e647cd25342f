package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/mudra/internal/gesture"
)

func TestCommandsHandler(t *testing.T) {
	p := newFakePipeline()
	ts := httptest.NewServer(New(Config{Pipeline: p}))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/commands"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for p.subscribers() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if p.subscribers() == 0 {
		t.Fatal("handler never subscribed")
	}

	p.publish(gesture.PointerMove(960, 540))
	p.publish(gesture.Command{Kind: gesture.CommandButtonPress})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for _, want := range []gesture.CommandKind{gesture.CommandPointerMove, gesture.CommandButtonPress} {
		var msg struct {
			Kind      string  `json:"kind"`
			X         float64 `json:"x"`
			Timestamp int64   `json:"timestamp"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("ReadJSON() error = %v", err)
		}
		if msg.Kind != want.String() {
			t.Errorf("kind = %q, want %q", msg.Kind, want)
		}
		if msg.Timestamp == 0 {
			t.Error("expected a timestamp")
		}
		if want == gesture.CommandPointerMove && msg.X != 960 {
			t.Errorf("x = %v, want 960", msg.X)
		}
	}
}
