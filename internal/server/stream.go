package server

import (
	"bytes"
	"fmt"
	"net/http"
	"time"
)

const defaultStreamInterval = 66 * time.Millisecond // ~15 FPS

// FrameSource provides the latest annotated preview frame as JPEG.
type FrameSource interface {
	LatestJPEG() []byte
}

// StreamHandler serves the annotated preview as MJPEG.
type StreamHandler struct {
	source   FrameSource
	interval time.Duration
}

// NewStreamHandler creates a StreamHandler polling source every interval.
// A zero interval means about 15 frames per second.
func NewStreamHandler(source FrameSource, interval time.Duration) *StreamHandler {
	if interval <= 0 {
		interval = defaultStreamInterval
	}
	return &StreamHandler{source: source, interval: interval}
}

// ServeHTTP streams MJPEG frames until the client disconnects. A frame is
// only written when it differs from the last one sent.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	var last []byte
	for {
		if frame := h.source.LatestJPEG(); len(frame) > 0 && !bytes.Equal(frame, last) {
			fmt.Fprintf(w, "--frame\r\n")
			fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
			fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(frame))
			if _, err := w.Write(frame); err != nil {
				return
			}
			fmt.Fprintf(w, "\r\n")
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
			last = frame
		}

		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
