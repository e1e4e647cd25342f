package gesture

import (
	"fmt"

	"github.com/ayusman/mudra/internal/detector"
)

// Mode selects which controller drives the sink.
type Mode string

const (
	// ModeMedia maps finger counts to media transport commands.
	ModeMedia Mode = "media"
	// ModePinch maps thumb to index pinches to mouse commands.
	ModePinch Mode = "pinch"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeMedia, ModePinch:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}

// Controller consumes one selected hand per frame and returns the commands to
// forward, in order. A nil hand means none was detected.
type Controller interface {
	Mode() Mode
	Update(hand *detector.HandLandmarks) []Command
}

// Geometry is what a controller needs to know about the capture and display.
type Geometry struct {
	Frame          Size
	Screen         Size
	PinchThreshold float64
}

// NewController builds a fresh controller for mode, in its initial state.
func NewController(mode Mode, g Geometry) (Controller, error) {
	switch mode {
	case ModeMedia:
		c, err := NewMediaController(g.Frame.Width)
		if err != nil {
			return nil, err
		}
		return c, nil
	case ModePinch:
		var opts []PinchOption
		if g.PinchThreshold != 0 {
			opts = append(opts, WithThreshold(g.PinchThreshold))
		}
		c, err := NewPinchController(g.Frame, g.Screen, opts...)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}
