package gesture

import (
	"fmt"

	"github.com/ayusman/mudra/internal/detector"
)

// Seek zone bounds, measured in frame pixels from the right edge. The zones are
// deliberately asymmetric and independent of frame width: a pointing finger
// left of width-400 seeks backward, right of width-50 seeks forward, and the
// band between is dead.
const (
	SeekBackwardMargin = 400
	SeekForwardMargin  = 50
)

// MediaState is the playback state tracked by MediaController.
type MediaState int

const (
	MediaIdle MediaState = iota
	MediaPlaying
	MediaPaused
)

func (s MediaState) String() string {
	switch s {
	case MediaIdle:
		return "idle"
	case MediaPlaying:
		return "playing"
	case MediaPaused:
		return "paused"
	default:
		return fmt.Sprintf("media-state(%d)", int(s))
	}
}

// StepMedia advances the media state machine by one frame.
//
// An open hand (4 fingers) enters Playing without emitting anything. A fist
// (0 fingers) while Playing enters Paused and emits Pause. Independently, a
// single extended finger emits SeekBackward or SeekForward depending on where
// the index fingertip sits horizontally. A nil hand leaves state untouched and
// emits nothing.
func StepMedia(state MediaState, hand *detector.HandLandmarks, frameWidth float64) (MediaState, []Command) {
	if hand == nil {
		return state, nil
	}

	var commands []Command
	n := Classify(hand).ExtendedCount

	switch {
	case n == 4:
		state = MediaPlaying
	case n == 0 && state == MediaPlaying:
		state = MediaPaused
		commands = append(commands, Command{Kind: CommandPause})
	}

	if n == 1 {
		fx := hand.Points[detector.IndexTip].X * frameWidth
		if fx < frameWidth-SeekBackwardMargin {
			commands = append(commands, Command{Kind: CommandSeekBackward})
		}
		if fx > frameWidth-SeekForwardMargin {
			commands = append(commands, Command{Kind: CommandSeekForward})
		}
	}

	return state, commands
}

// MediaController maps finger counts to play/pause and seek commands.
type MediaController struct {
	frameWidth float64
	state      MediaState
}

// NewMediaController creates a controller for frames frameWidth pixels wide,
// starting Idle.
func NewMediaController(frameWidth float64) (*MediaController, error) {
	if !positiveFinite(frameWidth) {
		return nil, fmt.Errorf("%w: frame width %v", ErrDegenerateGeometry, frameWidth)
	}
	return &MediaController{frameWidth: frameWidth}, nil
}

// Mode implements Controller.
func (c *MediaController) Mode() Mode { return ModeMedia }

// Update consumes one frame's selected hand, or nil when no hand is present.
func (c *MediaController) Update(hand *detector.HandLandmarks) []Command {
	var commands []Command
	c.state, commands = StepMedia(c.state, hand, c.frameWidth)
	return commands
}

// State returns the current playback state.
func (c *MediaController) State() MediaState {
	return c.state
}
