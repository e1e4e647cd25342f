package gesture

import (
	"fmt"

	"github.com/ayusman/mudra/internal/detector"
)

// DefaultPinchThreshold is the thumb to index distance, in frame pixels, at or
// below which a pinch engages. It is calibrated for 640x480 capture.
const DefaultPinchThreshold = 40.0

// PinchReading is the geometry measured from one hand, in frame pixels.
type PinchReading struct {
	FingerTip Point   `json:"finger_tip"`
	ThumbTip  Point   `json:"thumb_tip"`
	Center    Point   `json:"center"`
	Distance  float64 `json:"distance"`
}

// MeasurePinch scales the thumb and index tips to frame pixels and returns
// their midpoint and distance.
func MeasurePinch(hand *detector.HandLandmarks, frame Size) PinchReading {
	var r PinchReading
	r.FingerTip.X, r.FingerTip.Y = hand.Points[detector.IndexTip].Pixel(frame.Width, frame.Height)
	r.ThumbTip.X, r.ThumbTip.Y = hand.Points[detector.ThumbTip].Pixel(frame.Width, frame.Height)
	r.Center = midpoint(r.FingerTip, r.ThumbTip)
	r.Distance = distance(r.FingerTip, r.ThumbTip)
	return r
}

// ToScreen maps a frame pixel position to absolute screen coordinates by
// linear scaling.
func ToScreen(p Point, frame, screen Size) Point {
	return Point{
		X: (p.X / frame.Width) * screen.Width,
		Y: (p.Y / frame.Height) * screen.Height,
	}
}

// StepPinch advances the pinch latch by one frame.
//
// With a hand present it always emits PointerMove to the screen position of
// the pinch midpoint, followed by ButtonRelease when an engaged latch sees a
// distance above threshold, or ButtonPress when a released latch sees a
// distance at or below it. A nil hand leaves the latch untouched and emits
// nothing, so a tracking dropout neither releases nor re-presses.
func StepPinch(engaged bool, hand *detector.HandLandmarks, frame, screen Size, threshold float64) (bool, []Command) {
	if hand == nil {
		return engaged, nil
	}

	r := MeasurePinch(hand, frame)
	target := ToScreen(r.Center, frame, screen)
	commands := []Command{PointerMove(target.X, target.Y)}

	switch {
	case r.Distance > threshold && engaged:
		engaged = false
		commands = append(commands, Command{Kind: CommandButtonRelease})
	case r.Distance <= threshold && !engaged:
		engaged = true
		commands = append(commands, Command{Kind: CommandButtonPress})
	}

	return engaged, commands
}

// PinchOption configures a PinchController.
type PinchOption func(*PinchController)

// WithThreshold overrides DefaultPinchThreshold, for capture resolutions other
// than the one it was calibrated against.
func WithThreshold(threshold float64) PinchOption {
	return func(c *PinchController) {
		c.threshold = threshold
	}
}

// PinchController maps thumb to index pinches to pointer and button commands.
type PinchController struct {
	frame     Size
	screen    Size
	threshold float64
	engaged   bool

	last    PinchReading
	hasLast bool
}

// NewPinchController creates a released controller. It fails fast with
// ErrDegenerateGeometry when either size cannot be used for mapping.
func NewPinchController(frame, screen Size, opts ...PinchOption) (*PinchController, error) {
	if err := frame.Validate(); err != nil {
		return nil, fmt.Errorf("frame: %w", err)
	}
	if err := screen.Validate(); err != nil {
		return nil, fmt.Errorf("screen: %w", err)
	}

	c := &PinchController{
		frame:     frame,
		screen:    screen,
		threshold: DefaultPinchThreshold,
	}
	for _, opt := range opts {
		opt(c)
	}

	if !positiveFinite(c.threshold) {
		return nil, fmt.Errorf("pinch threshold must be positive, got %v", c.threshold)
	}
	return c, nil
}

// Mode implements Controller.
func (c *PinchController) Mode() Mode { return ModePinch }

// Update consumes one frame's selected hand, or nil when no hand is present.
func (c *PinchController) Update(hand *detector.HandLandmarks) []Command {
	if hand != nil {
		c.last = MeasurePinch(hand, c.frame)
		c.hasLast = true
	}

	var commands []Command
	c.engaged, commands = StepPinch(c.engaged, hand, c.frame, c.screen, c.threshold)
	return commands
}

// Engaged reports whether the latch currently holds the button down.
func (c *PinchController) Engaged() bool {
	return c.engaged
}

// LastReading returns the geometry of the most recent frame with a hand.
func (c *PinchController) LastReading() (PinchReading, bool) {
	return c.last, c.hasLast
}

// Threshold returns the engage distance in frame pixels.
func (c *PinchController) Threshold() float64 {
	return c.threshold
}
