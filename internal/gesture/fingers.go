// Package gesture turns per-frame hand landmarks into debounced device commands.
//
// Two controllers share the finger classifier: MediaController maps extended
// finger counts to transport commands, PinchController maps the thumb to index
// distance to pointer and button commands. Controllers are synchronous and own
// their state; they are not safe for concurrent use.
package gesture

import "github.com/ayusman/mudra/internal/detector"

// Finger names a non-thumb finger.
type Finger int

const (
	Index Finger = iota
	Middle
	Ring
	Pinky
)

// fingerTips maps each Finger to its tip landmark. The joint compared against
// is always two landmarks closer to the wrist.
var fingerTips = [4]int{detector.IndexTip, detector.MiddleTip, detector.RingTip, detector.PinkyTip}

// FingerState is the classification of the four non-thumb fingers.
type FingerState struct {
	// Extended is true for fingers classified as extended.
	Extended [4]bool
	// Classified is false for a finger whose tip and joint share the same height.
	Classified [4]bool
	// ExtendedCount is the number of fingers classified as extended.
	ExtendedCount int
}

// Finger reports whether f is extended and whether it was classified at all.
func (s FingerState) Finger(f Finger) (extended, classified bool) {
	return s.Extended[f], s.Classified[f]
}

// Bits packs the extended fingers into a 4 bit mask, index finger lowest.
func (s FingerState) Bits() uint8 {
	var bits uint8
	for i, ext := range s.Extended {
		if ext {
			bits |= 1 << i
		}
	}
	return bits
}

// Classify compares each fingertip with the joint two positions proximal. A tip
// strictly higher on screen (smaller y) is extended, strictly lower is closed,
// and equal height leaves the finger unclassified. The thumb is not classified.
func Classify(hand *detector.HandLandmarks) FingerState {
	var state FingerState
	if hand == nil {
		return state
	}

	for f, tip := range fingerTips {
		tipY := hand.Points[tip].Y
		jointY := hand.Points[tip-2].Y

		switch {
		case tipY < jointY:
			state.Extended[f] = true
			state.Classified[f] = true
			state.ExtendedCount++
		case tipY > jointY:
			state.Classified[f] = true
		}
	}

	return state
}
