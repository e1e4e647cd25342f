package gesture

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/mudra/internal/detector"
)

var (
	testFrame  = Size{Width: 640, Height: 480}
	testScreen = Size{Width: 1920, Height: 1080}
)

func newPinch(t *testing.T, opts ...PinchOption) *PinchController {
	t.Helper()
	c, err := NewPinchController(testFrame, testScreen, opts...)
	require.NoError(t, err)
	return c
}

// pinchAt returns a hand centred in the frame with thumb and index tips px
// frame pixels apart.
func pinchAt(px float64) *detector.HandLandmarks {
	hand := detector.PinchLandmarks(0.5, 0.5, px/testFrame.Width)
	return &hand
}

func kinds(cmds []Command) []CommandKind {
	out := make([]CommandKind, len(cmds))
	for i, c := range cmds {
		out[i] = c.Kind
	}
	return out
}

func TestPinchController_PressReleaseSequence(t *testing.T) {
	c := newPinch(t)

	distances := []float64{50, 50, 30, 30, 50}
	want := [][]CommandKind{
		{CommandPointerMove},
		{CommandPointerMove},
		{CommandPointerMove, CommandButtonPress},
		{CommandPointerMove},
		{CommandPointerMove, CommandButtonRelease},
	}

	for i, d := range distances {
		got := kinds(c.Update(pinchAt(d)))
		if diff := cmp.Diff(want[i], got); diff != "" {
			t.Errorf("call %d (distance %v) mismatch (-want +got):\n%s", i+1, d, diff)
		}
	}
	assert.False(t, c.Engaged())
}

func TestPinchController_PointerTarget(t *testing.T) {
	c := newPinch(t)

	cmds := c.Update(pinchAt(32))

	require.NotEmpty(t, cmds)
	assert.Equal(t, CommandPointerMove, cmds[0].Kind)
	assert.InDelta(t, 960, cmds[0].X, 1e-9)
	assert.InDelta(t, 540, cmds[0].Y, 1e-9)
}

func TestPinchController_ThresholdIsInclusive(t *testing.T) {
	hand := detector.OpenPalmLandmarks()
	hand.Points[detector.ThumbTip] = detector.Point3D{X: 0.5, Y: 0.5}
	hand.Points[detector.IndexTip] = detector.Point3D{X: 0.5625, Y: 0.5}

	c := newPinch(t)
	reading := MeasurePinch(&hand, testFrame)
	require.Equal(t, 40.0, reading.Distance)

	got := kinds(c.Update(&hand))

	assert.Equal(t, []CommandKind{CommandPointerMove, CommandButtonPress}, got)
	assert.True(t, c.Engaged())
}

func TestPinchController_NoHandKeepsLatch(t *testing.T) {
	c := newPinch(t)
	c.Update(pinchAt(20))
	require.True(t, c.Engaged())

	assert.Nil(t, c.Update(nil))
	assert.Nil(t, c.Update(nil))
	assert.True(t, c.Engaged(), "tracking loss must not release the button")

	got := kinds(c.Update(pinchAt(20)))
	assert.Equal(t, []CommandKind{CommandPointerMove}, got, "reappearing pinch must not press again")
}

func TestPinchController_NoHandWhileReleased(t *testing.T) {
	c := newPinch(t)

	assert.Nil(t, c.Update(nil))
	assert.False(t, c.Engaged())
	_, ok := c.LastReading()
	assert.False(t, ok)
}

func TestPinchController_StableInputIsIdempotent(t *testing.T) {
	for _, d := range []float64{20, 80} {
		c := newPinch(t)
		c.Update(pinchAt(d))

		first := c.Update(pinchAt(d))
		second := c.Update(pinchAt(d))

		if diff := cmp.Diff(first, second, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Errorf("distance %v: repeated frame changed output (-first +second):\n%s", d, diff)
		}
		assert.Equal(t, []CommandKind{CommandPointerMove}, kinds(second))
	}
}

func TestPinchController_WithThreshold(t *testing.T) {
	c := newPinch(t, WithThreshold(80))
	assert.Equal(t, 80.0, c.Threshold())

	got := kinds(c.Update(pinchAt(60)))

	assert.Equal(t, []CommandKind{CommandPointerMove, CommandButtonPress}, got)
}

func TestPinchController_InvalidThreshold(t *testing.T) {
	for _, th := range []float64{0, -5, math.NaN()} {
		_, err := NewPinchController(testFrame, testScreen, WithThreshold(th))
		assert.Error(t, err, "threshold %v", th)
	}
}

func TestPinchController_LastReading(t *testing.T) {
	c := newPinch(t)
	c.Update(pinchAt(32))
	c.Update(nil)

	r, ok := c.LastReading()

	require.True(t, ok)
	assert.InDelta(t, 32, r.Distance, 1e-9)
	assert.InDelta(t, 320, r.Center.X, 1e-9)
	assert.InDelta(t, 240, r.Center.Y, 1e-9)
}

func TestNewPinchController_DegenerateGeometry(t *testing.T) {
	tests := []struct {
		name   string
		frame  Size
		screen Size
	}{
		{"zero frame width", Size{0, 480}, testScreen},
		{"zero frame height", Size{640, 0}, testScreen},
		{"negative screen width", testFrame, Size{-1920, 1080}},
		{"zero screen height", testFrame, Size{1920, 0}},
		{"nan frame", Size{math.NaN(), 480}, testScreen},
		{"infinite screen", testFrame, Size{math.Inf(1), 1080}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewPinchController(tt.frame, tt.screen)

			assert.Nil(t, c)
			assert.True(t, errors.Is(err, ErrDegenerateGeometry), "got %v", err)
		})
	}
}

func TestToScreen(t *testing.T) {
	got := ToScreen(Point{X: 640, Y: 0}, testFrame, testScreen)

	assert.Equal(t, Point{X: 1920, Y: 0}, got)
}

func TestStepPinch_NoHand(t *testing.T) {
	for _, engaged := range []bool{true, false} {
		next, cmds := StepPinch(engaged, nil, testFrame, testScreen, DefaultPinchThreshold)

		assert.Equal(t, engaged, next)
		assert.Nil(t, cmds)
	}
}
