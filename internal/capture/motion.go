package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

const (
	motionBlurKernel = 21
	motionPixelDelta = 25
)

// MotionGate decides whether a frame differs enough from the previous one to
// be worth running detection on. Frames are compared after grayscale
// conversion and a Gaussian blur.
type MotionGate struct {
	mu        sync.Mutex
	threshold float64 // percent of pixels
	prev      gocv.Mat
	primed    bool
}

// NewMotionGate returns a gate that opens when more than threshold percent of
// pixels change. Non-positive thresholds fall back to 1%.
func NewMotionGate(threshold float64) *MotionGate {
	if threshold <= 0 {
		threshold = 1.0
	}
	return &MotionGate{threshold: threshold, prev: gocv.NewMat()}
}

// Check compares frame with the previous frame and reports whether the gate
// is open, along with the percentage of pixels that changed. The first frame
// only primes the gate and is reported as still.
func (g *MotionGate) Check(frame *gocv.Mat) (bool, float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	cur := grayBlur(frame)
	defer cur.Close()

	if !g.primed || cur.Rows() != g.prev.Rows() || cur.Cols() != g.prev.Cols() {
		cur.CopyTo(&g.prev)
		g.primed = true
		return false, 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(cur, g.prev, &diff)
	gocv.Threshold(diff, &diff, motionPixelDelta, 255, gocv.ThresholdBinary)

	changed := float64(gocv.CountNonZero(diff)) / float64(diff.Rows()*diff.Cols()) * 100
	cur.CopyTo(&g.prev)

	return changed > g.threshold, changed
}

// Reset drops the reference frame.
func (g *MotionGate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.primed = false
}

// Close releases the reference frame.
func (g *MotionGate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prev.Close()
	g.prev = gocv.NewMat()
	g.primed = false
}

func grayBlur(frame *gocv.Mat) gocv.Mat {
	gray := gocv.NewMat()
	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}
	gocv.GaussianBlur(gray, &gray, image.Pt(motionBlurKernel, motionBlurKernel), 0, 0, gocv.BorderDefault)
	return gray
}
