package capture

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
)

var (
	boneColor     = color.RGBA{R: 255, G: 255, B: 255}
	jointColor    = color.RGBA{R: 255}
	pinchColor    = color.RGBA{B: 255}
	midpointColor = color.RGBA{R: 255}
	labelColor    = color.RGBA{G: 255}
)

// Mirror flips frame horizontally in place, so the preview and pointer follow
// the user like a mirror.
func Mirror(frame *gocv.Mat) {
	if frame == nil || frame.Empty() {
		return
	}
	flipped := gocv.NewMat()
	defer flipped.Close()
	gocv.Flip(*frame, &flipped, 1)
	flipped.CopyTo(frame)
}

// Annotate draws every hand's skeleton onto frame. When pinch is non-nil the
// thumb to index line, its midpoint and the distance are drawn too.
func Annotate(frame *gocv.Mat, hands []detector.HandLandmarks, pinch *gesture.PinchReading) {
	if frame == nil || frame.Empty() {
		return
	}
	w, h := float64(frame.Cols()), float64(frame.Rows())

	for i := range hands {
		var px [detector.NumLandmarks]image.Point
		for j, p := range hands[i].Points {
			x, y := p.Pixel(w, h)
			px[j] = image.Pt(int(x), int(y))
		}
		for _, bone := range detector.Connections {
			gocv.Line(frame, px[bone[0]], px[bone[1]], boneColor, 2)
		}
		for _, pt := range px {
			gocv.Circle(frame, pt, 3, jointColor, -1)
		}
	}

	if pinch == nil {
		return
	}
	tip := image.Pt(int(pinch.FingerTip.X), int(pinch.FingerTip.Y))
	thumb := image.Pt(int(pinch.ThumbTip.X), int(pinch.ThumbTip.Y))
	center := image.Pt(int(pinch.Center.X), int(pinch.Center.Y))

	gocv.Line(frame, tip, thumb, pinchColor, 2)
	gocv.Circle(frame, center, 2, midpointColor, 2)
	gocv.PutText(frame, fmt.Sprintf("%.0f px", pinch.Distance), image.Pt(10, 24),
		gocv.FontHersheyPlain, 1.4, labelColor, 2)
}

// EncodeJPEG returns frame as JPEG bytes owned by the caller.
func EncodeJPEG(frame *gocv.Mat) ([]byte, error) {
	if frame == nil || frame.Empty() {
		return nil, fmt.Errorf("encode jpeg: empty frame")
	}
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, *frame)
	if err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	defer buf.Close()

	data := buf.GetBytes()
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}
