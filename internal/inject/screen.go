package inject

import (
	"github.com/kbinani/screenshot"
	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/logging"
)

// FallbackScreen is used when no display can be queried.
var FallbackScreen = gesture.Size{Width: 1920, Height: 1080}

// ScreenSize returns the primary display's size.
func ScreenSize(logger *zap.Logger) gesture.Size {
	logger = logging.OrNop(logger)

	if screenshot.NumActiveDisplays() <= 0 {
		logger.Warn("no active displays detected, falling back",
			zap.Stringer("size", FallbackScreen))
		return FallbackScreen
	}

	bounds := screenshot.GetDisplayBounds(0)
	size := gesture.Size{Width: float64(bounds.Dx()), Height: float64(bounds.Dy())}
	if size.Validate() != nil {
		logger.Warn("primary display reports no size, falling back",
			zap.Stringer("size", FallbackScreen))
		return FallbackScreen
	}

	logger.Info("screen size detected", zap.Stringer("size", size))
	return size
}
