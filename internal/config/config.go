// Package config defines the process configuration and its loader.
//
// Values are layered: defaults from New, then an optional YAML file named by
// MUDRA_CONFIG, then MUDRA_* environment variables.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ayusman/mudra/internal/gesture"
)

// Sink names accepted by the sink key.
const (
	SinkRobotgo = "robotgo"
	SinkPlugin  = "plugin"
	SinkMPRIS   = "mpris"
	SinkLog     = "log"
)

// Config contains process configuration.
type Config struct {
	// Mode selects the active controller: media or pinch.
	Mode string `koanf:"mode"`

	// CameraID is the capture device index.
	CameraID int `koanf:"camera_id"`

	// FrameWidth and FrameHeight are the requested capture resolution. The
	// camera may deliver another size; gesture geometry follows the frames.
	FrameWidth  int `koanf:"frame_width"`
	FrameHeight int `koanf:"frame_height"`

	// ScreenWidth and ScreenHeight override the detected display size when
	// non-zero.
	ScreenWidth  int `koanf:"screen_width"`
	ScreenHeight int `koanf:"screen_height"`

	// Mirror flips frames horizontally before detection.
	Mirror bool `koanf:"mirror"`

	// HandIndex picks which detected hand drives the controller.
	HandIndex int `koanf:"hand_index"`

	// PinchThreshold is the engage distance in frame pixels.
	PinchThreshold float64 `koanf:"pinch_threshold"`

	MaxHands               int     `koanf:"max_hands"`
	MinDetectionConfidence float64 `koanf:"min_detection_confidence"`
	MinTrackingConfidence  float64 `koanf:"min_tracking_confidence"`

	// FPS is the frame loop rate.
	FPS int `koanf:"fps"`

	// MotionGate skips detection on frames without motion.
	MotionGate      bool    `koanf:"motion_gate"`
	MotionThreshold float64 `koanf:"motion_threshold"`

	// Sink is one of robotgo, plugin, mpris, log.
	Sink string `koanf:"sink"`

	PluginDir string `koanf:"plugin_dir"`
	DBPath    string `koanf:"db_path"`

	// JournalPointer also records PointerMove commands in the journal.
	JournalPointer bool `koanf:"journal_pointer"`

	// Addr is the HTTP listen address; empty disables the server.
	Addr string `koanf:"addr"`

	// Tray runs the system tray on the main goroutine.
	Tray bool `koanf:"tray"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
}

// New returns a Config with defaults.
func New(_ context.Context) *Config {
	return &Config{
		Mode:                   string(gesture.ModeMedia),
		CameraID:               0,
		FrameWidth:             640,
		FrameHeight:            480,
		Mirror:                 true,
		HandIndex:              0,
		PinchThreshold:         gesture.DefaultPinchThreshold,
		MaxHands:               1,
		MinDetectionConfidence: 0.8,
		MinTrackingConfidence:  0.5,
		FPS:                    15,
		MotionThreshold:        1.0,
		Sink:                   SinkRobotgo,
		PluginDir:              "~/.mudra/plugins",
		DBPath:                 "~/.mudra/mudra.db",
		Addr:                   ":8080",
		LogLevel:               "info",
	}
}

// Validate reports the first invalid setting, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	if _, err := gesture.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	switch c.Sink {
	case SinkRobotgo, SinkPlugin, SinkMPRIS, SinkLog:
	default:
		return fmt.Errorf("%w: unknown sink %q", ErrInvalidConfig, c.Sink)
	}
	if c.Sink == SinkMPRIS && c.Mode == string(gesture.ModePinch) {
		return fmt.Errorf("%w: sink %q cannot move the pointer in %s mode", ErrInvalidConfig, c.Sink, c.Mode)
	}

	if err := c.FrameSize().Validate(); err != nil {
		return fmt.Errorf("%w: frame: %w", ErrInvalidConfig, err)
	}
	if c.ScreenWidth < 0 || c.ScreenHeight < 0 {
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalidConfig, c.ScreenWidth, c.ScreenHeight)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.FPS)
	}
	if c.HandIndex < 0 {
		return fmt.Errorf("%w: hand_index must not be negative", ErrInvalidConfig)
	}
	if c.MaxHands <= 0 {
		return fmt.Errorf("%w: max_hands must be positive", ErrInvalidConfig)
	}
	if c.PinchThreshold <= 0 {
		return fmt.Errorf("%w: pinch_threshold must be positive", ErrInvalidConfig)
	}
	for name, v := range map[string]float64{
		"min_detection_confidence": c.MinDetectionConfidence,
		"min_tracking_confidence":  c.MinTrackingConfidence,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s must be within [0,1], got %v", ErrInvalidConfig, name, v)
		}
	}
	return nil
}

// FrameSize returns the capture resolution as a gesture size.
func (c *Config) FrameSize() gesture.Size {
	return gesture.Size{Width: float64(c.FrameWidth), Height: float64(c.FrameHeight)}
}

// ScreenOverride returns the configured screen size and whether one was set.
func (c *Config) ScreenOverride() (gesture.Size, bool) {
	if c.ScreenWidth == 0 || c.ScreenHeight == 0 {
		return gesture.Size{}, false
	}
	return gesture.Size{Width: float64(c.ScreenWidth), Height: float64(c.ScreenHeight)}, true
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
