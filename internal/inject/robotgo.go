package inject

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/go-vgo/robotgo"

	"github.com/ayusman/mudra/internal/gesture"
)

// Driver is the slice of the OS input API RobotgoSink needs.
type Driver interface {
	KeyTap(key string) error
	Move(x, y int)
	MouseDown() error
	MouseUp() error
}

type robotgoDriver struct{}

func (robotgoDriver) KeyTap(key string) error { return robotgo.KeyTap(key) }
func (robotgoDriver) Move(x, y int)           { robotgo.Move(x, y) }
func (robotgoDriver) MouseDown() error        { return robotgo.Toggle("left") }
func (robotgoDriver) MouseUp() error          { return robotgo.Toggle("left", "up") }

// mediaKeys maps transport commands to the keys most players bind them to.
var mediaKeys = map[gesture.CommandKind]string{
	gesture.CommandPlay:         "space",
	gesture.CommandPause:        "space",
	gesture.CommandSeekBackward: "left",
	gesture.CommandSeekForward:  "right",
}

// RobotgoSink synthesizes keyboard and mouse input through robotgo.
type RobotgoSink struct {
	driver Driver

	mu   sync.Mutex
	down bool
}

// NewRobotgoSink returns a sink that drives the real input devices.
func NewRobotgoSink() *RobotgoSink {
	return NewRobotgoSinkWithDriver(robotgoDriver{})
}

// NewRobotgoSinkWithDriver returns a sink that drives d.
func NewRobotgoSinkWithDriver(d Driver) *RobotgoSink {
	return &RobotgoSink{driver: d}
}

func (s *RobotgoSink) Name() string { return "robotgo" }

func (s *RobotgoSink) Send(_ context.Context, cmd gesture.Command) error {
	if key, ok := mediaKeys[cmd.Kind]; ok {
		return s.driver.KeyTap(key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch cmd.Kind {
	case gesture.CommandPointerMove:
		s.driver.Move(int(math.Round(cmd.X)), int(math.Round(cmd.Y)))
		return nil
	case gesture.CommandButtonPress:
		if err := s.driver.MouseDown(); err != nil {
			return err
		}
		s.down = true
		return nil
	case gesture.CommandButtonRelease:
		if err := s.driver.MouseUp(); err != nil {
			return err
		}
		s.down = false
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedCommand, cmd.Kind)
	}
}

// Close releases the left button if a press is outstanding.
func (s *RobotgoSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.down {
		return nil
	}
	s.down = false
	return s.driver.MouseUp()
}
