// Package app drives the capture, detection and command pipeline.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/inject"
	"github.com/ayusman/mudra/internal/logging"
	"github.com/ayusman/mudra/internal/metrics"
	"github.com/ayusman/mudra/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while the motion gate is closed.
	IdleFPS = 5
	// MotionHold keeps the pipeline active after the last motion.
	MotionHold = 2 * time.Second
)

// Config holds the pipeline settings.
type Config struct {
	Mode           gesture.Mode
	Geometry       gesture.Geometry
	HandIndex      int
	Mirror         bool
	FPS            int
	JournalPointer bool
}

// Deps are the collaborators the pipeline drives. Camera, Detector and Sink
// are required; the rest may be nil.
type Deps struct {
	Camera   capture.Camera
	Detector detector.Detector
	Sink     inject.Sink
	Motion   *capture.MotionGate
	Store    *store.Store
	Metrics  *metrics.Manager
	Logger   *zap.Logger
}

// Status is a snapshot of the pipeline.
type Status struct {
	Mode        gesture.Mode     `json:"mode"`
	Enabled     bool             `json:"enabled"`
	Running     bool             `json:"running"`
	MediaState  string           `json:"media_state,omitempty"`
	Engaged     bool             `json:"engaged"`
	SessionID   string           `json:"session_id,omitempty"`
	Frame       gesture.Size     `json:"frame"`
	Screen      gesture.Size     `json:"screen"`
	LastCommand *gesture.Command `json:"last_command,omitempty"`
}

// App is the frame driver: it owns exactly one controller and forwards the
// commands it emits to the sink.
type App struct {
	config   Config
	camera   capture.Camera
	detector detector.Detector
	sink     inject.Sink
	motion   *capture.MotionGate
	store    *store.Store
	metrics  *metrics.Manager
	logger   *zap.Logger
	feed     *feed

	// stepMu serializes controller updates and controller swaps together
	// with forwarding their commands, so a press is never overtaken by the
	// release a swap sends.
	stepMu sync.Mutex

	mu          sync.Mutex
	listeners   []func(gesture.Mode)
	unsupported map[gesture.CommandKind]bool
	enabled    bool
	controller gesture.Controller
	session    *store.Session
	seq        int64
	last       *gesture.Command
	lastMotion time.Time

	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	previewMu sync.RWMutex
	preview   []byte
}

// New builds an App in its initial state: enabled, with a fresh controller
// for cfg.Mode.
func New(cfg Config, deps Deps) (*App, error) {
	if deps.Camera == nil || deps.Detector == nil || deps.Sink == nil {
		return nil, errors.New("app: camera, detector and sink are required")
	}
	if cfg.FPS <= 0 {
		cfg.FPS = capture.DefaultCameraConfig().FPS
	}

	controller, err := gesture.NewController(cfg.Mode, cfg.Geometry)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	return &App{
		config:     cfg,
		camera:     deps.Camera,
		detector:   deps.Detector,
		sink:       deps.Sink,
		motion:     deps.Motion,
		store:      deps.Store,
		metrics:    deps.Metrics,
		logger:     logging.OrNop(deps.Logger).Named("app"),
		feed:        newFeed(),
		enabled:     true,
		controller:  controller,
		unsupported: make(map[gesture.CommandKind]bool),
	}, nil
}

// SetEnabled pauses or resumes command generation. Frames read while
// disabled are dropped without reaching the controller.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether frames reach the controller.
func (a *App) IsEnabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enabled
}

// Mode returns the active controller's mode.
func (a *App) Mode() gesture.Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.controller.Mode()
}

// SetMode replaces the controller with a fresh one for mode. Switching to the
// current mode also resets its state. A button held by the outgoing pinch
// controller is released first. When a journal is attached a new session is
// started.
func (a *App) SetMode(mode gesture.Mode) error {
	a.stepMu.Lock()
	defer a.stepMu.Unlock()

	controller, err := gesture.NewController(mode, a.geometry())
	if err != nil {
		return err
	}
	prev := a.swapController(controller, nil)

	a.mu.Lock()
	running := a.session != nil
	listeners := a.listeners
	a.mu.Unlock()

	if running {
		a.endSession()
		a.beginSession(mode)
	}

	a.logger.Info("mode switched", zap.String("from", string(prev)), zap.String("to", string(mode)))
	for _, fn := range listeners {
		fn(mode)
	}
	return nil
}

// OnModeChange registers fn to run after every successful SetMode.
func (a *App) OnModeChange(fn func(gesture.Mode)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listeners = append(a.listeners, fn)
}

// swapController installs controller and resets the state gauges. If the
// outgoing pinch controller holds the button, a ButtonRelease is forwarded so
// the sink never keeps it pressed. A non-nil frame replaces the frame size.
// Callers hold stepMu.
func (a *App) swapController(controller gesture.Controller, frame *gesture.Size) gesture.Mode {
	a.mu.Lock()
	prev := a.controller
	held := false
	if p, ok := prev.(*gesture.PinchController); ok {
		held = p.Engaged()
	}
	a.controller = controller
	if frame != nil {
		a.config.Geometry.Frame = *frame
	}
	a.metrics.SetLatch(false)
	a.metrics.SetMediaState(int(gesture.MediaIdle))
	a.mu.Unlock()

	if held {
		a.forward(context.Background(), gesture.Command{Kind: gesture.CommandButtonRelease})
	}
	return prev.Mode()
}

func (a *App) geometry() gesture.Geometry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.config.Geometry
}

// Status returns a snapshot of the pipeline.
func (a *App) Status() Status {
	running := a.isRunning()

	a.mu.Lock()
	defer a.mu.Unlock()

	st := Status{
		Mode:    a.controller.Mode(),
		Enabled: a.enabled,
		Running: running,
		Frame:   a.config.Geometry.Frame,
		Screen:  a.config.Geometry.Screen,
	}
	switch c := a.controller.(type) {
	case *gesture.MediaController:
		st.MediaState = c.State().String()
	case *gesture.PinchController:
		st.Engaged = c.Engaged()
	}
	if a.session != nil {
		st.SessionID = a.session.ID
	}
	if a.last != nil {
		cmd := *a.last
		st.LastCommand = &cmd
	}
	return st
}

// Subscribe returns a channel receiving every forwarded command and a
// function that cancels the subscription. Slow subscribers miss commands.
func (a *App) Subscribe() (<-chan gesture.Command, func()) {
	return a.feed.subscribe()
}

// LatestJPEG returns the most recent annotated frame, or nil before the first.
func (a *App) LatestJPEG() []byte {
	a.previewMu.RLock()
	defer a.previewMu.RUnlock()
	return a.preview
}

// Start opens the camera, begins a journal session and runs the frame loop
// until Stop is called or ctx is done.
func (a *App) Start(ctx context.Context) error {
	a.runMu.Lock()
	defer a.runMu.Unlock()

	if a.cancel != nil {
		return nil
	}
	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}

	a.beginSession(a.Mode())

	loopCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.done = make(chan struct{})
	go a.run(loopCtx, a.done)

	g := a.geometry()
	a.logger.Info("pipeline started",
		zap.String("mode", string(a.Mode())),
		zap.Int("fps", a.config.FPS),
		zap.Stringer("frame", g.Frame),
		zap.Stringer("screen", g.Screen))
	return nil
}

// Stop halts the frame loop and releases the camera, detector, motion gate
// and sink.
func (a *App) Stop() error {
	a.runMu.Lock()
	cancel, done := a.cancel, a.done
	a.cancel, a.done = nil, nil
	a.runMu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	<-done

	a.endSession()

	var errs []error
	if err := a.camera.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close camera: %w", err))
	}
	if err := a.detector.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close detector: %w", err))
	}
	if a.motion != nil {
		a.motion.Close()
	}
	if err := a.sink.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close sink: %w", err))
	}

	a.logger.Info("pipeline stopped")
	return errors.Join(errs...)
}

// isRunning takes runMu, so callers must not hold mu.
func (a *App) isRunning() bool {
	a.runMu.Lock()
	defer a.runMu.Unlock()
	return a.cancel != nil
}

func (a *App) beginSession(mode gesture.Mode) {
	if a.store == nil {
		return
	}
	session, err := a.store.Sessions().Start(string(mode))
	if err != nil {
		a.logger.Warn("journal session not started", zap.Error(err))
		return
	}

	a.mu.Lock()
	a.session = session
	a.seq = 0
	a.mu.Unlock()
}

func (a *App) endSession() {
	a.mu.Lock()
	session := a.session
	a.session = nil
	a.mu.Unlock()

	if session == nil {
		return
	}
	if err := a.store.Sessions().End(session.ID); err != nil {
		a.logger.Warn("journal session not ended", zap.String("session", session.ID), zap.Error(err))
	}
}
