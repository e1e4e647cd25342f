package app

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/inject"
	"github.com/ayusman/mudra/internal/store"
)

// run reads frames at the configured rate until ctx is done. With a motion
// gate attached the loop drops to IdleFPS once the scene has been still for
// MotionHold, and returns to the full rate on the next motion.
func (a *App) run(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	activeInterval := time.Second / time.Duration(a.config.FPS)
	idleInterval := time.Second / time.Duration(IdleFPS)

	interval := activeInterval
	if a.motion != nil {
		interval = idleInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		frame, err := a.camera.ReadFrame()
		if err != nil {
			if errors.Is(err, capture.ErrNoFrames) {
				a.logger.Info("frame source exhausted")
				return
			}
			a.logger.Warn("frame read failed", zap.Error(err))
			continue
		}
		a.ProcessFrame(ctx, frame)
		frame.Close()

		if a.motion == nil {
			continue
		}
		want := idleInterval
		if a.active() {
			want = activeInterval
		}
		if want != interval {
			interval = want
			ticker.Reset(interval)
			a.logger.Debug("frame rate changed", zap.Duration("interval", interval))
		}
	}
}

// ProcessFrame runs one frame through the pipeline and returns the commands
// forwarded to the sink, in emission order. The frame is mirrored and
// annotated in place; the caller keeps ownership. Gesture geometry follows
// the size of the frames actually delivered.
func (a *App) ProcessFrame(ctx context.Context, frame *gocv.Mat) []gesture.Command {
	start := time.Now()

	if !a.IsEnabled() {
		return nil
	}

	a.stepMu.Lock()
	defer a.stepMu.Unlock()

	if !a.adoptFrameSize(frame) {
		return nil
	}
	if a.config.Mirror {
		capture.Mirror(frame)
	}

	if a.motion != nil {
		if moved, changed := a.motion.Check(frame); moved {
			a.mu.Lock()
			a.lastMotion = start
			a.mu.Unlock()
		} else if !a.active() {
			a.logger.Debug("frame skipped", zap.Float64("changed_pct", changed))
			a.metrics.FrameSkipped()
			a.publishPreview(frame, nil, nil)
			return nil
		}
	}

	hands, err := a.detector.Detect(frame)
	if err != nil {
		a.metrics.DetectError()
		a.logger.Warn("hand detection failed", zap.Error(err))
		return nil
	}
	hand, present := detector.SelectHand(hands, a.config.HandIndex)

	a.mu.Lock()
	controller := a.controller
	cmds := controller.Update(hand)
	reading := a.observe(controller, present)
	a.mu.Unlock()

	for _, cmd := range cmds {
		a.forward(ctx, cmd)
	}

	a.metrics.ObserveFrame(time.Since(start), present)
	a.publishPreview(frame, hands, reading)
	return cmds
}

// adoptFrameSize rebuilds the controller when frame differs in size from the
// current geometry. It reports false for a frame no controller can measure.
// Callers hold stepMu.
func (a *App) adoptFrameSize(frame *gocv.Mat) bool {
	size := gesture.Size{Width: float64(frame.Cols()), Height: float64(frame.Rows())}

	a.mu.Lock()
	g := a.config.Geometry
	mode := a.controller.Mode()
	a.mu.Unlock()

	if g.Frame == size {
		return true
	}
	prev := g.Frame
	g.Frame = size
	controller, err := gesture.NewController(mode, g)
	if err != nil {
		a.logger.Warn("frame dropped", zap.Stringer("size", size), zap.Error(err))
		return false
	}
	a.swapController(controller, &size)
	a.logger.Info("frame size changed", zap.Stringer("from", prev), zap.Stringer("to", size))
	return true
}

// observe updates the state gauges and logs the per-frame geometry. It
// returns the pinch reading to draw, if any. Must be called with mu held.
func (a *App) observe(controller gesture.Controller, present bool) *gesture.PinchReading {
	switch c := controller.(type) {
	case *gesture.MediaController:
		a.metrics.SetMediaState(int(c.State()))
		if present {
			a.logger.Debug("media frame", zap.Stringer("state", c.State()))
		}
	case *gesture.PinchController:
		a.metrics.SetLatch(c.Engaged())
		if !present {
			return nil
		}
		r, ok := c.LastReading()
		if !ok {
			return nil
		}
		pointer := gesture.ToScreen(r.Center, a.config.Geometry.Frame, a.config.Geometry.Screen)
		a.logger.Debug("pinch frame",
			zap.Float64("distance", r.Distance),
			zap.Stringer("frame", a.config.Geometry.Frame),
			zap.Stringer("screen", a.config.Geometry.Screen),
			zap.Float64("pointer_x", pointer.X),
			zap.Float64("pointer_y", pointer.Y),
			zap.Bool("engaged", c.Engaged()))
		return &r
	}
	return nil
}

// forward hands one command to the sink, then records it. A sink failure is
// logged and counted; it never stops the pipeline.
func (a *App) forward(ctx context.Context, cmd gesture.Command) {
	if err := a.sink.Send(ctx, cmd); err != nil {
		a.sinkFailed(cmd, err)
	}
	a.metrics.CommandEmitted(cmd.Kind.String())

	a.mu.Lock()
	last := cmd
	a.last = &last
	record := a.journalRecord(cmd)
	a.mu.Unlock()

	if record != nil {
		if err := a.store.Commands().Append(record); err != nil {
			a.logger.Warn("journal append failed", zap.Error(err))
		}
	}
	a.feed.publish(cmd)
}

// journalRecord builds the next journal row for cmd, or nil when cmd is not
// journaled. Must be called with mu held.
func (a *App) journalRecord(cmd gesture.Command) *store.CommandRecord {
	if a.session == nil {
		return nil
	}
	if cmd.Kind == gesture.CommandPointerMove && !a.config.JournalPointer {
		return nil
	}
	a.seq++
	return &store.CommandRecord{
		SessionID: a.session.ID,
		Seq:       a.seq,
		Kind:      cmd.Kind.String(),
		X:         cmd.X,
		Y:         cmd.Y,
	}
}

// sinkFailed logs and counts a send failure. A kind the sink cannot perform is
// reported once and not counted.
func (a *App) sinkFailed(cmd gesture.Command, err error) {
	if errors.Is(err, inject.ErrUnsupportedCommand) {
		a.mu.Lock()
		seen := a.unsupported[cmd.Kind]
		a.unsupported[cmd.Kind] = true
		a.mu.Unlock()
		if !seen {
			a.logger.Warn("sink does not support command", zap.Stringer("kind", cmd.Kind), zap.Error(err))
		}
		return
	}
	a.metrics.SinkError(a.sink.Name())
	a.logger.Warn("sink rejected command", zap.Stringer("command", cmd), zap.Error(err))
}

func (a *App) active() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return time.Since(a.lastMotion) < MotionHold
}

func (a *App) publishPreview(frame *gocv.Mat, hands []detector.HandLandmarks, reading *gesture.PinchReading) {
	capture.Annotate(frame, hands, reading)
	data, err := capture.EncodeJPEG(frame)
	if err != nil {
		a.logger.Debug("preview not encoded", zap.Error(err))
		return
	}

	a.previewMu.Lock()
	a.preview = data
	a.previewMu.Unlock()
}
