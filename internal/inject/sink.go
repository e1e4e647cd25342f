// Package inject delivers gesture commands to the operating system, a media
// player or an action plugin.
package inject

import (
	"context"
	"errors"
	"fmt"

	"github.com/ayusman/mudra/internal/gesture"
)

// ErrUnsupportedCommand is returned by a sink that has no way to perform a
// command kind.
var ErrUnsupportedCommand = errors.New("unsupported command")

// Sink performs commands. Send is called from the frame loop, once per
// command, in emission order.
//
//go:generate mockgen -destination=mocks/mocks.go -package=mocks github.com/ayusman/mudra/internal/inject Sink,MPRISClient,Driver
type Sink interface {
	Name() string
	Send(ctx context.Context, cmd gesture.Command) error
	Close() error
}

// Fanout sends every command to a primary sink and then to observers, in
// order. Every sink sees every command even when an earlier one fails.
type Fanout struct {
	primary   Sink
	observers []Sink
}

// NewFanout returns a sink that forwards to primary and observers.
func NewFanout(primary Sink, observers ...Sink) *Fanout {
	return &Fanout{primary: primary, observers: observers}
}

// Name reports the primary sink's name.
func (f *Fanout) Name() string { return f.primary.Name() }

func (f *Fanout) Send(ctx context.Context, cmd gesture.Command) error {
	var errs []error
	for _, s := range f.sinks() {
		if err := s.Send(ctx, cmd); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func (f *Fanout) Close() error {
	var errs []error
	for _, s := range f.sinks() {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func (f *Fanout) sinks() []Sink {
	return append([]Sink{f.primary}, f.observers...)
}
