package inject

import (
	"context"

	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/logging"
)

// LogSink performs nothing and logs every command. It is the dry-run sink.
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logging.OrNop(logger).Named("sink")}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Send(_ context.Context, cmd gesture.Command) error {
	fields := []zap.Field{zap.Stringer("command", cmd.Kind)}
	if cmd.Kind == gesture.CommandPointerMove {
		fields = append(fields, zap.Float64("x", cmd.X), zap.Float64("y", cmd.Y))
	}
	s.logger.Info("command", fields...)
	return nil
}

func (s *LogSink) Close() error { return nil }
