package inject

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ayusman/mudra/internal/gesture"
)

func TestLogSink(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := NewLogSink(zap.New(core))
	ctx := context.Background()

	require.NoError(t, s.Send(ctx, gesture.Command{Kind: gesture.CommandPause}))
	require.NoError(t, s.Send(ctx, gesture.PointerMove(960, 540)))

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "pause", entries[0].ContextMap()["command"])
	assert.NotContains(t, entries[0].ContextMap(), "x")

	fields := entries[1].ContextMap()
	assert.Equal(t, "pointer-move", fields["command"])
	assert.Equal(t, 960.0, fields["x"])
	assert.Equal(t, 540.0, fields["y"])

	assert.Equal(t, "log", s.Name())
	assert.NoError(t, s.Close())
}

func TestLogSink_NilLogger(t *testing.T) {
	assert.NoError(t, NewLogSink(nil).Send(context.Background(), gesture.Command{Kind: gesture.CommandPlay}))
}
