package inject

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/inject/mocks"
)

const vlc = "org.mpris.MediaPlayer2.vlc"

func TestMPRISSink_Methods(t *testing.T) {
	tests := []struct {
		kind   gesture.CommandKind
		method string
		args   []any
	}{
		{gesture.CommandPlay, "org.mpris.MediaPlayer2.Player.Play", nil},
		{gesture.CommandPause, "org.mpris.MediaPlayer2.Player.Pause", nil},
		{gesture.CommandSeekBackward, "org.mpris.MediaPlayer2.Player.Seek", []any{int64(-5000000)}},
		{gesture.CommandSeekForward, "org.mpris.MediaPlayer2.Player.Seek", []any{int64(5000000)}},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			client := mocks.NewMockMPRISClient(gomock.NewController(t))
			client.EXPECT().ListNames().Return([]string{"org.freedesktop.DBus", vlc}, nil)
			client.EXPECT().Invoke(vlc, tt.method, tt.args...).Return(nil)

			s := NewMPRISSink(client, nil)

			assert.NoError(t, s.Send(context.Background(), gesture.Command{Kind: tt.kind}))
		})
	}
}

func TestMPRISSink_PicksFirstPlayerAndCaches(t *testing.T) {
	client := mocks.NewMockMPRISClient(gomock.NewController(t))
	client.EXPECT().ListNames().Return([]string{
		"org.mpris.MediaPlayer2.spotify",
		":1.42",
		"org.mpris.MediaPlayer2.mpv",
	}, nil).Times(1)
	client.EXPECT().Invoke("org.mpris.MediaPlayer2.mpv", gomock.Any()).Return(nil).Times(2)

	s := NewMPRISSink(client, nil)
	ctx := context.Background()

	require.NoError(t, s.Send(ctx, gesture.Command{Kind: gesture.CommandPause}))
	require.NoError(t, s.Send(ctx, gesture.Command{Kind: gesture.CommandPlay}))
	assert.Equal(t, "org.mpris.MediaPlayer2.mpv", s.Player())
}

func TestMPRISSink_NoPlayer(t *testing.T) {
	client := mocks.NewMockMPRISClient(gomock.NewController(t))
	client.EXPECT().ListNames().Return([]string{"org.freedesktop.DBus"}, nil)

	err := NewMPRISSink(client, nil).Send(context.Background(), gesture.Command{Kind: gesture.CommandPause})

	assert.ErrorIs(t, err, ErrNoPlayer)
}

func TestMPRISSink_FailedCallForgetsPlayer(t *testing.T) {
	client := mocks.NewMockMPRISClient(gomock.NewController(t))
	gomock.InOrder(
		client.EXPECT().ListNames().Return([]string{vlc}, nil),
		client.EXPECT().Invoke(vlc, gomock.Any()).Return(errors.New("service unknown")),
		client.EXPECT().ListNames().Return([]string{vlc}, nil),
		client.EXPECT().Invoke(vlc, gomock.Any()).Return(nil),
	)
	s := NewMPRISSink(client, nil)
	ctx := context.Background()

	assert.Error(t, s.Send(ctx, gesture.Command{Kind: gesture.CommandPause}))
	assert.Empty(t, s.Player())
	assert.NoError(t, s.Send(ctx, gesture.Command{Kind: gesture.CommandPause}))
}

func TestMPRISSink_PointerUnsupported(t *testing.T) {
	s := NewMPRISSink(mocks.NewMockMPRISClient(gomock.NewController(t)), nil)

	for _, cmd := range []gesture.Command{
		gesture.PointerMove(10, 10),
		{Kind: gesture.CommandButtonPress},
		{Kind: gesture.CommandButtonRelease},
	} {
		assert.ErrorIs(t, s.Send(context.Background(), cmd), ErrUnsupportedCommand)
	}
}

func TestMPRISSink_Close(t *testing.T) {
	client := mocks.NewMockMPRISClient(gomock.NewController(t))
	client.EXPECT().Close().Return(nil)

	assert.NoError(t, NewMPRISSink(client, nil).Close())
}
