package inject

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/logging"
)

const (
	mprisPrefix     = "org.mpris.MediaPlayer2."
	mprisObjectPath = "/org/mpris/MediaPlayer2"
	mprisPlayer     = "org.mpris.MediaPlayer2.Player"
)

// SeekStep is how far one seek command moves the playhead.
const SeekStep = 5 * time.Second

// ErrNoPlayer is returned when no MPRIS player is on the session bus.
var ErrNoPlayer = errors.New("no MPRIS player on the session bus")

// MPRISClient is the D-Bus surface MPRISSink needs.
type MPRISClient interface {
	ListNames() ([]string, error)
	Invoke(dest, method string, args ...any) error
	Close() error
}

// SessionBusClient is an MPRISClient on the D-Bus session bus.
type SessionBusClient struct {
	conn *dbus.Conn
}

// NewSessionBusClient connects to the session bus.
func NewSessionBusClient() (*SessionBusClient, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("session bus: %w", err)
	}
	return &SessionBusClient{conn: conn}, nil
}

func (c *SessionBusClient) ListNames() ([]string, error) {
	var names []string
	err := c.conn.BusObject().Call("org.freedesktop.DBus.ListNames", 0).Store(&names)
	return names, err
}

// Invoke calls method on the MPRIS object of dest.
func (c *SessionBusClient) Invoke(dest, method string, args ...any) error {
	return c.conn.Object(dest, mprisObjectPath).Call(method, 0, args...).Err
}

func (c *SessionBusClient) Close() error {
	return c.conn.Close()
}

// MPRISSink controls a desktop media player over MPRIS. Pointer commands are
// unsupported.
type MPRISSink struct {
	client MPRISClient
	logger *zap.Logger

	mu     sync.Mutex
	player string
}

// NewMPRISSink returns a sink that talks through client.
func NewMPRISSink(client MPRISClient, logger *zap.Logger) *MPRISSink {
	return &MPRISSink{client: client, logger: logging.OrNop(logger).Named("mpris")}
}

func (s *MPRISSink) Name() string { return "mpris" }

func (s *MPRISSink) Send(_ context.Context, cmd gesture.Command) error {
	var (
		method string
		args   []any
	)
	switch cmd.Kind {
	case gesture.CommandPlay:
		method = mprisPlayer + ".Play"
	case gesture.CommandPause:
		method = mprisPlayer + ".Pause"
	case gesture.CommandSeekBackward:
		method, args = mprisPlayer+".Seek", []any{-SeekStep.Microseconds()}
	case gesture.CommandSeekForward:
		method, args = mprisPlayer+".Seek", []any{SeekStep.Microseconds()}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedCommand, cmd.Kind)
	}

	player, err := s.resolvePlayer()
	if err != nil {
		return err
	}
	if err := s.client.Invoke(player, method, args...); err != nil {
		// The player may have exited; look it up again next time.
		s.forgetPlayer()
		return fmt.Errorf("%s %s: %w", player, method, err)
	}
	return nil
}

func (s *MPRISSink) Close() error {
	return s.client.Close()
}

// Player returns the bus name commands are currently sent to, if resolved.
func (s *MPRISSink) Player() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player
}

func (s *MPRISSink) resolvePlayer() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player != "" {
		return s.player, nil
	}

	names, err := s.client.ListNames()
	if err != nil {
		return "", fmt.Errorf("list bus names: %w", err)
	}
	var players []string
	for _, name := range names {
		if strings.HasPrefix(name, mprisPrefix) {
			players = append(players, name)
		}
	}
	if len(players) == 0 {
		return "", ErrNoPlayer
	}
	sort.Strings(players)

	s.player = players[0]
	s.logger.Info("using MPRIS player", zap.String("player", s.player))
	return s.player, nil
}

func (s *MPRISSink) forgetPlayer() {
	s.mu.Lock()
	s.player = ""
	s.mu.Unlock()
}
