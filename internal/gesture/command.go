package gesture

import (
	"fmt"
	"strconv"
)

// CommandKind identifies a device action emitted by a controller.
type CommandKind int

const (
	CommandPlay CommandKind = iota + 1
	CommandPause
	CommandSeekBackward
	CommandSeekForward
	CommandPointerMove
	CommandButtonPress
	CommandButtonRelease
)

var commandNames = map[CommandKind]string{
	CommandPlay:          "play",
	CommandPause:         "pause",
	CommandSeekBackward:  "seek-backward",
	CommandSeekForward:   "seek-forward",
	CommandPointerMove:   "pointer-move",
	CommandButtonPress:   "button-press",
	CommandButtonRelease: "button-release",
}

// CommandKinds lists every kind in declaration order.
func CommandKinds() []CommandKind {
	return []CommandKind{
		CommandPlay, CommandPause, CommandSeekBackward, CommandSeekForward,
		CommandPointerMove, CommandButtonPress, CommandButtonRelease,
	}
}

func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return "command(" + strconv.Itoa(int(k)) + ")"
}

// ParseCommandKind is the inverse of CommandKind.String.
func ParseCommandKind(s string) (CommandKind, error) {
	for kind, name := range commandNames {
		if name == s {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown command %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k CommandKind) MarshalText() ([]byte, error) {
	if _, ok := commandNames[k]; !ok {
		return nil, fmt.Errorf("unknown command kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *CommandKind) UnmarshalText(text []byte) error {
	kind, err := ParseCommandKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// Command is one discrete action for the input-injection sink. X and Y are
// absolute screen coordinates and only meaningful for CommandPointerMove.
type Command struct {
	Kind CommandKind `json:"kind"`
	X    float64     `json:"x"`
	Y    float64     `json:"y"`
}

// PointerMove builds an absolute pointer positioning command.
func PointerMove(x, y float64) Command {
	return Command{Kind: CommandPointerMove, X: x, Y: y}
}

func (c Command) String() string {
	if c.Kind == CommandPointerMove {
		return fmt.Sprintf("%s(%.1f, %.1f)", c.Kind, c.X, c.Y)
	}
	return c.Kind.String()
}
