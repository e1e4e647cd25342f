package inject

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/logging"
	"github.com/ayusman/mudra/internal/plugin"
	"github.com/ayusman/mudra/internal/store"
)

// BindingSource looks up the binding for a command kind. A nil binding means
// the command is unbound.
type BindingSource interface {
	GetByCommand(command string) (*store.Binding, error)
}

// PluginSource finds discovered plugins by name.
type PluginSource interface {
	Get(name string) (*plugin.Plugin, error)
}

// Runner executes a plugin request.
type Runner interface {
	Execute(ctx context.Context, p *plugin.Plugin, req *plugin.Request) (*plugin.Response, error)
}

// DefaultBindings route the media commands to the bundled keyboard plugin
// using macOS virtual key codes. Stored bindings take precedence.
func DefaultBindings() map[gesture.CommandKind]store.Binding {
	keyCode := func(kind gesture.CommandKind, code int) store.Binding {
		return store.Binding{
			Command:    kind.String(),
			PluginName: "keyboard",
			ActionName: "key-code",
			Params:     json.RawMessage(fmt.Sprintf(`{"code":%d}`, code)),
			Enabled:    true,
		}
	}
	return map[gesture.CommandKind]store.Binding{
		gesture.CommandPause:        keyCode(gesture.CommandPause, 49),
		gesture.CommandSeekBackward: keyCode(gesture.CommandSeekBackward, 123),
		gesture.CommandSeekForward:  keyCode(gesture.CommandSeekForward, 124),
	}
}

// PluginSink runs the plugin action bound to each command. Commands with no
// enabled binding are skipped silently.
type PluginSink struct {
	bindings BindingSource
	plugins  PluginSource
	runner   Runner
	defaults map[gesture.CommandKind]store.Binding
	logger   *zap.Logger
}

// NewPluginSink returns a sink that resolves bindings from bindings (which
// may be nil) and falls back to DefaultBindings.
func NewPluginSink(bindings BindingSource, plugins PluginSource, runner Runner, logger *zap.Logger) *PluginSink {
	return &PluginSink{
		bindings: bindings,
		plugins:  plugins,
		runner:   runner,
		defaults: DefaultBindings(),
		logger:   logging.OrNop(logger).Named("plugin-sink"),
	}
}

func (s *PluginSink) Name() string { return "plugin" }

func (s *PluginSink) Send(ctx context.Context, cmd gesture.Command) error {
	b, err := s.resolve(cmd.Kind)
	if err != nil {
		return err
	}
	if b == nil || !b.Enabled {
		s.logger.Debug("command unbound", zap.Stringer("command", cmd.Kind))
		return nil
	}

	p, err := s.plugins.Get(b.PluginName)
	if err != nil {
		return fmt.Errorf("binding %s: %s: %w", b.Command, b.PluginName, err)
	}
	if !p.Supports(b.ActionName) {
		return fmt.Errorf("binding %s: plugin %s has no action %q", b.Command, b.PluginName, b.ActionName)
	}

	_, err = s.runner.Execute(ctx, p, &plugin.Request{
		Action:  b.ActionName,
		Command: cmd.Kind.String(),
		Params:  b.Params,
	})
	return err
}

func (s *PluginSink) Close() error { return nil }

func (s *PluginSink) resolve(kind gesture.CommandKind) (*store.Binding, error) {
	if s.bindings != nil {
		b, err := s.bindings.GetByCommand(kind.String())
		if err != nil {
			return nil, fmt.Errorf("lookup binding %s: %w", kind, err)
		}
		if b != nil {
			return b, nil
		}
	}
	if b, ok := s.defaults[kind]; ok {
		return &b, nil
	}
	return nil, nil
}
