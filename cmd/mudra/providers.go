package main

import (
	"context"
	"fmt"
	"net"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/inject"
	"github.com/ayusman/mudra/internal/logging"
	"github.com/ayusman/mudra/internal/metrics"
	"github.com/ayusman/mudra/internal/plugin"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
)

func newConfig() (*config.Config, error) {
	return config.Load(context.Background())
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.LogLevel)
}

func newStore(lc fx.Lifecycle, cfg *config.Config) (*store.Store, error) {
	s, err := store.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", cfg.DBPath, err)
	}
	lc.Append(fx.StopHook(s.Close))
	return s, nil
}

func newMetrics() *metrics.Manager {
	return metrics.New()
}

func newScreenSize(cfg *config.Config, logger *zap.Logger) gesture.Size {
	if size, ok := cfg.ScreenOverride(); ok {
		logger.Info("screen size from config", zap.Stringer("size", size))
		return size
	}
	return inject.ScreenSize(logger)
}

func newPluginManager(cfg *config.Config, logger *zap.Logger) *plugin.Manager {
	m := plugin.NewManager(cfg.PluginDir, logger)
	if err := m.Discover(); err != nil {
		logger.Warn("plugin discovery failed", zap.String("dir", cfg.PluginDir), zap.Error(err))
	}
	return m
}

// newSink builds the configured sink. At debug level every command is also
// logged.
func newSink(cfg *config.Config, st *store.Store, plugins *plugin.Manager, logger *zap.Logger) (inject.Sink, error) {
	var primary inject.Sink
	switch cfg.Sink {
	case config.SinkRobotgo:
		primary = inject.NewRobotgoSink()
	case config.SinkMPRIS:
		client, err := inject.NewSessionBusClient()
		if err != nil {
			return nil, err
		}
		primary = inject.NewMPRISSink(client, logger)
	case config.SinkPlugin:
		runner := plugin.NewExecutor(plugin.DefaultTimeout)
		primary = inject.NewPluginSink(st.Bindings(), plugins, runner, logger)
	case config.SinkLog:
		return inject.NewLogSink(logger), nil
	default:
		return nil, fmt.Errorf("unknown sink %q", cfg.Sink)
	}

	if logger.Core().Enabled(zap.DebugLevel) {
		return inject.NewFanout(primary, inject.NewLogSink(logger)), nil
	}
	return inject.NewFanout(primary), nil
}

func newDetector(cfg *config.Config, logger *zap.Logger) detector.Detector {
	dcfg := detector.Config{
		MaxHands:        cfg.MaxHands,
		MinConfidence:   cfg.MinDetectionConfidence,
		MinTrackingConf: cfg.MinTrackingConfidence,
	}
	d, err := detector.NewMediaPipeDetector(dcfg)
	if err != nil {
		logger.Warn("MediaPipe not available, no hands will be detected", zap.Error(err))
		return detector.NewMockDetector()
	}
	logger.Info("using MediaPipe hand detection",
		zap.Int("max_hands", dcfg.MaxHands),
		zap.Float64("min_detection_confidence", dcfg.MinConfidence),
		zap.Float64("min_tracking_confidence", dcfg.MinTrackingConf))
	return d
}

func newCamera(cfg *config.Config) capture.Camera {
	return capture.NewCamera(capture.CameraConfig{
		DeviceID: cfg.CameraID,
		Width:    cfg.FrameWidth,
		Height:   cfg.FrameHeight,
		FPS:      cfg.FPS,
	})
}

func newMotionGate(cfg *config.Config) *capture.MotionGate {
	if !cfg.MotionGate {
		return nil
	}
	return capture.NewMotionGate(cfg.MotionThreshold)
}

type appParams struct {
	fx.In

	Config   *config.Config
	Screen   gesture.Size
	Camera   capture.Camera
	Detector detector.Detector
	Sink     inject.Sink
	Motion   *capture.MotionGate
	Store    *store.Store
	Metrics  *metrics.Manager
	Logger   *zap.Logger
}

func newApp(p appParams) (*app.App, error) {
	mode, err := gesture.ParseMode(p.Config.Mode)
	if err != nil {
		return nil, err
	}
	return app.New(app.Config{
		Mode: mode,
		Geometry: gesture.Geometry{
			Frame:          p.Config.FrameSize(),
			Screen:         p.Screen,
			PinchThreshold: p.Config.PinchThreshold,
		},
		HandIndex:      p.Config.HandIndex,
		Mirror:         p.Config.Mirror,
		FPS:            p.Config.FPS,
		JournalPointer: p.Config.JournalPointer,
	}, app.Deps{
		Camera:   p.Camera,
		Detector: p.Detector,
		Sink:     p.Sink,
		Motion:   p.Motion,
		Store:    p.Store,
		Metrics:  p.Metrics,
		Logger:   p.Logger,
	})
}

func newServer(pipeline *app.App, st *store.Store, plugins *plugin.Manager, m *metrics.Manager, logger *zap.Logger) *server.Server {
	return server.New(server.Config{
		Pipeline: pipeline,
		Store:    st,
		Plugins:  plugins,
		Metrics:  m.Handler(),
		Logger:   logger,
	})
}

// registerHooks starts the pipeline and the HTTP server, and stops them in
// reverse order.
func registerHooks(lc fx.Lifecycle, cfg *config.Config, pipeline *app.App, srv *server.Server, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// The hook context ends when startup does, so the frame loop
			// gets its own.
			return pipeline.Start(context.Background())
		},
		OnStop: func(ctx context.Context) error {
			return pipeline.Stop()
		},
	})

	if cfg.Addr == "" {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", cfg.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", cfg.Addr, err)
			}
			go func() {
				if err := srv.Serve(ln); err != nil {
					logger.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
