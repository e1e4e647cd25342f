package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/tray"
)

func main() {
	var (
		cfg      *config.Config
		pipeline *app.App
		logger   *zap.Logger
	)

	fxApp := fx.New(
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),

		fx.Provide(
			newConfig,
			newLogger,
			newStore,
			newMetrics,
			newScreenSize,
			newPluginManager,
			newSink,
			newDetector,
			newCamera,
			newMotionGate,
			newApp,
			newServer,
		),

		fx.Invoke(registerHooks),
		fx.Populate(&cfg, &pipeline, &logger),
	)
	if err := fxApp.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "mudra: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := fxApp.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "mudra: %v\n", err)
		os.Exit(1)
	}

	if cfg.Tray {
		runTray(ctx, cancel, pipeline)
	}
	<-ctx.Done()

	if err := fxApp.Stop(context.Background()); err != nil {
		logger.Error("shutdown", zap.Error(err))
		os.Exit(1)
	}
}

// runTray owns the calling goroutine until Quit is clicked or ctx is done.
func runTray(ctx context.Context, quit context.CancelFunc, pipeline *app.App) {
	status := pipeline.Status()
	t := tray.New(status.Enabled, status.Mode)
	t.OnToggle(pipeline.SetEnabled)
	t.OnMode(func(mode gesture.Mode) error { return pipeline.SetMode(mode) })
	t.OnQuit(quit)
	pipeline.OnModeChange(t.SetMode)

	feed, unsubscribe := pipeline.Subscribe()
	defer unsubscribe()
	go t.Watch(feed)

	go func() {
		<-ctx.Done()
		t.Stop()
	}()
	t.Run()
}
