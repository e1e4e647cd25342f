package config_test

import (
	"context"
	"errors"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/gesture"
)

func TestConfigValidate(t *testing.T) {
	convey.Convey("Given the default config", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("It should be valid", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("It should not override the screen size", func() {
			_, ok := cfg.ScreenOverride()
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("Media mode through mpris should be valid", func() {
			cfg.Sink = config.SinkMPRIS
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("A zero frame width should be degenerate geometry", func() {
			cfg.FrameWidth = 0
			err := cfg.Validate()
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(errors.Is(err, gesture.ErrDegenerateGeometry), convey.ShouldBeTrue)
		})

		cases := map[string]func(*config.Config){
			"unknown mode":         func(c *config.Config) { c.Mode = "swipe" },
			"unknown sink":         func(c *config.Config) { c.Sink = "midi" },
			"zero fps":             func(c *config.Config) { c.FPS = 0 },
			"negative hand index":  func(c *config.Config) { c.HandIndex = -1 },
			"negative screen":      func(c *config.Config) { c.ScreenWidth = -1 },
			"zero pinch threshold": func(c *config.Config) { c.PinchThreshold = 0 },
			"confidence above one": func(c *config.Config) { c.MinDetectionConfidence = 1.5 },
			"zero max hands":       func(c *config.Config) { c.MaxHands = 0 },
			"pinch through mpris": func(c *config.Config) {
				c.Mode = "pinch"
				c.Sink = config.SinkMPRIS
			},
		}
		for name, mutate := range cases {
			convey.Convey("It should reject "+name, func() {
				mutate(cfg)
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})
}

func TestExpandHome(t *testing.T) {
	convey.Convey("Given paths with and without a home prefix", t, func() {
		convey.So(config.ExpandHome("/var/lib/mudra.db"), convey.ShouldEqual, "/var/lib/mudra.db")
		convey.So(config.ExpandHome("relative/path"), convey.ShouldEqual, "relative/path")
		convey.So(config.ExpandHome("~/x"), convey.ShouldNotStartWith, "~")
	})
}
