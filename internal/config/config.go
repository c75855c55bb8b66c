// Package config loads forcetrack settings from the environment and flags.
package config

import (
	"errors"
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ErrTrayUnsupported is returned by Validate when the tray is requested on a
// platform where the tray and the video window would both need the main thread.
var ErrTrayUnsupported = errors.New("tray is not supported on this platform")

// Config holds every runtime setting. Environment values are read first
// and flags override them.
type Config struct {
	// Device is a camera index or a video file path.
	Device string `env:"FORCETRACK_DEVICE" envDefault:"0"`
	Width  int    `env:"FORCETRACK_WIDTH" envDefault:"640"`
	Height int    `env:"FORCETRACK_HEIGHT" envDefault:"480"`

	// Cascade is the Haar cascade used for face detection.
	Cascade string `env:"FORCETRACK_CASCADE" envDefault:"./haarcascade_frontalface_alt.xml"`

	// DelayMs is the key poll timeout per frame.
	DelayMs int `env:"FORCETRACK_DELAY_MS" envDefault:"30"`

	// Threshold is stored on the force tracker. Nothing reads it yet.
	Threshold int `env:"FORCETRACK_THRESHOLD" envDefault:"2"`

	// HandThreshold is the binary threshold of the contour hand detector.
	HandThreshold float64 `env:"FORCETRACK_HAND_THRESHOLD" envDefault:"70"`

	// ShowMask opens a second window with the thresholded hand mask.
	ShowMask bool `env:"FORCETRACK_SHOW_MASK"`

	// Journal is a SQLite file recording sessions. Empty disables it.
	Journal string `env:"FORCETRACK_JOURNAL"`

	// Addr serves health and the live event feed. Empty disables it.
	Addr string `env:"FORCETRACK_ADDR"`

	// Tray shows a system tray toggle for tracking notifications.
	Tray bool `env:"FORCETRACK_TRAY"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(cfg *Config) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Device, "camera", cfg.Device, "camera index or video file")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "capture width")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "capture height")
	fs.StringVar(&cfg.Cascade, "cascade", cfg.Cascade, "Haar cascade for face detection")
	fs.IntVar(&cfg.DelayMs, "delay", cfg.DelayMs, "key poll timeout in milliseconds")
	fs.IntVar(&cfg.Threshold, "threshold", cfg.Threshold, "force tracker threshold")
	fs.Float64Var(&cfg.HandThreshold, "hand-threshold", cfg.HandThreshold, "hand mask binary threshold")
	fs.BoolVar(&cfg.ShowMask, "show-mask", cfg.ShowMask, "show the hand mask window")
	fs.StringVar(&cfg.Journal, "journal", cfg.Journal, "SQLite session journal path (empty disables)")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP address for health and live events (empty disables)")
	fs.BoolVar(&cfg.Tray, "tray", cfg.Tray, "show the system tray toggle")

	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that depend on the target platform goos.
func Validate(cfg Config, goos string) error {
	if cfg.Tray && goos == "darwin" {
		return fmt.Errorf("tray on %s: %w", goos, ErrTrayUnsupported)
	}
	return nil
}
