package config

import (
	"errors"
	"flag"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("forcetrack", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	want := Config{
		Device:        "0",
		Width:         640,
		Height:        480,
		Cascade:       "./haarcascade_frontalface_alt.xml",
		DelayMs:       30,
		Threshold:     2,
		HandThreshold: 70,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("ParseConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseConfig_EnvThenFlags(t *testing.T) {
	t.Setenv("FORCETRACK_DEVICE", "clip.mp4")
	t.Setenv("FORCETRACK_THRESHOLD", "5")
	t.Setenv("FORCETRACK_JOURNAL", "/tmp/env.db")
	t.Setenv("FORCETRACK_TRAY", "true")

	cfg, err := ParseConfig(newFlagSet(), []string{"-threshold", "9", "-addr", ":9000", "-show-mask"})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	if cfg.Device != "clip.mp4" {
		t.Errorf("Device = %q, want env value", cfg.Device)
	}
	if cfg.Threshold != 9 {
		t.Errorf("Threshold = %d, want flag value 9", cfg.Threshold)
	}
	if cfg.Journal != "/tmp/env.db" {
		t.Errorf("Journal = %q, want env value", cfg.Journal)
	}
	if cfg.Addr != ":9000" {
		t.Errorf("Addr = %q, want :9000", cfg.Addr)
	}
	if !cfg.Tray || !cfg.ShowMask {
		t.Errorf("Tray = %v, ShowMask = %v; want both true", cfg.Tray, cfg.ShowMask)
	}
}

func TestParseConfig_Errors(t *testing.T) {
	t.Run("bad env value", func(t *testing.T) {
		t.Setenv("FORCETRACK_DELAY_MS", "soon")

		_, err := ParseConfig(newFlagSet(), nil)
		if err == nil || !strings.Contains(err.Error(), "parse env:") {
			t.Fatalf("ParseConfig() error = %v, want parse env error", err)
		}
	})

	t.Run("unknown flag", func(t *testing.T) {
		if _, err := ParseConfig(newFlagSet(), []string{"-nope"}); err == nil {
			t.Fatal("expected error for unknown flag")
		}
	})
}

func TestParseEnv_NilTarget(t *testing.T) {
	if err := ParseEnv(nil); err == nil {
		t.Fatal("expected error for nil target")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		goos    string
		wantErr error
	}{
		{name: "tray on linux", cfg: Config{Tray: true}, goos: "linux"},
		{name: "tray on windows", cfg: Config{Tray: true}, goos: "windows"},
		{name: "tray on darwin", cfg: Config{Tray: true}, goos: "darwin", wantErr: ErrTrayUnsupported},
		{name: "no tray on darwin", cfg: Config{}, goos: "darwin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.cfg, tt.goos)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
