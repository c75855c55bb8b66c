package tray

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTray_Toggle(t *testing.T) {
	tr := New()
	if !tr.IsEnabled() {
		t.Fatal("new tray should be enabled")
	}

	var states []bool
	tr.OnToggle(func(enabled bool) { states = append(states, enabled) })

	// Menu items are nil until the tray is running; Toggle must cope.
	tr.Toggle()
	tr.Toggle()
	tr.Toggle()

	if diff := cmp.Diff([]bool{false, true, false}, states); diff != "" {
		t.Errorf("toggle callbacks mismatch (-want +got):\n%s", diff)
	}
	if tr.IsEnabled() {
		t.Error("IsEnabled() = true after three toggles")
	}
}

func TestTray_SetLastEventBeforeRun(t *testing.T) {
	tr := New()
	// No menu yet; must not panic.
	tr.SetLastEvent("begin", image.Pt(1, 2))
}

func TestTitles(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "enabled", got: toggleTitle(true), want: titleEnabled},
		{name: "disabled", got: toggleTitle(false), want: titleDisabled},
		{name: "no event", got: lastEventTitle("", image.Point{}), want: "Last: none"},
		{name: "move", got: lastEventTitle("move", image.Pt(12, 11)), want: "Last: move (12,11)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
