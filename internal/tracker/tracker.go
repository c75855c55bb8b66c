// Package tracker turns per-frame point detections into tracking sessions
// and notifies listeners once per session transition.
package tracker

import "image"

// Tracker consumes a stream of points.
//
// SendPoint must tolerate being called any number of times, including while
// the tracker is disabled. Implementations define their own state machine
// and callback policy.
type Tracker interface {
	// Enable toggles callback delivery. It has no other side effect.
	Enable(enabled bool)

	// IsEnabled reports whether callbacks are delivered.
	IsEnabled() bool

	// SendPoint feeds one detected point into the tracker.
	SendPoint(p image.Point)
}

// Toggle carries the enabled flag shared by tracker implementations.
// The zero value is disabled; use NewToggle for the usual enabled default.
type Toggle struct {
	enabled bool
}

// NewToggle returns an enabled Toggle.
func NewToggle() Toggle {
	return Toggle{enabled: true}
}

// Enable sets the enabled flag.
func (t *Toggle) Enable(enabled bool) {
	t.enabled = enabled
}

// IsEnabled returns the enabled flag.
func (t *Toggle) IsEnabled() bool {
	return t.enabled
}
