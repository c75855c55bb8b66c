package tracker

import (
	"image"
	"log"
)

// DefaultThreshold is the threshold a new ForceTracker starts with.
const DefaultThreshold = 2

// Action is a ForceTracker callback. It runs synchronously inside SendPoint.
type Action func(t *ForceTracker)

// Session is a snapshot of a ForceTracker's session state.
type Session struct {
	Tracking  bool
	Initial   image.Point
	Current   image.Point
	Enabled   bool
	Threshold int
}

// ForceTracker follows a single target through two states, idle and
// tracking. The first point starts a session and fires the begin action;
// every later point fires the move action. A session never ends.
type ForceTracker struct {
	Toggle

	onBegin   Action
	onMove    Action
	initial   image.Point
	current   image.Point
	threshold int
	tracking  bool
}

// NewForceTracker creates an idle, enabled ForceTracker.
func NewForceTracker() *ForceTracker {
	return &ForceTracker{
		Toggle:    NewToggle(),
		threshold: DefaultThreshold,
	}
}

// OnBegin sets the action fired when a session starts.
func (t *ForceTracker) OnBegin(fn Action) {
	t.onBegin = fn
}

// OnMove sets the action fired for every point after the first.
func (t *ForceTracker) OnMove(fn Action) {
	t.onMove = fn
}

// SendPoint updates the session with p.
// State changes happen whether or not the tracker is enabled; only the
// actions are gated by the enabled flag.
func (t *ForceTracker) SendPoint(p image.Point) {
	log.Printf("ForceTracker(%d,%d)", p.X, p.Y)

	if !t.tracking {
		t.tracking = true
		t.initial = p
		t.current = p
		t.fire(t.onBegin)
		return
	}

	t.current = p
	t.fire(t.onMove)
}

func (t *ForceTracker) fire(fn Action) {
	if t.IsEnabled() && fn != nil {
		fn(t)
	}
}

// Location returns the most recent point.
func (t *ForceTracker) Location() image.Point {
	return t.current
}

// InitialLocation returns the point that started the session.
func (t *ForceTracker) InitialLocation() image.Point {
	return t.initial
}

// Tracking reports whether a session has started.
func (t *ForceTracker) Tracking() bool {
	return t.tracking
}

// Threshold returns the configured threshold.
// No transition consults it yet.
func (t *ForceTracker) Threshold() int {
	return t.threshold
}

// SetThreshold sets the threshold. Negative values are ignored.
func (t *ForceTracker) SetThreshold(threshold int) {
	if threshold < 0 {
		return
	}
	t.threshold = threshold
}

// Session returns a snapshot of the tracker state.
func (t *ForceTracker) Session() Session {
	return Session{
		Tracking:  t.tracking,
		Initial:   t.initial,
		Current:   t.current,
		Enabled:   t.IsEnabled(),
		Threshold: t.threshold,
	}
}
