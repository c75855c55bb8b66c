package display

import (
	"image"

	"gocv.io/x/gocv"
)

// MockWindow records window calls for tests.
// WaitKey reports a key press once it has been polled PressAfter times;
// a negative PressAfter never presses.
type MockWindow struct {
	PressAfter int

	shown  bool
	closed bool
	polls  int
	images int
	moves  []image.Point
}

// NewMockWindow creates a MockWindow that presses a key on poll pressAfter+1.
func NewMockWindow(pressAfter int) *MockWindow {
	return &MockWindow{PressAfter: pressAfter}
}

func (w *MockWindow) Show() { w.shown = true }

func (w *MockWindow) UpdateImage(img gocv.Mat) { w.images++ }

func (w *MockWindow) WaitKey() bool {
	pressed := w.PressAfter >= 0 && w.polls >= w.PressAfter
	w.polls++
	return pressed
}

func (w *MockWindow) Move(p image.Point) { w.moves = append(w.moves, p) }

func (w *MockWindow) Close() error {
	w.closed = true
	return nil
}

// Shown reports whether Show was called.
func (w *MockWindow) Shown() bool { return w.shown }

// Closed reports whether Close was called.
func (w *MockWindow) Closed() bool { return w.closed }

// Images returns how many images were displayed.
func (w *MockWindow) Images() int { return w.images }

// Moves returns every position passed to Move, in order.
func (w *MockWindow) Moves() []image.Point { return w.moves }
