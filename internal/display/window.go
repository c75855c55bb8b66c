// Package display shows frames in a native window and repositions it.
package display

import (
	"image"

	"gocv.io/x/gocv"
)

// DefaultDelayMs is how long WaitKey polls for a key press.
const DefaultDelayMs = 30

// Window is a named on-screen window.
type Window interface {
	// Show creates the window. Other calls before Show are ignored.
	Show()

	// UpdateImage displays img.
	UpdateImage(img gocv.Mat)

	// WaitKey polls the keyboard and reports whether a key was pressed.
	WaitKey() bool

	// Move places the window's top left corner at p.
	Move(p image.Point)

	// Close destroys the window.
	Close() error
}

// gocvWindow is a Window backed by OpenCV highgui.
// All calls must come from the goroutine that runs the frame loop.
type gocvWindow struct {
	title   string
	delayMs int
	window  *gocv.Window
}

// NewWindow creates a Window titled title. A delayMs of zero or less falls
// back to DefaultDelayMs.
func NewWindow(title string, delayMs int) Window {
	if delayMs <= 0 {
		delayMs = DefaultDelayMs
	}
	return &gocvWindow{title: title, delayMs: delayMs}
}

func (w *gocvWindow) Show() {
	if w.window != nil {
		return
	}
	w.window = gocv.NewWindow(w.title)
}

func (w *gocvWindow) UpdateImage(img gocv.Mat) {
	if w.window == nil || img.Empty() {
		return
	}
	w.window.IMShow(img)
}

func (w *gocvWindow) WaitKey() bool {
	if w.window == nil {
		return false
	}
	return w.window.WaitKey(w.delayMs) >= 0
}

func (w *gocvWindow) Move(p image.Point) {
	if w.window == nil {
		return
	}
	w.window.MoveWindow(p.X, p.Y)
}

func (w *gocvWindow) Close() error {
	if w.window == nil {
		return nil
	}
	err := w.window.Close()
	w.window = nil
	return err
}
