// Package app provides the main application logic for forcetrack: the frame
// loop that feeds detected hand centres to the trackers, and the sinks that
// react to tracker notifications.
package app

import (
	"errors"
	"image"
	"log"
	"sync"

	"gocv.io/x/gocv"

	"github.com/ayusman/forcetrack/internal/capture"
	"github.com/ayusman/forcetrack/internal/config"
	"github.com/ayusman/forcetrack/internal/detector"
	"github.com/ayusman/forcetrack/internal/display"
	"github.com/ayusman/forcetrack/internal/server"
	"github.com/ayusman/forcetrack/internal/store"
	"github.com/ayusman/forcetrack/internal/tracker"
)

// Window titles.
const (
	WindowTitle     = "Forcetrack"
	MaskWindowTitle = "Forcetrack mask"
)

// JournalTracker is the tracker name recorded with journaled sessions.
const JournalTracker = "force"

// Config holds configuration options for the application.
type Config struct {
	Camera    capture.Config
	Hand      detector.HandConfig
	Cascade   string
	DelayMs   int
	Threshold int
	ShowMask  bool

	// Journal records sessions when set.
	Journal *store.Store
	// Events receives live notifications when set.
	Events *server.EventsHandler
	// OnEvent is called after every delivered notification.
	OnEvent func(kind string, p image.Point)
}

// ConfigFrom maps runtime settings onto an app Config. Journal, Events and
// OnEvent are left for the caller.
func ConfigFrom(c config.Config) Config {
	hand := detector.DefaultHandConfig()
	if c.HandThreshold > 0 {
		hand.Threshold = float32(c.HandThreshold)
	}
	return Config{
		Camera: capture.Config{
			Device: c.Device,
			Width:  c.Width,
			Height: c.Height,
		},
		Hand:      hand,
		Cascade:   c.Cascade,
		DelayMs:   c.DelayMs,
		Threshold: c.Threshold,
		ShowMask:  c.ShowMask,
	}
}

// Deps overrides the devices the App would otherwise build itself.
// Nil fields are created from Config.
type Deps struct {
	Camera     capture.Camera
	Window     display.Window
	MaskWindow display.Window
	Hands      detector.HandDetector
	Faces      detector.FaceDetector
}

// App is the forcetrack context object. Tracker state is only touched by
// the goroutine running Run or Step.
type App struct {
	config     Config
	camera     capture.Camera
	window     display.Window
	maskWindow display.Window
	mask       gocv.Mat
	hands      detector.HandDetector
	faces      detector.FaceDetector
	dispatcher *tracker.Dispatcher
	force      *tracker.ForceTracker

	// journal session of the current force tracking session
	sessionID   string
	faceCenters []image.Point

	mu      sync.Mutex
	pending *bool
	closed  bool
}

// New creates a new App and registers its force tracker with the dispatcher.
func New(config Config, deps Deps) *App {
	a := &App{
		config:     config,
		camera:     deps.Camera,
		window:     deps.Window,
		maskWindow: deps.MaskWindow,
		hands:      deps.Hands,
		faces:      deps.Faces,
		dispatcher: tracker.NewDispatcher(),
		force:      tracker.NewForceTracker(),
		mask:       gocv.NewMat(),
	}

	if a.camera == nil {
		a.camera = capture.NewCamera(config.Camera)
	}
	if a.window == nil {
		a.window = display.NewWindow(WindowTitle, config.DelayMs)
	}
	if a.hands == nil {
		a.hands = detector.NewContourDetector(config.Hand)
	}
	if a.faces == nil {
		if cascade, err := detector.NewCascadeDetector(config.Cascade); err == nil {
			a.faces = cascade
		} else {
			log.Printf("face detection not available (%v), using mock detector", err)
			a.faces = detector.NewMockFaceDetector()
		}
	}

	if config.ShowMask {
		if a.maskWindow == nil {
			a.maskWindow = display.NewWindow(MaskWindowTitle, config.DelayMs)
		}
		if cd, ok := a.hands.(*detector.ContourDetector); ok {
			cd.SetMaskOutput(&a.mask)
		}
	}

	if config.Threshold > 0 {
		a.force.SetThreshold(config.Threshold)
	}
	a.force.OnBegin(a.onBegin)
	a.force.OnMove(a.onMove)
	a.dispatcher.Add(a.force)

	return a
}

// SetTrackingEnabled queues an enable or disable of the force tracker's
// notifications. The loop applies the latest queued value before its next
// dispatch.
func (a *App) SetTrackingEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = &enabled
}

// applyToggle applies a queued SetTrackingEnabled call.
func (a *App) applyToggle() {
	a.mu.Lock()
	pending := a.pending
	a.pending = nil
	a.mu.Unlock()

	if pending == nil || *pending == a.force.IsEnabled() {
		return
	}
	a.force.Enable(*pending)
	if *pending {
		log.Println("tracking notifications enabled")
	} else {
		log.Println("tracking notifications disabled")
	}
}

// Tracker returns the force tracker.
func (a *App) Tracker() *tracker.ForceTracker {
	return a.force
}

// Dispatcher returns the dispatcher the loop feeds.
func (a *App) Dispatcher() *tracker.Dispatcher {
	return a.dispatcher
}

// FaceCenters returns the face centres found in the last processed frame.
// They are not dispatched to any tracker.
func (a *App) FaceCenters() []image.Point {
	return a.faceCenters
}

// SessionID returns the journal session being recorded, if any.
func (a *App) SessionID() string {
	return a.sessionID
}

// Close releases the camera, windows and detectors. It is safe to call
// more than once.
func (a *App) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	a.mu.Unlock()

	var errs []error
	if a.camera.IsOpen() {
		if err := a.camera.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := a.window.Close(); err != nil {
		errs = append(errs, err)
	}
	if a.maskWindow != nil {
		if err := a.maskWindow.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if cd, ok := a.hands.(*detector.ContourDetector); ok {
		cd.SetMaskOutput(nil)
	}
	if err := a.hands.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := a.faces.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := a.mask.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
