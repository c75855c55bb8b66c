// Package capture provides frame acquisition using GoCV (OpenCV).
package capture

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"gocv.io/x/gocv"
)

// Default capture settings
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// Sentinel errors returned by ReadFrame.
var (
	ErrCameraNotOpen = errors.New("camera is not open")
	ErrEmptyFrame    = errors.New("captured frame is empty")
)

// Camera defines the interface for frame sources.
type Camera interface {
	Open() error
	Close() error
	ReadFrame() (*gocv.Mat, error)
	IsOpen() bool
}

// Config selects the capture source.
type Config struct {
	// Device is a camera index ("0") or a path to a video file.
	Device string
	Width  int
	Height int
}

// DefaultConfig returns a Config for the first camera at 640x480.
func DefaultConfig() Config {
	return Config{
		Device: "0",
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
}

// cameraImpl reads frames from a gocv.VideoCapture.
type cameraImpl struct {
	config  Config
	capture *gocv.VideoCapture
	mu      sync.Mutex
}

// NewCamera creates a Camera for the given config.
// Zero width or height fall back to 640x480.
func NewCamera(config Config) Camera {
	if config.Width <= 0 {
		config.Width = DefaultWidth
	}
	if config.Height <= 0 {
		config.Height = DefaultHeight
	}
	if config.Device == "" {
		config.Device = "0"
	}
	return &cameraImpl{config: config}
}

// source converts the configured device into the value OpenVideoCapture
// expects: an int for camera indices, the string otherwise.
func (c *cameraImpl) source() interface{} {
	if id, err := strconv.Atoi(c.config.Device); err == nil {
		return id
	}
	return c.config.Device
}

// Open opens the capture source and requests the configured resolution.
func (c *cameraImpl) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capture != nil {
		return nil
	}

	capture, err := gocv.OpenVideoCapture(c.source())
	if err != nil {
		return fmt.Errorf("open capture %q: %w", c.config.Device, err)
	}

	capture.Set(gocv.VideoCaptureFrameWidth, float64(c.config.Width))
	capture.Set(gocv.VideoCaptureFrameHeight, float64(c.config.Height))

	c.capture = capture
	return nil
}

// Close releases the capture source.
func (c *cameraImpl) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capture == nil {
		return nil
	}

	err := c.capture.Close()
	c.capture = nil
	return err
}

// ReadFrame grabs the next frame.
// The caller is responsible for closing the returned Mat.
func (c *cameraImpl) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capture == nil {
		return nil, ErrCameraNotOpen
	}

	mat := gocv.NewMat()
	if ok := c.capture.Read(&mat); !ok || mat.Empty() {
		mat.Close()
		return nil, ErrEmptyFrame
	}

	return &mat, nil
}

// IsOpen reports whether the source is open.
func (c *cameraImpl) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.capture != nil
}
