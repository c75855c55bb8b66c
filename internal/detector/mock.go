package detector

import (
	"image"

	"gocv.io/x/gocv"
)

// MockHandDetector is a test implementation of HandDetector.
// Each Detect call returns the next queued frame of hands; once the queue
// is drained it keeps returning the last one.
type MockHandDetector struct {
	frames [][]Hand
	index  int
	calls  int
	err    error
}

// NewMockHandDetector creates a MockHandDetector returning the given frames in order.
func NewMockHandDetector(frames ...[]Hand) *MockHandDetector {
	return &MockHandDetector{frames: frames}
}

// SetError sets the error that will be returned by Detect.
func (m *MockHandDetector) SetError(err error) {
	m.err = err
}

// Calls returns how many times Detect was called.
func (m *MockHandDetector) Calls() int {
	return m.calls
}

// Detect returns the next queued hands or the configured error.
func (m *MockHandDetector) Detect(frame *gocv.Mat) ([]Hand, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.frames) == 0 {
		return nil, nil
	}
	hands := m.frames[m.index]
	if m.index < len(m.frames)-1 {
		m.index++
	}
	return hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockHandDetector) Close() error {
	return nil
}

// MockFaceDetector is a test implementation of FaceDetector returning fixed faces.
// It also stands in when no cascade file is available.
type MockFaceDetector struct {
	faces []image.Rectangle
	calls int
}

// NewMockFaceDetector creates a MockFaceDetector.
func NewMockFaceDetector(faces ...image.Rectangle) *MockFaceDetector {
	return &MockFaceDetector{faces: faces}
}

// Calls returns how many times Detect was called.
func (m *MockFaceDetector) Calls() int {
	return m.calls
}

// Detect returns the configured faces.
func (m *MockFaceDetector) Detect(frame *gocv.Mat) ([]image.Rectangle, error) {
	m.calls++
	return m.faces, nil
}

// Close is a no-op for the mock detector.
func (m *MockFaceDetector) Close() error {
	return nil
}

// SingleHand is a convenience for one-hand frames in tests.
func SingleHand(x, y int) []Hand {
	return []Hand{{Center: image.Pt(x, y), Radius: 40}}
}
