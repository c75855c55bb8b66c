// Package detector finds hand and face candidates in video frames.
package detector

import (
	"errors"
	"image"
	"math"

	"gocv.io/x/gocv"
)

// ErrCascadeNotLoaded is returned when a Haar cascade file cannot be loaded.
var ErrCascadeNotLoaded = errors.New("cascade classifier not loaded")

// Hand is a hand candidate: the centre and radius of the smallest circle
// enclosing a bright contour.
type Hand struct {
	Center image.Point `json:"center"`
	Radius int         `json:"radius"`
}

// HandDetector defines the interface for hand detection implementations.
type HandDetector interface {
	// Detect returns the hand candidates in frame.
	// Returns an empty slice if nothing is found.
	Detect(frame *gocv.Mat) ([]Hand, error)

	// Close releases any resources held by the detector.
	Close() error
}

// FaceDetector defines the interface for face detection implementations.
type FaceDetector interface {
	// Detect returns the bounding boxes of faces in frame.
	Detect(frame *gocv.Mat) ([]image.Rectangle, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Centers returns the centre of every hand, in order.
func Centers(hands []Hand) []image.Point {
	points := make([]image.Point, 0, len(hands))
	for _, h := range hands {
		points = append(points, h.Center)
	}
	return points
}

// FaceCenters returns the centre of every face rectangle, in order.
func FaceCenters(faces []image.Rectangle) []image.Point {
	points := make([]image.Point, 0, len(faces))
	for _, r := range faces {
		points = append(points, image.Point{
			X: round(float64(r.Min.X) + float64(r.Dx())*0.5),
			Y: round(float64(r.Min.Y) + float64(r.Dy())*0.5),
		})
	}
	return points
}

// round converts to the nearest int, saturating at the int32 range like
// OpenCV's saturate_cast.
func round(v float64) int {
	v = math.Round(v)
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int(v)
}
