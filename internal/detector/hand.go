package detector

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// HandConfig holds the contour detector parameters.
type HandConfig struct {
	// BlurSize is the box blur kernel size.
	BlurSize int

	// Threshold is the binary threshold applied to the blurred gray image.
	Threshold float32

	// MinRadius and MaxRadius bound the enclosing circle radius (exclusive).
	MinRadius float32
	MaxRadius float32
}

// DefaultHandConfig returns the parameters tuned for a dark background and
// a bright hand at arm's length.
func DefaultHandConfig() HandConfig {
	return HandConfig{
		BlurSize:  10,
		Threshold: 70,
		MinRadius: 20,
		MaxRadius: 200,
	}
}

// ContourDetector finds bright blobs of hand size.
//
// Algorithm:
// 1. Convert frame to grayscale
// 2. Box blur to merge fingers into one blob
// 3. Binary threshold
// 4. Find external contours
// 5. Keep contours whose minimum enclosing circle has MinRadius < r < MaxRadius
type ContourDetector struct {
	config HandConfig
	mask   *gocv.Mat
	mu     sync.Mutex
}

// NewContourDetector creates a ContourDetector.
// Zero fields in config fall back to DefaultHandConfig values.
func NewContourDetector(config HandConfig) *ContourDetector {
	def := DefaultHandConfig()
	if config.BlurSize <= 0 {
		config.BlurSize = def.BlurSize
	}
	if config.Threshold <= 0 {
		config.Threshold = def.Threshold
	}
	if config.MinRadius <= 0 {
		config.MinRadius = def.MinRadius
	}
	if config.MaxRadius <= 0 {
		config.MaxRadius = def.MaxRadius
	}
	return &ContourDetector{config: config}
}

// Config returns the detector parameters.
func (d *ContourDetector) Config() HandConfig {
	return d.config
}

// SetMaskOutput makes Detect copy its thresholded image, converted to BGR,
// into dst. Pass nil to stop.
func (d *ContourDetector) SetMaskOutput(dst *gocv.Mat) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mask = dst
}

// Detect returns the hand candidates in frame.
func (d *ContourDetector) Detect(frame *gocv.Mat) ([]Hand, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if frame == nil || frame.Empty() {
		return nil, nil
	}

	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.Blur(gray, &blurred, image.Pt(d.config.BlurSize, d.config.BlurSize))

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(blurred, &thresh, d.config.Threshold, 255, gocv.ThresholdBinary)

	if d.mask != nil {
		gocv.CvtColor(thresh, d.mask, gocv.ColorGrayToBGR)
	}

	contours := gocv.FindContours(thresh, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	var hands []Hand
	for i := 0; i < contours.Size(); i++ {
		x, y, radius := gocv.MinEnclosingCircle(contours.At(i))
		if radius <= d.config.MinRadius || radius >= d.config.MaxRadius {
			continue
		}
		hands = append(hands, Hand{
			Center: image.Pt(round(float64(x)), round(float64(y))),
			Radius: round(float64(radius)),
		})
	}

	return hands, nil
}

// Close is a no-op; the detector holds no native resources between calls.
func (d *ContourDetector) Close() error {
	return nil
}
