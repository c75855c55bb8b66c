package detector

import (
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// DefaultCascadeFile is the frontal face cascade looked up in the working directory.
const DefaultCascadeFile = "./haarcascade_frontalface_alt.xml"

// Cascade detection parameters.
const (
	cascadeScale        = 1.1
	cascadeMinNeighbors = 2
	// haarScaleImage is OpenCV's CASCADE_SCALE_IMAGE flag.
	haarScaleImage = 2
	cascadeMinSize = 30
)

// CascadeDetector finds faces with a Haar cascade classifier.
type CascadeDetector struct {
	classifier gocv.CascadeClassifier
	mu         sync.Mutex
	closed     bool
}

// NewCascadeDetector loads the cascade at path.
// Returns ErrCascadeNotLoaded if the file is missing or invalid.
func NewCascadeDetector(path string) (*CascadeDetector, error) {
	if path == "" {
		path = DefaultCascadeFile
	}

	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(path) {
		classifier.Close()
		return nil, fmt.Errorf("load %s: %w", path, ErrCascadeNotLoaded)
	}

	return &CascadeDetector{classifier: classifier}, nil
}

// Detect returns face rectangles in frame.
func (d *CascadeDetector) Detect(frame *gocv.Mat) ([]image.Rectangle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, ErrCascadeNotLoaded
	}
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
	gocv.EqualizeHist(gray, &gray)

	faces := d.classifier.DetectMultiScaleWithParams(
		gray,
		cascadeScale,
		cascadeMinNeighbors,
		haarScaleImage,
		image.Pt(cascadeMinSize, cascadeMinSize),
		image.Pt(0, 0),
	)

	return faces, nil
}

// Close releases the classifier.
func (d *CascadeDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true
	return d.classifier.Close()
}
