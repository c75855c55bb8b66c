package detector

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

var (
	green   = color.RGBA{G: 255}
	red     = color.RGBA{R: 255}
	darkRed = color.RGBA{R: 200}
	faceBox = color.RGBA{G: 200}
)

// DrawHands outlines each hand with its enclosing circle and marks the centre.
func DrawHands(img *gocv.Mat, hands []Hand) {
	for _, h := range hands {
		gocv.Circle(img, h.Center, h.Radius, green, 1)
		gocv.Circle(img, h.Center, 10, red, 1)
	}
}

// DrawFaces boxes each face and dots its centre.
func DrawFaces(img *gocv.Mat, faces []image.Rectangle) {
	centers := FaceCenters(faces)
	for i, r := range faces {
		gocv.Rectangle(img, r, faceBox, 3)
		gocv.Circle(img, centers[i], 5, darkRed, 8)
	}
}
