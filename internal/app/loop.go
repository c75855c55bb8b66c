package app

import (
	"context"
	"fmt"
	"log"
	"runtime"

	"gocv.io/x/gocv"

	"github.com/ayusman/forcetrack/internal/detector"
)

// Run opens the camera and processes frames until a key is pressed in the
// window or ctx is cancelled. Resources are released before it returns.
//
// Each iteration:
// 1. Poll the keyboard; any key stops the loop
// 2. Apply a queued tracking toggle
// 3. Read a frame; a read error is treated as a frame with no hands
// 4. Detect hands, draw them and dispatch their centres
// 5. Detect faces, draw them and record their centres
// 6. Display the annotated frame
//
// Run locks its goroutine to the current OS thread for its whole lifetime;
// the highgui window calls must all come from one thread.
func (a *App) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	defer a.Close()

	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}

	a.window.Show()
	if a.maskWindow != nil {
		a.maskWindow.Show()
	}
	log.Println("frame loop started")

	for {
		if err := ctx.Err(); err != nil {
			log.Println("frame loop cancelled")
			return nil
		}
		if a.window.WaitKey() {
			log.Println("key pressed, exiting")
			return nil
		}

		frame, err := a.camera.ReadFrame()
		if err != nil {
			log.Printf("Error reading frame: %v", err)
			a.Step(nil)
			continue
		}

		a.Step(frame)
		frame.Close()
	}
}

// Step runs one loop iteration on frame. A nil or empty frame dispatches an
// empty point sequence and displays nothing.
func (a *App) Step(frame *gocv.Mat) {
	a.applyToggle()

	if frame == nil || frame.Empty() {
		a.dispatcher.SendPoints(nil)
		a.faceCenters = nil
		return
	}

	hands, err := a.hands.Detect(frame)
	if err != nil {
		log.Printf("Error detecting hands: %v", err)
		hands = nil
	}
	detector.DrawHands(frame, hands)
	a.dispatcher.SendPoints(detector.Centers(hands))

	faces, err := a.faces.Detect(frame)
	if err != nil {
		log.Printf("Error detecting faces: %v", err)
		faces = nil
	}
	detector.DrawFaces(frame, faces)

	a.window.UpdateImage(*frame)
	if a.maskWindow != nil && !a.mask.Empty() {
		a.maskWindow.UpdateImage(a.mask)
	}

	a.faceCenters = detector.FaceCenters(faces)
}
