package app

import (
	"context"
	"image"
	"runtime"
	"sync"
	"syscall"
	"testing"

	"gocv.io/x/gocv"

	"github.com/ayusman/forcetrack/internal/capture"
	"github.com/ayusman/forcetrack/internal/detector"
	"github.com/ayusman/forcetrack/internal/display"
)

// threadWindow records the OS thread of every window call and yields
// between calls so the scheduler has a chance to migrate the goroutine.
type threadWindow struct {
	*display.MockWindow
	threads map[int]bool
}

func (w *threadWindow) record() {
	w.threads[syscall.Gettid()] = true
	runtime.Gosched()
}

func (w *threadWindow) Show()                    { w.record(); w.MockWindow.Show() }
func (w *threadWindow) UpdateImage(img gocv.Mat) { w.record(); w.MockWindow.UpdateImage(img) }
func (w *threadWindow) Move(p image.Point)       { w.record(); w.MockWindow.Move(p) }
func (w *threadWindow) WaitKey() bool            { w.record(); return w.MockWindow.WaitKey() }
func (w *threadWindow) Close() error             { w.record(); return w.MockWindow.Close() }

func TestApp_Run_StaysOnOneThread(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping gocv test")
	}

	frame := newFrame(t)
	window := &threadWindow{MockWindow: display.NewMockWindow(50), threads: make(map[int]bool)}
	a := New(Config{}, Deps{
		Camera: capture.NewMockCamera([]*gocv.Mat{frame}, true),
		Window: window,
		Hands:  detector.NewMockHandDetector(detector.SingleHand(10, 10), detector.SingleHand(20, 20)),
		Faces:  detector.NewMockFaceDetector(),
	})

	// Keep other goroutines busy so idle threads are in play.
	stop := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					runtime.Gosched()
				}
			}
		}()
	}

	// Run beside the caller, as it does when the tray owns the main goroutine.
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Run(context.Background())
	}()
	err := <-errCh
	close(stop)
	wg.Wait()

	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(window.threads) != 1 {
		t.Errorf("window calls ran on %d OS threads, want 1", len(window.threads))
	}
}
