package tracker

import (
	"image"
	"log"
	"reflect"
)

// Dispatcher routes each frame's points to the registered trackers.
//
// Only frames with exactly one point are dispatched. With several points
// there is no way to tell which target each tracker follows, so the frame is
// skipped rather than guessed at.
type Dispatcher struct {
	trackers []Tracker
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		trackers: make([]Tracker, 0),
	}
}

// Add appends a tracker. Trackers receive points in the order they were added.
// Nil trackers, including typed nil pointers, are ignored.
func (d *Dispatcher) Add(t Tracker) {
	if isNil(t) {
		return
	}
	d.trackers = append(d.trackers, t)
}

func isNil(t Tracker) bool {
	if t == nil {
		return true
	}
	v := reflect.ValueOf(t)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// Len returns the number of registered trackers.
func (d *Dispatcher) Len() int {
	return len(d.trackers)
}

// SendPoints applies the routing policy to one frame's points.
func (d *Dispatcher) SendPoints(points []image.Point) {
	log.Printf("point size: %d", len(points))

	if len(points) != 1 {
		return
	}

	for _, t := range d.trackers {
		t.SendPoint(points[0])
	}
}
