package graphics

// Event is any window or loop event. Handlers switch on the concrete type and
// ignore the ones they do not know.
type Event interface{}

type CloseRequested struct{}

// Resized reports a new framebuffer size in pixels. Either dimension may be
// zero, e.g. while the window is minimised.
type Resized struct {
	Width, Height int
}

type RedrawRequested struct{}

// MainEventsCleared is emitted once per loop iteration after every queued
// platform event has been handled.
type MainEventsCleared struct{}

type Moved struct {
	X, Y int
}

type Focused struct {
	Focused bool
}
