// Package dispatch maps window events to surface and renderer actions and runs
// the blocking event loop.
package dispatch

import (
	"fmt"

	"github.com/richinsley/glwindow/graphics"
	"github.com/richinsley/glwindow/lifecycle"
)

// ClearColor is the colour every frame is cleared to.
var ClearColor = [4]float32{0.2, 0.3, 0.3, 1.0}

// FrameSink receives every presented frame, read back before the swap. Frames
// always have the sink's size; when the surface is smaller the read-back is
// padded with transparent black, and when it is larger it is cropped to the
// lower-left corner.
type FrameSink interface {
	Size() (int, int)
	WriteFrame(pixels []byte) error
}

// Dispatcher owns the set-up state for the lifetime of the loop.
type Dispatcher struct {
	state  *lifecycle.State
	sink   FrameSink
	exit   bool
	frames int
}

func New(state *lifecycle.State) *Dispatcher {
	return &Dispatcher{state: state}
}

// SetFrameSink installs a sink that is fed each frame before it is presented.
func (d *Dispatcher) SetFrameSink(s FrameSink) {
	d.sink = s
}

// Exiting reports whether a close was requested.
func (d *Dispatcher) Exiting() bool {
	return d.exit
}

// Frames returns the number of frames presented so far.
func (d *Dispatcher) Frames() int {
	return d.frames
}

// Handle applies one event. Events arriving after a close are dropped. The
// only error is a failed buffer swap or frame capture.
func (d *Dispatcher) Handle(ev graphics.Event) error {
	if d.exit {
		return nil
	}
	switch e := ev.(type) {
	case graphics.CloseRequested:
		d.exit = true
	case graphics.Resized:
		if e.Width == 0 || e.Height == 0 {
			return nil
		}
		d.state.Surface.Resize(d.state.Context, e.Width, e.Height)
	case graphics.MainEventsCleared:
		d.state.Window.RequestRedraw()
	case graphics.RedrawRequested:
		return d.redraw()
	}
	return nil
}

func (d *Dispatcher) redraw() error {
	gl := d.state.GL
	gl.ClearColor(ClearColor[0], ClearColor[1], ClearColor[2], ClearColor[3])
	gl.Clear()
	if d.sink != nil {
		if err := d.capture(); err != nil {
			return fmt.Errorf("failed to capture frame %d: %w", d.frames, err)
		}
	}
	if err := d.state.Surface.SwapBuffers(d.state.Context); err != nil {
		return fmt.Errorf("failed to swap buffers: %w", err)
	}
	d.frames++
	return nil
}

// capture reads back only the part of the surface that exists and fits it
// into a frame of the sink's size.
func (d *Dispatcher) capture() error {
	fw, fh := d.sink.Size()
	sw, sh := d.state.Surface.Size()
	rw, rh := min(fw, sw), min(fh, sh)
	if rw == fw && rh == fh {
		return d.sink.WriteFrame(d.state.GL.ReadPixels(fw, fh))
	}
	frame := make([]byte, fw*fh*4)
	if rw > 0 && rh > 0 {
		px := d.state.GL.ReadPixels(rw, rh)
		for y := 0; y < rh; y++ {
			copy(frame[y*fw*4:], px[y*rw*4:(y+1)*rw*4])
		}
	}
	return d.sink.WriteFrame(frame)
}

// Run drives the loop until a close is handled or an action fails. The first
// iteration does not block so the initial frame is drawn; every later one
// waits for the platform. Each iteration handles the queued events in order,
// then MainEventsCleared, then at most one pending redraw. Events come from
// the state's window, the same one redraws are requested on.
func (d *Dispatcher) Run() error {
	src := d.state.Window
	first := true
	for !d.exit {
		var batch []graphics.Event
		if first {
			batch = src.PollEvents()
			first = false
		} else {
			batch = src.WaitEvents()
		}
		for _, ev := range batch {
			if err := d.Handle(ev); err != nil {
				return err
			}
			if d.exit {
				return nil
			}
		}
		if err := d.Handle(graphics.MainEventsCleared{}); err != nil {
			return err
		}
		if src.TakeRedrawRequest() {
			if err := d.Handle(graphics.RedrawRequested{}); err != nil {
				return err
			}
		}
	}
	return nil
}
