// Package graphicstest provides in-memory implementations of the graphics
// interfaces. Every fake records its calls in a shared Journal so tests can
// assert on ordering across collaborators.
package graphicstest

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/richinsley/glwindow/graphics"
)

// Journal is an ordered log of calls made on the fakes.
type Journal struct {
	Calls []string
}

func (j *Journal) record(format string, args ...interface{}) {
	if j == nil {
		return
	}
	j.Calls = append(j.Calls, fmt.Sprintf(format, args...))
}

// Index returns the position of the first call starting with prefix, or -1.
func (j *Journal) Index(prefix string) int {
	for i, c := range j.Calls {
		if strings.HasPrefix(c, prefix) {
			return i
		}
	}
	return -1
}

// Count returns how many calls start with prefix.
func (j *Journal) Count(prefix string) int {
	n := 0
	for _, c := range j.Calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

var handleByte byte

// Handles returns non-null native handles suitable for the fakes.
func Handles() graphics.NativeHandles {
	return graphics.NativeHandles{Display: unsafe.Pointer(&handleByte), Window: 0x2a}
}

// Window is a fake window and event source. Batches are handed out one per
// WaitEvents/PollEvents call; once exhausted, the source reports a close so
// loops under test always terminate.
type Window struct {
	J          *Journal
	TitleText  string
	Width      int
	Height     int
	Handles    graphics.NativeHandles
	HandlesErr error
	Batches    [][]graphics.Event

	Destroyed      bool
	RedrawRequests int
	Waits          int
	Polls          int

	redraw bool
}

func NewWindow(j *Journal, title string, width, height int) *Window {
	return &Window{J: j, TitleText: title, Width: width, Height: height, Handles: Handles()}
}

func (w *Window) Title() string    { return w.TitleText }
func (w *Window) Size() (int, int) { return w.Width, w.Height }

func (w *Window) RequestRedraw() {
	w.J.record("window.RequestRedraw")
	w.RedrawRequests++
	w.redraw = true
}

func (w *Window) NativeHandles() (graphics.NativeHandles, error) {
	w.J.record("window.NativeHandles")
	return w.Handles, w.HandlesErr
}

func (w *Window) Destroy() {
	w.J.record("window.Destroy")
	w.Destroyed = true
}

func (w *Window) next() []graphics.Event {
	if len(w.Batches) == 0 {
		return []graphics.Event{graphics.CloseRequested{}}
	}
	b := w.Batches[0]
	w.Batches = w.Batches[1:]
	return b
}

func (w *Window) WaitEvents() []graphics.Event {
	w.J.record("source.WaitEvents")
	w.Waits++
	return w.next()
}

func (w *Window) PollEvents() []graphics.Event {
	w.J.record("source.PollEvents")
	w.Polls++
	return w.next()
}

func (w *Window) TakeRedrawRequest() bool {
	r := w.redraw
	w.redraw = false
	return r
}

// Config is a fake pixel format.
type Config struct {
	Attrs graphics.ConfigAttributes
}

func (c *Config) Attributes() graphics.ConfigAttributes { return c.Attrs }

// Display is a fake display connection. Error fields make the matching call
// fail. A nil Symbols map resolves every name; otherwise only names mapped to
// true resolve.
type Display struct {
	J          *Journal
	Name       graphics.API
	Configs    []graphics.Config
	FindErr    error
	ContextErr error
	SurfaceErr error
	CurrentErr error
	SwapErr    error
	Symbols    map[string]bool

	Surfaces []*Surface
	Closed   bool
}

func NewDisplay(j *Journal, api graphics.API) *Display {
	return &Display{
		J:    j,
		Name: api,
		Configs: []graphics.Config{
			&Config{Attrs: graphics.ConfigAttributes{RedSize: 8, GreenSize: 8, BlueSize: 8, AlphaSize: 0}},
			&Config{Attrs: graphics.ConfigAttributes{RedSize: 8, GreenSize: 8, BlueSize: 8, AlphaSize: 8, DepthSize: 24}},
			&Config{Attrs: graphics.ConfigAttributes{RedSize: 8, GreenSize: 8, BlueSize: 8, AlphaSize: 8}},
		},
	}
}

func (d *Display) API() graphics.API { return d.Name }

func (d *Display) FindConfigs(t graphics.ConfigTemplate) ([]graphics.Config, error) {
	d.J.record("display.FindConfigs alpha=%d", t.AlphaSize)
	if d.FindErr != nil {
		return nil, d.FindErr
	}
	return d.Configs, nil
}

func (d *Display) CreateContext(cfg graphics.Config, attrs graphics.ContextAttributes) (graphics.NotCurrentContext, error) {
	d.J.record("display.CreateContext window=%#x", attrs.Window)
	if cfg == nil {
		return nil, errors.New("nil config")
	}
	if d.ContextErr != nil {
		return nil, d.ContextErr
	}
	return &Context{d: d, Config: cfg}, nil
}

func (d *Display) CreateWindowSurface(cfg graphics.Config, attrs graphics.SurfaceAttributes) (graphics.Surface, error) {
	d.J.record("display.CreateWindowSurface %dx%d", attrs.Width, attrs.Height)
	if err := attrs.Validate(); err != nil {
		return nil, err
	}
	if d.SurfaceErr != nil {
		return nil, d.SurfaceErr
	}
	s := &Surface{d: d, Width: attrs.Width, Height: attrs.Height}
	d.Surfaces = append(d.Surfaces, s)
	return s, nil
}

var symbolByte byte

func (d *Display) ProcAddress(name string) unsafe.Pointer {
	d.J.record("display.ProcAddress %s", name)
	if d.Symbols != nil && !d.Symbols[name] {
		return nil
	}
	return unsafe.Pointer(&symbolByte)
}

func (d *Display) Shutdown() {
	d.J.record("display.Shutdown")
	d.Closed = true
}

// Context is a fake rendering context; it serves as both the not-current and
// the current value.
type Context struct {
	d       *Display
	Config  graphics.Config
	surface *Surface
}

func (c *Context) MakeCurrent(s graphics.Surface) (graphics.CurrentContext, error) {
	c.d.J.record("context.MakeCurrent")
	if c.d.CurrentErr != nil {
		return nil, c.d.CurrentErr
	}
	fs, ok := s.(*Surface)
	if !ok || fs == nil {
		return nil, errors.New("foreign surface")
	}
	c.surface = fs
	return c, nil
}

func (c *Context) Surface() graphics.Surface { return c.surface }

// Surface is a fake window surface.
type Surface struct {
	d       *Display
	Width   int
	Height  int
	Resizes int
	Swaps   int
}

func (s *Surface) Size() (int, int) { return s.Width, s.Height }

func (s *Surface) Resize(ctx graphics.CurrentContext, width, height int) {
	s.d.J.record("surface.Resize %dx%d", width, height)
	s.Resizes++
	s.Width, s.Height = width, height
}

func (s *Surface) SwapBuffers(ctx graphics.CurrentContext) error {
	s.d.J.record("surface.SwapBuffers")
	if ctx == nil || ctx.Surface() != graphics.Surface(s) {
		return errors.New("swap without a context current on this surface")
	}
	if s.d.SwapErr != nil {
		return s.d.SwapErr
	}
	s.Swaps++
	return nil
}

// Renderer is a fake GL renderer.
type Renderer struct {
	J             *Journal
	VersionString string
	Color         [4]float32
	Clears        int
	Reads         int
}

func NewRenderer(j *Journal) *Renderer {
	return &Renderer{J: j, VersionString: "4.6 (Fake Profile) Mesa 24.0.0"}
}

func (r *Renderer) Version() string {
	r.J.record("gl.GetString VERSION")
	return r.VersionString
}

func (r *Renderer) ClearColor(red, green, blue, alpha float32) {
	r.J.record("gl.ClearColor")
	r.Color = [4]float32{red, green, blue, alpha}
}

func (r *Renderer) Clear() {
	r.J.record("gl.Clear COLOR_BUFFER_BIT")
	r.Clears++
}

func (r *Renderer) ReadPixels(width, height int) []byte {
	r.J.record("gl.ReadPixels %dx%d", width, height)
	r.Reads++
	px := make([]byte, width*height*4)
	for i := 0; i < len(px); i += 4 {
		px[i] = byte(r.Color[0] * 255)
		px[i+1] = byte(r.Color[1] * 255)
		px[i+2] = byte(r.Color[2] * 255)
		px[i+3] = byte(r.Color[3] * 255)
	}
	return px
}
