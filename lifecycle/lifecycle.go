// Package lifecycle brings a window, display connection, context and surface
// into a consistent current state, once, before the event loop starts.
package lifecycle

import (
	"errors"
	"fmt"
	"log"

	"github.com/richinsley/glwindow/display"
	"github.com/richinsley/glwindow/graphics"
)

var (
	ErrWindow      = errors.New("window creation failed")
	ErrNoDisplay   = errors.New("no display backend available")
	ErrNoConfig    = errors.New("no matching pixel format config")
	ErrContext     = errors.New("context creation failed")
	ErrSurface     = errors.New("surface creation failed")
	ErrMakeCurrent = errors.New("make current failed")
	ErrLoadGL      = errors.New("loading GL functions failed")
)

// Fixed initial surface size used when Params.FixedSurfaceSize is set.
const (
	FixedSurfaceWidth  = 1024
	FixedSurfaceHeight = 768
)

// WindowFactory creates the platform window.
type WindowFactory func(title string, width, height int) (graphics.PlatformWindow, error)

// Loader loads the GL function table through resolve. It is called with the
// context already current.
type Loader func(resolve graphics.ProcAddressFunc) (graphics.Renderer, error)

// Params are the inputs of setup.
type Params struct {
	Title     string
	Width     int
	Height    int
	AlphaSize int
	// FixedSurfaceSize creates the initial surface at 1024x768 instead of the
	// window's framebuffer size.
	FixedSurfaceSize bool
}

// Setup holds the collaborators setup is run against.
type Setup struct {
	NewWindow WindowFactory
	Backends  []display.Backend
	LoadGL    Loader
}

// State owns everything setup created. The event loop borrows it; nothing
// else holds these values.
type State struct {
	Window  graphics.PlatformWindow
	Display graphics.Display
	Config  graphics.Config
	Context graphics.CurrentContext
	Surface graphics.Surface
	GL      graphics.Renderer
}

// Shutdown releases the display connection and destroys the window.
func (s *State) Shutdown() {
	if s.Display != nil {
		s.Display.Shutdown()
	}
	if s.Window != nil {
		s.Window.Destroy()
	}
}

// SelectConfig returns the first config satisfying t.
func SelectConfig(configs []graphics.Config, t graphics.ConfigTemplate) (graphics.Config, error) {
	if len(configs) == 0 {
		return nil, fmt.Errorf("%w: display reported no configs", ErrNoConfig)
	}
	for _, c := range configs {
		if c != nil && t.Matches(c.Attributes()) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: none of %d configs has alpha>=%d depth>=%d stencil>=%d",
		ErrNoConfig, len(configs), t.AlphaSize, t.DepthSize, t.StencilSize)
}

// Run performs setup in order: window, native handles, display, config,
// context, surface, make-current, GL loading, version log. On error every
// value created so far is released and the error wraps the failing step's
// sentinel.
func (s *Setup) Run(p Params) (st *State, err error) {
	st = &State{}
	defer func() {
		if err != nil {
			st.Shutdown()
			st = nil
		}
	}()

	win, err := s.NewWindow(p.Title, p.Width, p.Height)
	if err != nil {
		return st, fmt.Errorf("%w: %v", ErrWindow, err)
	}
	st.Window = win
	w, h := win.Size()
	log.Printf("Created window %q (%dx%d)", win.Title(), w, h)

	handles, err := st.Window.NativeHandles()
	if err != nil {
		return st, fmt.Errorf("%w: %v", ErrWindow, err)
	}
	if !handles.Valid() {
		return st, fmt.Errorf("%w: null native handles", ErrWindow)
	}

	st.Display, err = display.Open(handles, s.Backends)
	if err != nil {
		return st, fmt.Errorf("%w: %v", ErrNoDisplay, err)
	}

	tmpl := graphics.ConfigTemplate{AlphaSize: p.AlphaSize}
	configs, err := st.Display.FindConfigs(tmpl)
	if err != nil {
		return st, fmt.Errorf("%w: %v", ErrNoConfig, err)
	}
	st.Config, err = SelectConfig(configs, tmpl)
	if err != nil {
		return st, err
	}
	log.Printf("Selected %s config: %s", st.Display.API(), st.Config.Attributes())

	notCurrent, err := st.Display.CreateContext(st.Config, graphics.ContextAttributes{Window: handles.Window})
	if err != nil {
		return st, fmt.Errorf("%w: %v", ErrContext, err)
	}

	width, height := st.Window.Size()
	if p.FixedSurfaceSize || width <= 0 || height <= 0 {
		width, height = FixedSurfaceWidth, FixedSurfaceHeight
	}
	surface, err := st.Display.CreateWindowSurface(st.Config, graphics.SurfaceAttributes{
		Window: handles.Window,
		Width:  width,
		Height: height,
	})
	if err != nil {
		return st, fmt.Errorf("%w: %v", ErrSurface, err)
	}
	st.Surface = surface

	st.Context, err = notCurrent.MakeCurrent(surface)
	if err != nil {
		return st, fmt.Errorf("%w: %v", ErrMakeCurrent, err)
	}

	st.GL, err = s.LoadGL(st.Display.ProcAddress)
	if err != nil {
		return st, fmt.Errorf("%w: %w", ErrLoadGL, err)
	}

	log.Printf("OpenGL version: %s", st.GL.Version())
	return st, nil
}
