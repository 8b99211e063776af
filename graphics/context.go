package graphics

import "unsafe"

// API identifies a display/context negotiation backend.
type API string

const (
	EGL API = "egl"
	GLX API = "glx"
)

// NativeHandles carries the raw platform handles of a window. Display is the
// X11 Display* and Window the X11 window XID. Both must stay valid for as long
// as any Display, Context or Surface created from them is in use.
type NativeHandles struct {
	Display unsafe.Pointer
	Window  uintptr
}

// Valid reports whether both handles are non-null.
func (h NativeHandles) Valid() bool {
	return h.Display != nil && h.Window != 0
}

// Window is the windowing-system side of the program.
type Window interface {
	Title() string
	// Size returns the framebuffer size in pixels.
	Size() (int, int)
	RequestRedraw()
	NativeHandles() (NativeHandles, error)
	Destroy()
}

// EventSource delivers window events in arrival order.
type EventSource interface {
	// WaitEvents blocks until the platform has something to report and
	// returns every event queued since the last call.
	WaitEvents() []Event
	// PollEvents returns the queued events without blocking.
	PollEvents() []Event
	// TakeRedrawRequest reports whether RequestRedraw was called since the
	// last call, and clears the request.
	TakeRedrawRequest() bool
}

// ProcAddressFunc resolves a GL symbol name to a function pointer, or nil.
type ProcAddressFunc func(name string) unsafe.Pointer

// Display is an open connection to a display/context negotiation backend.
type Display interface {
	API() API
	// FindConfigs returns the configs matching t, in the backend's
	// preference order.
	FindConfigs(t ConfigTemplate) ([]Config, error)
	CreateContext(cfg Config, attrs ContextAttributes) (NotCurrentContext, error)
	CreateWindowSurface(cfg Config, attrs SurfaceAttributes) (Surface, error)
	ProcAddress(name string) unsafe.Pointer
	Shutdown()
}

// NotCurrentContext is a freshly created rendering context. It cannot be
// drawn with until MakeCurrent succeeds.
type NotCurrentContext interface {
	MakeCurrent(s Surface) (CurrentContext, error)
}

// CurrentContext is a rendering context bound to exactly one surface on the
// calling thread.
type CurrentContext interface {
	Surface() Surface
}

// Surface is a drawable window target.
type Surface interface {
	Size() (int, int)
	Resize(ctx CurrentContext, width, height int)
	SwapBuffers(ctx CurrentContext) error
}

// Renderer is the small slice of the GL API the program draws with.
type Renderer interface {
	Version() string
	ClearColor(r, g, b, a float32)
	Clear()
	// ReadPixels reads a width×height RGBA block from the lower-left corner
	// of the back buffer.
	ReadPixels(width, height int) []byte
}

// PlatformWindow is a window that is also the source of its own events.
type PlatformWindow interface {
	Window
	EventSource
}
