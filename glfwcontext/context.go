package glfwcontext

import (
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/glwindow/graphics"
)

// Context is a GLFW window created without a client API. Rendering contexts
// are negotiated separately on its native handles; this type only supplies
// the window and its events.
type Context struct {
	window  *glfw.Window
	title   string
	pending []graphics.Event
	redraw  bool
}

// New creates a resizable window and installs the callbacks that feed its
// event queue. Must be called from the main thread after InitGraphics.
func New(title string, width, height int) (*Context, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{
		window: win,
		title:  title,
	}

	win.SetCloseCallback(c.glfwCloseCallback)
	win.SetFramebufferSizeCallback(c.glfwFramebufferSizeCallback)
	win.SetRefreshCallback(c.glfwRefreshCallback)
	win.SetPosCallback(c.glfwPosCallback)
	win.SetFocusCallback(c.glfwFocusCallback)
	win.SetKeyCallback(c.glfwKeyCallback)

	return c, nil
}

func (c *Context) glfwCloseCallback(w *glfw.Window) {
	c.push(graphics.CloseRequested{})
}

// glfwFramebufferSizeCallback reports pixel sizes, including the zero size of
// a minimized window.
func (c *Context) glfwFramebufferSizeCallback(w *glfw.Window, width, height int) {
	c.push(graphics.Resized{Width: width, Height: height})
}

// glfwRefreshCallback fires when the window is exposed and its contents need
// to be redrawn.
func (c *Context) glfwRefreshCallback(w *glfw.Window) {
	c.push(graphics.RedrawRequested{})
}

func (c *Context) glfwPosCallback(w *glfw.Window, x, y int) {
	c.push(graphics.Moved{X: x, Y: y})
}

func (c *Context) glfwFocusCallback(w *glfw.Window, focused bool) {
	c.push(graphics.Focused{Focused: focused})
}

func (c *Context) push(ev graphics.Event) {
	c.pending = append(c.pending, ev)
}

func (c *Context) drain() []graphics.Event {
	batch := c.pending
	c.pending = nil
	return batch
}

// glfwKeyCallback turns an Escape press into a close request.
func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Press && key == glfw.KeyEscape {
		c.push(graphics.CloseRequested{})
	}
}

func (c *Context) Title() string {
	return c.title
}

// Size returns the framebuffer size in pixels.
func (c *Context) Size() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) RequestRedraw() {
	c.redraw = true
}

func (c *Context) TakeRedrawRequest() bool {
	r := c.redraw
	c.redraw = false
	return r
}

// WaitEvents sleeps in glfw.WaitEvents unless events are already queued, e.g.
// from callbacks fired during window creation.
func (c *Context) WaitEvents() []graphics.Event {
	if len(c.pending) == 0 {
		glfw.WaitEvents()
	}
	return c.drain()
}

func (c *Context) PollEvents() []graphics.Event {
	glfw.PollEvents()
	return c.drain()
}

// Destroy destroys the window.
func (c *Context) Destroy() {
	c.window.Destroy()
}

// InitGraphics initializes the windowing subsystem (GLFW). Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down the windowing subsystem. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}

var _ graphics.PlatformWindow = (*Context)(nil)
