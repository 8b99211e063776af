//go:build linux && !wayland

package glfwcontext

import (
	"errors"
	"unsafe"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/glwindow/graphics"
)

// NativeHandles returns the X11 Display* and window XID backing the window.
func (c *Context) NativeHandles() (graphics.NativeHandles, error) {
	h := graphics.NativeHandles{
		Display: unsafe.Pointer(glfw.GetX11Display()),
		Window:  uintptr(c.window.GetX11Window()),
	}
	if !h.Valid() {
		return h, errors.New("glfw: window has no X11 handles")
	}
	return h, nil
}
