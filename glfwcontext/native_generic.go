//go:build !linux || wayland

package glfwcontext

import (
	"fmt"

	"github.com/richinsley/glwindow/graphics"
)

func (c *Context) NativeHandles() (graphics.NativeHandles, error) {
	return graphics.NativeHandles{}, fmt.Errorf("native X11 handles are not available on this platform")
}
