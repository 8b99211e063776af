//go:build !linux

package glx

import (
	"fmt"

	"github.com/richinsley/glwindow/graphics"
)

func Open(h graphics.NativeHandles) (graphics.Display, error) {
	return nil, fmt.Errorf("glx is not supported on this platform")
}
