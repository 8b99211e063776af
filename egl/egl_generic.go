//go:build !linux

package egl

import (
	"fmt"

	"github.com/richinsley/glwindow/graphics"
)

func Open(h graphics.NativeHandles) (graphics.Display, error) {
	return nil, fmt.Errorf("egl window surfaces are not supported on this platform")
}
