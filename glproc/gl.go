package glproc

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/richinsley/glwindow/graphics"
)

// GL is the renderer backed by the loaded go-gl function table. It must only
// be used on the thread the context is current on.
type GL struct{}

// Load checks RequiredSymbols against resolve and then initialises the go-gl
// bindings through the same resolver. A context must be current.
func Load(resolve graphics.ProcAddressFunc) (*GL, error) {
	if _, err := Resolve(resolve, RequiredSymbols); err != nil {
		return nil, err
	}
	err := gl.InitWithProcAddrFunc(func(name string) unsafe.Pointer {
		return resolve(trimName(name))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	return &GL{}, nil
}

func (g *GL) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (g *GL) ClearColor(r, gr, b, a float32) {
	gl.ClearColor(r, gr, b, a)
}

func (g *GL) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (g *GL) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}
