package graphics

import (
	"errors"
	"fmt"
)

// ConfigAttributes describes a pixel format as reported by a backend.
type ConfigAttributes struct {
	RedSize     int
	GreenSize   int
	BlueSize    int
	AlphaSize   int
	DepthSize   int
	StencilSize int
	Samples     int
}

func (a ConfigAttributes) String() string {
	return fmt.Sprintf("rgba%d%d%d%d depth=%d stencil=%d samples=%d",
		a.RedSize, a.GreenSize, a.BlueSize, a.AlphaSize, a.DepthSize, a.StencilSize, a.Samples)
}

// Config is an immutable pixel format owned by a Display.
type Config interface {
	Attributes() ConfigAttributes
}

// ConfigTemplate is a declarative request for a pixel format. Zero fields
// mean "don't care".
type ConfigTemplate struct {
	AlphaSize   int
	DepthSize   int
	StencilSize int
}

// Matches reports whether a satisfies every non-zero requirement of t.
func (t ConfigTemplate) Matches(a ConfigAttributes) bool {
	return a.AlphaSize >= t.AlphaSize &&
		a.DepthSize >= t.DepthSize &&
		a.StencilSize >= t.StencilSize
}

// VisualMatches reports whether a config with native visual configVisual can
// back a window created with windowVisual. A zero window visual is unknown and
// accepts every config.
func VisualMatches(windowVisual, configVisual int) bool {
	return windowVisual == 0 || configVisual == windowVisual
}

// ContextAttributes configures context creation. Window binds the context to
// the native window it will render into; zero means none.
type ContextAttributes struct {
	Window uintptr
	Major  int
	Minor  int
}

// SurfaceAttributes configures window surface creation.
type SurfaceAttributes struct {
	Window uintptr
	Width  int
	Height int
}

// Validate rejects attributes a backend could not create a surface from.
func (a SurfaceAttributes) Validate() error {
	if a.Window == 0 {
		return errors.New("surface attributes: no native window")
	}
	if a.Width <= 0 || a.Height <= 0 {
		return fmt.Errorf("surface attributes: invalid size %dx%d", a.Width, a.Height)
	}
	return nil
}
