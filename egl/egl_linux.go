//go:build linux

package egl

import (
	"errors"
	"fmt"
	"log"
	"unsafe"

	"github.com/richinsley/glwindow/graphics"
)

/*
#cgo LDFLAGS: -lEGL -lX11
#include <stdint.h>
#include <stdlib.h>
#include <X11/Xlib.h>
#include <X11/Xutil.h>
#include <EGL/egl.h>
#include <EGL/eglext.h>

// The native types depend on how the EGL headers were configured, so the
// casts happen on the C side.
static EGLDisplay get_display(void *native_display) {
    return eglGetDisplay((EGLNativeDisplayType)native_display);
}

static EGLSurface create_window_surface(EGLDisplay dpy, EGLConfig cfg, uintptr_t native_window) {
    return eglCreateWindowSurface(dpy, cfg, (EGLNativeWindowType)native_window, NULL);
}

static int window_visual_id(void *native_display, uintptr_t win) {
    XWindowAttributes a;
    if (!XGetWindowAttributes((Display *)native_display, (Window)win, &a)) {
        return 0;
    }
    return (int)XVisualIDFromVisual(a.visual);
}

static void *get_proc_address(const char *name) {
    return (void *)eglGetProcAddress(name);
}
*/
import "C"

// Display is an initialized EGL display bound to the desktop OpenGL API.
type Display struct {
	display  C.EGLDisplay
	visualID int
	contexts []C.EGLContext
	surfaces []C.EGLSurface
}

type config struct {
	cfg   C.EGLConfig
	attrs graphics.ConfigAttributes
}

func (c *config) Attributes() graphics.ConfigAttributes { return c.attrs }

type notCurrentContext struct {
	d   *Display
	ctx C.EGLContext
}

type currentContext struct {
	ctx     C.EGLContext
	surface *Surface
}

func (c *currentContext) Surface() graphics.Surface { return c.surface }

// Surface is an EGL window surface.
type Surface struct {
	d       *Display
	surface C.EGLSurface
	width   int
	height  int
}

func eglError(what string) error {
	return fmt.Errorf("%s failed: EGL error 0x%x", what, int(C.eglGetError()))
}

// Open initializes EGL on the window's X11 display.
func Open(h graphics.NativeHandles) (graphics.Display, error) {
	if !h.Valid() {
		return nil, errors.New("egl: null native handles")
	}
	dpy := C.get_display(h.Display)
	if dpy == nil {
		return nil, errors.New("eglGetDisplay returned no display")
	}

	var major, minor C.EGLint
	if C.eglInitialize(dpy, &major, &minor) == C.EGL_FALSE {
		return nil, eglError("eglInitialize")
	}
	log.Printf("EGL Initialized. Version: %d.%d", major, minor)

	if C.eglBindAPI(C.EGL_OPENGL_API) == C.EGL_FALSE {
		C.eglTerminate(dpy)
		return nil, eglError("eglBindAPI(EGL_OPENGL_API)")
	}
	return &Display{
		display:  dpy,
		visualID: int(C.window_visual_id(h.Display, C.uintptr_t(h.Window))),
	}, nil
}

func (d *Display) API() graphics.API { return graphics.EGL }

func (d *Display) attrib(cfg C.EGLConfig, name C.EGLint) int {
	var v C.EGLint
	if C.eglGetConfigAttrib(d.display, cfg, name, &v) == C.EGL_FALSE {
		return 0
	}
	return int(v)
}

// FindConfigs returns the window-capable desktop GL configs matching t, in
// eglChooseConfig's sort order. Configs whose native visual differs from the
// window's are skipped since a window surface cannot be created from them.
func (d *Display) FindConfigs(t graphics.ConfigTemplate) ([]graphics.Config, error) {
	attribs := []C.EGLint{
		C.EGL_SURFACE_TYPE, C.EGL_WINDOW_BIT,
		C.EGL_RENDERABLE_TYPE, C.EGL_OPENGL_BIT,
		C.EGL_ALPHA_SIZE, C.EGLint(t.AlphaSize),
		C.EGL_DEPTH_SIZE, C.EGLint(t.DepthSize),
		C.EGL_STENCIL_SIZE, C.EGLint(t.StencilSize),
		C.EGL_NONE,
	}

	var n C.EGLint
	if C.eglChooseConfig(d.display, &attribs[0], nil, 0, &n) == C.EGL_FALSE {
		return nil, eglError("eglChooseConfig")
	}
	if n == 0 {
		return nil, nil
	}
	cfgs := make([]C.EGLConfig, n)
	if C.eglChooseConfig(d.display, &attribs[0], &cfgs[0], n, &n) == C.EGL_FALSE {
		return nil, eglError("eglChooseConfig")
	}

	out := make([]graphics.Config, 0, int(n))
	for _, cfg := range cfgs[:n] {
		if !graphics.VisualMatches(d.visualID, d.attrib(cfg, C.EGL_NATIVE_VISUAL_ID)) {
			continue
		}
		out = append(out, &config{
			cfg: cfg,
			attrs: graphics.ConfigAttributes{
				RedSize:     d.attrib(cfg, C.EGL_RED_SIZE),
				GreenSize:   d.attrib(cfg, C.EGL_GREEN_SIZE),
				BlueSize:    d.attrib(cfg, C.EGL_BLUE_SIZE),
				AlphaSize:   d.attrib(cfg, C.EGL_ALPHA_SIZE),
				DepthSize:   d.attrib(cfg, C.EGL_DEPTH_SIZE),
				StencilSize: d.attrib(cfg, C.EGL_STENCIL_SIZE),
				Samples:     d.attrib(cfg, C.EGL_SAMPLES),
			},
		})
	}
	return out, nil
}

func (d *Display) CreateContext(cfg graphics.Config, attrs graphics.ContextAttributes) (graphics.NotCurrentContext, error) {
	c, ok := cfg.(*config)
	if !ok {
		return nil, fmt.Errorf("egl: config %T is not an EGL config", cfg)
	}
	var attribs []C.EGLint
	if attrs.Major > 0 {
		attribs = append(attribs,
			C.EGL_CONTEXT_MAJOR_VERSION, C.EGLint(attrs.Major),
			C.EGL_CONTEXT_MINOR_VERSION, C.EGLint(attrs.Minor))
	}
	attribs = append(attribs, C.EGL_NONE)

	ctx := C.eglCreateContext(d.display, c.cfg, C.EGLContext(nil), &attribs[0])
	if ctx == nil {
		return nil, eglError("eglCreateContext")
	}
	d.contexts = append(d.contexts, ctx)
	return &notCurrentContext{d: d, ctx: ctx}, nil
}

func (d *Display) CreateWindowSurface(cfg graphics.Config, attrs graphics.SurfaceAttributes) (graphics.Surface, error) {
	c, ok := cfg.(*config)
	if !ok {
		return nil, fmt.Errorf("egl: config %T is not an EGL config", cfg)
	}
	if err := attrs.Validate(); err != nil {
		return nil, err
	}
	surf := C.create_window_surface(d.display, c.cfg, C.uintptr_t(attrs.Window))
	if surf == nil {
		return nil, eglError("eglCreateWindowSurface")
	}
	d.surfaces = append(d.surfaces, surf)
	return &Surface{d: d, surface: surf, width: attrs.Width, height: attrs.Height}, nil
}

func (d *Display) ProcAddress(name string) unsafe.Pointer {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return C.get_proc_address(cname)
}

func (d *Display) Shutdown() {
	if d.display == nil {
		return
	}
	C.eglMakeCurrent(d.display, C.EGLSurface(nil), C.EGLSurface(nil), C.EGLContext(nil))
	for _, ctx := range d.contexts {
		C.eglDestroyContext(d.display, ctx)
	}
	for _, s := range d.surfaces {
		C.eglDestroySurface(d.display, s)
	}
	C.eglTerminate(d.display)
	d.display = nil
	d.contexts, d.surfaces = nil, nil
}

func (n *notCurrentContext) MakeCurrent(s graphics.Surface) (graphics.CurrentContext, error) {
	surf, ok := s.(*Surface)
	if !ok || surf.d != n.d {
		return nil, fmt.Errorf("egl: surface %T does not belong to this display", s)
	}
	if C.eglMakeCurrent(n.d.display, surf.surface, surf.surface, n.ctx) == C.EGL_FALSE {
		return nil, eglError("eglMakeCurrent")
	}
	return &currentContext{ctx: n.ctx, surface: surf}, nil
}

func (s *Surface) Size() (int, int) { return s.width, s.height }

// Resize records the new size. X11 EGL window surfaces follow the native
// window, so there is nothing to reallocate.
func (s *Surface) Resize(ctx graphics.CurrentContext, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
}

func (s *Surface) SwapBuffers(ctx graphics.CurrentContext) error {
	if c, ok := ctx.(*currentContext); !ok || c.surface != s {
		return errors.New("egl: swap on a surface the context is not current on")
	}
	if C.eglSwapBuffers(s.d.display, s.surface) == C.EGL_FALSE {
		return eglError("eglSwapBuffers")
	}
	return nil
}
