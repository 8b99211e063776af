//go:build linux

package glx

import (
	"errors"
	"fmt"
	"log"
	"unsafe"

	"github.com/richinsley/glwindow/graphics"
)

/*
#cgo LDFLAGS: -lGL -lX11
#include <stdint.h>
#include <stdlib.h>
#include <X11/Xlib.h>
#include <X11/Xutil.h>
#include <GL/glx.h>

static GLXWindow create_window(Display *dpy, GLXFBConfig cfg, uintptr_t win) {
    return glXCreateWindow(dpy, cfg, (Window)win, NULL);
}

static int window_visual_id(Display *dpy, uintptr_t win) {
    XWindowAttributes a;
    if (!XGetWindowAttributes(dpy, (Window)win, &a)) {
        return 0;
    }
    return (int)XVisualIDFromVisual(a.visual);
}

static void *get_proc_address(const char *name) {
    return (void *)glXGetProcAddressARB((const GLubyte *)name);
}
*/
import "C"

// Display is a GLX connection on the X11 display owned by the window. The X
// display itself is not closed by Shutdown.
type Display struct {
	display  *C.Display
	window   uintptr
	visualID int
	contexts []C.GLXContext
	windows  []C.GLXWindow
}

type config struct {
	cfg   C.GLXFBConfig
	attrs graphics.ConfigAttributes
}

func (c *config) Attributes() graphics.ConfigAttributes { return c.attrs }

type notCurrentContext struct {
	d   *Display
	ctx C.GLXContext
}

type currentContext struct {
	ctx     C.GLXContext
	surface *Surface
}

func (c *currentContext) Surface() graphics.Surface { return c.surface }

// Surface is a GLX window drawable.
type Surface struct {
	d      *Display
	window C.GLXWindow
	width  int
	height int
}

// Open checks for GLX 1.3 on the window's X11 display.
func Open(h graphics.NativeHandles) (graphics.Display, error) {
	if !h.Valid() {
		return nil, errors.New("glx: null native handles")
	}
	dpy := (*C.Display)(h.Display)

	var major, minor C.int
	if C.glXQueryVersion(dpy, &major, &minor) == C.False {
		return nil, errors.New("glXQueryVersion failed")
	}
	if major < 1 || (major == 1 && minor < 3) {
		return nil, fmt.Errorf("GLX %d.%d is older than 1.3", major, minor)
	}
	log.Printf("GLX Initialized. Version: %d.%d", major, minor)

	return &Display{
		display:  dpy,
		window:   h.Window,
		visualID: int(C.window_visual_id(dpy, C.uintptr_t(h.Window))),
	}, nil
}

func (d *Display) API() graphics.API { return graphics.GLX }

func (d *Display) attrib(cfg C.GLXFBConfig, name C.int) int {
	var v C.int
	if C.glXGetFBConfigAttrib(d.display, cfg, name, &v) != C.Success {
		return 0
	}
	return int(v)
}

// FindConfigs returns the double-buffered RGBA window configs matching t, in
// glXChooseFBConfig's sort order. Configs whose visual differs from the
// window's are skipped since a drawable cannot be created from them.
func (d *Display) FindConfigs(t graphics.ConfigTemplate) ([]graphics.Config, error) {
	attribs := []C.int{
		C.GLX_X_RENDERABLE, C.True,
		C.GLX_DRAWABLE_TYPE, C.GLX_WINDOW_BIT,
		C.GLX_RENDER_TYPE, C.GLX_RGBA_BIT,
		C.GLX_DOUBLEBUFFER, C.True,
		C.GLX_ALPHA_SIZE, C.int(t.AlphaSize),
		C.GLX_DEPTH_SIZE, C.int(t.DepthSize),
		C.GLX_STENCIL_SIZE, C.int(t.StencilSize),
		0,
	}

	var n C.int
	list := C.glXChooseFBConfig(d.display, C.XDefaultScreen(d.display), &attribs[0], &n)
	if list == nil || n == 0 {
		return nil, nil
	}
	defer C.XFree(unsafe.Pointer(list))

	var out []graphics.Config
	for _, cfg := range unsafe.Slice(list, int(n)) {
		if !graphics.VisualMatches(d.visualID, d.attrib(cfg, C.GLX_VISUAL_ID)) {
			continue
		}
		out = append(out, &config{
			cfg: cfg,
			attrs: graphics.ConfigAttributes{
				RedSize:     d.attrib(cfg, C.GLX_RED_SIZE),
				GreenSize:   d.attrib(cfg, C.GLX_GREEN_SIZE),
				BlueSize:    d.attrib(cfg, C.GLX_BLUE_SIZE),
				AlphaSize:   d.attrib(cfg, C.GLX_ALPHA_SIZE),
				DepthSize:   d.attrib(cfg, C.GLX_DEPTH_SIZE),
				StencilSize: d.attrib(cfg, C.GLX_STENCIL_SIZE),
				Samples:     d.attrib(cfg, C.GLX_SAMPLES),
			},
		})
	}
	return out, nil
}

func (d *Display) CreateContext(cfg graphics.Config, attrs graphics.ContextAttributes) (graphics.NotCurrentContext, error) {
	c, ok := cfg.(*config)
	if !ok {
		return nil, fmt.Errorf("glx: config %T is not a GLX config", cfg)
	}
	ctx := C.glXCreateNewContext(d.display, c.cfg, C.GLX_RGBA_TYPE, nil, C.True)
	if ctx == nil {
		return nil, errors.New("glXCreateNewContext failed")
	}
	d.contexts = append(d.contexts, ctx)
	return &notCurrentContext{d: d, ctx: ctx}, nil
}

func (d *Display) CreateWindowSurface(cfg graphics.Config, attrs graphics.SurfaceAttributes) (graphics.Surface, error) {
	c, ok := cfg.(*config)
	if !ok {
		return nil, fmt.Errorf("glx: config %T is not a GLX config", cfg)
	}
	if err := attrs.Validate(); err != nil {
		return nil, err
	}
	win := C.create_window(d.display, c.cfg, C.uintptr_t(attrs.Window))
	if win == 0 {
		return nil, errors.New("glXCreateWindow failed")
	}
	d.windows = append(d.windows, win)
	return &Surface{d: d, window: win, width: attrs.Width, height: attrs.Height}, nil
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
	C.glXMakeContextCurrent(d.display, 0, 0, nil)
	for _, w := range d.windows {
		C.glXDestroyWindow(d.display, w)
	}
	for _, ctx := range d.contexts {
		C.glXDestroyContext(d.display, ctx)
	}
	d.display = nil
	d.contexts, d.windows = nil, nil
}

func (n *notCurrentContext) MakeCurrent(s graphics.Surface) (graphics.CurrentContext, error) {
	surf, ok := s.(*Surface)
	if !ok || surf.d != n.d {
		return nil, fmt.Errorf("glx: surface %T does not belong to this display", s)
	}
	drawable := C.GLXDrawable(surf.window)
	if C.glXMakeContextCurrent(n.d.display, drawable, drawable, n.ctx) == C.False {
		return nil, errors.New("glXMakeContextCurrent failed")
	}
	return &currentContext{ctx: n.ctx, surface: surf}, nil
}

func (s *Surface) Size() (int, int) { return s.width, s.height }

// Resize records the new size; GLX window drawables track the X window.
func (s *Surface) Resize(ctx graphics.CurrentContext, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
}

func (s *Surface) SwapBuffers(ctx graphics.CurrentContext) error {
	if c, ok := ctx.(*currentContext); !ok || c.surface != s {
		return errors.New("glx: swap on a surface the context is not current on")
	}
	C.glXSwapBuffers(s.d.display, C.GLXDrawable(s.window))
	return nil
}
