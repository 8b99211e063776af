package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/richinsley/glwindow/dispatch"
	"github.com/richinsley/glwindow/display"
	"github.com/richinsley/glwindow/egl"
	"github.com/richinsley/glwindow/glfwcontext"
	"github.com/richinsley/glwindow/glproc"
	"github.com/richinsley/glwindow/glx"
	"github.com/richinsley/glwindow/graphics"
	"github.com/richinsley/glwindow/lifecycle"
	"github.com/richinsley/glwindow/options"
	"github.com/richinsley/glwindow/recorder"
)

var backends = display.Registry{
	graphics.EGL: egl.Open,
	graphics.GLX: glx.Open,
}

func init() {
	runtime.LockOSThread()
}

func run(opts *options.WindowOptions) error {
	pref, err := opts.Preference()
	if err != nil {
		return err
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	defer glfwcontext.TerminateGraphics()

	setup := &lifecycle.Setup{
		NewWindow: func(title string, width, height int) (graphics.PlatformWindow, error) {
			return glfwcontext.New(title, width, height)
		},
		Backends: backends.Backends(pref),
		LoadGL: func(resolve graphics.ProcAddressFunc) (graphics.Renderer, error) {
			return glproc.Load(resolve)
		},
	}
	state, err := setup.Run(lifecycle.Params{
		Title:            *opts.Title,
		Width:            *opts.Width,
		Height:           *opts.Height,
		AlphaSize:        *opts.AlphaSize,
		FixedSurfaceSize: *opts.FixedSurfaceSize,
	})
	if err != nil {
		return err
	}
	defer state.Shutdown()

	d := dispatch.New(state)
	if *opts.Record != "" {
		w, h := state.Surface.Size()
		rec, err := recorder.New(*opts.Record, w, h, *opts.FPS, *opts.FFMPEGPath)
		if err != nil {
			return err
		}
		d.SetFrameSink(rec)
		defer func() {
			if err := rec.Close(); err != nil {
				log.Printf("Recording finished with error: %v", err)
			}
		}()
	}

	log.Printf("Starting event loop for %q...", state.Window.Title())
	if err := d.Run(); err != nil {
		return err
	}
	log.Printf("Window closed after %d frames", d.Frames())
	return nil
}

func main() {
	opts, err := options.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid options: %v", err)
	}
	if *opts.Help {
		fmt.Println("OpenGL window")
		flag.PrintDefaults()
		return
	}

	if err := run(opts); err != nil {
		log.Fatalf("Fatal: %v", err)
	}
}
