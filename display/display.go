// Package display opens a display connection from an ordered list of
// backends, keeping the first one that works.
package display

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/richinsley/glwindow/graphics"
)

// OpenFunc opens a display connection on the given native handles.
type OpenFunc func(h graphics.NativeHandles) (graphics.Display, error)

// Backend pairs an API with the function that opens it.
type Backend struct {
	API  graphics.API
	Open OpenFunc
}

// DefaultPreference is EGL first, GLX as fallback.
var DefaultPreference = []graphics.API{graphics.EGL, graphics.GLX}

var ErrUnknownAPI = errors.New("unknown display api")

// ParsePreference parses a comma separated API list such as "egl,glx".
func ParsePreference(s string) ([]graphics.API, error) {
	var apis []graphics.API
	seen := make(map[graphics.API]bool)
	for _, field := range strings.Split(s, ",") {
		api := graphics.API(strings.ToLower(strings.TrimSpace(field)))
		if api == "" {
			continue
		}
		if api != graphics.EGL && api != graphics.GLX {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAPI, field)
		}
		if seen[api] {
			continue
		}
		seen[api] = true
		apis = append(apis, api)
	}
	if len(apis) == 0 {
		return nil, fmt.Errorf("empty display api list %q", s)
	}
	return apis, nil
}

// Registry maps APIs to the backends compiled into the program.
type Registry map[graphics.API]OpenFunc

// Backends returns the registered backends in preference order. APIs without
// a registered backend are skipped.
func (r Registry) Backends(pref []graphics.API) []Backend {
	var out []Backend
	for _, api := range pref {
		if open, ok := r[api]; ok && open != nil {
			out = append(out, Backend{API: api, Open: open})
		}
	}
	return out
}

// Open tries each backend in order and returns the first display that opens.
// If none does, the returned error joins every backend's failure.
func Open(h graphics.NativeHandles, backends []Backend) (graphics.Display, error) {
	if !h.Valid() {
		return nil, errors.New("display: null native handles")
	}
	if len(backends) == 0 {
		return nil, errors.New("display: no backends available")
	}
	var errs []error
	for _, b := range backends {
		d, err := b.Open(h)
		if err != nil {
			log.Printf("Display backend %s unavailable: %v", b.API, err)
			errs = append(errs, fmt.Errorf("%s: %w", b.API, err))
			continue
		}
		log.Printf("Display backend %s opened", b.API)
		return d, nil
	}
	return nil, errors.Join(errs...)
}
