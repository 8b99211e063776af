package display

import (
	"errors"
	"reflect"
	"testing"

	"github.com/richinsley/glwindow/graphics"
	"github.com/richinsley/glwindow/graphics/graphicstest"
)

func TestParsePreference(t *testing.T) {
	tests := []struct {
		in      string
		want    []graphics.API
		wantErr bool
	}{
		{"egl,glx", []graphics.API{graphics.EGL, graphics.GLX}, false},
		{"GLX, egl", []graphics.API{graphics.GLX, graphics.EGL}, false},
		{"egl,egl", []graphics.API{graphics.EGL}, false},
		{"glx", []graphics.API{graphics.GLX}, false},
		{"", nil, true},
		{" , ", nil, true},
		{"wgl", nil, true},
	}
	for _, tt := range tests {
		got, err := ParsePreference(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePreference(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParsePreference(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := ParsePreference("cgl"); !errors.Is(err, ErrUnknownAPI) {
		t.Errorf("unknown api error = %v, want ErrUnknownAPI", err)
	}
}

func TestRegistryBackendsOrder(t *testing.T) {
	open := func(graphics.NativeHandles) (graphics.Display, error) { return nil, nil }
	r := Registry{graphics.GLX: open, graphics.EGL: open}
	got := r.Backends([]graphics.API{graphics.EGL, graphics.GLX})
	if len(got) != 2 || got[0].API != graphics.EGL || got[1].API != graphics.GLX {
		t.Fatalf("Backends = %+v, want egl then glx", got)
	}
	got = Registry{graphics.GLX: open}.Backends(DefaultPreference)
	if len(got) != 1 || got[0].API != graphics.GLX {
		t.Fatalf("Backends = %+v, want only glx", got)
	}
}

func TestOpenFallsBack(t *testing.T) {
	j := &graphicstest.Journal{}
	var tried []graphics.API
	backends := []Backend{
		{API: graphics.EGL, Open: func(graphics.NativeHandles) (graphics.Display, error) {
			tried = append(tried, graphics.EGL)
			return nil, errors.New("no EGL")
		}},
		{API: graphics.GLX, Open: func(graphics.NativeHandles) (graphics.Display, error) {
			tried = append(tried, graphics.GLX)
			return graphicstest.NewDisplay(j, graphics.GLX), nil
		}},
	}
	d, err := Open(graphicstest.Handles(), backends)
	if err != nil {
		t.Fatal(err)
	}
	if d.API() != graphics.GLX {
		t.Errorf("opened %s, want glx", d.API())
	}
	if !reflect.DeepEqual(tried, []graphics.API{graphics.EGL, graphics.GLX}) {
		t.Errorf("tried %v", tried)
	}
}

func TestOpenStopsAtFirstSuccess(t *testing.T) {
	j := &graphicstest.Journal{}
	glxCalled := false
	backends := []Backend{
		{API: graphics.EGL, Open: func(graphics.NativeHandles) (graphics.Display, error) {
			return graphicstest.NewDisplay(j, graphics.EGL), nil
		}},
		{API: graphics.GLX, Open: func(graphics.NativeHandles) (graphics.Display, error) {
			glxCalled = true
			return nil, nil
		}},
	}
	d, err := Open(graphicstest.Handles(), backends)
	if err != nil {
		t.Fatal(err)
	}
	if d.API() != graphics.EGL || glxCalled {
		t.Errorf("opened %s, glx called %v", d.API(), glxCalled)
	}
}

func TestOpenAllFail(t *testing.T) {
	eglErr := errors.New("no EGL")
	glxErr := errors.New("no GLX")
	backends := []Backend{
		{API: graphics.EGL, Open: func(graphics.NativeHandles) (graphics.Display, error) { return nil, eglErr }},
		{API: graphics.GLX, Open: func(graphics.NativeHandles) (graphics.Display, error) { return nil, glxErr }},
	}
	_, err := Open(graphicstest.Handles(), backends)
	if !errors.Is(err, eglErr) || !errors.Is(err, glxErr) {
		t.Errorf("Open error = %v, want both backend errors", err)
	}
}

func TestOpenRejectsNullHandles(t *testing.T) {
	called := false
	backends := []Backend{{API: graphics.EGL, Open: func(graphics.NativeHandles) (graphics.Display, error) {
		called = true
		return nil, nil
	}}}
	if _, err := Open(graphics.NativeHandles{}, backends); err == nil {
		t.Error("Open with null handles succeeded")
	}
	if called {
		t.Error("backend opened with null handles")
	}
	if _, err := Open(graphicstest.Handles(), nil); err == nil {
		t.Error("Open with no backends succeeded")
	}
}
