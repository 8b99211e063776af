package graphics

import (
	"testing"
	"unsafe"
)

func TestConfigTemplateMatches(t *testing.T) {
	tests := []struct {
		name string
		tmpl ConfigTemplate
		attr ConfigAttributes
		want bool
	}{
		{"empty template", ConfigTemplate{}, ConfigAttributes{}, true},
		{"alpha satisfied", ConfigTemplate{AlphaSize: 8}, ConfigAttributes{AlphaSize: 8}, true},
		{"alpha exceeded", ConfigTemplate{AlphaSize: 8}, ConfigAttributes{AlphaSize: 16}, true},
		{"alpha missing", ConfigTemplate{AlphaSize: 8}, ConfigAttributes{RedSize: 8, GreenSize: 8, BlueSize: 8}, false},
		{"depth missing", ConfigTemplate{AlphaSize: 8, DepthSize: 24}, ConfigAttributes{AlphaSize: 8, DepthSize: 16}, false},
		{"stencil missing", ConfigTemplate{StencilSize: 8}, ConfigAttributes{AlphaSize: 8}, false},
	}
	for _, tt := range tests {
		if got := tt.tmpl.Matches(tt.attr); got != tt.want {
			t.Errorf("%s: Matches(%v) = %v, want %v", tt.name, tt.attr, got, tt.want)
		}
	}
}

func TestSurfaceAttributesValidate(t *testing.T) {
	tests := []struct {
		attrs   SurfaceAttributes
		wantErr bool
	}{
		{SurfaceAttributes{Window: 1, Width: 1024, Height: 768}, false},
		{SurfaceAttributes{Window: 0, Width: 1024, Height: 768}, true},
		{SurfaceAttributes{Window: 1, Width: 0, Height: 768}, true},
		{SurfaceAttributes{Window: 1, Width: 1024, Height: -1}, true},
	}
	for _, tt := range tests {
		err := tt.attrs.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%+v) = %v, wantErr %v", tt.attrs, err, tt.wantErr)
		}
	}
}

func TestNativeHandlesValid(t *testing.T) {
	var d byte
	if (NativeHandles{}).Valid() {
		t.Error("zero handles reported valid")
	}
	if (NativeHandles{Display: unsafe.Pointer(&d)}).Valid() {
		t.Error("handles without a window reported valid")
	}
	if !(NativeHandles{Display: unsafe.Pointer(&d), Window: 42}).Valid() {
		t.Error("complete handles reported invalid")
	}
}

func TestVisualMatches(t *testing.T) {
	tests := []struct {
		window, config int
		want           bool
	}{
		{0x21, 0x21, true},
		{0x21, 0x5e, false}, // 32-bit ARGB visual against a 24-bit window
		{0x21, 0, false},
		{0, 0x5e, true},
	}
	for _, tt := range tests {
		if got := VisualMatches(tt.window, tt.config); got != tt.want {
			t.Errorf("VisualMatches(%#x, %#x) = %v, want %v", tt.window, tt.config, got, tt.want)
		}
	}
}
