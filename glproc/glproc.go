// Package glproc loads the GL entry points the program draws with and checks
// that every one of them resolved before anything is called.
package glproc

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/richinsley/glwindow/graphics"
)

// RequiredSymbols are the entry points the renderer calls.
var RequiredSymbols = []string{
	"glGetString",
	"glClearColor",
	"glClear",
	"glPixelStorei",
	"glReadPixels",
}

// MissingSymbolsError lists every symbol the resolver returned nil for.
type MissingSymbolsError struct {
	Names []string
}

func (e *MissingSymbolsError) Error() string {
	return fmt.Sprintf("missing GL symbols: %s", strings.Join(e.Names, ", "))
}

// Table maps symbol names to resolved function pointers.
type Table map[string]unsafe.Pointer

// Resolve looks up every name and returns the table. If any name resolves to
// nil the error is a *MissingSymbolsError naming all of them.
func Resolve(resolve graphics.ProcAddressFunc, names []string) (Table, error) {
	t := make(Table, len(names))
	var missing []string
	for _, name := range names {
		p := resolve(name)
		if p == nil {
			missing = append(missing, name)
			continue
		}
		t[name] = p
	}
	if len(missing) > 0 {
		return t, &MissingSymbolsError{Names: missing}
	}
	return t, nil
}

// trimName strips the NUL terminator some loaders append to symbol names.
func trimName(name string) string {
	return strings.TrimSuffix(name, "\x00")
}
