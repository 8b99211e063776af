package glproc

import (
	"errors"
	"reflect"
	"testing"
	"unsafe"
)

var fn byte

func resolver(missing ...string) func(string) unsafe.Pointer {
	return func(name string) unsafe.Pointer {
		for _, m := range missing {
			if m == name {
				return nil
			}
		}
		return unsafe.Pointer(&fn)
	}
}

func TestResolveAll(t *testing.T) {
	table, err := Resolve(resolver(), RequiredSymbols)
	if err != nil {
		t.Fatal(err)
	}
	if len(table) != len(RequiredSymbols) {
		t.Errorf("resolved %d symbols, want %d", len(table), len(RequiredSymbols))
	}
}

func TestResolveReportsEveryMissingSymbol(t *testing.T) {
	_, err := Resolve(resolver("glClear", "glReadPixels"), RequiredSymbols)
	var missing *MissingSymbolsError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want *MissingSymbolsError", err)
	}
	if want := []string{"glClear", "glReadPixels"}; !reflect.DeepEqual(missing.Names, want) {
		t.Errorf("missing = %v, want %v", missing.Names, want)
	}
	if got := err.Error(); got != "missing GL symbols: glClear, glReadPixels" {
		t.Errorf("Error() = %q", got)
	}
}

func TestLoadFailsBeforeInit(t *testing.T) {
	if _, err := Load(resolver("glGetString")); err == nil {
		t.Fatal("Load succeeded with a missing symbol")
	}
}

func TestTrimName(t *testing.T) {
	if got := trimName("glClear\x00"); got != "glClear" {
		t.Errorf("trimName = %q", got)
	}
	if got := trimName("glClear"); got != "glClear" {
		t.Errorf("trimName = %q", got)
	}
}
