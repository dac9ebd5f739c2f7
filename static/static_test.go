package static

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestStatic just ensures we have some files.
func TestStatic(t *testing.T) {

	// Read the subdirectory
	files, err := GetContent().ReadDir("roms")
	if err != nil {
		t.Fatalf("error reading contents")
	}
	if len(files) == 0 {
		t.Fatalf("expected some embedded ROMs")
	}

	// Ensure each file is a .ch8 file, with an even length
	for _, entry := range files {
		name := entry.Name()
		if !strings.HasSuffix(name, ".ch8") {
			t.Fatalf("file '%s' is not a .ch8 file", name)
		}

		data, err := ReadROM(name)
		if err != nil {
			t.Fatalf("failed to read %s: %s", name, err)
		}
		if len(data) == 0 || len(data)%2 != 0 {
			t.Fatalf("%s has a bogus length %d", name, len(data))
		}
	}
}

// TestList ensures our listing is sorted, and lacks suffixes.
func TestList(t *testing.T) {
	names, err := List()
	if err != nil {
		t.Fatalf("failed to list ROMs: %s", err)
	}

	want := []string{"digits", "keys"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("unexpected listing (-want +got):\n%s", diff)
	}
}

// TestReadROM ensures the different ways of naming a ROM all work.
func TestReadROM(t *testing.T) {

	want, err := ReadROM("keys.ch8")
	if err != nil {
		t.Fatalf("failed to read ROM: %s", err)
	}

	// First instruction is "LD V0, K"
	if want[0] != 0xF0 || want[1] != 0x0A {
		t.Fatalf("unexpected ROM content %X", want[:2])
	}

	for _, name := range []string{"keys", "static:keys", "static:keys.ch8"} {
		got, err := ReadROM(name)
		if err != nil {
			t.Fatalf("failed to read %s: %s", name, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("%s differs (-want +got):\n%s", name, diff)
		}
	}

	_, err = ReadROM("missing")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
