// Package static is a hierarchy of files that are added to
// the generated emulator.
//
// The intention is that we can ship a number of small CHIP-8
// programs within our emulator, so that it can be demonstrated
// without the need to find ROMs first.
package static

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed roms/*
var content embed.FS

// Prefix is the prefix used to refer to embedded ROMs upon the
// command-line, as opposed to files on disk.
const Prefix = "static:"

// GetContent returns the embedded filesystem we store within this package.
func GetContent() embed.FS {
	return content
}

// List returns the names of the embedded ROMs, sorted.
func List() ([]string, error) {
	entries, err := fs.ReadDir(content, "roms")
	if err != nil {
		return nil, err
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".ch8"))
	}
	sort.Strings(names)
	return names, nil
}

// ReadROM returns the contents of the named embedded ROM.
//
// The name may be given with, or without, the ".ch8" suffix.
func ReadROM(name string) ([]byte, error) {
	name = strings.TrimPrefix(name, Prefix)
	if !strings.HasSuffix(name, ".ch8") {
		name += ".ch8"
	}

	data, err := content.ReadFile(path.Join("roms", path.Base(name)))
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded ROM %s: %w", name, err)
	}
	return data, nil
}
