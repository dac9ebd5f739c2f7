package chip8

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// newMachine creates a machine with the given instructions loaded at
// ProgramStart.
func newMachine(t *testing.T, program ...uint16) *Chip8 {
	t.Helper()

	c, err := New(WithSeed(1))
	if err != nil {
		t.Fatalf("failed to create machine: %s", err)
	}

	rom := make([]byte, 0, len(program)*2)
	for _, op := range program {
		rom = append(rom, byte(op>>8), byte(op))
	}

	err = c.LoadROM(rom)
	if err != nil {
		t.Fatalf("failed to load ROM: %s", err)
	}
	return c
}

// step runs the given number of cycles, failing on any error.
func step(t *testing.T, c *Chip8, count int) {
	t.Helper()

	for i := 0; i < count; i++ {
		if err := c.Cycle(); err != nil {
			t.Fatalf("unexpected error on cycle %d: %s", i, err)
		}
	}
}

// TestNew ensures a new machine is in the expected state.
func TestNew(t *testing.T) {

	c, err := New()
	if err != nil {
		t.Fatalf("failed to create machine: %s", err)
	}

	if c.PC() != ProgramStart {
		t.Fatalf("program counter (got %04X, but want %04X)", c.PC(), ProgramStart)
	}
	if c.SP() != 0 || c.Index() != 0 || c.DelayTimer() != 0 || c.SoundTimer() != 0 {
		t.Fatalf("machine state wasn't zeroed")
	}
	if c.Registers() != [16]uint8{} {
		t.Fatalf("registers weren't zeroed")
	}
	if c.Display.Lit() != 0 {
		t.Fatalf("display isn't blank")
	}

	got := c.Memory.GetRange(FontStart, len(font))
	if diff := cmp.Diff(Font(), got); diff != "" {
		t.Fatalf("font: (-want, +got)\n%s", diff)
	}

	// Nothing else should be set
	for addr := 0; addr < 0x1000; addr++ {
		if addr >= FontStart && addr < FontStart+len(font) {
			continue
		}
		if c.Memory.Get(uint16(addr)) != 0 {
			t.Fatalf("memory at %04X isn't zero", addr)
		}
	}
}

// TestBogusOptions ensures options can fail construction.
func TestBogusOptions(t *testing.T) {

	_, err := New(WithLogger(nil))
	if err == nil {
		t.Fatalf("expected error with a nil logger, got none")
	}

	_, err = New(WithRandomSource(nil))
	if err == nil {
		t.Fatalf("expected error with a nil random source, got none")
	}
}

// TestLoadROM ensures ROMs land where they should, and that
// oversized ones are rejected.
func TestLoadROM(t *testing.T) {

	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{name: "empty", size: 0},
		{name: "small", size: 2},
		{name: "exact", size: MaxROMSize},
		{name: "oversized", size: MaxROMSize + 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New()
			if err != nil {
				t.Fatalf("failed to create machine: %s", err)
			}

			rom := bytes.Repeat([]byte{0xAB}, tt.size)
			err = c.LoadROM(rom)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadROM() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				if !errors.Is(err, ErrROMTooLarge) {
					t.Fatalf("expected ErrROMTooLarge, got %v", err)
				}
				if c.Memory.Get(ProgramStart) != 0 {
					t.Fatalf("memory modified by a failed load")
				}
				return
			}

			got := c.Memory.GetRange(ProgramStart, tt.size)
			if diff := cmp.Diff(rom, got); diff != "" {
				t.Fatalf("ROM contents: (-want, +got)\n%s", diff)
			}
		})
	}
}

// TestLoadFile ensures we can load ROMs from disk.
func TestLoadFile(t *testing.T) {

	c, err := New()
	if err != nil {
		t.Fatalf("failed to create machine: %s", err)
	}

	err = c.LoadFile("/this/file-does/not/exist")
	if err == nil {
		t.Fatalf("expected an error loading a bogus ROM, got none")
	}

	// Write a ROM which sets V0 to 10
	file, err := os.CreateTemp("", "tst-*.ch8")
	if err != nil {
		t.Fatalf("failed to create temporary file")
	}
	defer os.Remove(file.Name())

	_, err = file.Write([]byte{0x60, 0x0A})
	if err != nil {
		t.Fatalf("failed to write ROM to temporary file")
	}
	file.Close()

	err = c.LoadFile(file.Name())
	if err != nil {
		t.Fatalf("failed to load ROM: %s", err)
	}
	step(t, c, 1)
	if c.Register(0) != 10 {
		t.Fatalf("ROM didn't execute, V0 is %d", c.Register(0))
	}

	// Now one which is too large
	big, err := os.CreateTemp("", "tst-*.ch8")
	if err != nil {
		t.Fatalf("failed to create temporary file")
	}
	defer os.Remove(big.Name())

	_, err = big.Write(make([]byte, MaxROMSize+1))
	if err != nil {
		t.Fatalf("failed to write ROM to temporary file")
	}
	big.Close()

	err = c.LoadFile(big.Name())
	if !errors.Is(err, ErrROMTooLarge) {
		t.Fatalf("expected ErrROMTooLarge, got %v", err)
	}
}

// TestReset ensures reset takes us back to the power-on state.
func TestReset(t *testing.T) {

	c := newMachine(t, 0x6042, 0xA123, 0xF015, 0x2200)
	step(t, c, 4)
	c.SetKey(3, true)
	c.Display.Fill(true)
	c.Memory.Set(FontStart, 0x00)

	c.Reset()

	if c.PC() != ProgramStart || c.SP() != 0 || c.Index() != 0 || c.Cycles() != 0 {
		t.Fatalf("reset left state behind")
	}
	if c.Registers() != [16]uint8{} || c.DelayTimer() != 0 {
		t.Fatalf("reset left registers behind")
	}
	if c.Keys() != [NumKeys]bool{} {
		t.Fatalf("reset left keys pressed")
	}
	if c.Display.Lit() != 0 {
		t.Fatalf("reset didn't clear the display")
	}
	if c.Memory.GetU16(ProgramStart) != 0 {
		t.Fatalf("reset didn't clear memory")
	}
	if diff := cmp.Diff(Font(), c.Memory.GetRange(FontStart, len(font))); diff != "" {
		t.Fatalf("font wasn't restored: (-want, +got)\n%s", diff)
	}
}

// TestKeypad ensures the keypad surface behaves.
func TestKeypad(t *testing.T) {

	c := newMachine(t)

	c.SetKey(0x0F, true)
	c.SetKey(0x10, true) // ignored
	keys := c.Keys()
	if !keys[0x0F] {
		t.Fatalf("key F isn't down")
	}

	var want [NumKeys]bool
	want[2] = true
	c.SetKeys(want)
	if c.Keys() != want {
		t.Fatalf("SetKeys didn't replace the keypad")
	}
}

// TestTrace ensures tracing logs each instruction.
func TestTrace(t *testing.T) {

	buf := new(bytes.Buffer)
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	c, err := New(WithLogger(logger), WithTrace(true))
	if err != nil {
		t.Fatalf("failed to create machine: %s", err)
	}
	err = c.LoadROM([]byte{0x00, 0xE0})
	if err != nil {
		t.Fatalf("failed to load ROM: %s", err)
	}
	step(t, c, 1)

	out := buf.String()
	if !strings.Contains(out, `"name":"CLS"`) {
		t.Fatalf("trace didn't include the mnemonic: %s", out)
	}
	if !strings.Contains(out, `"opcodeHex":"0x00E0"`) {
		t.Fatalf("trace didn't include the opcode: %s", out)
	}
	if !strings.Contains(out, `"pcHex":"0x200"`) {
		t.Fatalf("trace didn't include the address: %s", out)
	}
}
