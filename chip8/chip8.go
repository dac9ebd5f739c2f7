// Package chip8 is the heart of our emulator, it holds the state of a
// CHIP-8 machine and executes its instructions one at a time.
//
// The package knows nothing about terminals, keyboards, or timing.  A
// host loads a ROM, writes the state of the keypad, reads the display,
// and calls Cycle as often as it likes - see the runner package for
// the host loop we ship.
package chip8

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/skx/chip8ulator/display"
	"github.com/skx/chip8ulator/memory"
)

const (
	// ProgramStart is the address at which ROMs are loaded, and from
	// which execution begins.
	ProgramStart = 0x200

	// FontStart is the address of the built-in hex-digit glyphs.
	FontStart = 0x50

	// MaxROMSize is the largest ROM which will fit between
	// ProgramStart and the end of memory.
	MaxROMSize = memory.Size - ProgramStart

	// StackDepth is the number of nested calls we support.
	StackDepth = 16

	// NumKeys is the number of keys on the keypad.
	NumKeys = 16
)

var (
	// ErrROMTooLarge is returned when a ROM will not fit in memory.
	ErrROMTooLarge = errors.New("ROM too large")

	// ErrStackOverflow is returned when a program makes a call with
	// every stack slot already in use.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow is returned when a program returns from a
	// subroutine with nothing on the stack.
	ErrStackUnderflow = errors.New("stack underflow")
)

// RandomSource is used by the RND instruction.
//
// *rand.Rand, from math/rand/v2, satisfies this interface.
type RandomSource interface {
	Uint32() uint32
}

// Option is used to configure a Chip8 object at construction-time.
type Option func(c *Chip8) error

// WithLogger sets the logger to use for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Chip8) error {
		if logger == nil {
			return fmt.Errorf("nil logger")
		}
		c.Logger = logger
		return nil
	}
}

// WithRandomSource sets the source of random numbers used by RND.
func WithRandomSource(src RandomSource) Option {
	return func(c *Chip8) error {
		if src == nil {
			return fmt.Errorf("nil random source")
		}
		c.random = src
		return nil
	}
}

// WithSeed uses a PCG generator with the given seed as our random
// source, which makes RND repeatable.
func WithSeed(seed uint64) Option {
	return func(c *Chip8) error {
		c.random = rand.New(rand.NewPCG(seed, seed))
		return nil
	}
}

// WithTrace enables a debug-level log record for every instruction
// executed.
func WithTrace(enabled bool) Option {
	return func(c *Chip8) error {
		c.trace = enabled
		return nil
	}
}

// Chip8 holds the complete state of our virtual machine.
type Chip8 struct {

	// Memory contains the 4K of RAM the program runs within.
	Memory *memory.Memory

	// Display holds the framebuffer the host should render.
	Display *display.Display

	// Logger holds a logger which we use for debugging and diagnostics.
	Logger *slog.Logger

	// registers holds V0-VF.  VF doubles as the flag register.
	registers [16]uint8

	// index is the I register.  It is deliberately not masked
	// to 12 bits, instead memory accesses through it wrap.
	index uint16

	// pc is the program counter.
	pc uint16

	// stack holds return addresses, sp is the number in use.
	stack [StackDepth]uint16
	sp    uint8

	// delay and sound are the two countdown timers.
	delay uint8
	sound uint8

	// keys holds the state of the keypad, as written by the host.
	keys [NumKeys]bool

	// opcode is the instruction currently being executed.
	opcode uint16

	// cycles counts the instructions we've executed.
	cycles uint64

	// random is used by the RND instruction.
	random RandomSource

	// trace controls per-instruction logging.
	trace bool
}

// New returns a new machine, with the font loaded and the program
// counter pointing at ProgramStart.
func New(options ...Option) (*Chip8, error) {

	tmp := &Chip8{
		Memory:  new(memory.Memory),
		Display: new(display.Display),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		random:  rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}

	for _, opt := range options {
		if err := opt(tmp); err != nil {
			return nil, err
		}
	}

	tmp.Reset()
	return tmp, nil
}

// Reset restores the machine to its power-on state.
//
// Memory is cleared, so a ROM must be loaded again afterwards.
func (c *Chip8) Reset() {
	c.Memory.Clear()
	c.Memory.SetRange(FontStart, font[:]...)
	c.Display.Clear()

	c.registers = [16]uint8{}
	c.stack = [StackDepth]uint16{}
	c.keys = [NumKeys]bool{}
	c.index = 0
	c.sp = 0
	c.delay = 0
	c.sound = 0
	c.opcode = 0
	c.cycles = 0
	c.pc = ProgramStart
}

// LoadROM copies the given program into memory at ProgramStart.
//
// ROMs larger than MaxROMSize are rejected, and memory is left as it was.
func (c *Chip8) LoadROM(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%d bytes, maximum is %d: %w", len(rom), MaxROMSize, ErrROMTooLarge)
	}

	err := c.Memory.Load(ProgramStart, rom)
	if err != nil {
		return err
	}

	c.Logger.Debug("loaded ROM",
		slog.Int("size", len(rom)))
	return nil
}

// LoadFile loads the named ROM file, see LoadROM.
func (c *Chip8) LoadFile(filename string) error {
	err := c.Memory.LoadFile(ProgramStart, filename)
	if errors.Is(err, memory.ErrTooLarge) {
		err = fmt.Errorf("%s: %w", err, ErrROMTooLarge)
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", filename, err)
	}

	c.Logger.Debug("loaded ROM",
		slog.String("path", filename))
	return nil
}

// SetKey records the state of a single key, keys outside the range
// 0x0-0xF are ignored.
func (c *Chip8) SetKey(key uint8, down bool) {
	if key < NumKeys {
		c.keys[key] = down
	}
}

// SetKeys replaces the state of the whole keypad.
func (c *Chip8) SetKeys(keys [NumKeys]bool) {
	c.keys = keys
}

// Keys returns the state of the keypad.
func (c *Chip8) Keys() [NumKeys]bool {
	return c.keys
}

// PC returns the program counter.
func (c *Chip8) PC() uint16 {
	return c.pc
}

// Index returns the I register.
func (c *Chip8) Index() uint16 {
	return c.index
}

// SP returns the number of return addresses on the stack.
func (c *Chip8) SP() uint8 {
	return c.sp
}

// Registers returns a copy of V0-VF.
func (c *Chip8) Registers() [16]uint8 {
	return c.registers
}

// Register returns the value of a single register, Vn.
func (c *Chip8) Register(n uint8) uint8 {
	return c.registers[n&0x0F]
}

// DelayTimer returns the value of the delay timer.
func (c *Chip8) DelayTimer() uint8 {
	return c.delay
}

// SoundTimer returns the value of the sound timer.  A host which
// wishes to make a noise should do so while this is non-zero.
func (c *Chip8) SoundTimer() uint8 {
	return c.sound
}

// Opcode returns the most recently fetched instruction.
func (c *Chip8) Opcode() uint16 {
	return c.opcode
}

// Cycles returns the number of instructions executed since the
// last reset.
func (c *Chip8) Cycles() uint64 {
	return c.cycles
}
