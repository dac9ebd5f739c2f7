// Package keypad turns host keyboard input into the state of the
// sixteen key CHIP-8 keypad.
//
// Input is read, a character at a time, from a driver which is
// selected by name.  Drivers register themselves in init(), so adding
// a new one is just a matter of adding a new file.
//
// Terminals only tell us when a key is pressed, never when it is
// released, so a key is considered down for a number of polls after
// it was last seen.
package keypad

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

var (
	// ErrQuit is returned by Poll when the user asks to stop, by
	// pressing ESC or Ctrl-C.
	ErrQuit = errors.New("QUIT")
)

const (
	// DefaultDriver is the name of the driver used if none is chosen.
	DefaultDriver = "term"

	// DefaultHoldPolls is the number of polls a key remains down
	// for after it is pressed.
	DefaultHoldPolls = 10

	// NumKeys is the number of keys on the keypad.
	NumKeys = 16
)

// KeypadInput is the interface that must be implemented by anything
// that wishes to be used as a keypad driver.
//
// Providing this interface is implemented an object may register itself,
// by name, via the Register method.
type KeypadInput interface {

	// Setup performs any specific setup which is required.
	Setup() error

	// TearDown performs any specific cleanup which is required.
	TearDown() error

	// PendingInput returns true if there is pending input available to be read.
	PendingInput() bool

	// BlockForCharacterNoEcho reads a single character from the console,
	// without echoing it.
	BlockForCharacterNoEcho() (byte, error)

	// GetName will return the name of the driver.
	GetName() string
}

// This is a map of known-drivers
var handlers = struct {
	m map[string]Constructor
}{m: make(map[string]Constructor)}

// Constructor is the signature of a constructor-function
// which is used to instantiate an instance of a driver.
type Constructor func() KeypadInput

// Register makes a keypad driver available, by name.
//
// When one needs to be created the constructor can be called
// to create an instance of it.
func Register(name string, obj Constructor) {
	// Downcase for consistency.
	name = strings.ToLower(name)

	handlers.m[name] = obj
}

// layout maps host characters to keypad keys.  The sixteen keys of
// the COSMAC VIP hex keypad sit on the left of a QWERTY keyboard:
//
//	1 2 3 4        1 2 3 C
//	q w e r   ->   4 5 6 D
//	a s d f        7 8 9 E
//	z x c v        A 0 B F
var layout = map[byte]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Lookup returns the keypad key which the given host character
// represents, if any.
func Lookup(c byte) (uint8, bool) {
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	k, ok := layout[c]
	return k, ok
}

// Keypad holds our state, the driver we read from and the keys
// which are currently held down.
type Keypad struct {

	// driver is the thing that actually reads our input.
	driver KeypadInput

	// stuffed holds fake input which has been forced into the buffer,
	// it is consumed before any real input.
	stuffed string

	// held contains the number of polls each key remains down for.
	held [NumKeys]int

	// HoldPolls is the number of polls a key is down for, after
	// it was pressed.
	HoldPolls int
}

// New is our constructor, it creates an input device which uses
// the specified driver.
func New(name string) (*Keypad, error) {
	// Downcase for consistency.
	name = strings.ToLower(name)

	// Do we have a constructor with the given name?
	ctor, ok := handlers.m[name]
	if !ok {
		return nil, fmt.Errorf("failed to lookup driver by name '%s'", name)
	}

	// OK we do, return ourselves with that driver.
	return &Keypad{
		driver:    ctor(),
		HoldPolls: DefaultHoldPolls,
	}, nil
}

// Setup proxies into our registered keypad-driver.
func (k *Keypad) Setup() error {
	return k.driver.Setup()
}

// TearDown proxies into our registered keypad-driver.
func (k *Keypad) TearDown() error {
	return k.driver.TearDown()
}

// GetName returns the name of our selected driver.
func (k *Keypad) GetName() string {
	return k.driver.GetName()
}

// GetDriver allows getting our driver at runtime.
func (k *Keypad) GetDriver() KeypadInput {
	return k.driver
}

// GetDrivers returns all available driver-names, sorted.
//
// We hide the internal "error" driver.
func (k *Keypad) GetDrivers() []string {
	valid := []string{}

	for x := range handlers.m {
		if x != ErrorInputName {
			valid = append(valid, x)
		}
	}
	sort.Strings(valid)
	return valid
}

// StuffInput inserts fake values into our input-buffer.
func (k *Keypad) StuffInput(input string) {
	k.stuffed += input
}

// next returns the next character of input, if there is one.
func (k *Keypad) next() (byte, bool, error) {

	// Do we have faked/stuffed input to process?
	if len(k.stuffed) > 0 {
		c := k.stuffed[0]
		k.stuffed = k.stuffed[1:]
		return c, true, nil
	}

	if !k.driver.PendingInput() {
		return 0x00, false, nil
	}

	c, err := k.driver.BlockForCharacterNoEcho()
	if errors.Is(err, io.EOF) {
		return 0x00, false, nil
	}
	if err != nil {
		return 0x00, false, fmt.Errorf("%s driver: %w", k.driver.GetName(), err)
	}
	return c, true, nil
}

// state returns the keys which are currently down.
func (k *Keypad) state() [NumKeys]bool {
	var out [NumKeys]bool
	for i, n := range k.held {
		out[i] = n > 0
	}
	return out
}

// Poll ages the held keys, consumes at most one character of input,
// and returns the keys which are now down.
//
// ErrQuit is returned if the user pressed ESC or Ctrl-C.
func (k *Keypad) Poll() ([NumKeys]bool, error) {

	for i := range k.held {
		if k.held[i] > 0 {
			k.held[i]--
		}
	}

	c, ok, err := k.next()
	if err != nil {
		return k.state(), err
	}
	if !ok {
		return k.state(), nil
	}

	switch c {
	case 0x1B, 0x03:
		return k.state(), ErrQuit
	}

	if key, found := Lookup(c); found {
		k.held[key] = max(k.HoldPolls, 1)
	}

	return k.state(), nil
}
