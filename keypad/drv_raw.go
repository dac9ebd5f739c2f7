//go:build unix

// drv_raw creates a keypad input-driver which puts the terminal into
// raw mode, and uses select(2) to see if a key is waiting.
//
// Unlike the termbox driver there is no background goroutine, and the
// screen is left alone, which makes this driver useful when the output
// of the emulator is being logged to the terminal.

package keypad

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// RawInput is an input-driver that reads directly from STDIN, in raw mode.
type RawInput struct {

	// oldState contains the state of the terminal, before switching to RAW mode
	oldState *term.State
}

// Setup switches STDIN into raw mode.
func (ri *RawInput) Setup() error {
	var err error

	ri.oldState, err = term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("error making raw terminal %s", err)
	}
	return nil
}

// TearDown restores the state of the terminal.
func (ri *RawInput) TearDown() error {
	if ri.oldState == nil {
		return nil
	}

	err := term.Restore(int(os.Stdin.Fd()), ri.oldState)
	ri.oldState = nil
	return err
}

// canSelect uses select(2), with a tiny timeout, to see if STDIN
// has anything for us to read.
func canSelect() bool {

	fd := int(os.Stdin.Fd())

	fds := new(unix.FdSet)
	fds.Set(fd)

	// See if input is pending, for a while.
	tv := unix.Timeval{Usec: 200}

	// via select with timeout
	nRead, err := unix.Select(fd+1, fds, nil, nil, &tv)
	if err != nil {
		return false
	}

	return (nRead > 0)
}

// PendingInput returns true if there is pending input from STDIN.
func (ri *RawInput) PendingInput() bool {
	return canSelect()
}

// BlockForCharacterNoEcho returns the next character from the console, blocking until
// one is available.
func (ri *RawInput) BlockForCharacterNoEcho() (byte, error) {

	// read only a single byte
	b := make([]byte, 1)
	_, err := os.Stdin.Read(b)
	if err != nil {
		return 0x00, fmt.Errorf("error reading a byte from stdin %s", err)
	}

	return b[0], nil
}

// GetName is part of the module API, and returns the name of this driver.
func (ri *RawInput) GetName() string {
	return "raw"
}

// init registers our driver, by name.
func init() {
	Register("raw", func() KeypadInput {
		return new(RawInput)
	})
}
