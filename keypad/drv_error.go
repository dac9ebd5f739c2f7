// drv_error is a keypad input-driver which only returns errors.
//
// This driver is only used for testing purposes.

package keypad

import (
	"errors"
	"fmt"
)

var (
	// ErrorInputName contains the name of this driver.
	ErrorInputName = "error"

	// ErrKeypadFault is returned by every read from the error driver.
	ErrKeypadFault = errors.New("keypad fault")
)

// ErrorInput is an input-driver that only returns errors, and
// is used for testing.
type ErrorInput struct {

	// reads counts the number of failed reads.
	reads int
}

// Setup is a NOP.
func (ei *ErrorInput) Setup() error {
	return nil
}

// TearDown is a NOP.
func (ei *ErrorInput) TearDown() error {
	return nil
}

// PendingInput always pretends input is pending.
//
// However when input is polled for, via BlockForCharacterNoEcho,
// an error will always be returned.
func (ei *ErrorInput) PendingInput() bool {
	return true
}

// GetName returns the name of this driver, "error".
func (ei *ErrorInput) GetName() string {
	return ErrorInputName
}

// BlockForCharacterNoEcho always returns an error, wrapping
// ErrKeypadFault, when invoked to read pending input.
func (ei *ErrorInput) BlockForCharacterNoEcho() (byte, error) {
	ei.reads++
	return 0x00, fmt.Errorf("read %d: %w", ei.reads, ErrKeypadFault)
}

// Reads returns the number of reads which have failed.
func (ei *ErrorInput) Reads() int {
	return ei.reads
}

// init registers our driver, by name.
func init() {
	Register(ErrorInputName, func() KeypadInput {
		return new(ErrorInput)
	})
}
