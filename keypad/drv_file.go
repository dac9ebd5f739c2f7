// drv_file creates a keypad input-driver which reads and
// returns fake keyboard input from a file named "input.txt"
//
// The intent is that this driver will be useful for scripted
// automation, and for testing.  Each character of the file is
// returned on its own poll, and any "#" character pauses input
// for a number of polls, so that a program has time to react.

package keypad

import (
	"io"
	"os"
)

const (
	// DefaultPausePolls is the number of polls a "#" pauses for.
	DefaultPausePolls = 30
)

// FileInput is an input-driver that returns fake "keyboard input"
// by reading the content of the file "input.txt".
type FileInput struct {

	// offset shows the offset into the buffer we're at
	offset int

	// content contains the content of the "input.txt" file
	content []byte

	// pause is the number of polls remaining in the current pause.
	pause int

	// pausePolls is the length of the pause a "#" triggers.
	pausePolls int
}

// Setup reads the contents of the file specified by the
// environmental variable $INPUT_FILE, and saves it away as
// a source of fake keyboard input.
//
// If no filename is chosen "input.txt" will be used as a default.
func (fi *FileInput) Setup() error {

	fileName := os.Getenv("INPUT_FILE")
	if fileName == "" {
		fileName = "input.txt"
	}

	dat, err := os.ReadFile(fileName)
	if err != nil {
		return err
	}

	fi.setContent(dat)
	return nil
}

// setContent saves our script, and resets our position within it.
func (fi *FileInput) setContent(dat []byte) {
	fi.offset = 0
	fi.pause = 0
	fi.content = dat
	if fi.pausePolls == 0 {
		fi.pausePolls = DefaultPausePolls
	}
}

// TearDown is a NOP.
func (fi *FileInput) TearDown() error {
	return nil
}

// PendingInput returns true if there is pending input which we
// can return.  This is always true unless we're paused, or we've
// exhausted the contents of our input-file.
func (fi *FileInput) PendingInput() bool {

	// We're in a delay period, so just pretend nothing is happening.
	if fi.pause > 0 {
		fi.pause--
		return false
	}

	// Starting a pause?
	if fi.offset < len(fi.content) && fi.content[fi.offset] == '#' {
		fi.offset++
		fi.pause = fi.pausePolls - 1
		return false
	}

	return (fi.offset < len(fi.content))
}

// BlockForCharacterNoEcho returns the next character from the file we
// use to fake our input.
func (fi *FileInput) BlockForCharacterNoEcho() (byte, error) {

	// If we have input available
	if fi.offset < len(fi.content) {

		// Get the next character, and move past it.
		x := fi.content[fi.offset]
		fi.offset++
		return x, nil
	}

	// Input is over.
	return 0x00, io.EOF
}

// GetName is part of the module API, and returns the name of this driver.
func (fi *FileInput) GetName() string {
	return "file"
}

// init registers our driver, by name.
func init() {
	Register("file", func() KeypadInput {
		return &FileInput{
			pausePolls: DefaultPausePolls,
		}
	})
}
