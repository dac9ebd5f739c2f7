package keypad

// NullInput is an input-driver which never has any input.
//
// It is useful for running ROMs which need no interaction, and
// where the terminal should be left untouched.
type NullInput struct {
}

// Setup is a NOP.
func (ni *NullInput) Setup() error {
	return nil
}

// TearDown is a NOP.
func (ni *NullInput) TearDown() error {
	return nil
}

// PendingInput always returns false.
func (ni *NullInput) PendingInput() bool {
	return false
}

// BlockForCharacterNoEcho is never reached, as no input is pending.
func (ni *NullInput) BlockForCharacterNoEcho() (byte, error) {
	return 0x00, nil
}

// GetName returns the name of this driver.
func (ni *NullInput) GetName() string {
	return "null"
}

// init registers our driver, by name.
func init() {
	Register("null", func() KeypadInput {
		return new(NullInput)
	})
}
