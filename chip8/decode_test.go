package chip8

import (
	"fmt"
	"strings"
	"testing"

	cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

// TestDecodeInstructionSet walks every opcode of the shared CHIP-8
// instruction set table, and ensures we decode each one to an
// instruction with the same mnemonic.
func TestDecodeInstructionSet(t *testing.T) {

	count := 0
	for family, opcodes := range cpu.Opcodes {
		for _, op := range opcodes {
			name := fmt.Sprintf("%04X", op.Info.Value)

			t.Run(name, func(t *testing.T) {
				assert.Equal(t, uint16(family), op.Info.Value>>12)

				ins := Decode(op.Info.Value)
				assert.NotEqual(t, Unknown, ins, "opcode %s was not decoded", name)
				assert.Equal(t, strings.ToUpper(op.Instruction.Name), ins.String())
			})
			count++
		}
	}

	// The table and our instructions are one-to-one.
	assert.Equal(t, int(numInstructions)-1, count)
}

// TestMnemonics ensures every instruction has a name.
func TestMnemonics(t *testing.T) {
	for i := Unknown + 1; i < numInstructions; i++ {
		assert.NotNil(t, definitions[i], "instruction %d has no definition", i)
		assert.NotEmpty(t, i.String())
		assert.NotEqual(t, "???", i.String())
	}
	assert.Equal(t, "???", Unknown.String())
}
