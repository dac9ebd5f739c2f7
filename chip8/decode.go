package chip8

import (
	"strings"

	cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Instruction identifies one of the operations the machine can perform.
//
// An opcode is decoded into an Instruction once per cycle, and the
// Instruction selects the code which executes it.
type Instruction uint8

// The instructions we implement, named after the opcode patterns
// which select them.
const (
	Unknown Instruction = iota
	Op00E0              // CLS
	Op00EE              // RET
	Op1NNN              // JP addr
	Op2NNN              // CALL addr
	Op3XNN              // SE Vx, byte
	Op4XNN              // SNE Vx, byte
	Op5XY0              // SE Vx, Vy
	Op6XNN              // LD Vx, byte
	Op7XNN              // ADD Vx, byte
	Op8XY0              // LD Vx, Vy
	Op8XY1              // OR Vx, Vy
	Op8XY2              // AND Vx, Vy
	Op8XY3              // XOR Vx, Vy
	Op8XY4              // ADD Vx, Vy
	Op8XY5              // SUB Vx, Vy
	Op8XY6              // SHR Vx
	Op8XY7              // SUBN Vx, Vy
	Op8XYE              // SHL Vx
	Op9XY0              // SNE Vx, Vy
	OpANNN              // LD I, addr
	OpBNNN              // JP V0, addr
	OpCXNN              // RND Vx, byte
	OpDXYN              // DRW Vx, Vy, nibble
	OpEX9E              // SKP Vx
	OpEXA1              // SKNP Vx
	OpFX07              // LD Vx, DT
	OpFX0A              // LD Vx, K
	OpFX15              // LD DT, Vx
	OpFX18              // LD ST, Vx
	OpFX1E              // ADD I, Vx
	OpFX29              // LD F, Vx
	OpFX33              // LD B, Vx
	OpFX55              // LD [I], Vx
	OpFX65              // LD Vx, [I]

	numInstructions
)

// definitions maps each instruction onto the shared CHIP-8
// instruction set definition, which provides its mnemonic.
var definitions = [numInstructions]*cpu.Instruction{
	Op00E0: cpu.ClsInst,
	Op00EE: cpu.RetInst,
	Op1NNN: cpu.JpInst,
	Op2NNN: cpu.CallInst,
	Op3XNN: cpu.SeInst,
	Op4XNN: cpu.SneInst,
	Op5XY0: cpu.SeInst,
	Op6XNN: cpu.LdInst,
	Op7XNN: cpu.AddInst,
	Op8XY0: cpu.LdInst,
	Op8XY1: cpu.OrInst,
	Op8XY2: cpu.AndInst,
	Op8XY3: cpu.XorInst,
	Op8XY4: cpu.AddInst,
	Op8XY5: cpu.SubInst,
	Op8XY6: cpu.ShrInst,
	Op8XY7: cpu.SubnInst,
	Op8XYE: cpu.ShlInst,
	Op9XY0: cpu.SneInst,
	OpANNN: cpu.LdInst,
	OpBNNN: cpu.JpInst,
	OpCXNN: cpu.RndInst,
	OpDXYN: cpu.DrwInst,
	OpEX9E: cpu.SkpInst,
	OpEXA1: cpu.SknpInst,
	OpFX07: cpu.LdInst,
	OpFX0A: cpu.LdInst,
	OpFX15: cpu.LdInst,
	OpFX18: cpu.LdInst,
	OpFX1E: cpu.AddInst,
	OpFX29: cpu.LdInst,
	OpFX33: cpu.LdInst,
	OpFX55: cpu.LdInst,
	OpFX65: cpu.LdInst,
}

// mnemonics holds the upper-cased name of each instruction, these
// are only used for logging.
var mnemonics = func() [numInstructions]string {
	var out [numInstructions]string

	out[Unknown] = "???"
	for i, def := range definitions {
		if def != nil {
			out[i] = strings.ToUpper(def.Name)
		}
	}
	return out
}()

// String returns the mnemonic of the instruction.
func (i Instruction) String() string {
	if i >= numInstructions {
		return mnemonics[Unknown]
	}
	return mnemonics[i]
}

// Decode returns the instruction a given opcode selects.
//
// The top nibble picks a family.  Families 0, 8, and E are further
// split on the low nibble, and family F on the low byte.  Anything
// which doesn't match a known pattern is Unknown, which executes as
// a no-op.
func Decode(opcode uint16) Instruction {
	switch opcode >> 12 {
	case 0x0:
		switch opcode & 0x000F {
		case 0x0:
			return Op00E0
		case 0xE:
			return Op00EE
		}
	case 0x1:
		return Op1NNN
	case 0x2:
		return Op2NNN
	case 0x3:
		return Op3XNN
	case 0x4:
		return Op4XNN
	case 0x5:
		return Op5XY0
	case 0x6:
		return Op6XNN
	case 0x7:
		return Op7XNN
	case 0x8:
		switch opcode & 0x000F {
		case 0x0:
			return Op8XY0
		case 0x1:
			return Op8XY1
		case 0x2:
			return Op8XY2
		case 0x3:
			return Op8XY3
		case 0x4:
			return Op8XY4
		case 0x5:
			return Op8XY5
		case 0x6:
			return Op8XY6
		case 0x7:
			return Op8XY7
		case 0xE:
			return Op8XYE
		}
	case 0x9:
		return Op9XY0
	case 0xA:
		return OpANNN
	case 0xB:
		return OpBNNN
	case 0xC:
		return OpCXNN
	case 0xD:
		return OpDXYN
	case 0xE:
		switch opcode & 0x000F {
		case 0xE:
			return OpEX9E
		case 0x1:
			return OpEXA1
		}
	case 0xF:
		switch opcode & 0x00FF {
		case 0x07:
			return OpFX07
		case 0x0A:
			return OpFX0A
		case 0x15:
			return OpFX15
		case 0x18:
			return OpFX18
		case 0x1E:
			return OpFX1E
		case 0x29:
			return OpFX29
		case 0x33:
			return OpFX33
		case 0x55:
			return OpFX55
		case 0x65:
			return OpFX65
		}
	}
	return Unknown
}
