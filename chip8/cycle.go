package chip8

import (
	"fmt"
	"log/slog"

	"github.com/skx/chip8ulator/memory"
)

// Cycle executes a single instruction, and then ticks both timers.
//
// The program counter is advanced past the instruction before it is
// executed, so jumps, calls, and skips all work relative to the
// following instruction.  Like every address it stays within the
// 12-bit address space, so advancing past 0xFFE wraps to 0x000.
//
// The only errors returned are stack faults.  When one occurs the
// program counter is left pointing at the faulting instruction, the
// timers are not ticked, and nothing else has changed.
func (c *Chip8) Cycle() error {

	// Fetch
	start := c.pc
	c.opcode = c.Memory.GetU16(c.pc)
	c.pc = (c.pc + 2) & memory.Mask

	// Decode
	ins := Decode(c.opcode)

	if c.trace {
		c.Logger.Debug("Instruction",
			slog.String("name", ins.String()),
			slog.String("pcHex", fmt.Sprintf("0x%03X", start)),
			slog.String("opcodeHex", fmt.Sprintf("0x%04X", c.opcode)),
			slog.Int("index", int(c.index)),
			slog.Int("sp", int(c.sp)),
		)
	}

	// Execute
	err := c.execute(ins)
	if err != nil {
		c.pc = start

		c.Logger.Error("Fault",
			slog.String("name", ins.String()),
			slog.String("pcHex", fmt.Sprintf("0x%03X", start)),
			slog.String("opcodeHex", fmt.Sprintf("0x%04X", c.opcode)),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%s at 0x%03X (opcode 0x%04X): %w", ins, start, c.opcode, err)
	}

	// Timers
	if c.delay > 0 {
		c.delay--
	}
	if c.sound > 0 {
		c.sound--
	}

	c.cycles++
	return nil
}

// x returns the register index held in the second nibble of the opcode.
func (c *Chip8) x() uint8 {
	return uint8(c.opcode>>8) & 0x0F
}

// y returns the register index held in the third nibble of the opcode.
func (c *Chip8) y() uint8 {
	return uint8(c.opcode>>4) & 0x0F
}

// n returns the low nibble of the opcode.
func (c *Chip8) n() uint8 {
	return uint8(c.opcode) & 0x0F
}

// nn returns the immediate byte held in the opcode.
func (c *Chip8) nn() uint8 {
	return uint8(c.opcode & 0x00FF)
}

// nnn returns the 12-bit address held in the opcode.
func (c *Chip8) nnn() uint16 {
	return c.opcode & 0x0FFF
}

// skip steps over the next instruction.
func (c *Chip8) skip() {
	c.pc = (c.pc + 2) & memory.Mask
}

// execute runs the given instruction against the current opcode.
func (c *Chip8) execute(ins Instruction) error {

	switch ins {
	case Op00E0:
		c.Display.Clear()

	case Op00EE:
		return c.ret()

	case Op1NNN:
		c.pc = c.nnn()

	case Op2NNN:
		return c.call(c.nnn())

	case Op3XNN:
		if c.registers[c.x()] == c.nn() {
			c.skip()
		}

	case Op4XNN:
		if c.registers[c.x()] != c.nn() {
			c.skip()
		}

	case Op5XY0:
		if c.registers[c.x()] == c.registers[c.y()] {
			c.skip()
		}

	case Op6XNN:
		c.registers[c.x()] = c.nn()

	case Op7XNN:
		c.registers[c.x()] += c.nn()

	case Op8XY0:
		c.registers[c.x()] = c.registers[c.y()]

	case Op8XY1:
		c.registers[c.x()] |= c.registers[c.y()]

	case Op8XY2:
		c.registers[c.x()] &= c.registers[c.y()]

	case Op8XY3:
		c.registers[c.x()] ^= c.registers[c.y()]

	case Op8XY4:
		c.add()

	case Op8XY5:
		c.sub()

	case Op8XY6:
		c.shr()

	case Op8XY7:
		c.subn()

	case Op8XYE:
		c.shl()

	case Op9XY0:
		if c.registers[c.x()] != c.registers[c.y()] {
			c.skip()
		}

	case OpANNN:
		c.index = c.nnn()

	case OpBNNN:
		c.pc = (uint16(c.registers[0]) + c.nnn()) & memory.Mask

	case OpCXNN:
		c.registers[c.x()] = uint8(c.random.Uint32()) & c.nn()

	case OpDXYN:
		c.draw()

	case OpEX9E:
		if c.keys[c.registers[c.x()]&0x0F] {
			c.skip()
		}

	case OpEXA1:
		if !c.keys[c.registers[c.x()]&0x0F] {
			c.skip()
		}

	case OpFX07:
		c.registers[c.x()] = c.delay

	case OpFX0A:
		c.waitForKey()

	case OpFX15:
		c.delay = c.registers[c.x()]

	case OpFX18:
		c.sound = c.registers[c.x()]

	case OpFX1E:
		c.index += uint16(c.registers[c.x()])

	case OpFX29:
		c.index = FontStart + glyphSize*uint16(c.registers[c.x()])

	case OpFX33:
		c.bcd()

	case OpFX55:
		for i := uint8(0); i <= c.x(); i++ {
			c.Memory.Set(c.index+uint16(i), c.registers[i])
		}

	case OpFX65:
		for i := uint8(0); i <= c.x(); i++ {
			c.registers[i] = c.Memory.Get(c.index + uint16(i))
		}

	default:
		c.Logger.Debug("Unknown opcode",
			slog.String("opcodeHex", fmt.Sprintf("0x%04X", c.opcode)),
			slog.String("pcHex", fmt.Sprintf("0x%03X", (c.pc-2)&memory.Mask)),
		)
	}

	return nil
}
