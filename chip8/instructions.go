package chip8

import (
	"github.com/skx/chip8ulator/display"
	"github.com/skx/chip8ulator/memory"
)

// The helpers here implement the instructions which need more than a
// line of code.
//
// Several of them write VF as a flag.  Because VF is also an ordinary
// register, which may be one of the operands, flags are always computed
// from the operands before anything is written, and VF is written last.

// ret returns from a subroutine.
func (c *Chip8) ret() error {
	if c.sp == 0 {
		return ErrStackUnderflow
	}
	c.sp--
	c.pc = c.stack[c.sp]
	return nil
}

// call pushes the current program counter and jumps to addr.
func (c *Chip8) call(addr uint16) error {
	if c.sp >= StackDepth {
		return ErrStackOverflow
	}
	c.stack[c.sp] = c.pc
	c.sp++
	c.pc = addr
	return nil
}

// add is 8XY4, VF is set on carry.
func (c *Chip8) add() {
	vx := c.registers[c.x()]
	vy := c.registers[c.y()]

	sum := uint16(vx) + uint16(vy)
	var flag uint8
	if sum > 0xFF {
		flag = 1
	}

	c.registers[c.x()] = uint8(sum)
	c.registers[0xF] = flag
}

// sub is 8XY5, VF is set when no borrow occurs.
func (c *Chip8) sub() {
	vx := c.registers[c.x()]
	vy := c.registers[c.y()]

	var flag uint8
	if vx > vy {
		flag = 1
	}

	c.registers[c.x()] = vx - vy
	c.registers[0xF] = flag
}

// subn is 8XY7, the reverse of sub.
func (c *Chip8) subn() {
	vx := c.registers[c.x()]
	vy := c.registers[c.y()]

	var flag uint8
	if vy > vx {
		flag = 1
	}

	c.registers[c.x()] = vy - vx
	c.registers[0xF] = flag
}

// shr is 8XY6, VF receives the bit shifted out.
func (c *Chip8) shr() {
	vx := c.registers[c.x()]

	c.registers[c.x()] = vx >> 1
	c.registers[0xF] = vx & 0x01
}

// shl is 8XYE, VF receives the bit shifted out.
func (c *Chip8) shl() {
	vx := c.registers[c.x()]

	c.registers[c.x()] = vx << 1
	c.registers[0xF] = vx >> 7
}

// draw is DXYN.
//
// N rows of sprite data are read from memory at I, and each set bit is
// XORed onto the screen.  The origin is taken modulo the screen size,
// and the sprite wraps around the edges.  VF is set if any lit pixel
// was turned off.
func (c *Chip8) draw() {
	xPos := int(c.registers[c.x()]) % display.Width
	yPos := int(c.registers[c.y()]) % display.Height
	rows := int(c.n())

	c.registers[0xF] = 0

	for row := 0; row < rows; row++ {
		sprite := c.Memory.Get(c.index + uint16(row))

		for col := 0; col < 8; col++ {
			if sprite&(0x80>>col) == 0 {
				continue
			}
			if c.Display.Flip(xPos+col, yPos+row) {
				c.registers[0xF] = 1
			}
		}
	}
}

// waitForKey is FX0A.
//
// If any key is down the lowest numbered one is stored in Vx.  If not
// the program counter is wound back so that this instruction runs
// again on the next cycle.
func (c *Chip8) waitForKey() {
	for k, down := range c.keys {
		if down {
			c.registers[c.x()] = uint8(k)
			return
		}
	}
	c.pc = (c.pc - 2) & memory.Mask
}

// bcd is FX33, storing the decimal digits of Vx at I, I+1, and I+2.
func (c *Chip8) bcd() {
	v := c.registers[c.x()]

	c.Memory.Set(c.index, v/100)
	c.Memory.Set(c.index+1, (v/10)%10)
	c.Memory.Set(c.index+2, v%10)
}
