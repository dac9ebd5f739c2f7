// Package display holds the monochrome framebuffer of the CHIP-8
// interpreter.
//
// Pixels are either lit or unlit, and are only ever changed by
// clearing the screen, or by flipping them as sprites are drawn.
// Coordinates wrap, so a sprite which runs off the right edge of
// the screen reappears on the left.
package display

import "strings"

const (
	// Width is the number of pixels in each row.
	Width = 64

	// Height is the number of rows.
	Height = 32
)

// Display is a Width x Height grid of pixels.
type Display struct {
	pixels [Width * Height]bool
}

// offset returns the index of the given pixel, after wrapping.
func offset(x, y int) int {
	x %= Width
	if x < 0 {
		x += Width
	}
	y %= Height
	if y < 0 {
		y += Height
	}
	return y*Width + x
}

// Clear turns every pixel off.
func (d *Display) Clear() {
	d.pixels = [Width * Height]bool{}
}

// Fill sets every pixel to the given state.
func (d *Display) Fill(lit bool) {
	for i := range d.pixels {
		d.pixels[i] = lit
	}
}

// Get returns true if the given pixel is lit.
func (d *Display) Get(x, y int) bool {
	return d.pixels[offset(x, y)]
}

// Set changes the state of a single pixel.
func (d *Display) Set(x, y int, lit bool) {
	d.pixels[offset(x, y)] = lit
}

// Flip XORs a lit sprite pixel onto the screen at the given position.
//
// The return value is true if the pixel was lit beforehand, which is
// to say that drawing turned it off - a collision.
func (d *Display) Flip(x, y int) bool {
	i := offset(x, y)
	was := d.pixels[i]
	d.pixels[i] = !was
	return was
}

// Pixels returns a copy of the framebuffer, in row-major order.
func (d *Display) Pixels() [Width * Height]bool {
	return d.pixels
}

// Lit returns the number of pixels which are currently lit.
func (d *Display) Lit() int {
	n := 0
	for _, p := range d.pixels {
		if p {
			n++
		}
	}
	return n
}

// String renders the framebuffer as text, one line per row, using
// '#' for lit pixels and '.' for unlit ones.
func (d *Display) String() string {
	var sb strings.Builder
	sb.Grow((Width + 1) * Height)

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if d.pixels[y*Width+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
