// This file is part of Copperbars.
//
// Copperbars is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Copperbars is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Copperbars.  If not, see <https://www.gnu.org/licenses/>.

// Package palette defines the colour format of the VDP palette.
package palette

import (
	"fmt"
	"image/color"
)

// NumEntries is the number of entries in the palette.
const NumEntries = 256

// Colour is a 16 bit packed colour. From the most significant nibble: alpha,
// red, green, blue.
type Colour uint16

// A selection of colours.
const (
	Black  Colour = 0xf000
	Grey   Colour = 0xf888
	Teal   Colour = 0xf088
	Yellow Colour = 0xf880
	Green  Colour = 0xf080
)

func (c Colour) String() string {
	return fmt.Sprintf("$%04x", uint16(c))
}

// Components returns the four nibbles of the colour as values 0 to 15.
func (c Colour) Components() (a, r, g, b uint8) {
	return uint8(c>>12) & 0xf, uint8(c>>8) & 0xf, uint8(c>>4) & 0xf, uint8(c) & 0xf
}

// RGBA converts the colour to the color.RGBA type. Each nibble is expanded
// to eight bits by repeating it, so that 0xf becomes 0xff.
func (c Colour) RGBA() color.RGBA {
	a, r, g, b := c.Components()
	return color.RGBA{R: r * 17, G: g * 17, B: b * 17, A: a * 17}
}

// Palette is the VDP colour table.
type Palette [NumEntries]Colour
