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

package palette_test

import (
	"image/color"
	"testing"

	"github.com/jetsetilly/copperbars/hardware/vdp/palette"
	"github.com/jetsetilly/copperbars/test"
)

func TestColour(t *testing.T) {
	test.ExpectEquality(t, palette.Teal.RGBA(), color.RGBA{R: 0x00, G: 0x88, B: 0x88, A: 0xff})
	test.ExpectEquality(t, palette.Yellow.RGBA(), color.RGBA{R: 0x88, G: 0x88, B: 0x00, A: 0xff})
	test.ExpectEquality(t, palette.Colour(0).RGBA(), color.RGBA{})
	test.ExpectEquality(t, palette.Grey.String(), "$f888")

	a, r, g, b := palette.Colour(0x1234).Components()
	test.ExpectEquality(t, a, 1)
	test.ExpectEquality(t, r, 2)
	test.ExpectEquality(t, g, 3)
	test.ExpectEquality(t, b, 4)
}
