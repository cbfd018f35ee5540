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

// Package ansi defines the ANSI control codes used to present a frame in a
// terminal with 24 bit colour.
package ansi

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"
)

// Control sequences.
const (
	NormalPen   = "\x1b[0m"
	ClearScreen = "\x1b[2J"
	CursorHome  = "\x1b[H"
	HideCursor  = "\x1b[?25l"
	ShowCursor  = "\x1b[?25h"
)

// ansi target.
const (
	targetPen   = 38
	targetPaper = 48
)

func build(target int, col color.Color) string {
	c := color.RGBAModel.Convert(col).(color.RGBA)
	return fmt.Sprintf("\x1b[%d;2;%d;%d;%dm", target, c.R, c.G, c.B)
}

// Pen returns the CSI sequence for the text colour.
func Pen(col color.Color) string {
	return build(targetPen, col)
}

// Paper returns the CSI sequence for the background colour.
func Paper(col color.Color) string {
	return build(targetPaper, col)
}

// the upper half block character. the pen colour is the top half of the cell
// and the paper colour is the bottom half
const halfBlock = "▀"

// Render the image to w, scaled to fit the number of columns and rows. Each
// character cell shows two pixels, one above the other.
func Render(w io.Writer, img image.Image, cols int, rows int) error {
	if cols <= 0 || rows <= 0 {
		return nil
	}

	b := img.Bounds()
	s := strings.Builder{}

	for cy := range rows {
		var pen, paper string
		for cx := range cols {
			x := b.Min.X + cx*b.Dx()/cols
			top := img.At(x, b.Min.Y+(cy*2)*b.Dy()/(rows*2))
			bottom := img.At(x, b.Min.Y+(cy*2+1)*b.Dy()/(rows*2))

			if p := Pen(top); p != pen {
				pen = p
				s.WriteString(p)
			}
			if p := Paper(bottom); p != paper {
				paper = p
				s.WriteString(p)
			}
			s.WriteString(halfBlock)
		}
		s.WriteString(NormalPen)
		s.WriteString("\n")
	}

	_, err := io.WriteString(w, s.String())
	return err
}
