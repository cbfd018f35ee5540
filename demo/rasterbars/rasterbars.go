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

// Package rasterbars is a demonstration of the copper. It changes the
// background colour at fixed scanlines and splits a block of scanlines
// half way across the display.
//
// With all layers disabled the frame looks like this:
//
//	  0 -  31  grey
//	 32 -  63  teal
//	 64 -  95  yellow
//	 96 - 127  yellow to x=400 then green
//	128 - end  yellow
//
// The grey at the top of the frame is written by the host at the start of
// every frame. Everything else is written by the copper.
package rasterbars

import (
	"github.com/jetsetilly/copperbars/hardware"
	"github.com/jetsetilly/copperbars/hardware/copper/builder"
	"github.com/jetsetilly/copperbars/hardware/vdp"
	"github.com/jetsetilly/copperbars/hardware/vdp/palette"
)

// Scanlines and x position of the changes.
const (
	TealLine   = 32
	YellowLine = 64
	SplitLine  = 96
	SplitLines = 32
	SplitX     = 400
)

// write colour to palette entry 0 with the two step palette protocol
func setBackground(b *builder.Builder, colour palette.Colour) error {
	if err := b.Write(vdp.RegPaletteAddress, 0); err != nil {
		return err
	}
	return b.Write(vdp.RegPaletteData, uint16(colour))
}

// Build the copper list. The list starts at address zero and ends with a jump
// back to the start.
func Build(b *builder.Builder) error {
	if err := b.Seek(0); err != nil {
		return err
	}

	if err := b.SetTargetX(0); err != nil {
		return err
	}
	if err := b.WaitTargetY(TealLine); err != nil {
		return err
	}
	if err := setBackground(b, palette.Teal); err != nil {
		return err
	}

	if err := b.WaitTargetY(YellowLine); err != nil {
		return err
	}
	if err := setBackground(b, palette.Yellow); err != nil {
		return err
	}

	for i := range SplitLines {
		if err := b.SetTargetX(SplitX); err != nil {
			return err
		}
		if err := b.WaitTargetY(SplitLine + i); err != nil {
			return err
		}
		if err := setBackground(b, palette.Green); err != nil {
			return err
		}

		if err := b.SetTargetX(0); err != nil {
			return err
		}
		if err := b.WaitTargetY(SplitLine + i + 1); err != nil {
			return err
		}
		if err := setBackground(b, palette.Yellow); err != nil {
			return err
		}
	}

	return b.Jump(0)
}

// Setup prepares the system in the same way as the original program. The
// copper is disabled, all layers are disabled, the list is built and the
// copper is enabled. The builder used to build the list is returned; it can
// not be used again until the copper has been disabled.
func Setup(sys *hardware.System) (*builder.Builder, error) {
	sys.EnableCopper(false)

	if err := sys.EnableLayers(0); err != nil {
		return nil, err
	}
	if err := sys.SetWideMapLayers(0); err != nil {
		return nil, err
	}
	if err := sys.SetAlphaOverLayers(0); err != nil {
		return nil, err
	}

	b, err := sys.Builder()
	if err != nil {
		return nil, err
	}
	if err := Build(b); err != nil {
		return nil, err
	}

	sys.EnableCopper(true)

	return b, nil
}

// Loop is the main loop of the program for the specified number of frames.
// The background is set to grey at the start of every frame.
func Loop(sys *hardware.System, frames int) error {
	for range frames {
		sys.WaitFrameEnded()
		if err := sys.SetSinglePaletteColor(0, palette.Grey); err != nil {
			return err
		}
	}
	return nil
}
