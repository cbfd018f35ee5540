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

// Package vdp is the control plane of the video display processor. It owns
// the VDP registers and the palette and connects the copper to them.
//
// There are two paths to the registers. The host writes with Write() and the
// convenience functions built on it, and the copper writes through the
// copper.Bus interface. Both paths use the same register map:
//
//	$00  layer enable mask          rw
//	$01  alpha-over layer mask      rw
//	$02  palette address            w
//	$03  palette data               w   address increments after each write
//	$04  wide map layer mask        rw
//	$05  copper enable (bit 0)      rw
//	$06  raster x                   r
//	$07  raster y                   r
//
// The raster position registers are read on a separate path that never
// touches the palette address latch or any other register state.
//
// Palette writes are a two step protocol: the address is written to $02 and
// then the colour to $03. The VDP remembers which source set the address. A
// colour written by the other source while the copper is running is a race
// hazard because the colour will probably be written to the wrong entry. The
// hazard is recorded in the faults log but the write still happens.
package vdp

import (
	"fmt"

	"github.com/jetsetilly/copperbars/curated"
	"github.com/jetsetilly/copperbars/hardware/copper"
	"github.com/jetsetilly/copperbars/hardware/copper/faults"
	"github.com/jetsetilly/copperbars/hardware/copper/instructions"
	"github.com/jetsetilly/copperbars/hardware/copper/memory"
	"github.com/jetsetilly/copperbars/hardware/raster"
	"github.com/jetsetilly/copperbars/hardware/raster/coords"
	"github.com/jetsetilly/copperbars/hardware/vdp/palette"
	"github.com/jetsetilly/copperbars/logger"
)

// Register addresses.
const (
	RegLayerEnable     uint16 = 0x00
	RegAlphaOverEnable uint16 = 0x01
	RegPaletteAddress  uint16 = 0x02
	RegPaletteData     uint16 = 0x03
	RegWideMapEnable   uint16 = 0x04
	RegCopperEnable    uint16 = 0x05
	RegRasterX         uint16 = 0x06
	RegRasterY         uint16 = 0x07

	NumRegisters = instructions.NumRegisters
)

// NumLayers is the number of display layers.
const NumLayers = 4

// LayerMask is the mask of all layers.
const LayerMask = (1 << NumLayers) - 1

// Error patterns.
const (
	OutOfRange = "vdp: out of range: %s"
	ReadOnly   = "vdp: register $%02x is read only"
	WriteOnly  = "vdp: register $%02x is write only"
)

// Source of a register write.
type Source int

// List of valid Source values.
const (
	Host Source = iota
	Copper
)

func (src Source) String() string {
	switch src {
	case Host:
		return "host"
	case Copper:
		return "copper"
	}
	return "unknown"
}

// Observer is notified of changes in the VDP that affect how a frame looks.
//
// Observers are called synchronously and must not call back into the VDP.
type Observer interface {
	// a new frame has started. background is the value of palette entry 0
	// at the very start of the frame
	FrameStarted(frame int, background palette.Colour)

	// a palette entry has changed
	PaletteWritten(pos coords.Position, index uint8, colour palette.Colour)
}

// VDP is the video display processor.
type VDP struct {
	beam   *raster.Beam
	ram    *memory.RAM
	faults *faults.Faults

	// the copper and the palette are exported for the benefit of debugging
	// and testing. they should not be changed directly
	Copper  *copper.Engine
	Palette palette.Palette

	layers    uint16
	alphaOver uint16
	wideMap   uint16

	// the palette address latch and the source which last wrote it
	paletteAddress uint8
	latchOwner     Source

	observers []Observer
}

// NewVDP is the preferred method of initialisation for the VDP type.
func NewVDP(beam *raster.Beam, ram *memory.RAM, flt *faults.Faults) *VDP {
	vdp := &VDP{
		beam:   beam,
		ram:    ram,
		faults: flt,
	}
	vdp.Copper = copper.NewEngine(ram, vdp, beam.Spec(), flt)
	return vdp
}

func (vdp *VDP) String() string {
	return fmt.Sprintf("layers=%04b alpha=%04b wide=%04b palette=$%02x (%s) copper=%s",
		vdp.layers, vdp.alphaOver, vdp.wideMap, vdp.paletteAddress, vdp.latchOwner, vdp.Copper)
}

// AddObserver adds an observer to the list of observers. Adding the same
// observer twice has no effect.
func (vdp *VDP) AddObserver(o Observer) {
	for _, p := range vdp.observers {
		if p == o {
			return
		}
	}
	vdp.observers = append(vdp.observers, o)
}

// RemoveObserver removes the observer from the list of observers.
func (vdp *VDP) RemoveObserver(o Observer) {
	for i, p := range vdp.observers {
		if p == o {
			vdp.observers = append(vdp.observers[:i], vdp.observers[i+1:]...)
			return
		}
	}
}

// NewFrame should be called by the driver at the start of every frame.
func (vdp *VDP) NewFrame(frame int) {
	for _, o := range vdp.observers {
		o.FrameStarted(frame, vdp.Palette[0])
	}
}

// Write data to register. This is the host path.
func (vdp *VDP) Write(register uint16, data uint16) error {
	return vdp.write(Host, register, data)
}

// CopperWrite implements the copper.Bus interface.
//
// The copper has no way of reporting an error so problems with the write
// are recorded as faults.
func (vdp *VDP) CopperWrite(register uint16, data uint16) {
	if err := vdp.write(Copper, register, data); err != nil {
		detail := fmt.Sprintf("copper write to $%02x: %v", register, err)
		if vdp.fault(faults.OutOfRange, detail, register) {
			logger.Log(logger.Allow, "vdp", detail)
		}
	}
}

func (vdp *VDP) fault(category faults.Category, event string, address uint16) bool {
	if vdp.faults == nil {
		return false
	}
	return vdp.faults.NewEntry(category, event, vdp.beam.Position(), address)
}

func (vdp *VDP) write(src Source, register uint16, data uint16) error {
	switch register {
	case RegLayerEnable, RegAlphaOverEnable, RegWideMapEnable:
		if data&^LayerMask != 0 {
			return curated.Errorf(OutOfRange, fmt.Sprintf("layer mask %#x", data))
		}
		switch register {
		case RegLayerEnable:
			vdp.layers = data
			if data == 0 {
				logger.Logf(logger.Allow, "vdp", "%s disabled all layers: display shows palette entry 0 only", src)
			}
		case RegAlphaOverEnable:
			vdp.alphaOver = data
		case RegWideMapEnable:
			vdp.wideMap = data
		}

	case RegPaletteAddress:
		if data >= palette.NumEntries {
			return curated.Errorf(OutOfRange, fmt.Sprintf("palette address %#x", data))
		}
		vdp.paletteAddress = uint8(data)
		vdp.latchOwner = src

	case RegPaletteData:
		if src != vdp.latchOwner && vdp.Copper.State() != copper.Idle {
			detail := fmt.Sprintf("%s wrote palette data with address set by %s", src, vdp.latchOwner)
			if vdp.fault(faults.RaceHazard, detail, RegPaletteData) {
				logger.Log(logger.Allow, "vdp", detail)
			}
		}

		idx := vdp.paletteAddress
		col := palette.Colour(data)
		vdp.Palette[idx] = col
		vdp.paletteAddress++

		for _, o := range vdp.observers {
			o.PaletteWritten(vdp.beam.Position(), idx, col)
		}

	case RegCopperEnable:
		on := data&0x01 == 0x01
		if src == Copper {
			// the copper can turn itself off but it can not turn itself on
			if !on {
				vdp.EnableCopper(false)
			}
			return nil
		}
		vdp.EnableCopper(on)

	case RegRasterX, RegRasterY:
		return curated.Errorf(ReadOnly, register)

	default:
		return curated.Errorf(OutOfRange, fmt.Sprintf("register $%02x", register))
	}

	return nil
}

// Read register. Palette registers can not be read. The raster registers are
// read on the separate raster path, see RasterPosition().
func (vdp *VDP) Read(register uint16) (uint16, error) {
	switch register {
	case RegLayerEnable:
		return vdp.layers, nil
	case RegAlphaOverEnable:
		return vdp.alphaOver, nil
	case RegWideMapEnable:
		return vdp.wideMap, nil
	case RegCopperEnable:
		if vdp.CopperEnabled() {
			return 0x01, nil
		}
		return 0x00, nil
	case RegPaletteAddress, RegPaletteData:
		return 0, curated.Errorf(WriteOnly, register)
	case RegRasterX:
		return uint16(vdp.beam.Position().X), nil
	case RegRasterY:
		return uint16(vdp.beam.Position().Y), nil
	}
	return 0, curated.Errorf(OutOfRange, fmt.Sprintf("register $%02x", register))
}

// RasterPosition returns the current position of the raster.
func (vdp *VDP) RasterPosition() coords.Position {
	return vdp.beam.Position()
}

// EnableCopper turns the copper on or off. Turning the copper on hands the
// copper RAM over to the hardware and revokes every write token. Turning the
// copper off returns the RAM to the host, after which a new token must be
// acquired.
func (vdp *VDP) EnableCopper(on bool) {
	if on == vdp.CopperEnabled() {
		return
	}

	if on {
		vdp.ram.HandOver()
		vdp.Copper.Enable()
		logger.Logf(logger.Allow, "vdp", "copper enabled at $%04x", vdp.Copper.Start())
	} else {
		vdp.Copper.Disable()
		vdp.ram.Reclaim()
		logger.Logf(logger.Allow, "vdp", "copper disabled at %s", vdp.beam.Position())
	}
}

// CopperEnabled returns true if the copper is enabled.
func (vdp *VDP) CopperEnabled() bool {
	return vdp.Copper.State() != copper.Idle
}

// SetCopperStart sets the address at which the copper starts when it is next
// enabled.
func (vdp *VDP) SetCopperStart(address uint16) error {
	if !vdp.Copper.SetStart(address) {
		return curated.Errorf(OutOfRange, fmt.Sprintf("copper start address $%04x", address))
	}
	return nil
}

// EnableLayers sets the mask of enabled layers.
func (vdp *VDP) EnableLayers(mask uint16) error {
	return vdp.Write(RegLayerEnable, mask)
}

// SetWideMapLayers sets the mask of layers using the wide map.
func (vdp *VDP) SetWideMapLayers(mask uint16) error {
	return vdp.Write(RegWideMapEnable, mask)
}

// SetAlphaOverLayers sets the mask of layers using alpha-over blending.
func (vdp *VDP) SetAlphaOverLayers(mask uint16) error {
	return vdp.Write(RegAlphaOverEnable, mask)
}

// SetSinglePaletteColor writes a single palette entry using the same two
// step protocol as the copper.
func (vdp *VDP) SetSinglePaletteColor(index uint8, colour palette.Colour) error {
	if err := vdp.Write(RegPaletteAddress, uint16(index)); err != nil {
		return err
	}
	return vdp.Write(RegPaletteData, uint16(colour))
}

// Layers returns the layer enable mask.
func (vdp *VDP) Layers() uint16 {
	return vdp.layers
}
