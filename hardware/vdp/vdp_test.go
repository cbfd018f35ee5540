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

package vdp_test

import (
	"testing"

	"github.com/jetsetilly/copperbars/curated"
	"github.com/jetsetilly/copperbars/hardware/copper"
	"github.com/jetsetilly/copperbars/hardware/copper/builder"
	"github.com/jetsetilly/copperbars/hardware/copper/faults"
	"github.com/jetsetilly/copperbars/hardware/copper/memory"
	"github.com/jetsetilly/copperbars/hardware/raster"
	"github.com/jetsetilly/copperbars/hardware/raster/coords"
	"github.com/jetsetilly/copperbars/hardware/raster/specification"
	"github.com/jetsetilly/copperbars/hardware/vdp"
	"github.com/jetsetilly/copperbars/hardware/vdp/palette"
	"github.com/jetsetilly/copperbars/test"
)

type paletteEvent struct {
	pos    coords.Position
	index  uint8
	colour palette.Colour
}

type observer struct {
	frames  []int
	palette []paletteEvent
}

func (o *observer) FrameStarted(frame int, _ palette.Colour) {
	o.frames = append(o.frames, frame)
}

func (o *observer) PaletteWritten(pos coords.Position, index uint8, colour palette.Colour) {
	o.palette = append(o.palette, paletteEvent{pos: pos, index: index, colour: colour})
}

type rig struct {
	beam   *raster.Beam
	ram    *memory.RAM
	faults *faults.Faults
	vdp    *vdp.VDP
	obs    *observer
}

func newRig(t *testing.T) *rig {
	t.Helper()
	r := &rig{
		beam:   raster.NewBeam(specification.Spec848x480),
		faults: faults.NewFaults(),
		obs:    &observer{},
	}

	var err error
	r.ram, err = memory.NewRAM(memory.DefaultSize)
	test.DemandSuccess(t, err)

	r.vdp = vdp.NewVDP(r.beam, r.ram, r.faults)
	r.vdp.AddObserver(r.obs)

	return r
}

func (r *rig) builder(t *testing.T) *builder.Builder {
	t.Helper()
	tok, err := r.ram.Acquire()
	test.DemandSuccess(t, err)
	return builder.NewBuilder(r.ram, tok, r.beam.Spec())
}

func (r *rig) tick() {
	r.vdp.Copper.Step(r.beam.Position())
	if _, newFrame := r.beam.Tick(); newFrame {
		r.vdp.NewFrame(r.beam.Position().Frame)
	}
}

func TestLayerRegisters(t *testing.T) {
	r := newRig(t)

	test.ExpectSuccess(t, r.vdp.EnableLayers(0x0f))
	test.ExpectSuccess(t, r.vdp.SetWideMapLayers(0x01))
	test.ExpectSuccess(t, r.vdp.SetAlphaOverLayers(0x02))

	v, err := r.vdp.Read(vdp.RegLayerEnable)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0x0f)
	v, _ = r.vdp.Read(vdp.RegWideMapEnable)
	test.ExpectEquality(t, v, 0x01)
	v, _ = r.vdp.Read(vdp.RegAlphaOverEnable)
	test.ExpectEquality(t, v, 0x02)

	// the mask only covers four layers
	err = r.vdp.EnableLayers(0x10)
	test.ExpectSuccess(t, curated.Is(err, vdp.OutOfRange))
	test.ExpectEquality(t, r.vdp.Layers(), 0x0f)

	// zero is legal
	test.ExpectSuccess(t, r.vdp.EnableLayers(0))
	test.ExpectEquality(t, r.vdp.Layers(), 0)
}

func TestRegisterAccess(t *testing.T) {
	r := newRig(t)

	err := r.vdp.Write(vdp.RegRasterX, 0)
	test.ExpectSuccess(t, curated.Is(err, vdp.ReadOnly))

	_, err = r.vdp.Read(vdp.RegPaletteData)
	test.ExpectSuccess(t, curated.Is(err, vdp.WriteOnly))

	err = r.vdp.Write(0x20, 0)
	test.ExpectSuccess(t, curated.Is(err, vdp.OutOfRange))

	err = r.vdp.Write(vdp.RegPaletteAddress, 0x100)
	test.ExpectSuccess(t, curated.Is(err, vdp.OutOfRange))
}

func TestPalette(t *testing.T) {
	r := newRig(t)

	test.ExpectSuccess(t, r.vdp.SetSinglePaletteColor(5, palette.Teal))
	test.ExpectEquality(t, r.vdp.Palette[5], palette.Teal)

	// the address increments after every write to the data register
	test.ExpectSuccess(t, r.vdp.Write(vdp.RegPaletteAddress, 0xfe))
	test.ExpectSuccess(t, r.vdp.Write(vdp.RegPaletteData, 0x1111))
	test.ExpectSuccess(t, r.vdp.Write(vdp.RegPaletteData, 0x2222))
	test.ExpectSuccess(t, r.vdp.Write(vdp.RegPaletteData, 0x3333))
	test.ExpectEquality(t, r.vdp.Palette[0xfe], 0x1111)
	test.ExpectEquality(t, r.vdp.Palette[0xff], 0x2222)
	test.ExpectEquality(t, r.vdp.Palette[0x00], 0x3333)

	test.DemandEquality(t, len(r.obs.palette), 4)
	test.ExpectEquality(t, r.obs.palette[0].index, 5)
	test.ExpectEquality(t, r.obs.palette[0].colour, palette.Teal)
	test.ExpectEquality(t, r.obs.palette[3].index, 0)

	// no copper so no race hazards
	test.ExpectFailure(t, r.faults.Has(faults.RaceHazard))
}

func TestCopperEnable(t *testing.T) {
	r := newRig(t)

	tok, err := r.ram.Acquire()
	test.DemandSuccess(t, err)

	r.vdp.EnableCopper(true)
	test.ExpectSuccess(t, r.vdp.CopperEnabled())
	test.ExpectSuccess(t, r.ram.HardwareOwned())
	test.ExpectFailure(t, tok.Valid())

	v, _ := r.vdp.Read(vdp.RegCopperEnable)
	test.ExpectEquality(t, v, 0x01)

	// enabling twice has no effect
	r.vdp.EnableCopper(true)
	test.ExpectEquality(t, r.vdp.Copper.State(), copper.Running)

	test.ExpectSuccess(t, r.vdp.Write(vdp.RegCopperEnable, 0x00))
	test.ExpectFailure(t, r.vdp.CopperEnabled())
	test.ExpectFailure(t, r.ram.HardwareOwned())

	// old token is still revoked
	test.ExpectFailure(t, tok.Valid())
	_, err = r.ram.Acquire()
	test.ExpectSuccess(t, err)
}

func TestCopperWrites(t *testing.T) {
	r := newRig(t)
	b := r.builder(t)
	test.ExpectSuccess(t, b.SetTargetX(100))
	test.ExpectSuccess(t, b.WaitTargetY(10))
	test.ExpectSuccess(t, b.Write(vdp.RegPaletteAddress, 0))
	test.ExpectSuccess(t, b.Write(vdp.RegPaletteData, uint16(palette.Teal)))
	test.ExpectSuccess(t, b.Write(vdp.RegRasterY, 0))
	test.ExpectSuccess(t, b.Write(vdp.RegCopperEnable, 0))

	r.vdp.EnableCopper(true)
	for r.beam.Position().Y < 11 {
		r.tick()
	}

	test.ExpectEquality(t, r.vdp.Palette[0], palette.Teal)
	test.DemandEquality(t, len(r.obs.palette), 1)
	test.ExpectEquality(t, r.obs.palette[0].pos, coords.Position{Frame: 0, Y: 10, X: 100})

	// the write to a read only register is a fault, not an error
	test.ExpectSuccess(t, r.faults.Has(faults.OutOfRange))

	// the copper turned itself off and gave the RAM back
	test.ExpectFailure(t, r.vdp.CopperEnabled())
	test.ExpectFailure(t, r.ram.HardwareOwned())
}

func TestRaceHazard(t *testing.T) {
	r := newRig(t)
	b := r.builder(t)
	test.ExpectSuccess(t, b.Write(vdp.RegPaletteAddress, 7))
	test.ExpectSuccess(t, b.SetTargetX(0))
	test.ExpectSuccess(t, b.WaitTargetY(100))
	test.ExpectSuccess(t, b.Jump(0))

	r.vdp.EnableCopper(true)
	r.tick()

	// the host completes the palette protocol using the address set by the
	// copper
	test.ExpectSuccess(t, r.vdp.Write(vdp.RegPaletteData, uint16(palette.Yellow)))
	test.ExpectSuccess(t, r.faults.Has(faults.RaceHazard))
	test.ExpectEquality(t, r.vdp.Palette[7], palette.Yellow)

	// using the full protocol is safe
	r.faults.Clear()
	test.ExpectSuccess(t, r.vdp.SetSinglePaletteColor(0, palette.Grey))
	test.ExpectFailure(t, r.faults.Has(faults.RaceHazard))
}

func TestRasterPosition(t *testing.T) {
	r := newRig(t)
	for range 1100 {
		r.tick()
	}
	test.ExpectEquality(t, r.vdp.RasterPosition(), coords.Position{Frame: 0, Y: 1, X: 12})

	x, _ := r.vdp.Read(vdp.RegRasterX)
	y, _ := r.vdp.Read(vdp.RegRasterY)
	test.ExpectEquality(t, x, 12)
	test.ExpectEquality(t, y, 1)
}

func TestFrameStarted(t *testing.T) {
	r := newRig(t)
	for range specification.Spec848x480.ClksFrame() * 2 {
		r.tick()
	}
	test.DemandEquality(t, len(r.obs.frames), 2)
	test.ExpectEquality(t, r.obs.frames[1], 2)

	r.vdp.RemoveObserver(r.obs)
	for range specification.Spec848x480.ClksFrame() {
		r.tick()
	}
	test.ExpectEquality(t, len(r.obs.frames), 2)
}
