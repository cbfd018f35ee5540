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

package rasterbars_test

import (
	"testing"

	"github.com/jetsetilly/copperbars/demo/rasterbars"
	"github.com/jetsetilly/copperbars/hardware"
	"github.com/jetsetilly/copperbars/hardware/copper/disassembly"
	"github.com/jetsetilly/copperbars/hardware/vdp"
	"github.com/jetsetilly/copperbars/hardware/vdp/palette"
	"github.com/jetsetilly/copperbars/test"
	"github.com/jetsetilly/copperbars/trace"
)

func newSystem(t *testing.T) (*hardware.System, *trace.Recorder) {
	t.Helper()
	sys, err := hardware.NewSystem(nil)
	test.DemandSuccess(t, err)
	rec := trace.NewRecorder(sys.Spec, 8)
	sys.AddObserver(rec)
	return sys, rec
}

func TestBuild(t *testing.T) {
	sys, _ := newSystem(t)
	b, err := sys.Builder()
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, rasterbars.Build(b))

	test.ExpectEquality(t, b.Len(), 396)
	test.ExpectEquality(t, b.Cursor(), 396)

	dsm := disassembly.Disassemble(sys.RAM, 0, b.Cursor())
	test.DemandEquality(t, len(dsm.Entries), 7+32*8+1)
	test.ExpectEquality(t, dsm.Entries[0].String(), "SETX  0")
	test.ExpectEquality(t, dsm.Entries[1].String(), "WAITY 32")
	test.ExpectEquality(t, dsm.Entries[3].String(), "WRITE $03, $f088")
	test.ExpectEquality(t, dsm.Entries[7].String(), "SETX  400")
	test.ExpectEquality(t, dsm.Entries[8].String(), "WAITY 96")
	test.ExpectEquality(t, dsm.Entries[len(dsm.Entries)-1].String(), "JUMP  $0000")

	test.ExpectEquality(t, len(disassembly.Lint(sys.RAM, 0, sys.Spec)), 0)
}

func TestRasterBars(t *testing.T) {
	sys, rec := newSystem(t)
	b, err := rasterbars.Setup(sys)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, b.Cursor(), 396)
	test.DemandSuccess(t, rasterbars.Loop(sys, 4))

	expected := []string{
		"000-031 $f888",
		"032-063 $f088",
		"064-095 $f880",
		"096-127 $f880 [0,400) $f080 [400,848)",
		"128-479 $f880",
	}

	// every frame after the first is the same
	for _, f := range []int{1, 2, 3} {
		bands, err := rec.Bands(f)
		test.DemandSuccess(t, err)
		test.DemandEquality(t, len(bands), len(expected), f)
		for i := range bands {
			test.ExpectEquality(t, bands[i].String(), expected[i], f)
		}
	}

	c, err := rec.ColourAt(2, 96, 399)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, c, palette.Yellow)
	c, err = rec.ColourAt(2, 96, 400)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, c, palette.Green)

	test.ExpectEquality(t, len(sys.Faults.Log), 0)
	test.ExpectEquality(t, sys.VDP.Copper.Passes(), 4)
}

func TestTwoBands(t *testing.T) {
	sys, rec := newSystem(t)

	b, err := sys.Builder()
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, b.SetTargetX(0))
	test.ExpectSuccess(t, b.WaitTargetY(32))
	test.ExpectSuccess(t, b.Write(vdp.RegPaletteAddress, 0))
	test.ExpectSuccess(t, b.Write(vdp.RegPaletteData, 0xf088))
	test.ExpectSuccess(t, b.WaitTargetY(64))
	test.ExpectSuccess(t, b.Write(vdp.RegPaletteAddress, 0))
	test.ExpectSuccess(t, b.Write(vdp.RegPaletteData, 0xf880))
	test.ExpectSuccess(t, b.Jump(0))

	sys.EnableCopper(true)
	sys.RunForFrameCount(3)

	for _, f := range []int{1, 2} {
		bands, err := rec.Bands(f)
		test.DemandSuccess(t, err)
		test.DemandEquality(t, len(bands), 3, f)

		// the yellow of the previous frame continues until the first wait
		test.ExpectEquality(t, bands[0].String(), "000-031 $f880", f)
		test.ExpectEquality(t, bands[1].String(), "032-063 $f088", f)
		test.ExpectEquality(t, bands[2].String(), "064-479 $f880", f)
	}
}

func TestLastWriteWins(t *testing.T) {
	sys, rec := newSystem(t)

	b, err := sys.Builder()
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, b.SetTargetX(0))
	test.ExpectSuccess(t, b.WaitTargetY(100))
	test.ExpectSuccess(t, b.Write(vdp.RegPaletteAddress, 0))
	test.ExpectSuccess(t, b.Write(vdp.RegPaletteData, uint16(palette.Teal)))
	test.ExpectSuccess(t, b.Write(vdp.RegPaletteAddress, 0))
	test.ExpectSuccess(t, b.Write(vdp.RegPaletteData, uint16(palette.Green)))
	test.ExpectSuccess(t, b.WaitTargetY(101))
	test.ExpectSuccess(t, b.Jump(0))

	sys.EnableCopper(true)
	sys.RunForFrameCount(2)

	l, err := rec.Line(1, 100)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(l), 1)
	test.ExpectEquality(t, l[0].Colour, palette.Green)
	test.ExpectEquality(t, sys.VDP.Palette[0], palette.Green)
}
