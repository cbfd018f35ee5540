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

package builder_test

import (
	"testing"

	"github.com/jetsetilly/copperbars/curated"
	"github.com/jetsetilly/copperbars/hardware/copper/builder"
	"github.com/jetsetilly/copperbars/hardware/copper/memory"
	"github.com/jetsetilly/copperbars/hardware/raster/specification"
	"github.com/jetsetilly/copperbars/test"
)

func newBuilder(t *testing.T, size int) (*builder.Builder, *memory.RAM) {
	t.Helper()
	ram, err := memory.NewRAM(size)
	test.DemandSuccess(t, err)
	tok, err := ram.Acquire()
	test.DemandSuccess(t, err)
	return builder.NewBuilder(ram, tok, specification.Spec848x480), ram
}

func TestEncoding(t *testing.T) {
	b, ram := newBuilder(t, 32)

	test.ExpectSuccess(t, b.Seek(0))
	test.ExpectSuccess(t, b.SetTargetX(0))
	test.ExpectSuccess(t, b.WaitTargetY(32))
	test.ExpectSuccess(t, b.Write(0x02, 0))
	test.ExpectSuccess(t, b.Write(0x03, 0xf088))
	test.ExpectSuccess(t, b.Jump(0))

	expected := []uint16{0x0000, 0x4020, 0x8002, 0x0000, 0x8003, 0xf088, 0xc000}
	test.DemandEquality(t, b.Len(), len(expected))
	for i, w := range expected {
		test.ExpectEquality(t, ram.Peek(uint16(i)), w, i)
	}
	test.ExpectEquality(t, b.Cursor(), uint16(len(expected)))
}

func TestOutOfRange(t *testing.T) {
	b, _ := newBuilder(t, 8)
	spec := specification.Spec848x480

	test.ExpectSuccess(t, curated.Is(b.Seek(8), builder.OutOfRange))
	test.ExpectSuccess(t, curated.Is(b.SetTargetX(spec.ClksScanline), builder.OutOfRange))
	test.ExpectSuccess(t, curated.Is(b.SetTargetX(-1), builder.OutOfRange))
	test.ExpectSuccess(t, curated.Is(b.WaitTargetY(spec.ScanlinesTotal), builder.OutOfRange))
	test.ExpectSuccess(t, curated.Is(b.Write(0x100, 0), builder.OutOfRange))
	test.ExpectSuccess(t, curated.Is(b.Write(0x20, 0), builder.OutOfRange))
	test.ExpectSuccess(t, curated.Is(b.Write(0x08, 0), builder.OutOfRange))
	test.ExpectSuccess(t, curated.Is(b.Jump(8), builder.OutOfRange))

	// nothing was written by the failed calls
	test.ExpectEquality(t, b.Len(), 0)

	// fill RAM to the last word. a two word instruction does not fit
	test.ExpectSuccess(t, b.Seek(7))
	test.ExpectSuccess(t, curated.Is(b.Write(0x03, 0), builder.OutOfRange))
	test.ExpectSuccess(t, b.Jump(0))
	test.ExpectEquality(t, b.Cursor(), 8)

	// and no more
	test.ExpectSuccess(t, curated.Is(b.Jump(0), builder.OutOfRange))
}

func TestMonotonicWait(t *testing.T) {
	b, _ := newBuilder(t, 64)

	test.ExpectSuccess(t, b.SetTargetX(0))
	test.ExpectSuccess(t, b.WaitTargetY(64))

	// same scanline is allowed
	test.ExpectSuccess(t, b.SetTargetX(400))
	test.ExpectSuccess(t, b.WaitTargetY(64))

	// decreasing is not
	err := b.WaitTargetY(32)
	test.ExpectSuccess(t, curated.Is(err, builder.StallCondition))
	test.ExpectEquality(t, err.Error(), "builder: stall condition: wait for scanline 32 after wait for scanline 64")

	// a jump starts a new pass
	test.ExpectSuccess(t, b.Jump(0))
	test.ExpectSuccess(t, b.WaitTargetY(32))

	// as does a seek
	test.ExpectSuccess(t, b.WaitTargetY(100))
	test.ExpectSuccess(t, b.Seek(32))
	test.ExpectSuccess(t, b.WaitTargetY(10))
}

func TestNotStrict(t *testing.T) {
	b, ram := newBuilder(t, 64)
	b.Strict = false

	test.ExpectSuccess(t, b.SetTargetX(0))
	test.ExpectSuccess(t, b.WaitTargetY(64))
	test.ExpectSuccess(t, b.WaitTargetY(32))
	test.ExpectEquality(t, ram.Peek(2), 0x4020)
}

func TestRevokedToken(t *testing.T) {
	b, ram := newBuilder(t, 64)
	test.ExpectSuccess(t, b.SetTargetX(0))

	ram.HandOver()
	err := b.Write(0x02, 0)
	test.ExpectSuccess(t, curated.Has(err, memory.TokenRevoked))
	test.ExpectEquality(t, b.Cursor(), 1)

	ram.Reclaim()
	test.ExpectSuccess(t, curated.Has(b.Write(0x02, 0), memory.TokenRevoked))

	tok, err := ram.Acquire()
	test.DemandSuccess(t, err)
	b.Rebind(tok)
	test.ExpectSuccess(t, b.Write(0x02, 0))
	test.ExpectEquality(t, b.Cursor(), 3)
}
