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

// Package builder encodes copper lists into copper RAM. The Builder is a
// cursor into the RAM; each instruction is appended at the cursor and the
// cursor advances past it.
//
// The builder validates everything it can at build time so that mistakes
// are caught before the copper is enabled. Addresses outside the RAM,
// coordinates outside the display mode and writes to registers the VDP does
// not have are always rejected. There is no wrapping of the cursor.
//
// Most importantly, the builder enforces the rule that the scanline of wait
// instructions must not decrease within a single pass through the list. A
// pass begins when the builder is created, after a Seek() and after a
// Jump(). Waiting for the same scanline as the previous wait is allowed and
// is how more than one change is made on a single scanline.
//
// A decreasing wait cannot be satisfied until the following frame, silently
// delaying every instruction after it by one frame. If this is really
// intended then the Strict field can be set to false and the decreasing wait
// will be logged rather than rejected.
package builder

import (
	"github.com/jetsetilly/copperbars/curated"
	"github.com/jetsetilly/copperbars/hardware/copper/instructions"
	"github.com/jetsetilly/copperbars/hardware/copper/memory"
	"github.com/jetsetilly/copperbars/hardware/raster/specification"
	"github.com/jetsetilly/copperbars/logger"
)

// Error patterns.
const (
	OutOfRange     = "builder: out of range: %s"
	StallCondition = "builder: stall condition: wait for scanline %d after wait for scanline %d"
	WriteFailed    = "builder: %v"
)

// Builder appends copper instructions to copper RAM.
type Builder struct {
	ram  *memory.RAM
	tok  *memory.Token
	spec specification.Spec

	cursor uint16

	// the most recent wait scanline in the current pass. -1 if there has been
	// no wait in the current pass
	lastY int

	// the target x of the most recent SetTargetX(). -1 if no target x has
	// been set
	targetX int

	// the number of words written since the builder was created
	words int

	// reject waits that would stall the copper. see package documentation
	Strict bool
}

// NewBuilder is the preferred method of initialisation for the Builder type.
// The token must be a valid write token for the RAM.
func NewBuilder(ram *memory.RAM, tok *memory.Token, spec specification.Spec) *Builder {
	return &Builder{
		ram:     ram,
		tok:     tok,
		spec:    spec,
		lastY:   -1,
		targetX: -1,
		Strict:  true,
	}
}

// Rebind the builder to a new token. Used after the copper has been disabled
// and a new token acquired. The cursor and pass state are unchanged.
func (b *Builder) Rebind(tok *memory.Token) {
	b.tok = tok
}

// Cursor returns the address at which the next instruction will be written.
func (b *Builder) Cursor() uint16 {
	return b.cursor
}

// Len returns the number of words written by the builder.
func (b *Builder) Len() int {
	return b.words
}

// Seek sets the write cursor. A new pass begins at the new cursor.
func (b *Builder) Seek(address uint16) error {
	if int(address) >= b.ram.Size() {
		return curated.Errorf(OutOfRange, "seek address beyond copper ram")
	}
	b.cursor = address
	b.lastY = -1
	return nil
}

// SetTargetX appends a SETX instruction. The target applies to all
// subsequent waits until it is set again.
func (b *Builder) SetTargetX(x int) error {
	if !b.spec.ValidX(x) {
		return curated.Errorf(OutOfRange, "target x not in display mode")
	}
	if err := b.append(instructions.Instruction{Opcode: instructions.SetTargetX, Operand: uint16(x)}); err != nil {
		return err
	}
	b.targetX = x
	return nil
}

// WaitTargetY appends a WAITY instruction. The copper will not execute
// further instructions until the raster reaches the scanline and the target
// x on that scanline.
func (b *Builder) WaitTargetY(y int) error {
	if !b.spec.ValidY(y) {
		return curated.Errorf(OutOfRange, "target y not in display mode")
	}

	if b.targetX < 0 {
		logger.Logf(logger.Allow, "builder", "wait for scanline %d at $%04x with no target x set", y, b.cursor)
	}

	if b.lastY > y {
		if b.Strict {
			return curated.Errorf(StallCondition, y, b.lastY)
		}
		logger.Logf(logger.Allow, "builder", "wait for scanline %d after wait for scanline %d at $%04x will stall until next frame", y, b.lastY, b.cursor)
	}

	if err := b.append(instructions.Instruction{Opcode: instructions.WaitTargetY, Operand: uint16(y)}); err != nil {
		return err
	}
	b.lastY = y
	return nil
}

// Write appends a WRITE instruction. The register write happens as soon as
// the copper reaches the instruction.
func (b *Builder) Write(register uint16, data uint16) error {
	if register >= instructions.NumRegisters {
		return curated.Errorf(OutOfRange, "register address not a VDP register")
	}
	return b.append(instructions.Instruction{Opcode: instructions.Write, Operand: register, Data: data})
}

// Jump appends a JUMP instruction. A jump ends the current pass.
func (b *Builder) Jump(address uint16) error {
	if int(address) >= b.ram.Size() {
		return curated.Errorf(OutOfRange, "jump address beyond copper ram")
	}
	if err := b.append(instructions.Instruction{Opcode: instructions.Jump, Operand: address}); err != nil {
		return err
	}
	b.lastY = -1
	return nil
}

func (b *Builder) append(ins instructions.Instruction) error {
	w, err := ins.Encode()
	if err != nil {
		return curated.Errorf(OutOfRange, err)
	}

	if int(b.cursor)+len(w) > b.ram.Size() {
		return curated.Errorf(OutOfRange, "instruction would extend beyond copper ram")
	}

	// check the token before writing anything so that a two word instruction
	// is never half written
	if !b.tok.Valid() {
		return curated.Errorf(WriteFailed, curated.Errorf(memory.TokenRevoked))
	}

	for i := range w {
		if err := b.ram.Write(b.tok, b.cursor+uint16(i), w[i]); err != nil {
			return curated.Errorf(WriteFailed, err)
		}
	}

	b.cursor += uint16(len(w))
	b.words += len(w)

	return nil
}
