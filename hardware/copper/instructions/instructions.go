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

// Package instructions defines the copper instruction set and the encoding
// of instructions as words in the copper RAM.
//
// Every instruction begins with a single 16 bit word. The top two bits of the
// word are the opcode and the remaining 14 bits are the operand:
//
//	15 14 13                                     0
//	[op ] [              operand                 ]
//
//	SETX   00  target x of subsequent waits
//	WAITY  01  scanline to wait for
//	WRITE  10  register address in bits 7..0, followed by a data word
//	JUMP   11  address in copper RAM
//
// WRITE is the only instruction that is two words long. The second word is
// the data to be written and uses all 16 bits.
package instructions

import (
	"fmt"

	"github.com/jetsetilly/copperbars/curated"
)

// Opcode of a copper instruction.
type Opcode uint16

// List of valid Opcode values.
const (
	SetTargetX  Opcode = 0
	WaitTargetY Opcode = 1
	Write       Opcode = 2
	Jump        Opcode = 3
)

func (op Opcode) String() string {
	switch op {
	case SetTargetX:
		return "SETX"
	case WaitTargetY:
		return "WAITY"
	case Write:
		return "WRITE"
	case Jump:
		return "JUMP"
	}
	return "???"
}

// the layout of the first word of an instruction
const (
	opcodeShift = 14
	OperandMask = 0x3fff

	// the register address field of the WRITE instruction
	RegisterMask = 0x00ff
)

// NumRegisters is the number of VDP registers decoded from the register
// address field. A WRITE to a higher address encodes but has no register to
// write to.
const NumRegisters = 8

// Error patterns.
const (
	OperandRange  = "instructions: operand out of range: %s %#x"
	Truncated     = "instructions: truncated %s instruction"
	NoInstruction = "instructions: no words to decode"
)

// Instruction is a single decoded copper instruction.
type Instruction struct {
	Opcode Opcode

	// target x, target y, register address or jump address depending on
	// the opcode
	Operand uint16

	// the value to write. WRITE instructions only
	Data uint16
}

func (ins Instruction) String() string {
	switch ins.Opcode {
	case SetTargetX:
		return fmt.Sprintf("SETX  %d", ins.Operand)
	case WaitTargetY:
		return fmt.Sprintf("WAITY %d", ins.Operand)
	case Write:
		return fmt.Sprintf("WRITE $%02x, $%04x", ins.Operand, ins.Data)
	case Jump:
		return fmt.Sprintf("JUMP  $%04x", ins.Operand)
	}
	return "???"
}

// Length returns the number of words used by the instruction.
func (ins Instruction) Length() int {
	if ins.Opcode == Write {
		return 2
	}
	return 1
}

// Encode the instruction as a series of words. Fails if the operand does not
// fit into the operand field for the opcode.
func (ins Instruction) Encode() ([]uint16, error) {
	mask := uint16(OperandMask)
	if ins.Opcode == Write {
		mask = RegisterMask
	}
	if ins.Operand&^mask != 0 {
		return nil, curated.Errorf(OperandRange, ins.Opcode, ins.Operand)
	}

	w := (uint16(ins.Opcode) << opcodeShift) | ins.Operand
	if ins.Opcode == Write {
		return []uint16{w, ins.Data}, nil
	}
	return []uint16{w}, nil
}

// Split the first word of an instruction into its opcode and operand.
func Split(word uint16) (Opcode, uint16) {
	return Opcode(word >> opcodeShift), word & OperandMask
}

// Decode the instruction at the start of words. For WRITE instructions the
// second word must be present.
func Decode(words []uint16) (Instruction, error) {
	if len(words) == 0 {
		return Instruction{}, curated.Errorf(NoInstruction)
	}

	op, operand := Split(words[0])
	ins := Instruction{Opcode: op, Operand: operand}

	if op == Write {
		if len(words) < 2 {
			return ins, curated.Errorf(Truncated, op)
		}
		ins.Operand &= RegisterMask
		ins.Data = words[1]
	}

	return ins, nil
}
