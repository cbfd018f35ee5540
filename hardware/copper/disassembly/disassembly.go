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

// Package disassembly produces listings of the instructions in copper RAM
// and checks a list for the conditions that would be recorded as faults if
// the list was run by the copper.
//
// Disassemble() is a linear sweep of an address range. Lint() follows the
// flow of the list from its start address, taking jumps in the same way as
// the copper, which means it only ever sees the instructions that the copper
// would execute.
package disassembly

import (
	"fmt"
	"io"

	"github.com/jetsetilly/copperbars/hardware/copper/faults"
	"github.com/jetsetilly/copperbars/hardware/copper/instructions"
	"github.com/jetsetilly/copperbars/hardware/copper/memory"
	"github.com/jetsetilly/copperbars/hardware/raster/specification"
)

// Entry is a single disassembled instruction.
type Entry struct {
	Address     uint16
	Words       []uint16
	Instruction instructions.Instruction

	// the instruction could not be decoded completely because it runs past
	// the end of copper RAM
	Truncated bool
}

func (e Entry) String() string {
	if e.Truncated {
		return fmt.Sprintf("%s (truncated)", e.Instruction.Opcode)
	}
	return e.Instruction.String()
}

// Finding is a condition discovered by Lint().
type Finding struct {
	Category faults.Category
	Address  uint16
	Detail   string
}

func (f Finding) String() string {
	return fmt.Sprintf("$%04x: %s: %s", f.Address, f.Category, f.Detail)
}

// Disassembly of a range of copper RAM.
type Disassembly struct {
	Entries []Entry

	// findings are included in the output of Write() alongside the entry at
	// the same address. the field is not filled by Disassemble()
	Findings []Finding
}

func decode(ram *memory.RAM, address uint16) Entry {
	e := Entry{Address: address}

	w, err := ram.Read(address)
	if err != nil {
		return e
	}
	e.Words = append(e.Words, w)

	op, _ := instructions.Split(w)
	if op == instructions.Write {
		if d, err := ram.Read(address + 1); err == nil {
			e.Words = append(e.Words, d)
		}
	}

	e.Instruction, err = instructions.Decode(e.Words)
	e.Truncated = err != nil

	return e
}

// Disassemble the instructions from the start address up to, but not
// including, the end address. The end address is clamped to the size of the
// RAM.
func Disassemble(ram *memory.RAM, start uint16, end uint16) *Disassembly {
	if int(end) > ram.Size() {
		end = uint16(ram.Size())
	}

	dsm := &Disassembly{}
	for a := start; a < end; {
		e := decode(ram, a)
		dsm.Entries = append(dsm.Entries, e)
		a += uint16(len(e.Words))
	}

	return dsm
}

// Write the disassembly to w.
func (dsm *Disassembly) Write(w io.Writer) {
	findings := make(map[uint16][]Finding)
	for _, f := range dsm.Findings {
		findings[f.Address] = append(findings[f.Address], f)
	}

	for _, e := range dsm.Entries {
		words := make([]any, 2)
		for i := range words {
			if i < len(e.Words) {
				words[i] = fmt.Sprintf("%04x", e.Words[i])
			} else {
				words[i] = "    "
			}
		}
		fmt.Fprintf(w, "$%04x  %s %s  %s\n", e.Address, words[0], words[1], e)

		for _, f := range findings[e.Address] {
			fmt.Fprintf(w, "       ; %s: %s\n", f.Category, f.Detail)
		}
	}
}

// Lint follows the list from the start address and reports every condition
// that the copper would record as a fault. Each address is visited once.
//
// Conditions that depend on timing or on other writers to the VDP, such as
// race hazards, cannot be found this way.
func Lint(ram *memory.RAM, start uint16, spec specification.Spec) []Finding {
	var findings []Finding
	add := func(category faults.Category, address uint16, detail string, args ...any) {
		findings = append(findings, Finding{
			Category: category,
			Address:  address,
			Detail:   fmt.Sprintf(detail, args...),
		})
	}

	if int(start) >= ram.Size() {
		add(faults.OutOfRange, start, "start address beyond end of copper ram")
		return findings
	}

	// whether each visited instruction is a wait, in the order of visiting.
	// the visited map records the index into the waits slice of each address
	var waits []bool
	visited := make(map[uint16]int)

	// scanline of the most recent wait in the current pass
	passY := -1

	a := start
	for {
		if i, ok := visited[a]; ok {
			// the copper has returned to an instruction it has already
			// executed. if there has been no wait since the previous visit
			// then the copper will never leave the loop
			loop := false
			for _, w := range waits[i:] {
				loop = loop || w
			}
			if !loop {
				add(faults.RunawayLoop, a, "loop with no wait instruction")
			}
			return findings
		}

		visited[a] = len(waits)
		waits = append(waits, false)

		e := decode(ram, a)
		if e.Truncated {
			add(faults.OutOfRange, a, "write instruction truncated by end of copper ram")
			a = 0
			passY = -1
			continue
		}

		next := a + uint16(len(e.Words))

		switch e.Instruction.Opcode {
		case instructions.SetTargetX:
			if !spec.ValidX(int(e.Instruction.Operand)) {
				add(faults.OutOfRange, a, "target x %d not in display mode", e.Instruction.Operand)
			}

		case instructions.WaitTargetY:
			waits[len(waits)-1] = true
			y := int(e.Instruction.Operand)
			if !spec.ValidY(y) {
				add(faults.OutOfRange, a, "wait for scanline %d not in display mode", y)
			}
			if passY > y {
				add(faults.StallCondition, a, "wait for scanline %d after wait for scanline %d", y, passY)
			}
			passY = y

		case instructions.Write:
			if r := e.Instruction.Operand & instructions.RegisterMask; r >= instructions.NumRegisters {
				add(faults.OutOfRange, a, "write to unmapped register $%02x", r)
			}

		case instructions.Jump:
			next = e.Instruction.Operand
			if int(next) >= ram.Size() {
				add(faults.OutOfRange, a, "jump to $%04x beyond end of copper ram", next)
				next %= uint16(ram.Size())
			}
			passY = -1
		}

		if int(next) >= ram.Size() {
			add(faults.OutOfRange, a, "execution beyond end of copper ram")
			next = 0
			passY = -1
		}

		a = next
	}
}
