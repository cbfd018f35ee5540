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

// Package copper is the software model of the copper, the coprocessor that
// executes a command list in step with the raster beam.
//
// The model is advanced one raster clock at a time with the Step() function.
// Because WRITE, SETX and JUMP instructions take no raster time, a single
// call to Step() can execute many instructions. Execution stops when a WAITY
// instruction is reached for a raster position that has not yet arrived, at
// which point the copper is in the Waiting state.
//
// A wait is satisfied the first clock on which the raster is on the target
// scanline and at or beyond the target x. The comparison of the scanline is
// exact, so a wait for a scanline that has already passed is satisfied on
// the following frame.
//
// A pass that ends, by JUMP or by running off the end of copper RAM, on the
// scanline of its first wait does not restart the list on the same clock.
// After a new pass begins, a wait for a position that is not beyond the
// position at which the previous wait was satisfied is held until the next
// frame. A list with non-decreasing waits therefore completes one pass per
// frame.
//
// Conditions that cannot be signalled by the hardware (stalls, out of range
// addresses and runaway loops) are recorded in a faults.Faults instance and
// logged. The behaviour of the copper is otherwise unaffected by the fault,
// in the same way as the real hardware.
package copper

import (
	"fmt"

	"github.com/jetsetilly/copperbars/hardware/copper/faults"
	"github.com/jetsetilly/copperbars/hardware/copper/instructions"
	"github.com/jetsetilly/copperbars/hardware/copper/memory"
	"github.com/jetsetilly/copperbars/hardware/raster/coords"
	"github.com/jetsetilly/copperbars/hardware/raster/specification"
	"github.com/jetsetilly/copperbars/logger"
)

// State of the copper.
type State int

// List of valid State values.
const (
	Idle State = iota
	Running
	Waiting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Waiting:
		return "waiting"
	}
	return "unknown"
}

// Bus is the path by which the copper writes to VDP registers.
type Bus interface {
	CopperWrite(register uint16, data uint16)
}

// Engine is the copper execution engine.
type Engine struct {
	ram    *memory.RAM
	bus    Bus
	spec   specification.Spec
	faults *faults.Faults

	state State

	// address at which execution begins when the copper is enabled
	start uint16

	// address of the next instruction
	cursor uint16

	// the horizontal comparator set by SETX
	targetX int

	// the scanline of the pending wait
	waitY int

	// the scanline of the most recent wait in the current pass. -1 if there
	// has been no wait since the start of the pass
	passY int

	// raster position at which the most recent wait was satisfied
	resolved    coords.Position
	hasResolved bool

	// waits that are not beyond the hold position are not satisfied until
	// the frame after the hold position. set at the start of a pass
	hold    coords.Position
	holding bool

	// the number of JUMP instructions executed since the copper was enabled
	passes int

	// maximum number of instructions in a single raster clock. zero means
	// the size of the copper RAM, which is the smallest value that
	// guarantees an instruction has been executed more than once
	Budget int
}

// NewEngine is the preferred method of initialisation for the Engine type.
func NewEngine(ram *memory.RAM, bus Bus, spec specification.Spec, flt *faults.Faults) *Engine {
	return &Engine{
		ram:    ram,
		bus:    bus,
		spec:   spec,
		faults: flt,
		passY:  -1,
	}
}

func (e *Engine) String() string {
	switch e.state {
	case Waiting:
		return fmt.Sprintf("%s for Y=%d X>=%d at $%04x", e.state, e.waitY, e.targetX, e.cursor)
	case Running:
		return fmt.Sprintf("%s at $%04x", e.state, e.cursor)
	}
	return e.state.String()
}

// State returns the current state of the copper.
func (e *Engine) State() State {
	return e.state
}

// Cursor returns the address of the next instruction to be executed.
func (e *Engine) Cursor() uint16 {
	return e.cursor
}

// TargetX returns the value of the horizontal comparator.
func (e *Engine) TargetX() int {
	return e.targetX
}

// Passes returns the number of JUMP instructions executed since the copper
// was last enabled.
func (e *Engine) Passes() int {
	return e.passes
}

// Start returns the address at which execution begins on Enable().
func (e *Engine) Start() uint16 {
	return e.start
}

// SetStart sets the address at which execution begins on Enable(). Returns
// false if the address is outside of copper RAM.
func (e *Engine) SetStart(address uint16) bool {
	if int(address) >= e.ram.Size() {
		return false
	}
	e.start = address
	return true
}

// Enable the copper. If the copper is already enabled there is no effect.
func (e *Engine) Enable() {
	if e.state != Idle {
		return
	}
	e.state = Running
	e.cursor = e.start
	e.passY = -1
	e.passes = 0
	e.hasResolved = false
	e.holding = false
}

// Disable the copper. The copper stops immediately and will not read the
// copper RAM again until it is enabled.
func (e *Engine) Disable() {
	e.state = Idle
}

// Step the copper by one raster clock. The position is the current position
// of the raster.
func (e *Engine) Step(pos coords.Position) {
	switch e.state {
	case Idle:
		return
	case Waiting:
		if !e.satisfied(pos) {
			return
		}
		e.resolve(pos)
	}

	budget := e.Budget
	if budget <= 0 {
		budget = e.ram.Size()
	}

	for n := 0; e.state == Running; n++ {
		if n >= budget {
			e.fault(faults.RunawayLoop, fmt.Sprintf("more than %d instructions in one clock", budget), pos, e.cursor)
			return
		}
		e.execute(pos)
	}
}

func (e *Engine) satisfied(pos coords.Position) bool {
	if pos.Y != e.waitY || pos.X < e.targetX {
		return false
	}
	if e.holding && pos.Frame == e.hold.Frame {
		return e.waitY > e.hold.Y || (e.waitY == e.hold.Y && e.targetX > e.hold.X)
	}
	return true
}

func (e *Engine) resolve(pos coords.Position) {
	e.state = Running
	e.resolved = pos
	e.hasResolved = true
	e.holding = false
}

// newPass is called when execution returns to the top of the list, either
// by JUMP or by the address counter wrapping around.
func (e *Engine) newPass() {
	e.passY = -1
	if e.hasResolved {
		e.hold = e.resolved
		e.holding = true
	}
}

func (e *Engine) fault(category faults.Category, event string, pos coords.Position, address uint16) {
	if e.faults == nil {
		return
	}
	if e.faults.NewEntry(category, event, pos, address) {
		logger.Logf(logger.Allow, "copper", "%s: %s at $%04x (%s)", category, event, address, pos)
	}
}

// execute a single instruction.
func (e *Engine) execute(pos coords.Position) {
	address := e.cursor

	word, err := e.ram.Read(address)
	if err != nil {
		// the address counter of the real hardware wraps around
		e.fault(faults.OutOfRange, "execution beyond end of copper ram", pos, address)
		e.cursor = 0
		e.newPass()
		return
	}

	op, operand := instructions.Split(word)

	switch op {
	case instructions.SetTargetX:
		e.cursor++
		e.targetX = int(operand)
		if !e.spec.ValidX(e.targetX) {
			e.fault(faults.OutOfRange, fmt.Sprintf("target x %d not in display mode", e.targetX), pos, address)
		}

	case instructions.WaitTargetY:
		e.cursor++
		y := int(operand)
		if !e.spec.ValidY(y) {
			e.fault(faults.OutOfRange, fmt.Sprintf("wait for scanline %d not in display mode", y), pos, address)
		}
		if e.passY > y {
			e.fault(faults.StallCondition, fmt.Sprintf("wait for scanline %d after wait for scanline %d", y, e.passY), pos, address)
		}
		e.passY = y
		e.waitY = y
		if e.satisfied(pos) {
			e.resolve(pos)
		} else {
			e.state = Waiting
		}

	case instructions.Write:
		data, err := e.ram.Read(address + 1)
		if err != nil {
			e.fault(faults.OutOfRange, "write instruction truncated by end of copper ram", pos, address)
			e.cursor = 0
			e.newPass()
			return
		}
		e.cursor += 2
		e.bus.CopperWrite(operand&instructions.RegisterMask, data)

	case instructions.Jump:
		target := operand
		if int(target) >= e.ram.Size() {
			e.fault(faults.OutOfRange, fmt.Sprintf("jump to $%04x beyond end of copper ram", target), pos, address)
			target %= uint16(e.ram.Size())
		}
		e.cursor = target
		e.newPass()
		e.passes++
	}
}
