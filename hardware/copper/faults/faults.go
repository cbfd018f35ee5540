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

// Package faults records conditions in the copper list that would cause
// visual corruption on real hardware. The hardware has no way of signalling
// these conditions; a frame just looks wrong. The software model records
// them so that they can be seen and tested for.
package faults

import (
	"fmt"
	"io"

	"github.com/jetsetilly/copperbars/hardware/raster/coords"
)

// Category classifies the reason for a fault.
type Category string

// List of valid Category values.
const (
	// an address or coordinate outside of valid bounds
	OutOfRange Category = "out of range"

	// a wait that cannot be satisfied in the current pass through the list
	// because the target scanline is lower than a previous wait
	StallCondition Category = "stall condition"

	// a direct register write that interleaved with a copper register write
	RaceHazard Category = "race hazard"

	// too many instructions in a single raster clock. usually a jump loop
	// with no wait instruction
	RunawayLoop Category = "runaway loop"
)

// Entry is a single entry in the fault log.
type Entry struct {
	Category Category

	// description of the event that triggered the fault
	Event string

	// where the raster was when the fault first occurred
	Position coords.Position

	// copper RAM address (or register address for race hazards) related to
	// the fault
	Address uint16

	// number of times this fault has been seen
	Count int
}

func (e Entry) String() string {
	return fmt.Sprintf("%s: %s: $%04x (%s)", e.Category, e.Event, e.Address, e.Position)
}

type key struct {
	category Category
	address  uint16
}

// Faults is the fault log.
type Faults struct {
	entries map[key]*Entry

	// all faults in the order in which they first appeared. the Count field
	// of the entry indicates how many times the fault was seen after that
	Log []*Entry
}

// NewFaults is the preferred method of initialisation for the Faults type.
func NewFaults() *Faults {
	return &Faults{
		entries: make(map[key]*Entry),
	}
}

// Clear all entries from faults log.
func (flt *Faults) Clear() {
	clear(flt.entries)
	flt.Log = flt.Log[:0]
}

// WriteLog writes the list of faults in the order they were added.
func (flt *Faults) WriteLog(w io.Writer) {
	for _, e := range flt.Log {
		io.WriteString(w, e.String())
		io.WriteString(w, "\n")
	}
}

// NewEntry adds a new entry to the list of faults. Returns true if this is
// the first time the fault has been seen.
func (flt *Faults) NewEntry(category Category, event string, pos coords.Position, address uint16) bool {
	k := key{category: category, address: address}

	e, found := flt.entries[k]
	if !found {
		e = &Entry{
			Category: category,
			Event:    event,
			Position: pos,
			Address:  address,
		}
		flt.entries[k] = e
		flt.Log = append(flt.Log, e)
	}

	e.Count++

	return !found
}

// Has returns true if there is at least one fault of the category.
func (flt *Faults) Has(category Category) bool {
	for _, e := range flt.Log {
		if e.Category == category {
			return true
		}
	}
	return false
}

// Count returns the total number of times faults of the category have been
// seen.
func (flt *Faults) Count(category Category) int {
	var n int
	for _, e := range flt.Log {
		if e.Category == category {
			n += e.Count
		}
	}
	return n
}
