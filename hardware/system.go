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

package hardware

import (
	"sync"

	"github.com/jetsetilly/copperbars/curated"
	"github.com/jetsetilly/copperbars/hardware/copper/builder"
	"github.com/jetsetilly/copperbars/hardware/copper/faults"
	"github.com/jetsetilly/copperbars/hardware/copper/memory"
	"github.com/jetsetilly/copperbars/hardware/preferences"
	"github.com/jetsetilly/copperbars/hardware/raster"
	"github.com/jetsetilly/copperbars/hardware/raster/coords"
	"github.com/jetsetilly/copperbars/hardware/raster/specification"
	"github.com/jetsetilly/copperbars/hardware/vdp"
	"github.com/jetsetilly/copperbars/hardware/vdp/palette"
)

// Error patterns.
const (
	SystemError    = "system: %v"
	AlreadyRunning = "system: already running"
)

// System is the main container for the components of the VDP model.
type System struct {
	// the bus. see package documentation
	crit sync.Mutex

	// signalled at the start of every frame while the system is running
	frameEnded *sync.Cond

	// whether Run() is active
	running bool

	Prefs  *preferences.Preferences
	Spec   specification.Spec
	Beam   *raster.Beam
	RAM    *memory.RAM
	Faults *faults.Faults
	VDP    *vdp.VDP
}

// NewSystem creates a new System. If prefs is nil then the default
// preferences are used.
func NewSystem(prefs *preferences.Preferences) (*System, error) {
	var err error

	if prefs == nil {
		prefs, err = preferences.NewPreferences("")
		if err != nil {
			return nil, curated.Errorf(SystemError, err)
		}
	}

	sys := &System{Prefs: prefs}
	sys.frameEnded = sync.NewCond(&sys.crit)

	sys.Spec, err = prefs.Specification()
	if err != nil {
		return nil, curated.Errorf(SystemError, err)
	}

	sys.RAM, err = memory.NewRAM(prefs.RAMSize.Get().(int))
	if err != nil {
		return nil, curated.Errorf(SystemError, err)
	}

	sys.Beam = raster.NewBeam(sys.Spec)
	sys.Faults = faults.NewFaults()
	sys.VDP = vdp.NewVDP(sys.Beam, sys.RAM, sys.Faults)
	sys.VDP.Copper.Budget = prefs.Budget.Get().(int)

	return sys, nil
}

// Builder acquires a write token for the copper RAM and returns a builder
// that writes from address zero. Fails if the copper is enabled.
func (sys *System) Builder() (*builder.Builder, error) {
	tok, err := sys.RAM.Acquire()
	if err != nil {
		return nil, err
	}
	b := builder.NewBuilder(sys.RAM, tok, sys.Spec)
	b.Strict = sys.Prefs.Strict.Get().(bool)
	return b, nil
}

// Frame returns the current frame number.
func (sys *System) Frame() int {
	sys.crit.Lock()
	defer sys.crit.Unlock()
	return sys.Beam.Position().Frame
}

// RasterPosition returns the current position of the raster.
func (sys *System) RasterPosition() coords.Position {
	sys.crit.Lock()
	defer sys.crit.Unlock()
	return sys.VDP.RasterPosition()
}

// AddObserver adds an observer to the VDP.
func (sys *System) AddObserver(o vdp.Observer) {
	sys.crit.Lock()
	defer sys.crit.Unlock()
	sys.VDP.AddObserver(o)
}

// EnableCopper turns the copper on or off. See vdp.EnableCopper().
func (sys *System) EnableCopper(on bool) {
	sys.crit.Lock()
	defer sys.crit.Unlock()
	sys.VDP.EnableCopper(on)
}

// SetCopperStart sets the address at which the copper starts when it is
// next enabled.
func (sys *System) SetCopperStart(address uint16) error {
	sys.crit.Lock()
	defer sys.crit.Unlock()
	return sys.VDP.SetCopperStart(address)
}

// EnableLayers sets the mask of enabled layers.
func (sys *System) EnableLayers(mask uint16) error {
	sys.crit.Lock()
	defer sys.crit.Unlock()
	return sys.VDP.EnableLayers(mask)
}

// SetWideMapLayers sets the mask of layers using the wide map.
func (sys *System) SetWideMapLayers(mask uint16) error {
	sys.crit.Lock()
	defer sys.crit.Unlock()
	return sys.VDP.SetWideMapLayers(mask)
}

// SetAlphaOverLayers sets the mask of layers using alpha-over blending.
func (sys *System) SetAlphaOverLayers(mask uint16) error {
	sys.crit.Lock()
	defer sys.crit.Unlock()
	return sys.VDP.SetAlphaOverLayers(mask)
}

// SetSinglePaletteColor writes a single palette entry.
func (sys *System) SetSinglePaletteColor(index uint8, colour palette.Colour) error {
	sys.crit.Lock()
	defer sys.crit.Unlock()
	return sys.VDP.SetSinglePaletteColor(index, colour)
}
