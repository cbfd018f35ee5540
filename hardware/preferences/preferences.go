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

// Package preferences contains the preferences for the hardware model.
package preferences

import (
	"github.com/jetsetilly/copperbars/hardware/copper/memory"
	"github.com/jetsetilly/copperbars/hardware/raster/specification"
	"github.com/jetsetilly/copperbars/prefs"
)

// Preferences for the hardware model.
type Preferences struct {
	dsk *prefs.Disk

	// the ID of the display mode. see specification.SearchSpec()
	Spec prefs.String

	// size of the copper RAM in words
	RAMSize prefs.Int

	// maximum number of copper instructions in a single raster clock. zero
	// means the size of the copper RAM
	Budget prefs.Int

	// reject wait instructions that would stall the copper when building a
	// list
	Strict prefs.Bool
}

// value is the interface shared by the prefs types
type value interface {
	Set(prefs.Value) error
	Get() prefs.Value
	String() string
}

func (p *Preferences) String() string {
	if p.dsk == nil {
		return ""
	}
	return p.dsk.String()
}

// the prefs key of each field
func (p *Preferences) fields() map[string]value {
	return map[string]value{
		"vdp.spec":       &p.Spec,
		"copper.ramSize": &p.RAMSize,
		"copper.budget":  &p.Budget,
		"builder.strict": &p.Strict,
	}
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. If path is empty the preferences are not backed by a
// file but values on the command line stack are still used.
func NewPreferences(path string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	if path == "" {
		for k, f := range p.fields() {
			if ok, v := prefs.GetCommandLinePref(k); ok {
				if err := f.Set(v); err != nil {
					return nil, err
				}
			}
		}
		return p, nil
	}

	var err error
	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}
	for k, f := range p.fields() {
		err = p.dsk.Add(k, f)
		if err != nil {
			return nil, err
		}
	}
	err = p.dsk.Load(true)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	p.Spec.Set(specification.Spec848x480.ID)
	p.RAMSize.Set(memory.DefaultSize)
	p.Budget.Set(0)
	p.Strict.Set(true)
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Load(false)
}

// Save preferences to disk.
func (p *Preferences) Save() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Save()
}

// Specification returns the display mode named by the Spec preference.
func (p *Preferences) Specification() (specification.Spec, error) {
	return specification.SearchSpec(p.Spec.String())
}
