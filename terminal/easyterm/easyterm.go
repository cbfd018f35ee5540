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

// Package easyterm is a wrapper for "github.com/pkg/term/termios" and
// "golang.org/x/term". It provides the small amount of terminal control
// needed to present frames in a terminal: detection, geometry and cbreak
// mode for reading single key presses.
//
// If the input file is not a terminal then the mode functions do nothing.
package easyterm

import (
	"context"
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/jetsetilly/copperbars/curated"
)

// Geometry is the size of the output terminal in characters.
type Geometry struct {
	Cols int
	Rows int
}

// the geometry used when the output is not a terminal
var defaultGeometry = Geometry{Cols: 80, Rows: 24}

// Terminal is the main container for the input and output files.
type Terminal struct {
	input  *os.File
	output *os.File

	// whether the input is a terminal
	interactive bool

	// whether the terminal is in cbreak mode
	cbreak bool

	// saved terminal attributes. see easyterm_unix.go
	attr attributes

	mu       sync.Mutex
	geometry Geometry
}

// Initialise the fields in the Terminal struct.
func (pt *Terminal) Initialise(inputFile *os.File, outputFile *os.File) error {
	if inputFile == nil {
		return curated.Errorf("easyterm: terminal requires an input file")
	}
	if outputFile == nil {
		return curated.Errorf("easyterm: terminal requires an output file")
	}

	pt.input = inputFile
	pt.output = outputFile
	pt.interactive = term.IsTerminal(int(pt.input.Fd()))
	pt.geometry = defaultGeometry

	if pt.interactive {
		if err := pt.attr.save(pt.input); err != nil {
			return curated.Errorf("easyterm: %v", err)
		}
	}

	return pt.UpdateGeometry()
}

// IsTerminal returns true if the input file is a terminal.
func (pt *Terminal) IsTerminal() bool {
	return pt.interactive
}

// UpdateGeometry gets the current dimensions of the output terminal. If the
// output is not a terminal the geometry is unchanged.
func (pt *Terminal) UpdateGeometry() error {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	if !term.IsTerminal(int(pt.output.Fd())) {
		return nil
	}

	cols, rows, err := term.GetSize(int(pt.output.Fd()))
	if err != nil {
		return curated.Errorf("easyterm: %v", err)
	}
	pt.geometry = Geometry{Cols: cols, Rows: rows}

	return nil
}

// Geometry returns the most recent dimensions of the output terminal.
func (pt *Terminal) Geometry() Geometry {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	return pt.geometry
}

// CBreakMode puts the terminal into cbreak mode. Key presses are available
// immediately and are not echoed.
func (pt *Terminal) CBreakMode() error {
	if !pt.interactive || pt.cbreak {
		return nil
	}
	if err := pt.attr.cbreak(pt.input); err != nil {
		return curated.Errorf("easyterm: %v", err)
	}
	pt.cbreak = true
	return nil
}

// CanonicalMode returns the terminal to the mode it was in when Initialise()
// was called.
func (pt *Terminal) CanonicalMode() error {
	if !pt.interactive || !pt.cbreak {
		return nil
	}
	if err := pt.attr.restore(pt.input); err != nil {
		return curated.Errorf("easyterm: %v", err)
	}
	pt.cbreak = false
	return nil
}

// Print writes the formatted string to the output file.
func (pt *Terminal) Print(s string, a ...any) {
	fmt.Fprintf(pt.output, s, a...)
}

// Keys returns a channel on which every byte read from the input is sent.
// The channel is closed when the input reaches the end of file or when the
// context is cancelled. A read in progress when the context is cancelled is
// not interrupted.
func (pt *Terminal) Keys(ctx context.Context) <-chan byte {
	keys := make(chan byte)

	go func() {
		defer close(keys)

		b := make([]byte, 1)
		for {
			n, err := pt.input.Read(b)
			if err != nil {
				return
			}
			if n == 0 {
				continue
			}
			select {
			case keys <- b[0]:
			case <-ctx.Done():
				return
			}
		}
	}()

	return keys
}
