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

//go:build unix

package easyterm

import (
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// attributes of the terminal for each mode
type attributes struct {
	canonicalAttr unix.Termios
	cbreakAttr    unix.Termios
}

func (attr *attributes) save(input *os.File) error {
	if err := termios.Tcgetattr(input.Fd(), &attr.canonicalAttr); err != nil {
		return err
	}
	attr.cbreakAttr = attr.canonicalAttr
	termios.Cfmakecbreak(&attr.cbreakAttr)
	return nil
}

func (attr *attributes) cbreak(input *os.File) error {
	return termios.Tcsetattr(input.Fd(), termios.TCIFLUSH, &attr.cbreakAttr)
}

func (attr *attributes) restore(input *os.File) error {
	return termios.Tcsetattr(input.Fd(), termios.TCIFLUSH, &attr.canonicalAttr)
}
