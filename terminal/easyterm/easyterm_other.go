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

//go:build !unix

package easyterm

import (
	"os"
)

// terminal modes are not supported on this platform
type attributes struct{}

func (attr *attributes) save(_ *os.File) error {
	return nil
}

func (attr *attributes) cbreak(_ *os.File) error {
	return nil
}

func (attr *attributes) restore(_ *os.File) error {
	return nil
}
