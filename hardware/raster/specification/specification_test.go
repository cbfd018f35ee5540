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

package specification_test

import (
	"testing"

	"github.com/jetsetilly/copperbars/hardware/raster/specification"
	"github.com/jetsetilly/copperbars/test"
)

func TestSearch(t *testing.T) {
	spec, err := specification.SearchSpec("848X480")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, spec.ID, "848x480")

	spec, err = specification.SearchSpec("")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, spec.ID, "848x480")

	spec, err = specification.SearchSpec("640x480")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, spec.ClksScanline, 800)

	_, err = specification.SearchSpec("320x200")
	test.ExpectFailure(t, err)
}

func TestRange(t *testing.T) {
	spec := specification.Spec848x480

	// the raster covers more than the active area
	test.ExpectSuccess(t, spec.ValidX(spec.ActiveWidth))
	test.ExpectSuccess(t, spec.ValidX(spec.ClksScanline-1))
	test.ExpectFailure(t, spec.ValidX(spec.ClksScanline))
	test.ExpectFailure(t, spec.ValidX(-1))

	test.ExpectSuccess(t, spec.ValidY(spec.ScanlinesTotal-1))
	test.ExpectFailure(t, spec.ValidY(spec.ScanlinesTotal))

	test.ExpectEquality(t, spec.ClksFrame(), 1088*517)
}
