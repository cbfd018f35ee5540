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

package curated_test

import (
	"errors"
	"io"
	"testing"

	"github.com/jetsetilly/copperbars/curated"
	"github.com/jetsetilly/copperbars/test"
)

const testPattern = "test: %v"
const wrapPattern = "wrap: %v"

func TestIs(t *testing.T) {
	e := curated.Errorf(testPattern, 10)
	test.ExpectSuccess(t, curated.IsAny(e))
	test.ExpectSuccess(t, curated.Is(e, testPattern))
	test.ExpectFailure(t, curated.Is(e, wrapPattern))
	test.ExpectEquality(t, e.Error(), "test: 10")

	test.ExpectFailure(t, curated.IsAny(nil))
	test.ExpectFailure(t, curated.IsAny(io.EOF))
}

func TestHas(t *testing.T) {
	e := curated.Errorf(testPattern, 10)
	f := curated.Errorf(wrapPattern, e)
	test.ExpectFailure(t, curated.Is(f, testPattern))
	test.ExpectSuccess(t, curated.Has(f, testPattern))
	test.ExpectSuccess(t, curated.Has(f, wrapPattern))
	test.ExpectEquality(t, f.Error(), "wrap: test: 10")
}

func TestDuplicateParts(t *testing.T) {
	e := curated.Errorf("copper: runaway")
	f := curated.Errorf("copper: %v", e)
	test.ExpectEquality(t, f.Error(), "copper: runaway")
}

func TestUnwrap(t *testing.T) {
	e := curated.Errorf(wrapPattern, io.EOF)
	test.ExpectSuccess(t, errors.Is(e, io.EOF))
}
