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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface and are created with the
// Errorf() function. The formatting pattern passed to Errorf() identifies
// the error and can be tested for with the Is() and Has() functions:
//
//	e := curated.Errorf("builder: out of range: %v", addr)
//
//	if curated.Is(e, "builder: out of range: %v") {
//		fmt.Println("true")
//	}
//
// Packages normally export the patterns they use so that callers do not
// need to repeat the pattern string:
//
//	if curated.Has(err, memory.TokenRevoked) {
//		...
//	}
//
// Has() differs from Is() in that it searches the entire error chain. A
// curated error that wraps another curated error (as a formatting value)
// "has" the pattern of the inner error but "is" only its own pattern.
//
// The Error() function de-duplicates adjacent parts of the error message.
// This means that wrapping an error with the same prefix as the wrapped
// error does not produce a stuttering message:
//
//	e := curated.Errorf("copper: %v", curated.Errorf("copper: runaway"))
//	fmt.Println(e) // "copper: runaway"
//
// Curated errors also implement Unwrap() so that the errors package of the
// standard library can see through them to any uncurated error they wrap.
package curated
