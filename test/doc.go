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

// Package test contains helper functions to remove common boilerplate from
// tests.
//
// The Expect functions report a failure with t.Errorf() and return a boolean
// indicating whether the expectation was met. The Demand functions are the
// same but fail with t.Fatalf(), for when the rest of the test depends on
// the value being correct.
//
// Success and failure are decided by the type of the value being tested:
//
//	bool: true is success, false is failure
//	error: nil is success, non-nil is failure
//	nil: is success
//
// Any other type is a fatal test error.
package test
