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

// Package logger is the central log for the emulation. Hardware models have
// no other way of reporting unusual conditions, so anything worth knowing
// about that is not an error is logged here.
//
// Entries are a tag and a detail string. The tag is usually the name of the
// package or sub-system making the entry. Repeated entries are collapsed
// into a single entry with a repeat count.
//
// A Permission value must be supplied with every log request. The Allow
// value can be used when logging should always happen.
package logger
