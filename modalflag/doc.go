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

// Package modalflag handles command line arguments arranged as a series of
// modes, each with their own flags. For example:
//
//	copperbars -log TRACE -frames 2 -spec 640x480
//
// The top-level flags (-log) are parsed first, followed by the mode (TRACE)
// and then the flags of that mode (-frames and -spec).
//
// The idiomatic usage is:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "TRACE")
//	echo := md.AddBool("log", false, "echo log to stdout")
//
//	p, err := md.Parse()
//	switch p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
//	switch md.Mode() {
//	case "TRACE":
//		md.NewMode()
//		frames := md.AddInt("frames", 1, "number of frames")
//		...
//	}
//
// The first sub-mode in the list is the default mode. Mode names are case
// insensitive.
package modalflag
