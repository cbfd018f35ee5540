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

// Package hardware is the base package for the VDP model. The System type
// ties together the raster beam, the copper RAM, the copper execution engine
// and the VDP control plane.
//
// A System can be driven in two ways. In stepped mode nothing moves unless
// the host moves it, with Step(), StepTo() or WaitFrameEnded(). This is how
// tests and the trace tools drive the model and the result is entirely
// deterministic.
//
// In free-running mode the Run() function advances the raster at the pace
// dictated by a Pacer (see the limiter package) and WaitFrameEnded() blocks
// until the driver reaches the end of the frame.
//
// In both modes a single mutex, the bus, serialises access to the VDP. The
// host functions of the System type acquire the bus for the duration of the
// call. The VDP and copper fields of the System should not be used directly
// while the System is running.
//
// There is no package level state and any number of System instances can
// exist at once.
package hardware
