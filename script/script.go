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

// Package script runs Lua programs against a hardware.System. The global
// functions available to a script have the same names and arguments as the C
// library used on the real hardware:
//
//	cop_ram_seek(address)
//	cop_set_target_x(x)
//	cop_wait_target_y(y)
//	cop_write(register, data)
//	cop_jump(address)
//	vdp_enable_copper(enable)
//	vdp_enable_layers(mask)
//	vdp_set_wide_map_layers(mask)
//	vdp_set_alpha_over_layers(mask)
//	vdp_set_single_palette_color(index, colour)
//	vdp_wait_frame_ended()
//
// Programs for the hardware usually end with a main loop that never exits.
// The FrameLimit field of the Script type sets the number of frames after
// which vdp_wait_frame_ended() ends the script. A script ended in this way
// returns the ScriptEnd error, which should not be treated as a failure.
package script

import (
	"context"

	lua "github.com/yuin/gopher-lua"

	"github.com/jetsetilly/copperbars/curated"
	"github.com/jetsetilly/copperbars/hardware"
	"github.com/jetsetilly/copperbars/hardware/copper/builder"
	"github.com/jetsetilly/copperbars/hardware/copper/memory"
	"github.com/jetsetilly/copperbars/hardware/vdp/palette"
	"github.com/jetsetilly/copperbars/logger"
)

// Error patterns.
const (
	ScriptEnd   = "script: ended after %d frames"
	ScriptError = "script: %v"
)

// Script is a Lua environment bound to a System.
type Script struct {
	sys *hardware.System
	L   *lua.LState

	// the builder is created on first use. the token is replaced whenever
	// the copper has taken the RAM from the host
	b   *builder.Builder
	tok *memory.Token

	// the number of frames after which vdp_wait_frame_ended() ends the
	// script. zero means no limit
	FrameLimit int
	frames     int

	// the script was ended by the frame limit
	ended bool

	// the most recent error from a bound function
	err error
}

// NewScript is the preferred method of initialisation for the Script type.
// The Close() function should be called when the script is no longer needed.
func NewScript(sys *hardware.System) *Script {
	s := &Script{
		sys: sys,
		L:   lua.NewState(),
	}

	for name, fn := range map[string]lua.LGFunction{
		"cop_ram_seek":                 s.copRAMSeek,
		"cop_set_target_x":             s.copSetTargetX,
		"cop_wait_target_y":            s.copWaitTargetY,
		"cop_write":                    s.copWrite,
		"cop_jump":                     s.copJump,
		"vdp_enable_copper":            s.vdpEnableCopper,
		"vdp_enable_layers":            s.vdpEnableLayers,
		"vdp_set_wide_map_layers":      s.vdpSetWideMapLayers,
		"vdp_set_alpha_over_layers":    s.vdpSetAlphaOverLayers,
		"vdp_set_single_palette_color": s.vdpSetSinglePaletteColor,
		"vdp_wait_frame_ended":         s.vdpWaitFrameEnded,
	} {
		s.L.SetGlobal(name, s.L.NewFunction(fn))
	}

	return s
}

// Close the Lua environment.
func (s *Script) Close() {
	s.L.Close()
}

// Frames returns the number of frames that have ended while the script was
// running.
func (s *Script) Frames() int {
	return s.frames
}

// Builder returns the builder used by the script. It will be nil if the
// script has not used any of the cop_ functions.
func (s *Script) Builder() *builder.Builder {
	return s.b
}

// RunString runs the Lua program in source.
func (s *Script) RunString(ctx context.Context, source string) error {
	return s.run(ctx, func() error { return s.L.DoString(source) })
}

// RunFile runs the Lua program in the named file.
func (s *Script) RunFile(ctx context.Context, filename string) error {
	return s.run(ctx, func() error { return s.L.DoFile(filename) })
}

func (s *Script) run(ctx context.Context, do func() error) error {
	s.ended = false
	s.err = nil
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	err := do()
	if err == nil {
		return nil
	}
	if s.ended {
		logger.Logf(logger.Allow, "script", "ended after %d frames", s.frames)
		return curated.Errorf(ScriptEnd, s.frames)
	}
	if s.err != nil {
		return curated.Errorf(ScriptError, s.err)
	}
	return curated.Errorf(ScriptError, err)
}

// raise a Lua error for a failure in a bound function. the Go error is kept
// so that it can be returned by run()
func (s *Script) raise(err error) {
	s.err = err
	s.L.RaiseError("%v", err)
}

// builder returns a builder with a valid write token
func (s *Script) builder() *builder.Builder {
	if s.tok.Valid() {
		return s.b
	}

	tok, err := s.sys.RAM.Acquire()
	if err != nil {
		s.raise(err)
		return nil
	}
	s.tok = tok

	if s.b == nil {
		s.b, err = s.sys.Builder()
		if err != nil {
			s.raise(err)
			return nil
		}
	}
	s.b.Rebind(tok)

	return s.b
}

// checkUint16 returns argument n as a uint16. Values outside of the range
// raise an argument error.
func checkUint16(L *lua.LState, n int) uint16 {
	v := L.CheckInt(n)
	if v < 0 || v > 0xffff {
		L.ArgError(n, "value out of range")
	}
	return uint16(v)
}

// checkEnable accepts a boolean or a number for the enable argument. The C
// library takes a bool so scripts written for it may pass 0 or 1.
func checkEnable(L *lua.LState, n int) bool {
	switch v := L.Get(n).(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		return v != 0
	}
	L.ArgError(n, "boolean expected")
	return false
}

func (s *Script) copRAMSeek(L *lua.LState) int {
	if err := s.builder().Seek(checkUint16(L, 1)); err != nil {
		s.raise(err)
	}
	return 0
}

func (s *Script) copSetTargetX(L *lua.LState) int {
	if err := s.builder().SetTargetX(L.CheckInt(1)); err != nil {
		s.raise(err)
	}
	return 0
}

func (s *Script) copWaitTargetY(L *lua.LState) int {
	if err := s.builder().WaitTargetY(L.CheckInt(1)); err != nil {
		s.raise(err)
	}
	return 0
}

func (s *Script) copWrite(L *lua.LState) int {
	if err := s.builder().Write(checkUint16(L, 1), checkUint16(L, 2)); err != nil {
		s.raise(err)
	}
	return 0
}

func (s *Script) copJump(L *lua.LState) int {
	if err := s.builder().Jump(checkUint16(L, 1)); err != nil {
		s.raise(err)
	}
	return 0
}

func (s *Script) vdpEnableCopper(L *lua.LState) int {
	s.sys.EnableCopper(checkEnable(L, 1))
	return 0
}

func (s *Script) vdpEnableLayers(L *lua.LState) int {
	if err := s.sys.EnableLayers(checkUint16(L, 1)); err != nil {
		s.raise(err)
	}
	return 0
}

func (s *Script) vdpSetWideMapLayers(L *lua.LState) int {
	if err := s.sys.SetWideMapLayers(checkUint16(L, 1)); err != nil {
		s.raise(err)
	}
	return 0
}

func (s *Script) vdpSetAlphaOverLayers(L *lua.LState) int {
	if err := s.sys.SetAlphaOverLayers(checkUint16(L, 1)); err != nil {
		s.raise(err)
	}
	return 0
}

func (s *Script) vdpSetSinglePaletteColor(L *lua.LState) int {
	idx := L.CheckInt(1)
	if idx < 0 || idx >= palette.NumEntries {
		L.ArgError(1, "palette index out of range")
	}
	if err := s.sys.SetSinglePaletteColor(uint8(idx), palette.Colour(checkUint16(L, 2))); err != nil {
		s.raise(err)
	}
	return 0
}

func (s *Script) vdpWaitFrameEnded(L *lua.LState) int {
	if s.FrameLimit > 0 && s.frames >= s.FrameLimit {
		s.ended = true
		L.RaiseError("frame limit")
		return 0
	}
	s.sys.WaitFrameEnded()
	s.frames++
	return 0
}
