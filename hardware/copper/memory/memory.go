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

// Package memory implements the copper RAM. The RAM is a fixed number of 16
// bit words. It is written by the host and read by the copper.
//
// There are no locks protecting the RAM. Instead, ownership of the RAM is
// transferred between the host and the hardware. While the RAM is owned by
// the host, a write Token can be acquired with Acquire() and that token
// must be presented with every write. When the copper is enabled the RAM is
// handed over to the hardware and all outstanding tokens are revoked. When
// the copper is disabled the RAM is reclaimed by the host, at which point a
// new token must be acquired.
//
// Reading the RAM is always allowed.
package memory

import (
	"sync/atomic"

	"github.com/jetsetilly/copperbars/curated"
)

// DefaultSize is the number of words in the copper RAM of the VDP.
const DefaultSize = 2048

// Error patterns.
const (
	OutOfRange    = "copper ram: out of range: address %#04x (size %d)"
	TokenRevoked  = "copper ram: write token not valid"
	HardwareOwned = "copper ram: owned by hardware"
	InvalidSize   = "copper ram: invalid size (%d)"
)

// Token is the capability to write to the copper RAM.
type Token struct {
	ram        *RAM
	generation uint32
}

// Valid returns true if the token can be used to write to the RAM.
func (tok *Token) Valid() bool {
	if tok == nil || tok.ram == nil {
		return false
	}
	return !tok.ram.hardware.Load() && tok.ram.generation.Load() == tok.generation
}

// RAM is the copper memory.
type RAM struct {
	words []uint16

	// the generation number increases every time the RAM is handed over to
	// the hardware. tokens from an earlier generation are no longer valid
	generation atomic.Uint32

	// whether the RAM is owned by the hardware
	hardware atomic.Bool
}

// NewRAM is the preferred method of initialisation for the RAM type. Size
// must be between 1 and 16384 words, the limit of the copper's address
// space.
func NewRAM(size int) (*RAM, error) {
	if size <= 0 || size > 0x4000 {
		return nil, curated.Errorf(InvalidSize, size)
	}
	return &RAM{
		words: make([]uint16, size),
	}, nil
}

// Size returns the number of words in the RAM.
func (ram *RAM) Size() int {
	return len(ram.words)
}

// Acquire a write token. Fails if the RAM is owned by the hardware.
func (ram *RAM) Acquire() (*Token, error) {
	if ram.hardware.Load() {
		return nil, curated.Errorf(HardwareOwned)
	}
	return &Token{ram: ram, generation: ram.generation.Load()}, nil
}

// HandOver the RAM to the hardware. All outstanding tokens are revoked.
func (ram *RAM) HandOver() {
	ram.generation.Add(1)
	ram.hardware.Store(true)
}

// Reclaim the RAM from the hardware. Tokens revoked by HandOver() remain
// revoked.
func (ram *RAM) Reclaim() {
	ram.hardware.Store(false)
}

// HardwareOwned returns true if the RAM is currently owned by the hardware.
func (ram *RAM) HardwareOwned() bool {
	return ram.hardware.Load()
}

func (ram *RAM) checkToken(tok *Token) error {
	if tok == nil || tok.ram != ram || !tok.Valid() {
		return curated.Errorf(TokenRevoked)
	}
	return nil
}

// Write word to address. The token must be valid.
func (ram *RAM) Write(tok *Token, address uint16, word uint16) error {
	if err := ram.checkToken(tok); err != nil {
		return err
	}
	if int(address) >= len(ram.words) {
		return curated.Errorf(OutOfRange, address, len(ram.words))
	}
	ram.words[address] = word
	return nil
}

// Clear all words in the RAM. The token must be valid.
func (ram *RAM) Clear(tok *Token) error {
	if err := ram.checkToken(tok); err != nil {
		return err
	}
	clear(ram.words)
	return nil
}

// Read word at address. This is the read path used by the copper.
func (ram *RAM) Read(address uint16) (uint16, error) {
	if int(address) >= len(ram.words) {
		return 0, curated.Errorf(OutOfRange, address, len(ram.words))
	}
	return ram.words[address], nil
}

// Peek is the same as Read() but returns zero for an out of range address.
// Used by the disassembler.
func (ram *RAM) Peek(address uint16) uint16 {
	if int(address) >= len(ram.words) {
		return 0
	}
	return ram.words[address]
}
