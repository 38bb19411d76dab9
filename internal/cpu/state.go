/*
 * thumbcore - CPU register file and reset
 *
 * Copyright 2026, thumbcore contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package cpu implements the Thumb-1 microcontroller core: register file,
// condition flags, instruction decode/execute, vector-driven exception
// entry, and the SysTick down-counter. The core is a value-owned state
// machine; all memory is external, reached through the memio.Bus the
// caller supplies to every entry point.
package cpu

import (
	"errors"

	"github.com/mbright/thumbcore/internal/memio"
)

// Register indices with architectural meaning. 0-7 are the Thumb-1 "low
// registers" addressable by every opcode in the decode table, including the
// PUSH/POP register lists; 8-12 are plain storage that no decoded opcode
// reads or writes.
const (
	SP = 13
	LR = 14
	PC = 15
)

// CPSR flag bit positions, per the packed record spec.md requires be
// observable at the boundary: N=31, Z=30, C=29, V=28. Bits 0..27 are
// reserved and must survive every flag-updating write untouched.
const (
	flagN uint32 = 1 << 31
	flagZ uint32 = 1 << 30
	flagC uint32 = 1 << 29
	flagV uint32 = 1 << 28

	flagMask = flagN | flagZ | flagC | flagV
)

// ErrInvalidState is returned when a memory backend refuses an access the
// core cannot recover from: a vector-table read at power-on reset, the
// handler-address read during exception entry, or a memory error while
// pushing an exception frame. The caller's CPU state may
// be left partially modified per spec.md's partial-side-effect notes; it
// must not be used for further stepping without an explicit reset.
var ErrInvalidState = errors.New("cpu: invalid state")

// ErrUnsupported is reserved for a future status the core does not return
// today.
var ErrUnsupported = errors.New("cpu: unsupported")

// SysTick is the down-counter sub-record. Only bit 0 of Ctrl (systickEnable)
// is interpreted.
type SysTick struct {
	Ctrl    uint32
	Reload  uint32
	Current uint32
}

const systickEnable uint32 = 1

// State is the complete architectural state of one core: the 16-slot
// register file, the packed condition flags, and the SysTick sub-record.
// It is a plain value type with no hidden references, so callers may copy,
// snapshot, or restore it freely; the core performs no concurrent access to
// a given State.
type State struct {
	R       [16]uint32
	CPSR    uint32
	SysTick SysTick
}

// N reports the negative flag.
func (s *State) N() bool { return s.CPSR&flagN != 0 }

// Z reports the zero flag.
func (s *State) Z() bool { return s.CPSR&flagZ != 0 }

// C reports the carry flag.
func (s *State) C() bool { return s.CPSR&flagC != 0 }

// V reports the overflow flag.
func (s *State) V() bool { return s.CPSR&flagV != 0 }

// setPC writes pc into the PC slot, clearing bit 0 per the Thumb
// state-bit convention; the stored PC is always halfword-aligned.
func (s *State) setPC(pc uint32) {
	s.R[PC] = pc &^ 1
}

// Reset zeroes all registers, then installs pc and sp, clears CPSR, and
// clears the SysTick sub-record. It never fails.
func (s *State) Reset(pc, sp uint32) {
	*s = State{}
	s.R[SP] = sp
	s.setPC(pc)
}

// PowerOnReset reads the initial SP from address 0 and the initial PC from
// address 4 of the vector table, then resets to them. If either read fails
// the state is left untouched and ErrInvalidState is returned.
func PowerOnReset(s *State, bus memio.WordAccessor) error {
	var sp, pc uint32
	if err := bus.AccessWord(0x00000000, &sp, false); err != nil {
		return ErrInvalidState
	}
	if err := bus.AccessWord(0x00000004, &pc, false); err != nil {
		return ErrInvalidState
	}
	s.Reset(pc, sp)
	return nil
}
