/*
 * thumbcore - Opcode decode table
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

package cpu

import "github.com/mbright/thumbcore/internal/memio"

// Opcode fixed-bit patterns. Each entry matches when (op & mask) == val;
// the table is tried in order and the first match wins, per spec.md's
// first-match-wins rule for overlapping patterns.
//
// addReg/subReg use a 7-bit selector (bits 15..9) rather than the 5-bit
// family selector used by the immediate forms below: their register
// fields (rn, rs, rd) only occupy bits 8..0, so bits 10 and 9 are part of
// the fixed opcode and must be included in the mask for the two patterns
// to be distinguishable and reachable at all — a 5-bit selector would
// make the add/sub register forms collide.
const (
	maskAddSubReg uint16 = 0xFE00
	valAddReg     uint16 = 0x1800
	valSubReg     uint16 = 0x1C00

	maskImm8 uint16 = 0xF800
	valMov   uint16 = 0x2000
	valAddI  uint16 = 0x3000
	valSubI  uint16 = 0x3800

	maskLoadStore uint16 = 0xF800
	valStr        uint16 = 0x6000
	valLdr        uint16 = 0x6800

	maskListOp uint16 = 0xFF00
	valPush    uint16 = 0xB400
	valPop     uint16 = 0xBC00
	valSvc     uint16 = 0xDF00
)

// Vector numbers this core dispatches on.
const (
	VectorHardFault uint32 = 3
	VectorSVC       uint32 = 11
	VectorSysTick   uint32 = 15
)

// Step advances the core by one instruction: it fetches the halfword at
// the current PC, advances PC past it, then decodes and executes. A fetch
// failure or an unrecognized opcode takes HardFault; a decoded
// instruction's own memory faults are handled per its row in spec.md's
// opcode table. Step returns an error only for the unrecoverable cases
// described by Exception (ErrInvalidState from a failed vector read or frame
// push) and for a failed STR, whose bus error is returned unchanged.
func (s *State) Step(bus memio.Bus) error {
	pc := s.R[PC]

	op, err := bus.FetchHalfword(pc)
	if err != nil {
		return s.Exception(bus, VectorHardFault)
	}

	s.setPC(pc + 2)

	return s.execute(bus, op)
}

func (s *State) execute(bus memio.Bus, op uint16) error {
	switch {
	case op&maskAddSubReg == valAddReg:
		return s.opAddReg(op)
	case op&maskAddSubReg == valSubReg:
		return s.opSubReg(op)
	case op&maskImm8 == valMov:
		return s.opMovImm(op)
	case op&maskImm8 == valAddI:
		return s.opAddImm(op)
	case op&maskImm8 == valSubI:
		return s.opSubImm(op)
	case op&maskLoadStore == valStr:
		return s.opStr(bus, op)
	case op&maskLoadStore == valLdr:
		return s.opLdr(bus, op)
	case op&maskListOp == valPush:
		return s.opPush(bus, op)
	case op&maskListOp == valPop:
		return s.opPop(bus, op)
	case op&maskListOp == valSvc:
		return s.Exception(bus, VectorSVC)
	default:
		return s.Exception(bus, VectorHardFault)
	}
}
