/*
 * thumbcore - Per-instruction execution
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

// opAddReg implements ADD Rd, Rs, Rn: Rd <- Rs + Rn.
func (s *State) opAddReg(op uint16) error {
	rn := (op >> 6) & 0x7
	rs := (op >> 3) & 0x7
	rd := op & 0x7

	a, b := s.R[rs], s.R[rn]
	result := a + b
	s.R[rd] = result
	s.setAdditive(a, b, result)
	return nil
}

// opSubReg implements SUB Rd, Rs, Rn: Rd <- Rs - Rn.
func (s *State) opSubReg(op uint16) error {
	rn := (op >> 6) & 0x7
	rs := (op >> 3) & 0x7
	rd := op & 0x7

	a, b := s.R[rs], s.R[rn]
	result := a - b
	s.R[rd] = result
	s.setSubtractive(a, b, result)
	return nil
}

// opMovImm implements MOV Rd, #imm8.
func (s *State) opMovImm(op uint16) error {
	rd := (op >> 8) & 0x7
	imm := uint32(op & 0xFF)

	s.R[rd] = imm
	s.setLogical(imm)
	return nil
}

// opAddImm implements ADD Rd, #imm8: Rd <- Rd + imm.
func (s *State) opAddImm(op uint16) error {
	rd := (op >> 8) & 0x7
	imm := uint32(op & 0xFF)

	a := s.R[rd]
	result := a + imm
	s.R[rd] = result
	s.setAdditive(a, imm, result)
	return nil
}

// opSubImm implements SUB Rd, #imm8: Rd <- Rd - imm.
func (s *State) opSubImm(op uint16) error {
	rd := (op >> 8) & 0x7
	imm := uint32(op & 0xFF)

	a := s.R[rd]
	result := a - imm
	s.R[rd] = result
	s.setSubtractive(a, imm, result)
	return nil
}

// opStr implements STR Rd, [Rn, Rm]. The memory backend's status is
// returned verbatim: no fault entry on error, per spec.md's deliberate
// STR/LDR asymmetry.
func (s *State) opStr(bus memio.Bus, op uint16) error {
	rm := (op >> 6) & 0x7
	rn := (op >> 3) & 0x7
	rd := op & 0x7

	addr := s.R[rn] + s.R[rm]
	word := s.R[rd]
	return bus.AccessWord(addr, &word, true)
}

// opLdr implements LDR Rd, [Rn, Rm]. A memory error here folds into
// HardFault rather than propagating, unlike opStr.
func (s *State) opLdr(bus memio.Bus, op uint16) error {
	rm := (op >> 6) & 0x7
	rn := (op >> 3) & 0x7
	rd := op & 0x7

	addr := s.R[rn] + s.R[rm]
	var word uint32
	if err := bus.AccessWord(addr, &word, false); err != nil {
		return s.Exception(bus, VectorHardFault)
	}
	s.R[rd] = word
	s.setLogical(word)
	return nil
}

// opPush implements PUSH {Rlist}. On a memory error mid-list it takes
// HardFault with SP left at its partially-decremented position.
func (s *State) opPush(bus memio.Bus, op uint16) error {
	list := uint8(op)
	for i := 7; i >= 0; i-- {
		if list&(1<<uint(i)) == 0 {
			continue
		}
		s.R[SP] -= 4
		word := s.R[i]
		if err := bus.AccessWord(s.R[SP], &word, true); err != nil {
			return s.Exception(bus, VectorHardFault)
		}
	}
	return nil
}

// opPop implements POP {Rlist}. On a memory error mid-list it takes
// HardFault with SP left at its partially-incremented position.
func (s *State) opPop(bus memio.Bus, op uint16) error {
	list := uint8(op)
	for i := 0; i <= 7; i++ {
		if list&(1<<uint(i)) == 0 {
			continue
		}
		var word uint32
		if err := bus.AccessWord(s.R[SP], &word, false); err != nil {
			return s.Exception(bus, VectorHardFault)
		}
		s.R[i] = word
		s.R[SP] += 4
	}
	return nil
}
