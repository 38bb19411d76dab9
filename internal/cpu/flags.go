/*
 * thumbcore - Condition flag computation
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

// setLogical sets N and Z from result, leaving C and V untouched. Used by
// MOV and by LDR's "set N/Z from loaded value".
func (s *State) setLogical(result uint32) {
	s.CPSR = (s.CPSR &^ (flagN | flagZ)) | nzBits(result)
}

// setAdditive sets N, Z, C, V for a 32-bit a+b=result addition. C is an
// unsigned-overflow bit, V a signed-overflow bit; both are cleared before
// being conditionally set so a prior value never leaks through.
func (s *State) setAdditive(a, b, result uint32) {
	flags := nzBits(result)
	if result < a || result < b {
		flags |= flagC
	}
	if ((a^(^b))&(a^result))&0x80000000 != 0 {
		flags |= flagV
	}
	s.CPSR = (s.CPSR &^ flagMask) | flags
}

// setSubtractive sets N, Z, C, V for a 32-bit a-b=result subtraction. C is
// borrow-not: set iff a >= b unsigned. V follows the sign-disagreement test
// for subtraction.
func (s *State) setSubtractive(a, b, result uint32) {
	flags := nzBits(result)
	if a >= b {
		flags |= flagC
	}
	if ((a^b)&(a^result))&0x80000000 != 0 {
		flags |= flagV
	}
	s.CPSR = (s.CPSR &^ flagMask) | flags
}

// nzBits computes the N/Z flag bits for result in isolation.
func nzBits(result uint32) uint32 {
	var flags uint32
	if result == 0 {
		flags |= flagZ
	}
	if result&0x80000000 != 0 {
		flags |= flagN
	}
	return flags
}
