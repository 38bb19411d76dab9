/*
 * thumbcore - Vector-driven exception entry
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

// frameSentinel fills every exception-frame slot except the one carrying
// LR. The frame is a fixed-size placeholder, not the real ARMv6-M layout,
// so handler code observes a known stack shape regardless of which
// vector fired.
const frameSentinel uint32 = 0xDEADBEEF

// frameLRSlot is the index, counting from the top of the eight-word frame
// (slot 0 is pushed last, ending up closest to the new SP), that carries
// the LR value at entry.
const frameLRSlot = 6

// Exception performs vector-driven exception entry: it looks up the
// handler address at vector*4, pushes the eight-word simplified frame, and
// redirects PC to the handler. A memory error at either step returns
// ErrInvalidState without recursing into another exception entry, per
// spec.md's no-double-fault rule; SP and any partially-written frame slots
// are left exactly where the failing access found them.
func (s *State) Exception(bus memio.Bus, vector uint32) error {
	vectorAddr := vector * 4

	var handler uint32
	if err := bus.AccessWord(vectorAddr, &handler, false); err != nil {
		return ErrInvalidState
	}

	lr := s.R[LR]
	for i := 7; i >= 0; i-- {
		value := frameSentinel
		if i == frameLRSlot {
			value = lr
		}
		s.R[SP] -= 4
		if err := bus.AccessWord(s.R[SP], &value, true); err != nil {
			return ErrInvalidState
		}
	}

	s.setPC(handler)
	return nil
}
