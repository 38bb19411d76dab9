/*
 * thumbcore - SysTick down-counter
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

// SysTickTick advances the down-counter by one call. If disabled it is a
// no-op. A current value of zero reloads and fires vector 15 on the same
// call that observes the zero, rather than on the call after — so a
// freshly enabled counter preloaded to its reload value counts all the way
// down before the first fire.
func (s *State) SysTickTick(bus memio.Bus) error {
	if s.SysTick.Ctrl&systickEnable == 0 {
		return nil
	}

	if s.SysTick.Current == 0 {
		s.SysTick.Current = s.SysTick.Reload
		return s.Exception(bus, VectorSysTick)
	}

	s.SysTick.Current--
	return nil
}
