/*
 * thumbcore - Condition flag computation test cases.
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

import "testing"

func TestSetAdditiveFlags(t *testing.T) {
	cases := []struct {
		name          string
		a, b          uint32
		wantN, wantZ  bool
		wantC, wantV  bool
	}{
		{"zero result", 0, 0, false, true, false, false},
		{"simple positive", 1, 1, false, false, false, false},
		{"unsigned overflow", 0xFFFFFFFF, 2, false, false, true, false},
		{"signed overflow", 0x7FFFFFFF, 1, true, false, false, true},
		{"negative result no overflow", 0xFFFFFFFF, 0, true, false, false, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var s State
			result := c.a + c.b
			s.setAdditive(c.a, c.b, result)
			if s.N() != c.wantN || s.Z() != c.wantZ || s.C() != c.wantC || s.V() != c.wantV {
				t.Errorf("flags = N:%v Z:%v C:%v V:%v, want N:%v Z:%v C:%v V:%v",
					s.N(), s.Z(), s.C(), s.V(), c.wantN, c.wantZ, c.wantC, c.wantV)
			}
		})
	}
}

func TestSetSubtractiveFlags(t *testing.T) {
	cases := []struct {
		name         string
		a, b         uint32
		wantN, wantZ bool
		wantC, wantV bool
	}{
		{"equal operands", 5, 5, false, true, true, false},
		{"no borrow", 5, 3, false, false, true, false},
		{"borrow", 3, 5, true, false, false, false},
		{"signed overflow", 0x80000000, 1, false, false, true, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var s State
			result := c.a - c.b
			s.setSubtractive(c.a, c.b, result)
			if s.N() != c.wantN || s.Z() != c.wantZ || s.C() != c.wantC || s.V() != c.wantV {
				t.Errorf("flags = N:%v Z:%v C:%v V:%v, want N:%v Z:%v C:%v V:%v",
					s.N(), s.Z(), s.C(), s.V(), c.wantN, c.wantZ, c.wantC, c.wantV)
			}
		})
	}
}

func TestSetLogicalPreservesCarryAndOverflow(t *testing.T) {
	var s State
	s.CPSR = flagC | flagV
	s.setLogical(0)
	if !s.C() || !s.V() {
		t.Errorf("setLogical cleared C/V: CPSR=%#x", s.CPSR)
	}
	if !s.Z() || s.N() {
		t.Errorf("setLogical(0): Z=%v N=%v, want Z=true N=false", s.Z(), s.N())
	}
}

func TestFlagUpdatePreservesReservedBits(t *testing.T) {
	var s State
	s.CPSR = 0x0000BEEF
	s.setAdditive(1, 1, 2)
	if s.CPSR&^flagMask != 0x0000BEEF {
		t.Errorf("reserved bits = %#x, want 0x0000BEEF", s.CPSR&^flagMask)
	}
}
