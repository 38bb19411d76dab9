/*
 * thumbcore - Flat reference memory backend
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

package memio

import "errors"

// ErrOutOfRange is returned by Flat when an access falls outside the backing
// array, or inside a configured fault window.
var ErrOutOfRange = errors.New("address out of range")

// Flat is a reference Bus backed by a flat byte slice, little-endian for
// both halfword and word accesses. Memory is an instance value rather than
// package-level state, so independent cores (and concurrent tests) never
// share it.
type Flat struct {
	data []byte

	// faultLo/faultHi describe a half-open address range, [faultLo, faultHi),
	// on which every access fails with ErrOutOfRange regardless of whether
	// it falls inside data. Used to model a bus that rejects a specific
	// peripheral or unmapped window, per spec.md Scenario 5 (LDR memory
	// failure).
	faultLo, faultHi uint32
	faulting         bool
}

// NewFlat allocates a Flat backed by size bytes, all zeroed.
func NewFlat(size uint32) *Flat {
	return &Flat{data: make([]byte, size)}
}

// SetFaultRange configures a half-open address range that always fails.
// Passing hi <= lo clears the fault range.
func (f *Flat) SetFaultRange(lo, hi uint32) {
	f.faultLo, f.faultHi = lo, hi
	f.faulting = hi > lo
}

func (f *Flat) inFaultRange(addr uint32) bool {
	return f.faulting && addr >= f.faultLo && addr < f.faultHi
}

// Load copies src into the backing array starting at addr. It bypasses the
// fault range but not the bounds: an image that would run past the end of
// the array is rejected with ErrOutOfRange and nothing is copied. It exists
// for loader use, not for simulated CPU accesses.
func (f *Flat) Load(addr uint32, src []byte) error {
	end := uint64(addr) + uint64(len(src))
	if end > uint64(len(f.data)) {
		return ErrOutOfRange
	}
	copy(f.data[addr:], src)
	return nil
}

// FetchHalfword implements HalfwordFetcher.
func (f *Flat) FetchHalfword(addr uint32) (uint16, error) {
	if f.inFaultRange(addr) {
		return 0, &Error{Addr: addr, Op: "fetch", Err: ErrOutOfRange}
	}
	if uint64(addr)+2 > uint64(len(f.data)) {
		return 0, &Error{Addr: addr, Op: "fetch", Err: ErrOutOfRange}
	}
	return uint16(f.data[addr]) | uint16(f.data[addr+1])<<8, nil
}

// AccessWord implements WordAccessor.
func (f *Flat) AccessWord(addr uint32, word *uint32, write bool) error {
	if f.inFaultRange(addr) {
		return &Error{Addr: addr, Op: accessOp(write), Err: ErrOutOfRange}
	}
	if uint64(addr)+4 > uint64(len(f.data)) {
		return &Error{Addr: addr, Op: accessOp(write), Err: ErrOutOfRange}
	}
	if write {
		v := *word
		f.data[addr] = byte(v)
		f.data[addr+1] = byte(v >> 8)
		f.data[addr+2] = byte(v >> 16)
		f.data[addr+3] = byte(v >> 24)
		return nil
	}
	*word = uint32(f.data[addr]) | uint32(f.data[addr+1])<<8 |
		uint32(f.data[addr+2])<<16 | uint32(f.data[addr+3])<<24
	return nil
}

func accessOp(write bool) string {
	if write {
		return "store"
	}
	return "load"
}
