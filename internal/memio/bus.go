/*
 * thumbcore - Memory capability contract
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

// Package memio defines the memory capability contract the CPU core
// consumes and a reference flat-array implementation of it.
//
// The core never owns memory. Every entry point into package cpu takes a
// Bus supplied by the embedder, so the same core can run against a plain
// byte array in tests, a memory-mapped peripheral set in a real board, or a
// faulting stub that exercises the HardFault paths.
package memio

import "fmt"

// HalfwordFetcher yields the 16-bit little-endian halfword at addr, for
// instruction fetch.
type HalfwordFetcher interface {
	FetchHalfword(addr uint32) (uint16, error)
}

// WordAccessor performs a 32-bit little-endian load or store. write selects
// the direction: true writes *word to addr, false reads addr into *word.
type WordAccessor interface {
	AccessWord(addr uint32, word *uint32, write bool) error
}

// Bus is the full capability set the core requires: halfword fetch for
// instructions, word access for data, PUSH/POP, and exception frames.
type Bus interface {
	HalfwordFetcher
	WordAccessor
}

// ReadWord is a convenience wrapper around AccessWord for loads.
func ReadWord(bus WordAccessor, addr uint32) (uint32, error) {
	var word uint32
	if err := bus.AccessWord(addr, &word, false); err != nil {
		return 0, err
	}
	return word, nil
}

// WriteWord is a convenience wrapper around AccessWord for stores.
func WriteWord(bus WordAccessor, addr uint32, word uint32) error {
	return bus.AccessWord(addr, &word, true)
}

// Error reports a failed memory access at a given address, without
// reinterpreting the backend's underlying cause per the core's
// distinguish-OK-from-not-OK contract.
type Error struct {
	Addr uint32
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("memio: %s at %#08x: %v", e.Op, e.Addr, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
