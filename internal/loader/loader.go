/*
 * thumbcore - Image loader
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

// Package loader places a raw Thumb program image and its vector table
// into a memio.Bus ahead of power-on reset. It does no parsing of
// instruction text: a code image at a fixed address, and the two
// mandatory vector slots power-on reset reads.
package loader

import (
	"errors"
	"fmt"

	"github.com/mbright/thumbcore/internal/memio"
)

// ErrImageTooLarge is returned when an image does not fit the target bus.
var ErrImageTooLarge = errors.New("loader: image does not fit target memory")

// Image describes one contiguous load at a fixed address.
type Image struct {
	Addr uint32
	Data []byte
}

// Load writes every Image into bus in order. Later images may overlap
// earlier ones; the caller is responsible for non-overlapping layout.
func Load(bus *memio.Flat, images []Image) error {
	for _, img := range images {
		if err := bus.Load(img.Addr, img.Data); err != nil {
			return fmt.Errorf("loader: loading image at %#08x: %w", img.Addr, err)
		}
	}
	return nil
}

// SetVector writes addr into vector slot n of the vector table at address
// zero. Vector 0 is the initial SP, vector 1 the initial PC; the rest are
// exception handler entry points indexed the way cpu.Exception reads them.
func SetVector(bus *memio.Flat, n uint32, addr uint32) error {
	if err := memio.WriteWord(bus, n*4, addr); err != nil {
		return fmt.Errorf("loader: setting vector %d: %w", n, err)
	}
	return nil
}

// PowerOnVectorTable installs the two vectors cpu.PowerOnReset requires:
// the initial stack pointer and the initial program counter.
func PowerOnVectorTable(bus *memio.Flat, sp, pc uint32) error {
	if err := SetVector(bus, 0, sp); err != nil {
		return err
	}
	return SetVector(bus, 1, pc)
}
