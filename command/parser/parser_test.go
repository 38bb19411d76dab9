/*
 * thumbcore - Command parser test cases.
 *
 * Copyright 2024, Richard Cornwell
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

package parser

import (
	"testing"
	"time"

	"github.com/mbright/thumbcore/board"
	"github.com/mbright/thumbcore/internal/loader"
	"github.com/mbright/thumbcore/internal/memio"
)

func newTestBoard(t *testing.T) *board.Board {
	t.Helper()
	bus := memio.NewFlat(0x10000)
	if err := loader.PowerOnVectorTable(bus, 0x20001000, 0x1000); err != nil {
		t.Fatalf("vector table: %v", err)
	}
	if err := loader.Load(bus, []loader.Image{
		{Addr: 0x1000, Data: []byte{0x05, 0x20}},
	}); err != nil {
		t.Fatalf("load: %v", err)
	}
	b := board.New(bus, 0)
	if err := b.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(b.Stop)
	return b
}

func TestProcessCommandStep(t *testing.T) {
	b := newTestBoard(t)
	quit, err := ProcessCommand("step", b)
	if err != nil {
		t.Fatalf("ProcessCommand: %v", err)
	}
	if quit {
		t.Error("step should not quit the console")
	}
}

func TestProcessCommandAbbreviation(t *testing.T) {
	b := newTestBoard(t)
	quit, err := ProcessCommand("s", b)
	if err != nil {
		t.Fatalf("ProcessCommand: %v", err)
	}
	if quit {
		t.Error("'s' uniquely matches step, should not quit")
	}
}

func TestProcessCommandUnknown(t *testing.T) {
	b := newTestBoard(t)
	_, err := ProcessCommand("frobnicate", b)
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
}

func TestProcessCommandQuit(t *testing.T) {
	b := newTestBoard(t)
	quit, err := ProcessCommand("quit", b)
	if err != nil {
		t.Fatalf("ProcessCommand: %v", err)
	}
	if !quit {
		t.Error("quit should request console exit")
	}
}

func TestProcessCommandEmptyLine(t *testing.T) {
	b := newTestBoard(t)
	quit, err := ProcessCommand("   ", b)
	if err != nil || quit {
		t.Errorf("blank line should be a silent no-op, got quit=%v err=%v", quit, err)
	}
}

func TestSetBreakAndRunStops(t *testing.T) {
	b := newTestBoard(t)
	if _, err := ProcessCommand("break 1002", b); err != nil {
		t.Fatalf("break: %v", err)
	}
	if _, err := ProcessCommand("run", b); err != nil {
		t.Fatalf("run: %v", err)
	}

	reply := make(chan board.Result, 1)
	deadline := time.After(time.Second)
	for {
		b.SendCommand(board.Command{Msg: board.MsgSnapshot, Reply: reply})
		r := <-reply
		if r.State.R[15] == 0x1002 {
			return
		}
		select {
		case <-deadline:
			t.Fatal("breakpoint never reached")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestProcessCommandMemReadsWord(t *testing.T) {
	b := newTestBoard(t)
	quit, err := ProcessCommand("mem 1000", b)
	if err != nil {
		t.Fatalf("ProcessCommand: %v", err)
	}
	if quit {
		t.Error("mem should not quit the console")
	}
}

func TestProcessCommandMemRejectsBadAddress(t *testing.T) {
	b := newTestBoard(t)
	if _, err := ProcessCommand("mem zz", b); err == nil {
		t.Fatal("expected error for malformed address")
	}
}

func TestCompleteCmd(t *testing.T) {
	// "reset" and "registers" both require at least 3 characters before
	// they become valid abbreviations, so a single "r" only matches "run".
	matches := CompleteCmd("r")
	if len(matches) != 1 || matches[0] != "run" {
		t.Fatalf("matches = %v, want [run]", matches)
	}

	matches = CompleteCmd("re")
	if len(matches) != 0 {
		t.Fatalf("matches = %v, want none ('re' is shorter than reset/registers' min)", matches)
	}
}
