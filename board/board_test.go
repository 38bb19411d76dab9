/*
 * thumbcore - Board run loop test cases
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

package board

import (
	"testing"
	"time"

	"github.com/mbright/thumbcore/internal/cpu"
	"github.com/mbright/thumbcore/internal/loader"
	"github.com/mbright/thumbcore/internal/memio"
)

func newTestBoard(t *testing.T) *Board {
	t.Helper()
	bus := memio.NewFlat(0x10000)
	if err := loader.PowerOnVectorTable(bus, 0x20001000, 0x1000); err != nil {
		t.Fatalf("vector table: %v", err)
	}
	// MOV R0,#5 ; ADD R0,#1 ; (loop back not needed for these tests)
	if err := loader.Load(bus, []loader.Image{
		{Addr: 0x1000, Data: []byte{0x05, 0x20, 0x01, 0x30}},
	}); err != nil {
		t.Fatalf("load: %v", err)
	}

	b := New(bus, 0)
	if err := b.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(b.Stop)
	return b
}

func snapshot(t *testing.T, b *Board) Result {
	t.Helper()
	reply := make(chan Result, 1)
	b.SendCommand(Command{Msg: MsgSnapshot, Reply: reply})
	select {
	case r := <-reply:
		return r
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
	return Result{}
}

func TestBoardStepExecutesOneInstruction(t *testing.T) {
	b := newTestBoard(t)

	reply := make(chan Result, 1)
	b.SendCommand(Command{Msg: MsgStep, Reply: reply})
	r := <-reply
	if r.Err != nil {
		t.Fatalf("step: %v", r.Err)
	}
	if r.State.R[0] != 5 || r.State.R[cpu.PC] != 0x1002 {
		t.Errorf("R0=%d PC=%#x, want R0=5 PC=0x1002", r.State.R[0], r.State.R[cpu.PC])
	}
}

func TestBoardRunAndStopViaBreakpoint(t *testing.T) {
	b := newTestBoard(t)
	b.SetBreakpoint(0x1004)

	b.SendCommand(Command{Msg: MsgRun})

	deadline := time.After(2 * time.Second)
	for {
		r := snapshot(t, b)
		if r.State.R[cpu.PC] == 0x1004 {
			if r.State.R[0] != 6 {
				t.Errorf("R0 = %d, want 6", r.State.R[0])
			}
			return
		}
		select {
		case <-deadline:
			t.Fatal("breakpoint never hit")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestBoardReadWord(t *testing.T) {
	b := newTestBoard(t)

	reply := make(chan Result, 1)
	b.SendCommand(Command{Msg: MsgReadWord, Addr: 0x1000, Reply: reply})
	r := <-reply
	if r.Err != nil {
		t.Fatalf("read word: %v", r.Err)
	}
	if r.Word != 0x30012005 {
		t.Errorf("Word = %#010x, want %#010x", r.Word, 0x30012005)
	}
}

func TestBoardReadWordOutOfRangeFails(t *testing.T) {
	b := newTestBoard(t)

	reply := make(chan Result, 1)
	b.SendCommand(Command{Msg: MsgReadWord, Addr: 0xFFFFFFF0, Reply: reply})
	r := <-reply
	if r.Err == nil {
		t.Fatal("expected error reading out-of-range address")
	}
}

func TestBoardConfigureSysTickFiresVector(t *testing.T) {
	bus := memio.NewFlat(0x10000)
	// The stack must lie inside the bus: firing vector 15 pushes an
	// eight-word frame below SP.
	if err := loader.PowerOnVectorTable(bus, 0x8000, 0x1000); err != nil {
		t.Fatalf("vector table: %v", err)
	}
	if err := loader.SetVector(bus, cpu.VectorSysTick, 0x2000); err != nil {
		t.Fatalf("systick vector: %v", err)
	}

	b := New(bus, 0)
	if err := b.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(b.Stop)

	b.ConfigureSysTick(2, true)

	var r Result
	for i := 0; i < 3; i++ {
		reply := make(chan Result, 1)
		b.SendCommand(Command{Msg: MsgSysTickPulse, Reply: reply})
		r = <-reply
		if r.Err != nil {
			t.Fatalf("systick pulse %d: %v", i, r.Err)
		}
	}
	if r.State.R[cpu.PC] != 0x2000 {
		t.Errorf("PC = %#x after reload ticks, want handler at 0x2000", r.State.R[cpu.PC])
	}
	if r.State.SysTick.Current != 2 {
		t.Errorf("SysTick.Current = %d, want reload value 2 after fire", r.State.SysTick.Current)
	}
}

func TestBoardConfigureSysTickDisabledIsNoop(t *testing.T) {
	b := newTestBoard(t)
	b.ConfigureSysTick(2, false)

	reply := make(chan Result, 1)
	b.SendCommand(Command{Msg: MsgSysTickPulse, Reply: reply})
	r := <-reply
	if r.Err != nil {
		t.Fatalf("systick pulse: %v", r.Err)
	}
	if r.State.R[cpu.PC] != 0x1000 {
		t.Errorf("PC = %#x, want unchanged 0x1000 while SysTick disabled", r.State.R[cpu.PC])
	}
}

func TestBoardResetReinstallsVectors(t *testing.T) {
	b := newTestBoard(t)

	reply := make(chan Result, 1)
	b.SendCommand(Command{Msg: MsgStep, Reply: reply})
	<-reply

	reply = make(chan Result, 1)
	b.SendCommand(Command{Msg: MsgReset, Reply: reply})
	r := <-reply
	if r.Err != nil {
		t.Fatalf("reset: %v", r.Err)
	}
	if r.State.R[cpu.PC] != 0x1000 || r.State.R[0] != 0 {
		t.Errorf("PC=%#x R0=%d, want PC=0x1000 R0=0 after reset", r.State.R[cpu.PC], r.State.R[0])
	}
}
