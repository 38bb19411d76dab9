/*
 * thumbcore - Board run loop
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

// Package board wires a cpu.State and a memio.Bus into a runnable unit: a
// goroutine that steps the core, a ticker that feeds SysTick, and a command
// channel that serializes every external request against the single owner
// of the state, the run loop itself.
package board

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mbright/thumbcore/internal/cpu"
	"github.com/mbright/thumbcore/internal/memio"
)

// MsgKind identifies the operation a Command requests of the run loop.
type MsgKind int

const (
	// MsgRun sets the core running free until stopped or a breakpoint hits.
	MsgRun MsgKind = iota
	// MsgStop halts free-run without resetting state.
	MsgStop
	// MsgStep executes exactly one instruction regardless of run state.
	MsgStep
	// MsgReset reinstalls the core from the vector table at address zero.
	MsgReset
	// MsgSysTickPulse advances the SysTick down-counter by one tick.
	MsgSysTickPulse
	// MsgSnapshot requests a copy of the current state on Reply.
	MsgSnapshot
	// MsgReadWord reads one word from the bus at Addr.
	MsgReadWord
	// MsgSetBreak arms a PC-equality breakpoint at Addr.
	MsgSetBreak
	// MsgClearBreak disarms the breakpoint.
	MsgClearBreak
	// MsgConfigureSysTick installs SysTickReload and SysTickEnable into the
	// core's SysTick register.
	MsgConfigureSysTick
)

// Command is a single request delivered to the run loop. Reply, when
// non-nil, receives exactly one Result before the loop processes the next
// command. Addr is only consulted by MsgReadWord and MsgSetBreak;
// SysTickReload and SysTickEnable only by MsgConfigureSysTick.
type Command struct {
	Msg           MsgKind
	Addr          uint32
	SysTickReload uint32
	SysTickEnable bool
	Reply         chan Result
}

// Result carries the outcome of a Command back to its sender.
type Result struct {
	State cpu.State
	Word  uint32
	Err   error
}

// Board owns one cpu.State and the bus backing it, and runs the step loop
// on its own goroutine. All access to State happens from that goroutine;
// every other caller communicates through SendCommand.
type Board struct {
	wg      sync.WaitGroup
	done    chan struct{}
	cmd     chan Command
	running bool

	state      cpu.State
	bus        *memio.Flat
	breakAddr  uint32
	breakSet   bool
	tickPeriod time.Duration
}

// New creates a Board over bus, not yet started. tickPeriod is the wall-clock
// interval between SysTick pulses; callers that drive SysTick manually (for
// example in tests) may pass zero to disable the internal ticker.
func New(bus *memio.Flat, tickPeriod time.Duration) *Board {
	return &Board{
		done:       make(chan struct{}),
		cmd:        make(chan Command, 8),
		bus:        bus,
		tickPeriod: tickPeriod,
	}
}

// Start launches the run loop goroutine. The board begins halted; send
// MsgRun to start free execution.
func (b *Board) Start() error {
	if err := cpu.PowerOnReset(&b.state, b.bus); err != nil {
		return err
	}
	b.wg.Add(1)
	go b.run()
	return nil
}

// Stop signals the run loop to exit and waits up to one second for it to
// finish, logging a warning if it does not.
func (b *Board) Stop() {
	close(b.done)
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-time.After(time.Second):
		slog.Warn("board: timed out waiting for run loop to finish")
		return
	}
}

// SendCommand delivers cmd to the run loop. Callers needing a result should
// set cmd.Reply and read exactly one Result from it afterward.
func (b *Board) SendCommand(cmd Command) {
	b.cmd <- cmd
}

// SetBreakpoint arms a PC-equality breakpoint that halts free-run. The
// change is delivered through the command channel like every other
// mutation, so it never touches breakAddr/breakSet from a foreign goroutine.
func (b *Board) SetBreakpoint(addr uint32) {
	b.SendCommand(Command{Msg: MsgSetBreak, Addr: addr})
}

// ClearBreakpoint disarms the breakpoint.
func (b *Board) ClearBreakpoint() {
	b.SendCommand(Command{Msg: MsgClearBreak})
}

// ConfigureSysTick installs reload as both the reload value and the current
// count, and sets the enable bit per enable. Like SetBreakpoint, the change
// is delivered through the command channel rather than writing b.state
// directly.
func (b *Board) ConfigureSysTick(reload uint32, enable bool) {
	b.SendCommand(Command{Msg: MsgConfigureSysTick, SysTickReload: reload, SysTickEnable: enable})
}

func (b *Board) run() {
	defer b.wg.Done()

	var ticker *time.Ticker
	var tickC <-chan time.Time
	if b.tickPeriod > 0 {
		ticker = time.NewTicker(b.tickPeriod)
		defer ticker.Stop()
		tickC = ticker.C
	}

	for {
		select {
		case <-b.done:
			slog.Info("board: run loop shutting down")
			return
		case cmd := <-b.cmd:
			b.handle(cmd)
		case <-tickC:
			if err := b.state.SysTickTick(b.bus); err != nil {
				slog.Error("board: systick fault", "err", err)
				b.running = false
			}
		default:
			if b.running {
				b.stepOnce()
			}
		}
	}
}

func (b *Board) stepOnce() {
	if err := b.state.Step(b.bus); err != nil {
		slog.Error("board: step fault", "err", err)
		b.running = false
		return
	}
	if b.breakSet && b.state.R[cpu.PC] == b.breakAddr {
		slog.Info("board: breakpoint hit", "pc", b.state.R[cpu.PC])
		b.running = false
	}
}

func (b *Board) handle(cmd Command) {
	var result Result
	switch cmd.Msg {
	case MsgRun:
		b.running = true
	case MsgStop:
		b.running = false
	case MsgStep:
		b.running = false
		b.stepOnce()
	case MsgReset:
		result.Err = cpu.PowerOnReset(&b.state, b.bus)
		b.running = false
	case MsgSysTickPulse:
		result.Err = b.state.SysTickTick(b.bus)
	case MsgSnapshot:
		// No-op beyond the state copy below.
	case MsgReadWord:
		result.Word, result.Err = memio.ReadWord(b.bus, cmd.Addr)
	case MsgSetBreak:
		b.breakAddr = cmd.Addr
		b.breakSet = true
	case MsgClearBreak:
		b.breakSet = false
	case MsgConfigureSysTick:
		b.state.SysTick.Reload = cmd.SysTickReload
		b.state.SysTick.Current = cmd.SysTickReload
		if cmd.SysTickEnable {
			b.state.SysTick.Ctrl = 1
		} else {
			b.state.SysTick.Ctrl = 0
		}
	}
	result.State = b.state
	if cmd.Reply != nil {
		cmd.Reply <- result
	}
}
