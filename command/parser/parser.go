/*
 * thumbcore - Command parser.
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
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/mbright/thumbcore/board"
	"github.com/mbright/thumbcore/internal/cpu"
)

type cmd struct {
	name    string // Command name.
	min     int    // Minimum match size.
	process func(*cmdLine, *board.Board) (bool, error)
}

type cmdLine struct {
	line string // Current command.
	pos  int    // Position in line.
}

var cmdList = []cmd{
	{name: "step", min: 1, process: step},
	{name: "run", min: 1, process: run},
	{name: "stop", min: 3, process: stop},
	{name: "reset", min: 3, process: reset},
	{name: "registers", min: 3, process: registers},
	{name: "break", min: 2, process: setBreak},
	{name: "mem", min: 1, process: mem},
	{name: "quit", min: 1, process: quit},
}

// ProcessCommand executes one line typed at the console, returning true
// when the console should exit.
func ProcessCommand(commandLine string, b *board.Board) (bool, error) {
	line := cmdLine{line: commandLine}
	command := line.getWord()

	if command == "" {
		return false, nil
	}

	match := matchList(command)
	if len(match) == 0 {
		return false, errors.New("command not found: " + command)
	}

	if len(match) > 1 {
		return false, errors.New("ambiguous command: " + command)
	}

	return match[0].process(&line, b)
}

// CompleteCmd implements liner's completer callback for command names.
func CompleteCmd(commandLine string) []string {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	matches := matchList(name)
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}

// Check if command matches at least to minimum length.
func matchCommand(match cmd, command string) bool {
	if len(command) > len(match.name) {
		return false
	}
	for i := range command {
		if match.name[i] != command[i] {
			return false
		}
	}
	return len(command) >= match.min
}

// Check if command matches one of the commands.
func matchList(command string) []cmd {
	if command == "" {
		return nil
	}
	var match []cmd
	for _, m := range cmdList {
		if matchCommand(m, command) {
			match = append(match, m)
		}
	}
	return match
}

// Skip forward over line until non-whitespace character found.
func (line *cmdLine) skipSpace() {
	for line.pos < len(line.line) && unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
}

// Check if at end of line.
func (line *cmdLine) isEOL() bool {
	return line.pos >= len(line.line)
}

// getWord returns the next space-delimited token, lowercased.
func (line *cmdLine) getWord() string {
	line.skipSpace()
	start := line.pos
	for !line.isEOL() && !unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
	return strings.ToLower(line.line[start:line.pos])
}

func snapshot(b *board.Board) cpu.State {
	reply := make(chan board.Result, 1)
	b.SendCommand(board.Command{Msg: board.MsgSnapshot, Reply: reply})
	return (<-reply).State
}

// Execute exactly one instruction.
func step(_ *cmdLine, b *board.Board) (bool, error) {
	reply := make(chan board.Result, 1)
	b.SendCommand(board.Command{Msg: board.MsgStep, Reply: reply})
	return false, (<-reply).Err
}

// Let the core run free until stopped or a breakpoint hits.
func run(_ *cmdLine, b *board.Board) (bool, error) {
	slog.Info("Command Run")
	b.SendCommand(board.Command{Msg: board.MsgRun})
	return false, nil
}

// Halt free execution.
func stop(_ *cmdLine, b *board.Board) (bool, error) {
	slog.Info("Command Stop")
	b.SendCommand(board.Command{Msg: board.MsgStop})
	return false, nil
}

// Reinstall the core from the vector table.
func reset(_ *cmdLine, b *board.Board) (bool, error) {
	slog.Info("Command Reset")
	reply := make(chan board.Result, 1)
	b.SendCommand(board.Command{Msg: board.MsgReset, Reply: reply})
	return false, (<-reply).Err
}

// Print the register file and condition flags.
func registers(_ *cmdLine, b *board.Board) (bool, error) {
	s := snapshot(b)
	for i := 0; i < 16; i++ {
		fmt.Printf("R%-2d = %#010x\n", i, s.R[i])
	}
	fmt.Printf("CPSR = %#010x  N=%v Z=%v C=%v V=%v\n", s.CPSR, s.N(), s.Z(), s.C(), s.V())
	return false, nil
}

// Arm a PC breakpoint at the given address.
func setBreak(line *cmdLine, b *board.Board) (bool, error) {
	word := line.getWord()
	addr, err := strconv.ParseUint(strings.TrimPrefix(word, "0x"), 16, 32)
	if err != nil {
		return false, fmt.Errorf("break: bad address %q: %w", word, err)
	}
	b.SetBreakpoint(uint32(addr))
	return false, nil
}

// Dump one or more words of memory starting at a given address.
func mem(line *cmdLine, b *board.Board) (bool, error) {
	addrWord := line.getWord()
	addr, err := strconv.ParseUint(strings.TrimPrefix(addrWord, "0x"), 16, 32)
	if err != nil {
		return false, fmt.Errorf("mem: bad address %q: %w", addrWord, err)
	}

	count := uint64(1)
	if lenWord := line.getWord(); lenWord != "" {
		count, err = strconv.ParseUint(lenWord, 10, 32)
		if err != nil {
			return false, fmt.Errorf("mem: bad length %q: %w", lenWord, err)
		}
	}

	for i := uint64(0); i < count; i++ {
		wordAddr := uint32(addr) + uint32(i*4)
		reply := make(chan board.Result, 1)
		b.SendCommand(board.Command{Msg: board.MsgReadWord, Addr: wordAddr, Reply: reply})
		r := <-reply
		if r.Err != nil {
			return false, r.Err
		}
		fmt.Printf("%#010x: %#010x\n", wordAddr, r.Word)
	}
	return false, nil
}

// Exit the console.
func quit(_ *cmdLine, _ *board.Board) (bool, error) {
	slog.Info("Command Quit")
	return true, nil
}
