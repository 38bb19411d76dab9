/*
 * thumbcore - Board configuration file parser
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

// Package boardconfig parses the line-oriented board configuration file:
// one directive per line, '#' starts a comment that runs to end of line,
// blank lines are ignored.
//
//	memsize <size>[K|M]
//	load <hexaddr> <path>
//	vector <n> <hexaddr>
//	systick <reload> [enable|disable]
//	log <level>
//	break <hexaddr>
package boardconfig

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/mbright/thumbcore/internal/loader"
)

// Config is the parsed result of a board configuration file.
type Config struct {
	MemSize       uint32
	Images        []loader.Image
	Vectors       map[uint32]uint32
	SysTickReload uint32
	SysTickEnable bool
	LogLevel      string
	Breakpoints   []uint32
}

type optionLine struct {
	line string
	pos  int
	num  int
}

// Load reads and parses the configuration file at name.
func Load(name string) (*Config, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := &Config{
		MemSize: 64 * 1024,
		Vectors: make(map[uint32]uint32),
	}

	reader := bufio.NewReader(file)
	lineNum := 0
	for {
		raw, err := reader.ReadString('\n')
		lineNum++
		if len(raw) == 0 && err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		line := &optionLine{line: raw, num: lineNum}
		if perr := line.parseInto(cfg); perr != nil {
			return nil, perr
		}
	}
	return cfg, nil
}

func (l *optionLine) parseInto(cfg *Config) error {
	l.skipSpace()
	if l.isEOL() {
		return nil
	}

	keyword := l.word()
	switch strings.ToLower(keyword) {
	case "memsize":
		size, err := l.parseSize()
		if err != nil {
			return l.errf("memsize: %v", err)
		}
		cfg.MemSize = size

	case "load":
		addr, err := l.parseHex()
		if err != nil {
			return l.errf("load: bad address: %v", err)
		}
		path := l.restOfLine()
		if path == "" {
			return l.errf("load: missing path")
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return l.errf("load: %v", err)
		}
		cfg.Images = append(cfg.Images, loader.Image{Addr: addr, Data: data})

	case "vector":
		n, err := l.parseHex()
		if err != nil {
			return l.errf("vector: bad index: %v", err)
		}
		addr, err := l.parseHex()
		if err != nil {
			return l.errf("vector: bad address: %v", err)
		}
		cfg.Vectors[n] = addr

	case "systick":
		reload, err := l.parseHex()
		if err != nil {
			return l.errf("systick: bad reload: %v", err)
		}
		cfg.SysTickReload = reload
		l.skipSpace()
		switch strings.ToLower(l.word()) {
		case "enable", "":
			cfg.SysTickEnable = true
		case "disable":
			cfg.SysTickEnable = false
		default:
			return l.errf("systick: expected enable or disable")
		}

	case "log":
		cfg.LogLevel = strings.ToLower(l.restOfLine())

	case "break":
		addr, err := l.parseHex()
		if err != nil {
			return l.errf("break: bad address: %v", err)
		}
		cfg.Breakpoints = append(cfg.Breakpoints, addr)

	default:
		return l.errf("unknown directive %q", keyword)
	}
	return nil
}

func (l *optionLine) errf(format string, args ...any) error {
	return fmt.Errorf("boardconfig: line %d: %s", l.num, fmt.Sprintf(format, args...))
}

func (l *optionLine) skipSpace() {
	for l.pos < len(l.line) && unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
}

func (l *optionLine) isEOL() bool {
	return l.pos >= len(l.line) || l.line[l.pos] == '#'
}

// word consumes and returns a run of letters, digits, and the characters
// '_', '.', '/', '\\', ':' and '-'.
func (l *optionLine) word() string {
	start := l.pos
	for l.pos < len(l.line) {
		c := rune(l.line[l.pos])
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' || c == '.' || c == '/' || c == '\\' || c == ':' || c == '-' {
			l.pos++
			continue
		}
		break
	}
	return l.line[start:l.pos]
}

func (l *optionLine) parseHex() (uint32, error) {
	l.skipSpace()
	tok := l.word()
	if tok == "" {
		return 0, errors.New("missing value")
	}
	tok = strings.TrimPrefix(strings.TrimPrefix(tok, "0x"), "0X")
	v, err := strconv.ParseUint(tok, 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

func (l *optionLine) parseSize() (uint32, error) {
	l.skipSpace()
	tok := l.word()
	if tok == "" {
		return 0, errors.New("missing value")
	}
	mult := uint64(1)
	switch tok[len(tok)-1] {
	case 'K', 'k':
		mult = 1024
		tok = tok[:len(tok)-1]
	case 'M', 'm':
		mult = 1024 * 1024
		tok = tok[:len(tok)-1]
	}
	v, err := strconv.ParseUint(tok, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v * mult), nil
}

func (l *optionLine) restOfLine() string {
	l.skipSpace()
	start := l.pos
	for l.pos < len(l.line) && l.line[l.pos] != '#' && l.line[l.pos] != '\n' && l.line[l.pos] != '\r' {
		l.pos++
	}
	return strings.TrimSpace(l.line[start:l.pos])
}
