/*
 * thumbcore - Main process.
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

package main

import (
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	getopt "github.com/pborman/getopt/v2"

	"github.com/mbright/thumbcore/board"
	"github.com/mbright/thumbcore/command/reader"
	"github.com/mbright/thumbcore/config/boardconfig"
	"github.com/mbright/thumbcore/internal/loader"
	"github.com/mbright/thumbcore/internal/memio"
	logger "github.com/mbright/thumbcore/util/logger"
)

var Logger *slog.Logger

func main() {
	optConfig := getopt.StringLong("config", 'c', "board.cfg", "Board configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optInteractive := getopt.BoolLong("interactive", 'i', "Start an interactive console instead of free-running")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var out io.Writer
	if optLogFile != nil && *optLogFile != "" {
		file, err := os.Create(*optLogFile)
		if err != nil {
			slog.Error("cannot create log file", "path", *optLogFile, "err", err)
			os.Exit(1)
		}
		out = file
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelInfo)
	Logger = slog.New(logger.NewHandler(out, &slog.HandlerOptions{Level: programLevel, AddSource: false}, false))
	slog.SetDefault(Logger)

	Logger.Info("thumbcore started")

	if optConfig == nil || *optConfig == "" {
		Logger.Error("please specify a board configuration file")
		os.Exit(1)
	}

	if _, err := os.Stat(*optConfig); os.IsNotExist(err) {
		Logger.Error("configuration file can't be found", "path", *optConfig)
		os.Exit(1)
	}

	cfg, err := boardconfig.Load(*optConfig)
	if err != nil {
		Logger.Error(err.Error())
		os.Exit(1)
	}
	if cfg.LogLevel != "" {
		applyLogLevel(programLevel, cfg.LogLevel)
	}

	bus := memio.NewFlat(cfg.MemSize)
	if err := loader.Load(bus, cfg.Images); err != nil {
		Logger.Error(err.Error())
		os.Exit(1)
	}
	for n, addr := range cfg.Vectors {
		if err := loader.SetVector(bus, n, addr); err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
	}

	tickPeriod := time.Duration(0)
	if cfg.SysTickEnable && cfg.SysTickReload > 0 {
		tickPeriod = time.Millisecond
	}

	b := board.New(bus, tickPeriod)
	if err := b.Start(); err != nil {
		Logger.Error(err.Error())
		os.Exit(1)
	}
	b.ConfigureSysTick(cfg.SysTickReload, cfg.SysTickEnable)
	for _, addr := range cfg.Breakpoints {
		b.SetBreakpoint(addr)
	}

	if *optInteractive {
		reader.ConsoleReader(b)
		Logger.Info("shutting down board")
		b.Stop()
		return
	}

	b.SendCommand(board.Command{Msg: board.MsgRun})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	Logger.Info("shutting down board")
	b.Stop()
}

func applyLogLevel(level *slog.LevelVar, name string) {
	switch name {
	case "debug":
		level.Set(slog.LevelDebug)
	case "info":
		level.Set(slog.LevelInfo)
	case "warn":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	}
}
