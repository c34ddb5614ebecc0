// This file is part of hackasm - https://github.com/db47h/hackasm
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/db47h/hackasm/asm"
	"github.com/db47h/hackasm/internal/hio"
	"github.com/db47h/hackasm/report"
	"github.com/db47h/hackasm/vm"
	"github.com/k0kubun/pp/v3"
	"github.com/pkg/errors"
	"github.com/tebeka/atexit"
)

// exit codes
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type logFormat string

func (f *logFormat) String() string { return string(*f) }
func (f *logFormat) Set(s string) error {
	switch s {
	case "text", "json":
		*f = logFormat(s)
		return nil
	default:
		return errors.Errorf("unsupported log format %q", s)
	}
}
func (f *logFormat) Get() interface{} { return *f }

type config struct {
	strict     bool
	symbols    bool
	disasm     bool
	debug      bool
	cycles     int
	reportFile string
	format     logFormat
	input      string
	output     string
	log        *slog.Logger
	stdout     io.Writer
	stderr     io.Writer
}

func newLogger(w io.Writer, format logFormat, debug bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
	}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseArgs(args []string, stdout, stderr io.Writer) (*config, error) {
	c := &config{format: "text", stdout: stdout, stderr: stderr}

	fs := flag.NewFlagSet("hackasm", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: hackasm [flags] input output\n")
		fs.PrintDefaults()
	}
	fs.BoolVar(&c.strict, "strict", false, "exit with status 1 if any instruction failed to assemble")
	fs.StringVar(&c.reportFile, "report", "", "save an assembly report in YAML format to `filename`")
	fs.BoolVar(&c.symbols, "symbols", false, "print failures and the symbol table to stdout")
	fs.BoolVar(&c.disasm, "d", false, "disassemble a .hack file instead of assembling")
	fs.IntVar(&c.cycles, "run", 0, "run the program for at most `n` cycles and dump the CPU state")
	fs.BoolVar(&c.debug, "debug", false, "enable debug diagnostics")
	fs.Var(&c.format, "log", "log `format`: text or json")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return nil, errors.New("expected input and output file names")
	}
	if c.cycles < 0 {
		return nil, errors.Errorf("invalid cycle count %d", c.cycles)
	}
	c.input, c.output = fs.Arg(0), fs.Arg(1)
	c.log = newLogger(stderr, c.format, c.debug)
	return c, nil
}

// createFile calls fn with a new file and returns the first error of fn or
// closing the file.
func createFile(name string, fn func(w io.Writer) error) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if e := f.Close(); e != nil && err == nil {
			err = e
		}
	}()
	w := bufio.NewWriter(f)
	if err = fn(w); err != nil {
		return err
	}
	return w.Flush()
}

func assemble(c *config) ([]vm.Word, error) {
	f, err := os.Open(c.input)
	if err != nil {
		return nil, err
	}
	lines, err := hio.ReadLines(f)
	f.Close()
	if err != nil {
		return nil, errors.Wrap(err, c.input)
	}

	res := asm.Translate(c.input, lines, asm.Logger(c.log))
	if c.debug {
		pp.Fprintf(c.stderr, "%v\n", res.Program.Text())
	}
	if err = createFile(c.output, res.Save); err != nil {
		return nil, errors.Wrap(err, c.output)
	}

	rep := report.New(res)
	if c.reportFile != "" {
		if err = rep.Save(c.reportFile); err != nil {
			return nil, err
		}
	}
	if c.symbols {
		if err = rep.WriteTable(c.stdout); err != nil {
			return nil, err
		}
	}
	c.log.Info("assembled", "input", c.input, "output", c.output,
		"instructions", rep.Instructions, "failed", rep.Failed, "warnings", rep.Warnings)

	if !rep.OK() {
		if c.strict {
			return nil, errors.Errorf("%s: %d instructions failed to assemble", c.input, rep.Failed)
		}
		return nil, nil
	}
	rom := make([]vm.Word, len(res.Outputs))
	for i := range res.Outputs {
		rom[i] = res.Outputs[i].Word
	}
	return rom, nil
}

func disassemble(c *config) ([]vm.Word, error) {
	f, err := os.Open(c.input)
	if err != nil {
		return nil, err
	}
	rom, err := vm.Load(f)
	f.Close()
	if err != nil {
		return nil, errors.Wrap(err, c.input)
	}
	err = createFile(c.output, func(w io.Writer) error {
		return asm.DisassembleAll(rom, 0, w)
	})
	if err != nil {
		return nil, errors.Wrap(err, c.output)
	}
	c.log.Info("disassembled", "input", c.input, "output", c.output, "instructions", len(rom))
	return rom, nil
}

func execute(c *config, rom []vm.Word) error {
	i, err := vm.New(rom)
	if err != nil {
		return err
	}
	n, err := i.Run(c.cycles)
	switch {
	case err == vm.ErrCycleLimit:
		c.log.Warn("cycle limit reached", "cycles", n)
	case err != nil:
		return err
	}
	return dumpVM(i, c.stdout)
}

func run(args []string, stdout, stderr io.Writer) int {
	c, err := parseArgs(args, stdout, stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return exitOK
		}
		fmt.Fprintf(stderr, "%v\n", err)
		return exitUsage
	}

	var rom []vm.Word
	if c.disasm {
		rom, err = disassemble(c)
	} else {
		rom, err = assemble(c)
	}
	if err == nil && c.cycles > 0 {
		if rom == nil {
			c.log.Warn("program has errors, not running it")
		} else {
			err = execute(c, rom)
		}
	}
	if err != nil {
		if c.debug {
			fmt.Fprintf(stderr, "%+v\n", err)
		} else {
			fmt.Fprintf(stderr, "%v\n", err)
		}
		return exitError
	}
	return exitOK
}

func main() {
	stdout := bufio.NewWriter(os.Stdout)
	atexit.Register(func() { stdout.Flush() })
	atexit.Exit(run(os.Args[1:], stdout, os.Stderr))
}
