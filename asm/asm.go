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

package asm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/db47h/hackasm/internal/hio"
	"github.com/db47h/hackasm/vm"
	"github.com/pkg/errors"
)

type translator struct {
	log *slog.Logger
}

// Option configures Translate and Assemble.
type Option func(*translator)

// Logger sets the logger used to report faulty lines and pass statistics.
// By default, nothing is logged.
func Logger(l *slog.Logger) Option {
	return func(t *translator) { t.log = l }
}

// Result holds everything a translation produced.
type Result struct {
	Name    string
	Program Program  // resolved program, one line per instruction
	Outputs []Output // encoded instructions, Outputs[i] at address i
	Symbols *SymbolTable
	Errors  ErrAsm // warnings and failures, in pipeline order
}

// Code returns the binary form of every instruction, with Sentinel in place
// of those that failed.
func (r *Result) Code() []string {
	s := make([]string, len(r.Outputs))
	for i := range r.Outputs {
		s[i] = r.Outputs[i].String()
	}
	return s
}

// Failed returns the number of instructions that failed to encode.
func (r *Result) Failed() int {
	n := 0
	for i := range r.Outputs {
		if !r.Outputs[i].OK() {
			n++
		}
	}
	return n
}

// Err returns an ErrAsm listing all errors, warnings excluded, or nil if
// every instruction was encoded.
func (r *Result) Err() error {
	var errs ErrAsm
	for _, e := range r.Errors {
		if !e.Warning() {
			errs = append(errs, e)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Save writes the binary form of the program to w, one instruction per line.
func (r *Result) Save(w io.Writer) error {
	return hio.WriteLines(w, r.Code())
}

func (t *translator) report(errs ErrAsm) {
	for _, e := range errs {
		lvl := slog.LevelError
		if e.Warning() {
			lvl = slog.LevelWarn
		}
		t.log.Log(context.Background(), lvl, e.Kind.String(),
			"pos", e.Pos.String(), "addr", e.Addr, "token", e.Token)
	}
}

// Translate assembles the given source lines. It always returns a complete
// Result: faulty instructions are reported in Result.Errors and replaced by
// Sentinel in Result.Code. The name parameter is used in error positions.
func Translate(name string, lines []string, opts ...Option) *Result {
	t := &translator{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(t)
	}

	st := NewSymbolTable()
	p := Normalize(name, lines)
	t.log.Debug("normalized", "name", name, "source", len(lines), "lines", len(p))

	p, errs := ResolveLabels(p, st)
	t.report(errs)
	t.log.Debug("labels resolved", "name", name, "instructions", len(p), "symbols", st.Len())

	p = AllocateVariables(p, st)
	t.log.Debug("variables allocated", "name", name, "symbols", st.Len())

	r := &Result{
		Name:    name,
		Program: p,
		Outputs: Encode(p),
		Symbols: st,
		Errors:  errs,
	}
	for i := range r.Outputs {
		t.report(r.Outputs[i].Errs)
		r.Errors = append(r.Errors, r.Outputs[i].Errs...)
	}
	t.log.Debug("encoded", "name", name, "instructions", len(r.Outputs), "failed", r.Failed())
	return r
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// binary form of each instruction.
//
// The name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// Faulty instructions do not stop assembly: code is always complete, with
// Sentinel in place of faulty instructions, and the returned error, if not
// nil, is an ErrAsm listing them. Read errors are returned as is, with a nil
// code.
func Assemble(name string, r io.Reader, opts ...Option) (code []string, err error) {
	lines, err := hio.ReadLines(r)
	if err != nil {
		return nil, errors.Wrapf(err, "Assemble %s", name)
	}
	res := Translate(name, lines, opts...)
	return res.Code(), res.Err()
}

var (
	compNames = reverse(comps)
	destNames = reverse(dests)
	jumpNames = reverse(jumps)
)

func reverse(m map[string]vm.Word) map[vm.Word]string {
	r := make(map[vm.Word]string, len(m))
	for k, v := range m {
		r[v] = k
	}
	return r
}

// Disassemble returns the assembly form of the given instruction. Address
// literals are shown as signed 15 bits values. Unknown computation bits are
// shown as "???".
func Disassemble(w vm.Word) string {
	if w&0x8000 == 0 {
		v := int(w & addrMask)
		if v > MaxAddress {
			v -= 1 << 15
		}
		return "@" + strconv.Itoa(v)
	}
	comp, ok := compNames[(w>>6)&0x7F]
	if !ok {
		comp = "???"
	}
	l := Line{Kind: Compute, Comp: comp, Dest: destNames[(w>>3)&7], Jump: jumpNames[w&7]}
	return l.String()
}

// DisassembleAll writes a disassembly of all words in the given slice to
// the specified io.Writer. Each instruction is followed by a comment holding
// its address, so that the output can be assembled again. The base argument
// specifies the real address of the first word (code[0]). It will return any
// write error.
func DisassembleAll(code []vm.Word, base int, w io.Writer) error {
	ew := hio.NewErrWriter(w)
	for pc := range code {
		fmt.Fprintf(ew, "%-16s// %d\n", Disassemble(code[pc]), base+pc)
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
