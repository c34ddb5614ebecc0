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
	"strconv"
	"strings"

	"github.com/db47h/hackasm/vm"
)

// Address literal range: 15 bits two's complement.
const (
	MinAddress = -1 << 14
	MaxAddress = 1<<14 - 1
)

// Sentinel replaces the binary form of instructions that failed to assemble.
var Sentinel = strings.Repeat("-", vm.WordBits)

const (
	computePrefix vm.Word = 0xE000
	addrMask      vm.Word = 0x7FFF
)

// a bit and c1-c6 bits
var comps = map[string]vm.Word{
	"0":   0b0101010,
	"1":   0b0111111,
	"-1":  0b0111010,
	"D":   0b0001100,
	"A":   0b0110000,
	"!D":  0b0001101,
	"!A":  0b0110001,
	"-D":  0b0001111,
	"-A":  0b0110011,
	"D+1": 0b0011111,
	"A+1": 0b0110111,
	"D-1": 0b0001110,
	"A-1": 0b0110010,
	"D+A": 0b0000010,
	"D-A": 0b0010011,
	"A-D": 0b0000111,
	"D&A": 0b0000000,
	"D|A": 0b0010101,
	"M":   0b1110000,
	"!M":  0b1110001,
	"-M":  0b1110011,
	"M+1": 0b1110111,
	"M-1": 0b1110010,
	"D+M": 0b1000010,
	"D-M": 0b1010011,
	"M-D": 0b1000111,
	"D&M": 0b1000000,
	"D|M": 0b1010101,
}

var dests = map[string]vm.Word{
	"":    0b000,
	"M":   0b001,
	"D":   0b010,
	"MD":  0b011,
	"A":   0b100,
	"AM":  0b101,
	"AD":  0b110,
	"AMD": 0b111,
}

var jumps = map[string]vm.Word{
	"":    0b000,
	"JGT": 0b001,
	"JEQ": 0b010,
	"JGE": 0b011,
	"JLT": 0b100,
	"JNE": 0b101,
	"JLE": 0b110,
	"JMP": 0b111,
}

func (l *Line) err(addr int, kind ErrorKind, token string) *Error {
	return &Error{l.Pos, addr, kind, token}
}

// encode returns the machine code for l, which is to be placed at address
// addr. All faulty fields are reported.
func (l *Line) encode(addr int) (vm.Word, ErrAsm) {
	switch l.Kind {
	case Address:
		if !IsNumeric(l.Ref) {
			return 0, ErrAsm{l.err(addr, Unresolved, l.Ref)}
		}
		v, err := strconv.ParseInt(l.Ref, 10, 64)
		if err != nil || v < MinAddress || v > MaxAddress {
			return 0, ErrAsm{l.err(addr, AddressRange, l.Ref)}
		}
		return vm.Word(v) & addrMask, nil
	case Compute:
		var errs ErrAsm
		c, ok := comps[l.Comp]
		if !ok {
			errs = append(errs, l.err(addr, BadComp, l.Comp))
		}
		d, ok := dests[l.Dest]
		if !ok {
			errs = append(errs, l.err(addr, BadDest, l.Dest))
		}
		j, ok := jumps[l.Jump]
		if !ok {
			errs = append(errs, l.err(addr, BadJump, l.Jump))
		}
		if errs != nil {
			return 0, errs
		}
		return computePrefix | c<<6 | d<<3 | j, nil
	case Label:
		return 0, ErrAsm{l.err(addr, Syntax, l.String())}
	}
	return 0, ErrAsm{l.err(addr, Syntax, l.Name)}
}

// Encode returns the machine code for l. The returned error is an *Error, or
// an ErrAsm if more than one field of a compute instruction is faulty.
//
// Address instructions must hold an integer literal (see AllocateVariables).
// Label declarations cannot be encoded.
func (l Line) Encode() (vm.Word, error) {
	w, errs := l.encode(0)
	return w, errs.err()
}

// Output is the result of encoding a single instruction.
type Output struct {
	Line Line // resolved source line
	Addr int
	Word vm.Word
	Errs ErrAsm // nil on success
}

// OK returns true if the instruction was successfully encoded.
func (o *Output) OK() bool {
	return len(o.Errs) == 0
}

// String returns the binary form of the instruction or Sentinel if it failed
// to encode.
func (o *Output) String() string {
	if !o.OK() {
		return Sentinel
	}
	return o.Word.String()
}

// Encode encodes every line in p, the instruction at index i being placed at
// address i. A faulty line does not stop encoding.
func Encode(p Program) []Output {
	out := make([]Output, len(p))
	for i := range p {
		w, errs := p[i].encode(i)
		out[i] = Output{p[i], i, w, errs}
	}
	return out
}
