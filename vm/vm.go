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

package vm

import (
	"io"
	"strconv"

	"github.com/db47h/hackasm/internal/hio"
	"github.com/pkg/errors"
)

// Word is the raw type stored in a memory location or ROM slot.
type Word uint16

// Memory map.
const (
	SP   = 0 // stack pointer
	LCL  = 1 // local segment base
	ARG  = 2 // argument segment base
	THIS = 3 // this segment base
	THAT = 4 // that segment base

	// Registers R0 to R15 map to addresses 0 to 15.
	Registers = 16

	// VarBase is the first general purpose data address. The assembler
	// allocates variables from there.
	VarBase = 16

	Screen   = 16384 // screen memory map base
	Keyboard = 24576 // keyboard input address

	// MemSize is the size of the address space reachable through A.
	MemSize = 32768
)

// Instance represents a Hack CPU with its data memory and instruction ROM.
type Instance struct {
	PC       int    // Program Counter
	A        Word   // address register
	D        Word   // data register
	RAM      []Word // data memory
	ROM      []Word // instruction memory
	insCount int64
	halted   bool
}

// Option interface
type Option func(*Instance) error

// RAMSize sets the data memory size. Existing memory contents are preserved
// up to the new size. The default is MemSize words.
func RAMSize(size int) Option {
	return func(i *Instance) error {
		if size <= 0 || size > MemSize {
			return errors.Errorf("RAM size %d out of range [1, %d]", size, MemSize)
		}
		t := make([]Word, size)
		copy(t, i.RAM)
		i.RAM = t
		return nil
	}
}

// Poke stores v at the given RAM address. It is mostly useful to set up
// program input before running it.
func Poke(addr int, v Word) Option {
	return func(i *Instance) error {
		if addr < 0 || addr >= len(i.RAM) {
			return errors.Errorf("Poke: address %d out of range", addr)
		}
		i.RAM[addr] = v
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Hack CPU instance that will execute the given program.
// Options will be set by calling SetOptions.
func New(rom []Word, opts ...Option) (*Instance, error) {
	i := &Instance{
		RAM: make([]Word, MemSize),
		ROM: rom,
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Halted reports whether the last Run stopped on a halt loop, i.e. an
// unconditional jump to the A instruction right before it.
func (i *Instance) Halted() bool {
	return i.halted
}

// Dump writes the CPU registers followed by the first n RAM cells to the
// specified io.Writer.
func (i *Instance) Dump(w io.Writer, n int) error {
	ew := hio.NewErrWriter(w)
	io.WriteString(ew, "PC: "+strconv.Itoa(i.PC))
	io.WriteString(ew, " A: "+strconv.Itoa(int(int16(i.A))))
	io.WriteString(ew, " D: "+strconv.Itoa(int(int16(i.D)))+"\n")
	if n > len(i.RAM) {
		n = len(i.RAM)
	}
	for a := 0; a < n; a++ {
		io.WriteString(ew, "RAM["+strconv.Itoa(a)+"]: "+strconv.Itoa(int(int16(i.RAM[a])))+"\n")
	}
	return ew.Err
}
