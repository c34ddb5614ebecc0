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

import "github.com/pkg/errors"

// ErrCycleLimit is returned by Run when the cycle budget is exhausted before
// the program halts.
var ErrCycleLimit = errors.New("cycle limit reached")

// Instruction fields.
const (
	insCompute = 0x8000 // set for compute instructions
	insA       = 0x1000 // comp reads M instead of A
	destA      = 0x0020
	destD      = 0x0010
	destM      = 0x0008
	jmpLT      = 0x0004
	jmpEQ      = 0x0002
	jmpGT      = 0x0001
	jmpAlways  = jmpLT | jmpEQ | jmpGT

	addrMask = MemSize - 1
)

// alu computes the Hack ALU function selected by the six c bits
// (zx nx zy ny f no) of a compute instruction.
func alu(x, y, c Word) Word {
	if c&0x20 != 0 {
		x = 0
	}
	if c&0x10 != 0 {
		x = ^x
	}
	if c&0x08 != 0 {
		y = 0
	}
	if c&0x04 != 0 {
		y = ^y
	}
	var out Word
	if c&0x02 != 0 {
		out = x + y
	} else {
		out = x & y
	}
	if c&0x01 != 0 {
		out = ^out
	}
	return out
}

func (i *Instance) mem(addr Word) (int, error) {
	a := int(addr & addrMask)
	if a >= len(i.RAM) {
		return 0, errors.Errorf("PC %d: RAM address %d out of range", i.PC, a)
	}
	return a, nil
}

// Step executes the instruction at PC.
func (i *Instance) Step() error {
	if i.PC < 0 || i.PC >= len(i.ROM) {
		return errors.Errorf("PC %d outside of ROM", i.PC)
	}
	ins := i.ROM[i.PC]
	i.insCount++
	if ins&insCompute == 0 {
		i.A = ins
		i.PC++
		return nil
	}

	// all reads and the jump target use the value of A before this
	// instruction, just like the hardware latches it on the clock edge.
	a := i.A
	y := a
	m := -1
	if ins&(insA|destM) != 0 {
		var err error
		if m, err = i.mem(a); err != nil {
			return err
		}
		if ins&insA != 0 {
			y = i.RAM[m]
		}
	}
	out := alu(i.D, y, (ins>>6)&0x3F)
	if ins&destM != 0 {
		i.RAM[m] = out
	}
	if ins&destD != 0 {
		i.D = out
	}
	if ins&destA != 0 {
		i.A = out
	}
	v := int16(out)
	if (ins&jmpLT != 0 && v < 0) || (ins&jmpEQ != 0 && v == 0) || (ins&jmpGT != 0 && v > 0) {
		target := int(a & addrMask)
		if ins&jmpAlways == jmpAlways && target == i.PC-1 && i.ROM[target] == a {
			i.halted = true
		}
		i.PC = target
	} else {
		i.PC++
	}
	return nil
}

// Run executes at most cycles instructions. It stops early without error if
// the PC moves past the end of the ROM or if the program enters a halt loop
// (see Halted). It returns the number of instructions executed and
// ErrCycleLimit if the program was still running when the budget ran out.
func (i *Instance) Run(cycles int) (n int, err error) {
	i.halted = false
	for ; n < cycles; n++ {
		if i.PC >= len(i.ROM) {
			return n, nil
		}
		if err = i.Step(); err != nil {
			return n, err
		}
		if i.halted {
			return n + 1, nil
		}
	}
	if i.PC >= len(i.ROM) {
		return n, nil
	}
	return n, ErrCycleLimit
}
