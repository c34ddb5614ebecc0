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

// Package vm implements the Hack machine: its memory map and a CPU emulator
// able to run the programs produced by package asm.
//
// The Hack CPU has two 16 bits registers, A and D, a program counter, a data
// memory addressed through A (M is RAM[A]) and a separate instruction ROM.
// Instructions come in two shapes:
//
//	0vvvvvvvvvvvvvvv	load the 15 bits value v into A
//	111accccccdddjjj	compute, store and jump
//
// In a compute instruction, the a bit selects A (0) or M (1) as the second ALU
// operand, the six c bits select the ALU function, the three d bits select the
// destinations (A, D, M) and the three j bits select the jump condition (out<0,
// out=0, out>0) against the ALU output. Jumps go to the address held in A.
//
// There is no halt instruction. By convention, programs end with a tight loop:
//
//	(END)
//		@END
//		0;JMP
//
// Run recognizes this pattern and stops there (see Instance.Halted).
//
// The screen and keyboard memory maps are plain RAM here: no device is
// attached to them.
package vm
