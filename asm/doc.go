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

// Package asm provides utility functions to assemble and disassemble Hack
// machine code.
//
// Source format:
//
// The source is line oriented: one instruction or label declaration per line.
// White space is not significant anywhere, even within an instruction, so that
// "D = M + 1" is the same as "D=M+1". A comment starts with a slash and
// extends to the end of the line:
//
//	// a comment
//	@i	// another comment
//
// Address instructions:
//
//	@value
//
// load value into the A register. The value is either a decimal integer
// literal, optionally negative, or a symbol. Literals must fit in 15 bits
// two's complement, that is [-16384, 16383]. Note that this excludes the
// SCREEN and KBD symbols.
//
// Compute instructions:
//
//	dest=comp;jump
//
// where dest and jump are optional (the '=' and ';' go along with them):
//
//	comp	0 1 -1 D A !D !A -D -A D+1 A+1 D-1 A-1 D+A D-A A-D D&A D|A
//		M !M -M M+1 M-1 D+M D-M M-D D&M D|M
//	dest	M D MD A AM AD AMD
//	jump	JGT JEQ JGE JLT JNE JLE JMP
//
// Mnemonics are case sensitive and must be written exactly as above: "A+D" is
// not an alias for "D+A".
//
// Labels:
//
//	(NAME)
//
// binds NAME to the address of the next instruction. A label declaration
// generates no code. Labels can be referenced before their declaration. A
// label declared more than once keeps its first address; the following
// declarations are reported as warnings.
//
// Symbols:
//
// Symbols are names that are not integer literals. The following symbols are
// predefined:
//
//	SP	0	LCL	1	ARG	2	THIS	3	THAT	4
//	R0-R15	0-15
//	SCREEN	16384	KBD	24576
//
// Symbols that are neither predefined nor declared as labels are variables.
// Variables are allocated consecutive data addresses starting at 16, in the
// order of their first use.
//
// Assembly is done in four passes: cleanup, label binding, variable
// allocation and encoding. Faulty instructions do not stop assembly: they
// are reported, and their binary form is replaced by Sentinel.
package asm
