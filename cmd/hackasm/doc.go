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

// The hackasm command translates Hack assembly into the .hack text format
// loaded by the Hack CPU emulator: one 16 digits binary word per line.
//
// Usage:
//
//	hackasm [flags] input output
//
//	-d
//		  disassemble a .hack file instead of assembling
//	-debug
//		  enable debug diagnostics
//	-log format
//		  log format: text or json (default text)
//	-report filename
//		  save an assembly report in YAML format to filename
//	-run n
//		  run the program for at most n cycles and dump the CPU state
//	-strict
//		  exit with status 1 if any instruction failed to assemble
//	-symbols
//		  print failures and the symbol table to stdout
//
// Instructions that cannot be encoded are logged to stderr and replaced in the
// output by a line of 16 dashes, so that addresses in the output still match
// the source. By default this is not an error and hackasm exits with status 0.
// Use -strict to make it fail.
//
// -d: input is a .hack file. The output is an assembly listing with addresses
// in comments that can be assembled again. Labels and variable names are not
// recovered.
//
// -debug: dumps the resolved program to stderr, logs every pass and prints a
// full stack trace on errors.
//
// -report: the report lists every failure with its line, address, kind and
// token, followed by user defined symbols and their addresses.
//
// -run: after assembling (or loading with -d), execute the program on the
// emulator for at most n instructions and print the instruction count, A, D,
// PC and R0 to R15. Execution stops early on the usual halt loop:
//
//	(END)
//		@END
//		0;JMP
//
// Programs with faulty instructions are not run.
//
// Exit status is 0 on success, 1 on errors and 2 on bad usage.
package main
