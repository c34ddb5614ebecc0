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
	"io"
	"strconv"

	"github.com/db47h/hackasm/internal/hio"
	"github.com/db47h/hackasm/vm"
)

// dumpVM writes the instruction count, halt state, registers and R0-R15 to
// the specified io.Writer.
func dumpVM(i *vm.Instance, w io.Writer) error {
	ew := hio.NewErrWriter(w)
	io.WriteString(ew, "instructions: "+strconv.FormatInt(i.InstructionCount(), 10))
	if i.Halted() {
		io.WriteString(ew, " (halted)")
	}
	io.WriteString(ew, "\n")
	if ew.Err != nil {
		return ew.Err
	}
	return i.Dump(ew, vm.Registers)
}
