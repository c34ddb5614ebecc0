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
	"unicode"

	"github.com/db47h/hackasm/vm"
)

// Clean removes all white space from s, then anything from the first '/' to
// the end of the line.
func Clean(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	return s
}

// Normalize cleans the raw source lines and tokenizes those that are not
// empty once cleaned. The name parameter is used in line positions.
func Normalize(name string, lines []string) Program {
	p := make(Program, 0, len(lines))
	for n, raw := range lines {
		s := Clean(raw)
		if s == "" {
			continue
		}
		p = append(p, ParseLine(Position{name, n + 1}, s))
	}
	return p
}

// ResolveLabels binds every label declaration in p to the address of the
// next instruction, then returns a copy of p without label declarations and
// where references to any bound symbol are replaced by the bound address.
// Other references are left as is.
//
// Redefined labels keep their first address and are reported in the
// returned list.
func ResolveLabels(p Program, st *SymbolTable) (Program, ErrAsm) {
	var errs ErrAsm
	pc := 0
	for _, l := range p {
		if l.Kind != Label {
			pc++
			continue
		}
		if !st.Bind(l.Name, pc) {
			errs = append(errs, &Error{l.Pos, pc, LabelRedefined, l.Name})
		}
	}

	out := make(Program, 0, pc)
	for _, l := range p {
		if l.Kind == Label {
			continue
		}
		if l.Kind == Address && !IsNumeric(l.Ref) {
			if a, ok := st.Lookup(l.Ref); ok {
				l.Ref = strconv.Itoa(a)
			}
		}
		out = append(out, l)
	}
	return out, errs
}

// AllocateVariables binds every symbol still referenced in p to consecutive
// data addresses starting at vm.VarBase, in order of first use. It returns a
// copy of p where all references are integer literals.
func AllocateVariables(p Program, st *SymbolTable) Program {
	next := vm.VarBase
	for _, l := range p {
		if l.Kind == Address && !IsNumeric(l.Ref) && st.Bind(l.Ref, next) {
			next++
		}
	}

	out := make(Program, len(p))
	for i, l := range p {
		if l.Kind == Address && !IsNumeric(l.Ref) {
			a, _ := st.Lookup(l.Ref)
			l.Ref = strconv.Itoa(a)
		}
		out[i] = l
	}
	return out
}
