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
	"sort"
	"strconv"

	"github.com/db47h/hackasm/vm"
)

var predefined = func() map[string]int {
	m := map[string]int{
		"SP":     vm.SP,
		"LCL":    vm.LCL,
		"ARG":    vm.ARG,
		"THIS":   vm.THIS,
		"THAT":   vm.THAT,
		"SCREEN": vm.Screen,
		"KBD":    vm.Keyboard,
	}
	for r := 0; r < vm.Registers; r++ {
		m["R"+strconv.Itoa(r)] = r
	}
	return m
}()

// IsPredefined returns true if name is one of the fixed system symbols.
func IsPredefined(name string) bool {
	_, ok := predefined[name]
	return ok
}

// Symbol is a bound name.
type Symbol struct {
	Name    string
	Address int
}

// SymbolTable maps symbol names to addresses. Labels and variables share the
// same table. A name, once bound, keeps its address.
type SymbolTable struct {
	addr map[string]int
}

// NewSymbolTable returns a symbol table holding the fixed system symbols.
func NewSymbolTable() *SymbolTable {
	t := &SymbolTable{addr: make(map[string]int, len(predefined)+32)}
	for n, a := range predefined {
		t.addr[n] = a
	}
	return t
}

// Lookup returns the address bound to name.
func (t *SymbolTable) Lookup(name string) (addr int, ok bool) {
	addr, ok = t.addr[name]
	return addr, ok
}

// Bind binds name to addr. It returns false and leaves the table untouched if
// name is already bound.
func (t *SymbolTable) Bind(name string, addr int) bool {
	if _, ok := t.addr[name]; ok {
		return false
	}
	t.addr[name] = addr
	return true
}

// Len returns the number of bound symbols, predefined ones included.
func (t *SymbolTable) Len() int {
	return len(t.addr)
}

// Symbols returns all bound symbols sorted by address, then name.
func (t *SymbolTable) Symbols() []Symbol {
	s := make([]Symbol, 0, len(t.addr))
	for n, a := range t.addr {
		s = append(s, Symbol{n, a})
	}
	sort.Slice(s, func(i, j int) bool {
		if s[i].Address != s[j].Address {
			return s[i].Address < s[j].Address
		}
		return s[i].Name < s[j].Name
	})
	return s
}
