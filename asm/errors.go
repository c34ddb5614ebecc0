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
)

// ErrorKind classifies assembly errors.
type ErrorKind int

// Error kinds.
const (
	BadComp        ErrorKind = iota + 1 // unknown computation mnemonic
	BadDest                             // unknown destination
	BadJump                             // unknown jump condition
	AddressRange                        // address literal outside of [MinAddress, MaxAddress]
	Syntax                              // malformed line
	Unresolved                          // symbol left in an address instruction
	LabelRedefined                      // label declared more than once
)

var kindNames = [...]string{
	BadComp:        "bad computation",
	BadDest:        "bad destination",
	BadJump:        "bad jump",
	AddressRange:   "address out of range",
	Syntax:         "syntax error",
	Unresolved:     "unresolved symbol",
	LabelRedefined: "label redefinition",
}

func (k ErrorKind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
}

// Error is the error type for a single faulty line.
//
// Addr is the instruction address of the line. For label declarations, it is
// the address the label would have been bound to.
type Error struct {
	Pos   Position
	Addr  int
	Kind  ErrorKind
	Token string
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Kind.String() + " " + strconv.Quote(e.Token)
}

// Warning returns true if the error did not prevent the line from being
// assembled.
func (e *Error) Warning() bool {
	return e.Kind == LabelRedefined
}

// ErrAsm is a list of assembly errors, in source order.
type ErrAsm []*Error

func (e ErrAsm) Error() string {
	s := make([]string, len(e))
	for i := range e {
		s[i] = e[i].Error()
	}
	return strings.Join(s, "\n")
}

// err returns nil for an empty list, the lone error of a single entry list
// or the list itself.
func (e ErrAsm) err() error {
	switch len(e) {
	case 0:
		return nil
	case 1:
		return e[0]
	}
	return e
}
