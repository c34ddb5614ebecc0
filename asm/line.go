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

// Position identifies a source line.
type Position struct {
	Filename string
	Line     int // 1-based
}

func (p Position) String() string {
	s := p.Filename
	if s == "" {
		s = "<input>"
	}
	return s + ":" + strconv.Itoa(p.Line)
}

// Kind is the shape of a Line.
type Kind int

// Line kinds.
const (
	Invalid Kind = iota // malformed line, occupies an instruction slot
	Address             // @ref
	Compute             // dest=comp;jump
	Label               // (name)
)

func (k Kind) String() string {
	switch k {
	case Address:
		return "address"
	case Compute:
		return "compute"
	case Label:
		return "label"
	}
	return "invalid"
}

// Line is a tokenized source line.
type Line struct {
	Kind Kind
	Pos  Position
	Ref  string // Address: integer literal or symbol
	Dest string // Compute, may be empty
	Comp string // Compute
	Jump string // Compute, may be empty
	Name string // Label: label name. Invalid: offending text
}

// Program is a sequence of lines.
type Program []Line

// String returns the canonical source form of l.
func (l Line) String() string {
	switch l.Kind {
	case Address:
		return "@" + l.Ref
	case Label:
		return "(" + l.Name + ")"
	case Compute:
		s := l.Comp
		if l.Dest != "" {
			s = l.Dest + "=" + s
		}
		if l.Jump != "" {
			s += ";" + l.Jump
		}
		return s
	}
	return l.Name
}

// Text returns the source form of every line in p.
func (p Program) Text() []string {
	s := make([]string, len(p))
	for i := range p {
		s[i] = p[i].String()
	}
	return s
}

// IsNumeric returns true if ref is a decimal integer literal with an optional
// leading minus sign. Such references are never looked up as symbols.
func IsNumeric(ref string) bool {
	if strings.HasPrefix(ref, "-") {
		ref = ref[1:]
	}
	if ref == "" {
		return false
	}
	for i := 0; i < len(ref); i++ {
		if ref[i] < '0' || ref[i] > '9' {
			return false
		}
	}
	return true
}

// ParseLine tokenizes a cleaned source line (see Clean).
//
// Compute instructions are split at the first ';' (jump) and then at the
// first '=' in what precedes it (destination). What is left is the
// computation.
func ParseLine(pos Position, s string) Line {
	l := Line{Pos: pos}
	switch {
	case s == "":
		l.Kind = Invalid
	case s[0] == '@':
		l.Kind = Address
		l.Ref = s[1:]
		if l.Ref == "" {
			l.Kind = Invalid
			l.Name = s
		}
	case s[0] == '(':
		l.Kind = Label
		if len(s) < 3 || s[len(s)-1] != ')' {
			l.Kind = Invalid
			l.Name = s
			break
		}
		l.Name = s[1 : len(s)-1]
	default:
		l.Kind = Compute
		head := s
		if i := strings.IndexByte(head, ';'); i >= 0 {
			l.Jump = head[i+1:]
			head = head[:i]
		}
		if i := strings.IndexByte(head, '='); i >= 0 {
			l.Dest = head[:i]
			head = head[i+1:]
		}
		l.Comp = head
	}
	return l
}
