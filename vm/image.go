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
	"strings"

	"github.com/db47h/hackasm/internal/hio"
	"github.com/pkg/errors"
)

// WordBits is the number of characters in the text form of a Word.
const WordBits = 16

// String returns the 16 characters binary representation of w, as found in
// .hack files.
func (w Word) String() string {
	var b [WordBits]byte
	for i := range b {
		b[i] = '0' + byte(w>>(WordBits-1-i)&1)
	}
	return string(b[:])
}

// ParseWord parses a 16 characters string of '0' and '1'.
func ParseWord(s string) (Word, error) {
	if len(s) != WordBits {
		return 0, errors.Errorf("ParseWord %q: expected %d binary digits, got %d characters", s, WordBits, len(s))
	}
	var w Word
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			w <<= 1
		case '1':
			w = w<<1 | 1
		default:
			return 0, errors.Errorf("ParseWord %q: invalid binary digit %q", s, s[i])
		}
	}
	return w, nil
}

// Load reads a program in .hack text format: one 16 digits binary word per
// line. Blank lines are ignored.
func Load(r io.Reader) ([]Word, error) {
	lines, err := hio.ReadLines(r)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	rom := make([]Word, 0, len(lines))
	for n, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		w, err := ParseWord(l)
		if err != nil {
			return nil, errors.Wrapf(err, "Load: line %d", n+1)
		}
		rom = append(rom, w)
	}
	return rom, nil
}
