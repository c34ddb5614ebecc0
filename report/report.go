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

// Package report turns an assembler Result into a per-line report that can be
// rendered as a text table or saved as YAML.
package report

import (
	"io"
	"os"
	"strconv"

	"github.com/db47h/hackasm/asm"
	"github.com/db47h/hackasm/internal/hio"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Failure describes one faulty line, or a warning.
type Failure struct {
	Line    int    `yaml:"line"`
	Address int    `yaml:"address"`
	Kind    string `yaml:"kind"`
	Token   string `yaml:"token"`
	Warning bool   `yaml:"warning,omitempty"`
	Message string `yaml:"message"`
}

// Symbol is a user defined label or variable.
type Symbol struct {
	Name    string `yaml:"name"`
	Address int    `yaml:"address"`
}

// Report summarizes a translation.
type Report struct {
	Name         string    `yaml:"name"`
	Instructions int       `yaml:"instructions"`
	Failed       int       `yaml:"failed"`
	Warnings     int       `yaml:"warnings"`
	Failures     []Failure `yaml:"failures,omitempty"`
	Symbols      []Symbol  `yaml:"symbols,omitempty"`
}

// New builds a report from res. Predefined symbols are left out.
func New(res *asm.Result) *Report {
	r := &Report{
		Name:         res.Name,
		Instructions: len(res.Outputs),
		Failed:       res.Failed(),
	}
	for _, e := range res.Errors {
		if e.Warning() {
			r.Warnings++
		}
		r.Failures = append(r.Failures, Failure{
			Line:    e.Pos.Line,
			Address: e.Addr,
			Kind:    e.Kind.String(),
			Token:   e.Token,
			Warning: e.Warning(),
			Message: e.Error(),
		})
	}
	for _, s := range res.Symbols.Symbols() {
		if !asm.IsPredefined(s.Name) {
			r.Symbols = append(r.Symbols, Symbol{Name: s.Name, Address: s.Address})
		}
	}
	return r
}

// OK reports whether every instruction was encoded.
func (r *Report) OK() bool {
	return r.Failed == 0
}

// WriteTable renders the failures and the symbol table as text tables.
func (r *Report) WriteTable(w io.Writer) error {
	ew := hio.NewErrWriter(w)

	t := table.NewWriter()
	t.SetTitle("%s: %s, %s, %s", r.Name, plural(r.Instructions, "instruction"),
		plural(r.Failed, "failure"), plural(r.Warnings, "warning"))
	t.AppendHeader(table.Row{"Line", "Address", "Kind", "Token"})
	for _, f := range r.Failures {
		kind := f.Kind
		if f.Warning {
			kind += " (warning)"
		}
		t.AppendRow(table.Row{f.Line, f.Address, kind, f.Token})
	}
	io.WriteString(ew, t.Render()+"\n")

	if len(r.Symbols) > 0 {
		t = table.NewWriter()
		t.SetTitle("Symbols")
		t.AppendHeader(table.Row{"Name", "Address"})
		for _, s := range r.Symbols {
			t.AppendRow(table.Row{s.Name, s.Address})
		}
		io.WriteString(ew, t.Render()+"\n")
	}
	return ew.Err
}

func plural(n int, s string) string {
	if n != 1 {
		s += "s"
	}
	return strconv.Itoa(n) + " " + s
}

// WriteYAML writes r as a YAML document.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(hio.NewErrWriter(w))
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return errors.Wrap(err, "WriteYAML")
	}
	return errors.Wrap(enc.Close(), "WriteYAML")
}

// Save writes r as YAML to the named file.
func (r *Report) Save(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "Save")
	}
	defer func() {
		if e := f.Close(); e != nil && err == nil {
			err = errors.Wrap(e, "Save")
		}
	}()
	return r.WriteYAML(f)
}

// Read decodes a report previously written by WriteYAML.
func Read(r io.Reader) (*Report, error) {
	var rep Report
	if err := yaml.NewDecoder(r).Decode(&rep); err != nil {
		return nil, errors.Wrap(err, "Read")
	}
	return &rep, nil
}
