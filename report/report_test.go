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

package report_test

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/db47h/hackasm/asm"
	"github.com/db47h/hackasm/report"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
)

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

var _ = Describe("Report", func() {
	var (
		res *asm.Result
		r   *report.Report
	)

	BeforeEach(func() {
		res = asm.Translate("prog", []string{
			"@x",
			"D=X",
			"(LOOP)",
			"@LOOP",
			"(LOOP)",
			"Y=D;JXX",
			"@y",
		})
		r = report.New(res)
	})

	Describe("New", func() {
		It("should count instructions and failures", func() {
			Expect(r.Name).To(Equal("prog"))
			Expect(r.Instructions).To(Equal(5))
			Expect(r.Failed).To(Equal(2))
			Expect(r.Warnings).To(Equal(1))
			Expect(r.OK()).To(BeFalse())
		})

		It("should list failures in pipeline order", func() {
			Expect(r.Failures).To(HaveLen(4))
			Expect(r.Failures[0]).To(Equal(report.Failure{
				Line:    5,
				Address: 3,
				Kind:    "label redefinition",
				Token:   "LOOP",
				Warning: true,
				Message: res.Errors[0].Error(),
			}))
			Expect(r.Failures[1].Line).To(Equal(2))
			Expect(r.Failures[1].Address).To(Equal(1))
			Expect(r.Failures[1].Kind).To(Equal("bad computation"))
			Expect(r.Failures[1].Token).To(Equal("X"))
			Expect(r.Failures[1].Message).To(Equal(`prog:2: bad computation "X"`))
			Expect(r.Failures[2].Kind).To(Equal("bad destination"))
			Expect(r.Failures[3].Kind).To(Equal("bad jump"))
			Expect(r.Failures[3].Address).To(Equal(3))
		})

		It("should only keep user symbols", func() {
			Expect(r.Symbols).To(Equal([]report.Symbol{
				{Name: "LOOP", Address: 2},
				{Name: "x", Address: 16},
				{Name: "y", Address: 17},
			}))
		})

		It("should report a clean program as OK", func() {
			r = report.New(asm.Translate("ok", []string{"@2", "D=A"}))
			Expect(r.OK()).To(BeTrue())
			Expect(r.Failures).To(BeEmpty())
			Expect(r.Symbols).To(BeEmpty())
		})
	})

	Describe("WriteTable", func() {
		It("should render failures and symbols", func() {
			var b bytes.Buffer
			Expect(r.WriteTable(&b)).To(Succeed())
			out := b.String()
			Expect(out).To(ContainSubstring("prog: 5 instructions, 2 failures, 1 warning"))
			Expect(out).To(ContainSubstring("bad computation"))
			Expect(out).To(ContainSubstring("label redefinition (warning)"))
			Expect(out).To(ContainSubstring("JXX"))
			Expect(out).To(ContainSubstring("Symbols"))
			Expect(out).To(ContainSubstring("LOOP"))
		})

		It("should return write errors", func() {
			Expect(r.WriteTable(failWriter{})).To(MatchError(ContainSubstring("disk full")))
		})
	})

	Describe("YAML", func() {
		It("should round trip through WriteYAML and Read", func() {
			var b bytes.Buffer
			Expect(r.WriteYAML(&b)).To(Succeed())
			Expect(b.String()).To(ContainSubstring("name: prog\n"))
			Expect(b.String()).To(ContainSubstring("failed: 2\n"))

			back, err := report.Read(&b)
			Expect(err).NotTo(HaveOccurred())
			Expect(back).To(Equal(r))
		})

		It("should save to a file", func() {
			path := filepath.Join(GinkgoT().TempDir(), "prog.yaml")
			Expect(r.Save(path)).To(Succeed())

			f, err := os.Open(path)
			Expect(err).NotTo(HaveOccurred())
			defer f.Close()
			back, err := report.Read(f)
			Expect(err).NotTo(HaveOccurred())
			Expect(back.Symbols).To(Equal(r.Symbols))
		})

		It("should fail on a bad path", func() {
			Expect(r.Save(filepath.Join(GinkgoT().TempDir(), "nope", "prog.yaml"))).NotTo(Succeed())
		})

		It("should reject garbage", func() {
			_, err := report.Read(bytes.NewBufferString("name: [\n"))
			Expect(err).To(HaveOccurred())
		})
	})
})
