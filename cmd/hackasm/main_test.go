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
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/db47h/hackasm/asm"
	"github.com/db47h/hackasm/report"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const addSrc = `// R0 = 2 + 3
@2
D=A
@3
D=D+A
@0
M=D
`

const addBin = `0000000000000010
1110110000010000
0000000000000011
1110000010010000
0000000000000000
1110001100001000
`

var _ = Describe("hackasm", func() {
	var (
		dir            string
		stdout, stderr bytes.Buffer
	)

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())
		return path
	}

	read := func(path string) string {
		b, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		return string(b)
	}

	hackasm := func(args ...string) int {
		return run(args, &stdout, &stderr)
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		stdout.Reset()
		stderr.Reset()
	})

	Context("command line", func() {
		It("should require input and output", func() {
			Expect(hackasm()).To(Equal(exitUsage))
			Expect(stderr.String()).To(ContainSubstring("usage: hackasm"))
			Expect(hackasm(write("a.asm", addSrc))).To(Equal(exitUsage))
		})

		It("should reject unknown log formats", func() {
			Expect(hackasm("-log", "xml", "a", "b")).To(Equal(exitUsage))
			Expect(stderr.String()).To(ContainSubstring(`unsupported log format "xml"`))
		})

		It("should reject negative cycle counts", func() {
			Expect(hackasm("-run", "-1", "a", "b")).To(Equal(exitUsage))
		})

		It("should exit cleanly on -h", func() {
			Expect(hackasm("-h")).To(Equal(exitOK))
		})

		It("should report missing input files", func() {
			Expect(hackasm(filepath.Join(dir, "nope.asm"), filepath.Join(dir, "out.hack"))).To(Equal(exitError))
			Expect(stderr.String()).To(ContainSubstring("nope.asm"))
		})
	})

	Context("assembling", func() {
		It("should write one word per instruction", func() {
			out := filepath.Join(dir, "add.hack")
			Expect(hackasm(write("add.asm", addSrc), out)).To(Equal(exitOK))
			Expect(read(out)).To(Equal(addBin))
			Expect(stderr.String()).To(ContainSubstring("msg=assembled"))
			Expect(stderr.String()).To(ContainSubstring("failed=0"))
			Expect(stdout.String()).To(BeEmpty())
		})

		It("should keep going on faulty lines", func() {
			in := write("bad.asm", "@1\nD=X\n@2\n")
			out := filepath.Join(dir, "bad.hack")
			Expect(hackasm(in, out)).To(Equal(exitOK))
			Expect(read(out)).To(Equal("0000000000000001\n" + asm.Sentinel + "\n0000000000000010\n"))
			Expect(stderr.String()).To(ContainSubstring(`level=ERROR msg="bad computation"`))
			Expect(stderr.String()).To(ContainSubstring("token=X"))
		})

		It("should fail on faulty lines with -strict", func() {
			in := write("bad.asm", "@1\nD=X\n@2\n")
			out := filepath.Join(dir, "bad.hack")
			Expect(hackasm("-strict", in, out)).To(Equal(exitError))
			Expect(read(out)).To(ContainSubstring(asm.Sentinel))
			Expect(stderr.String()).To(ContainSubstring("1 instructions failed to assemble"))
		})

		It("should log JSON with -log json", func() {
			out := filepath.Join(dir, "add.hack")
			Expect(hackasm("-log", "json", write("add.asm", addSrc), out)).To(Equal(exitOK))
			Expect(stderr.String()).To(ContainSubstring(`"msg":"assembled"`))
		})

		It("should dump the program with -debug", func() {
			out := filepath.Join(dir, "add.hack")
			Expect(hackasm("-debug", write("add.asm", addSrc), out)).To(Equal(exitOK))
			Expect(stderr.String()).To(ContainSubstring("D=D+A"))
			Expect(stderr.String()).To(ContainSubstring(`msg="labels resolved"`))
		})

		It("should save a report with -report", func() {
			in := write("loop.asm", "(LOOP)\n@i\nM=X\n@LOOP\n0;JMP\n")
			rep := filepath.Join(dir, "loop.yaml")
			Expect(hackasm("-report", rep, in, filepath.Join(dir, "loop.hack"))).To(Equal(exitOK))

			f, err := os.Open(rep)
			Expect(err).NotTo(HaveOccurred())
			defer f.Close()
			r, err := report.Read(f)
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Instructions).To(Equal(4))
			Expect(r.Failed).To(Equal(1))
			Expect(r.Failures[0].Line).To(Equal(3))
			Expect(r.Symbols).To(Equal([]report.Symbol{{Name: "LOOP", Address: 0}, {Name: "i", Address: 16}}))
		})

		It("should print the symbol table with -symbols", func() {
			in := write("loop.asm", "(LOOP)\n@counter\nM=M-1\n@LOOP\n0;JMP\n")
			Expect(hackasm("-symbols", in, filepath.Join(dir, "loop.hack"))).To(Equal(exitOK))
			Expect(stdout.String()).To(ContainSubstring("counter"))
			Expect(stdout.String()).To(ContainSubstring("16"))
		})
	})

	Context("running", func() {
		It("should run the assembled program", func() {
			Expect(hackasm("-run", "100", write("add.asm", addSrc), filepath.Join(dir, "add.hack"))).To(Equal(exitOK))
			Expect(stdout.String()).To(HavePrefix("instructions: 6\nPC: 6 A: 0 D: 5\nRAM[0]: 5\n"))
			Expect(strings.Count(stdout.String(), "RAM[")).To(Equal(16))
		})

		It("should stop on a halt loop", func() {
			in := write("halt.asm", addSrc+"(END)\n@END\n0;JMP\n")
			Expect(hackasm("-run", "100", in, filepath.Join(dir, "halt.hack"))).To(Equal(exitOK))
			Expect(stdout.String()).To(HavePrefix("instructions: 8 (halted)\n"))
		})

		It("should warn when the cycle limit is reached", func() {
			in := write("spin.asm", "(L)\n@L\n0;JEQ\n")
			Expect(hackasm("-run", "10", in, filepath.Join(dir, "spin.hack"))).To(Equal(exitOK))
			Expect(stderr.String()).To(ContainSubstring(`msg="cycle limit reached" cycles=10`))
			Expect(stdout.String()).To(HavePrefix("instructions: 10\n"))
		})

		It("should not run faulty programs", func() {
			in := write("bad.asm", "@1\nD=X\n")
			Expect(hackasm("-run", "10", in, filepath.Join(dir, "bad.hack"))).To(Equal(exitOK))
			Expect(stderr.String()).To(ContainSubstring("not running it"))
			Expect(stdout.String()).To(BeEmpty())
		})
	})

	Context("disassembling", func() {
		It("should produce a listing that assembles back", func() {
			bin := write("add.hack", addBin)
			lst := filepath.Join(dir, "add.asm")
			Expect(hackasm("-d", bin, lst)).To(Equal(exitOK))
			Expect(read(lst)).To(HavePrefix("@2              // 0\nD=A             // 1\n"))

			again := filepath.Join(dir, "again.hack")
			Expect(hackasm(lst, again)).To(Equal(exitOK))
			Expect(read(again)).To(Equal(addBin))
		})

		It("should reject malformed binaries", func() {
			bin := write("bad.hack", "0000000000000010\n"+asm.Sentinel+"\n")
			Expect(hackasm("-d", bin, filepath.Join(dir, "bad.asm"))).To(Equal(exitError))
			Expect(stderr.String()).To(ContainSubstring("line 2"))
		})
	})
})
