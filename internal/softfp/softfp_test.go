package softfp_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vk/beebsbench/internal/softfp"
)

var _ = Describe("ParseVectors", func() {
	It("should parse rows and skip blank lines", func() {
		input := "3f800000 40000000 40400000 00\n\n  bf800000\t3f800000 00000000 01  \n"
		vectors, err := softfp.ParseVectors(strings.NewReader(input))
		Expect(err).NotTo(HaveOccurred())
		Expect(vectors).To(HaveLen(2))
		Expect(vectors[0]).To(Equal(softfp.Vector{LHS: "3f800000", RHS: "40000000", Expected: "40400000", Flags: "00", Line: 1}))
		Expect(vectors[1].LHS).To(Equal("bf800000"))
		Expect(vectors[1].Line).To(Equal(3))
	})

	It("should reject rows with the wrong number of fields", func() {
		_, err := softfp.ParseVectors(strings.NewReader("3f800000 40000000 40400000 00\n3f800000 40000000\n"))
		Expect(err).To(MatchError(ContainSubstring("line 2: expected 4 fields")))
	})

	It("should reject operands that are not a single word", func() {
		_, err := softfp.ParseVectors(strings.NewReader("3f80 40000000 40400000 00\n"))
		Expect(err).To(MatchError(ContainSubstring("8 hex digits")))
	})

	It("should reject non-hex results", func() {
		_, err := softfp.ParseVectors(strings.NewReader("3f800000 40000000 nan 00\n"))
		Expect(err).To(MatchError(ContainSubstring("hexadecimal")))
	})
})

var _ = Describe("Lookup", func() {
	It("should know f32_add", func() {
		tt, err := softfp.Lookup("f32_add")
		Expect(err).NotTo(HaveOccurred())
		Expect(tt.Routine).To(Equal("__addsf3"))
		Expect(softfp.TestTypeNames()).To(ContainElement("f32_add"))
	})

	It("should reject unknown test types", func() {
		_, err := softfp.Lookup("f64_div")
		Expect(err).To(MatchError(softfp.ErrUnknownTestType))
	})
})

var _ = Describe("Render", func() {
	It("should embed operands, routine and output file", func() {
		tt, _ := softfp.Lookup("f32_add")
		var buf bytes.Buffer
		v := softfp.Vector{LHS: "3f800000", RHS: "40000000", Expected: "40400000", Flags: "00"}

		Expect(softfp.Render(&buf, tt, "f32_add_7.s", v)).To(Succeed())

		asm := buf.String()
		Expect(asm).To(ContainSubstring(".Llhs: .word 0x3f800000"))
		Expect(asm).To(ContainSubstring(".Lrhs: .word 0x40000000"))
		Expect(asm).To(ContainSubstring(`.Lout_file: .string "f32_add_7.s.out"`))
		Expect(asm).To(ContainSubstring(`.Linput_str: .string "3f800000 40000000 "`))
		Expect(asm).To(ContainSubstring(`.Lexcept_str: .string " 00\n"`))
		Expect(asm).To(ContainSubstring("call   __addsf3"))
		Expect(asm).To(ContainSubstring("lw    a0,%lo(.Llhs)(a5)"))
		Expect(asm).To(ContainSubstring("lw    a1,%lo(.Lrhs)(a5)"))
		Expect(asm).To(ContainSubstring("li    a1,18"))
	})
})

var _ = Describe("Generator", func() {
	var (
		outDir string
		echo   *bytes.Buffer
		gen    *softfp.Generator
	)

	BeforeEach(func() {
		var err error
		outDir, err = os.MkdirTemp("", "softfp-*")
		Expect(err).NotTo(HaveOccurred())
		echo = &bytes.Buffer{}
		gen = &softfp.Generator{OutDir: outDir, Echo: echo}
	})

	AfterEach(func() {
		_ = os.RemoveAll(outDir)
	})

	It("should write one file per vector and echo each name", func() {
		input := "3f800000 40000000 40400000 00\n00000000 80000000 00000000 00\n"
		names, err := gen.Generate(context.Background(), "f32_add", strings.NewReader(input))
		Expect(err).NotTo(HaveOccurred())
		Expect(names).To(Equal([]string{"f32_add_0.s", "f32_add_1.s"}))
		Expect(echo.String()).To(Equal("f32_add_0.s\nf32_add_1.s\n"))

		second, err := os.ReadFile(filepath.Join(outDir, "f32_add_1.s"))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(second)).To(ContainSubstring(".Lrhs: .word 0x80000000"))
		Expect(string(second)).To(ContainSubstring(`"f32_add_1.s.out"`))
	})

	It("should write nothing for an unknown test type", func() {
		_, err := gen.Generate(context.Background(), "f32_mul", strings.NewReader("3f800000 40000000 40400000 00\n"))
		Expect(err).To(MatchError(softfp.ErrUnknownTestType))
		entries, _ := os.ReadDir(outDir)
		Expect(entries).To(BeEmpty())
		Expect(echo.Len()).To(BeZero())
	})

	It("should write nothing when a later row is malformed", func() {
		_, err := gen.Generate(context.Background(), "f32_add", strings.NewReader("3f800000 40000000 40400000 00\nbroken\n"))
		Expect(err).To(HaveOccurred())
		entries, _ := os.ReadDir(outDir)
		Expect(entries).To(BeEmpty())
	})

	It("should report an unwritable output directory", func() {
		gen.OutDir = filepath.Join(outDir, "missing")
		_, err := gen.Generate(context.Background(), "f32_add", strings.NewReader("3f800000 40000000 40400000 00\n"))
		Expect(err).To(MatchError(ContainSubstring("failed to create f32_add_0.s")))
	})
})
