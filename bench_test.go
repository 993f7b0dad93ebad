package shex

import (
	"testing"

	"github.com/gogpu/shex/ast"
	"github.com/gogpu/shex/glsl"
)

// ---------------------------------------------------------------------------
// Benchmark expressions — realistic formulas at different complexity levels
// ---------------------------------------------------------------------------

// exprSmall is a couple of nodes.
const exprSmall = "x + 1"

// exprMedium is a typical shading formula (sRGB decode).
const exprMedium = "(v < 0.0404482362771082) ? v/12.92 : ((v+0.055)/1.055)^2.4"

// exprLarge exercises every node family.
const exprLarge = "min(4,8) < max(4,8) && 10 % 4 == 2 ? (ceil(cos(60*pi/180) + sin(30*pi/180) + tan(45*pi/180)) + sqrt(floor(16.5)) + log2(16)) * log10(100) : 0"

func benchmarkParse(b *testing.B, source string) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Parse[float32](source); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseSmall(b *testing.B)  { benchmarkParse(b, exprSmall) }
func BenchmarkParseMedium(b *testing.B) { benchmarkParse(b, exprMedium) }
func BenchmarkParseLarge(b *testing.B)  { benchmarkParse(b, exprLarge) }

func benchmarkEvaluate(b *testing.B, source string, env Env[float32]) {
	node, err := Parse[float32](source)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Evaluate(node, env); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEvaluateSmall(b *testing.B) {
	benchmarkEvaluate(b, exprSmall, Env[float32]{"x": 10})
}

func BenchmarkEvaluateMedium(b *testing.B) {
	benchmarkEvaluate(b, exprMedium, Env[float32]{"v": 0.5})
}

func BenchmarkEvaluateLarge(b *testing.B) {
	benchmarkEvaluate(b, exprLarge, Env[float32]{"pi": 3.14159})
}

func BenchmarkGenerateGLSL(b *testing.B) {
	node, err := Parse[float32](exprLarge)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Generate(node, glsl.Dialect130); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkClone(b *testing.B) {
	node, err := Parse[float32](exprLarge)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if cloned := ast.Clone(node); cloned == nil {
			b.Fatal("clone returned nil")
		}
	}
}
