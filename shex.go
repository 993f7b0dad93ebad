// Package shex is a small expression engine: it parses an arithmetic and
// logical formula written in an infix mini-language into a tree that can be
// evaluated against a variable environment, re-emitted as GLSL so the same
// formula runs on a GPU, or (with the jit package) compiled to native code.
//
// Example usage:
//
//	node, err := shex.Parse[float32]("sin(2*x) + cos(pi/y)")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	value, err := shex.Evaluate(node, shex.Env[float32]{
//	    "pi": math.Pi, "x": 10, "y": 4,
//	})
//
// For GPU use, emit the same tree as a GLSL expression:
//
//	code, err := shex.Generate(node, glsl.Dialect130)
//
// The engine is generic over its scalar element type (float32 or float64).
// A parsed tree holds no reference to any environment and may be shared
// across goroutines for read-only use; parse, evaluate, and generate are
// plain blocking calls with no hidden state.
package shex

import (
	"fmt"

	"github.com/gogpu/shex/ast"
	"github.com/gogpu/shex/eval"
	"github.com/gogpu/shex/glsl"
	"github.com/gogpu/shex/infix"
)

// Env is the variable environment evaluation reads. It is owned by the
// caller and never mutated by the engine.
type Env[S ast.Scalar] = eval.Env[S]

// Parse builds the tree for an expression source string.
//
// Failures are positioned: errors.As against *infix.LexError or
// *infix.ParseError recovers the byte offset and a caret-formatted context.
func Parse[S ast.Scalar](source string) (ast.Node[S], error) {
	node, err := infix.Parse[S](source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return node, nil
}

// Evaluate reduces a tree against an environment. A variable missing from
// env fails with *eval.UnknownVariableError; there are no default values.
func Evaluate[S ast.Scalar](node ast.Node[S], env Env[S]) (S, error) {
	value, err := eval.Evaluate(node, env)
	if err != nil {
		return 0, fmt.Errorf("evaluation error: %w", err)
	}
	return value, nil
}

// Clone deep-copies a tree. The copy shares no nodes with the original and
// is observationally identical under evaluation and generation.
func Clone[S ast.Scalar](node ast.Node[S]) ast.Node[S] {
	return ast.Clone[S](node)
}

// Generate emits the tree as a GLSL expression string in the given dialect.
func Generate[S ast.Scalar](node ast.Node[S], dialect glsl.Dialect) (string, error) {
	code, err := glsl.Generate[S](node, dialect)
	if err != nil {
		return "", fmt.Errorf("generation error: %w", err)
	}
	return code, nil
}

// Variables returns the sorted variable names a tree references, which is
// exactly the set of uniforms a shader generated from it needs bound.
func Variables[S ast.Scalar](node ast.Node[S]) []string {
	return ast.Variables[S](node)
}
