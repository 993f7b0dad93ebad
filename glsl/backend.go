// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"

	"github.com/gogpu/shex/ast"
)

// Dialect selects the target GLSL version.
type Dialect uint8

const (
	// Dialect100 targets GLSL 1.00 (OpenGL ES 2.0 / WebGL 1.0), which has
	// neither trunc nor a float remainder.
	Dialect100 Dialect = iota

	// Dialect130 targets GLSL 1.30 (OpenGL 3.0), which has trunc but no
	// float remainder.
	Dialect130
)

// String returns the version directive value for the dialect.
func (d Dialect) String() string {
	switch d {
	case Dialect100:
		return "100"
	case Dialect130:
		return "130"
	default:
		return "unknown"
	}
}

// GenerateError reports a malformed tree handed to the generator: a nil
// child or an unrecognized node or enum value. Trees built by the parser
// never trigger it.
type GenerateError struct {
	Msg string
}

// Error implements the error interface.
func (e *GenerateError) Error() string {
	return "glsl: " + e.Msg
}

// Generate serializes n as a GLSL expression string in the given dialect.
func Generate[S ast.Scalar](n ast.Node[S], dialect Dialect) (string, error) {
	if n == nil {
		return "", &GenerateError{Msg: "nil syntax tree"}
	}
	w := &writer[S]{dialect: dialect}
	return w.expression(n)
}

// Function wraps the generated expression in a nullary function declaration,
// the way a fragment shader embeds a formula:
//
//	float calculate()
//	{
//		return <expr>;
//	}
func Function[S ast.Scalar](n ast.Node[S], name string, dialect Dialect) (string, error) {
	expr, err := Generate[S](n, dialect)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s()\n{\n\treturn %s;\n}\n", typeKeyword[S](), name, expr), nil
}
