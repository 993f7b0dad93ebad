// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"strconv"
	"unsafe"

	"github.com/gogpu/shex/ast"
)

// writer emits one expression in one dialect.
type writer[S ast.Scalar] struct {
	dialect Dialect
}

// expression renders a subtree. Binary children are emitted left to right in
// source order.
func (w *writer[S]) expression(n ast.Node[S]) (string, error) {
	switch n := n.(type) {
	case *ast.Number[S]:
		return formatNumber(n.Value), nil

	case *ast.Variable[S]:
		return n.Name, nil

	case *ast.Operation[S]:
		return w.operation(n)

	case *ast.Function1[S]:
		return w.function1(n)

	case *ast.Function2[S]:
		v1, v2, err := w.pair(n.Left, n.Right)
		if err != nil {
			return "", err
		}
		switch n.Fn {
		case ast.Min:
			return fmt.Sprintf("min(%s,%s)", v1, v2), nil
		case ast.Max:
			return fmt.Sprintf("max(%s,%s)", v1, v2), nil
		case ast.PowFn:
			return fmt.Sprintf("pow(%s,%s)", v1, v2), nil
		default:
			return "", &GenerateError{Msg: "unknown function in syntax tree"}
		}

	case *ast.Comparison[S]:
		v1, v2, err := w.pair(n.Left, n.Right)
		if err != nil {
			return "", err
		}
		switch n.Op {
		case ast.Eq, ast.Ne, ast.Gt, ast.Ge, ast.Lt, ast.Le:
			return v1 + n.Op.String() + v2, nil
		default:
			return "", &GenerateError{Msg: "unknown comparison in syntax tree"}
		}

	case *ast.Logical[S]:
		v1, v2, err := w.pair(n.Left, n.Right)
		if err != nil {
			return "", err
		}
		switch n.Op {
		case ast.And, ast.Or:
			return v1 + n.Op.String() + v2, nil
		default:
			return "", &GenerateError{Msg: "unknown logical operator in syntax tree"}
		}

	case *ast.Branch[S]:
		cond, err := w.expression(n.Cond)
		if err != nil {
			return "", err
		}
		yes, err := w.expression(n.Yes)
		if err != nil {
			return "", err
		}
		no, err := w.expression(n.No)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("((%s) ? %s : %s)", cond, yes, no), nil

	default:
		return "", &GenerateError{Msg: "nil or unknown node in syntax tree"}
	}
}

func (w *writer[S]) operation(n *ast.Operation[S]) (string, error) {
	v1, v2, err := w.pair(n.Left, n.Right)
	if err != nil {
		return "", err
	}
	switch n.Op {
	case ast.Add, ast.Sub, ast.Mul, ast.Div:
		return "(" + v1 + n.Op.String() + v2 + ")", nil
	case ast.Pow:
		// GLSL has no '^' on floats.
		return fmt.Sprintf("pow(%s,%s)", v1, v2), nil
	case ast.Mod:
		switch w.dialect {
		case Dialect100:
			// No trunc in 1.00: round the quotient toward zero by hand.
			return fmt.Sprintf("(%[1]s - %[2]s * ((%[1]s/%[2]s>0) ? floor(%[1]s/%[2]s) : ceil(%[1]s/%[2]s)))", v1, v2), nil
		default:
			return fmt.Sprintf("(%[1]s - %[2]s * trunc(%[1]s/%[2]s))", v1, v2), nil
		}
	default:
		return "", &GenerateError{Msg: "unknown operator in syntax tree"}
	}
}

func (w *writer[S]) function1(n *ast.Function1[S]) (string, error) {
	v1, err := w.expression(n.Arg)
	if err != nil {
		return "", err
	}
	switch n.Fn {
	case ast.Sin, ast.Cos, ast.Tan, ast.Sqrt, ast.Log, ast.Log2, ast.Ceil, ast.Floor:
		return n.Fn.String() + "(" + v1 + ")", nil
	case ast.Log10:
		// Neither dialect has log10.
		return fmt.Sprintf("(log(%s)/log(10.0))", v1), nil
	default:
		return "", &GenerateError{Msg: "unknown function in syntax tree"}
	}
}

// pair renders the two children of a binary node in source order.
func (w *writer[S]) pair(left, right ast.Node[S]) (v1, v2 string, err error) {
	v1, err = w.expression(left)
	if err != nil {
		return "", "", err
	}
	v2, err = w.expression(right)
	if err != nil {
		return "", "", err
	}
	return v1, v2, nil
}

// formatNumber renders a literal with the scalar type's GLSL suffix: 'f'
// for 32-bit floats, 'lf' for 64-bit.
func formatNumber[S ast.Scalar](v S) string {
	if scalarIs32[S]() {
		return strconv.FormatFloat(float64(v), 'g', -1, 32) + "f"
	}
	return strconv.FormatFloat(float64(v), 'g', -1, 64) + "lf"
}

// typeKeyword returns the GLSL declaration keyword for the scalar type.
func typeKeyword[S ast.Scalar]() string {
	if scalarIs32[S]() {
		return "float"
	}
	return "double"
}

// scalarIs32 reports whether S is a 32-bit float. Sizing the type rather
// than switching on it keeps named scalar types (~float32) working.
func scalarIs32[S ast.Scalar]() bool {
	var zero S
	return unsafe.Sizeof(zero) == 4
}
