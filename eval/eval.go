// Package eval reduces an expression tree to a scalar.
package eval

import (
	"fmt"
	"math"

	"github.com/gogpu/shex/ast"
)

// Env is the read-only variable environment supplied by the caller. The
// evaluator never mutates it and keeps no reference to it after returning,
// so one tree can be evaluated against any number of environments.
type Env[S ast.Scalar] map[string]S

// UnknownVariableError reports a Variable node whose name is absent from the
// environment. There is no default value.
type UnknownVariableError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("no variable %q defined in the environment", e.Name)
}

// Evaluate reduces n against env.
//
// Arithmetic follows the host math library: ^ is pow, % is the
// floating-point remainder, log is the natural logarithm. Comparisons yield
// 1 or 0 in the scalar domain. Logical operators are eager: both sides are
// evaluated regardless of the outcome. Division by zero and domain errors
// propagate whatever the scalar type produces; they are not caught.
func Evaluate[S ast.Scalar](n ast.Node[S], env Env[S]) (S, error) {
	switch n := n.(type) {
	case *ast.Number[S]:
		return n.Value, nil

	case *ast.Variable[S]:
		v, ok := env[n.Name]
		if !ok {
			return 0, &UnknownVariableError{Name: n.Name}
		}
		return v, nil

	case *ast.Operation[S]:
		left, err := Evaluate(n.Left, env)
		if err != nil {
			return 0, err
		}
		right, err := Evaluate(n.Right, env)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case ast.Add:
			return left + right, nil
		case ast.Sub:
			return left - right, nil
		case ast.Mul:
			return left * right, nil
		case ast.Div:
			return left / right, nil
		case ast.Pow:
			return S(math.Pow(float64(left), float64(right))), nil
		case ast.Mod:
			return S(math.Mod(float64(left), float64(right))), nil
		default:
			return 0, fmt.Errorf("unknown operator in tree: %w", ast.ErrMalformedTree)
		}

	case *ast.Function1[S]:
		arg, err := Evaluate(n.Arg, env)
		if err != nil {
			return 0, err
		}
		x := float64(arg)
		switch n.Fn {
		case ast.Sin:
			return S(math.Sin(x)), nil
		case ast.Cos:
			return S(math.Cos(x)), nil
		case ast.Tan:
			return S(math.Tan(x)), nil
		case ast.Sqrt:
			return S(math.Sqrt(x)), nil
		case ast.Log:
			return S(math.Log(x)), nil
		case ast.Log2:
			return S(math.Log2(x)), nil
		case ast.Log10:
			return S(math.Log10(x)), nil
		case ast.Ceil:
			return S(math.Ceil(x)), nil
		case ast.Floor:
			return S(math.Floor(x)), nil
		default:
			return 0, fmt.Errorf("unknown function in tree: %w", ast.ErrMalformedTree)
		}

	case *ast.Function2[S]:
		left, err := Evaluate(n.Left, env)
		if err != nil {
			return 0, err
		}
		right, err := Evaluate(n.Right, env)
		if err != nil {
			return 0, err
		}
		switch n.Fn {
		case ast.Min:
			return min(left, right), nil
		case ast.Max:
			return max(left, right), nil
		case ast.PowFn:
			return S(math.Pow(float64(left), float64(right))), nil
		default:
			return 0, fmt.Errorf("unknown function in tree: %w", ast.ErrMalformedTree)
		}

	case *ast.Comparison[S]:
		left, err := Evaluate(n.Left, env)
		if err != nil {
			return 0, err
		}
		right, err := Evaluate(n.Right, env)
		if err != nil {
			return 0, err
		}
		var truth bool
		switch n.Op {
		case ast.Eq:
			truth = left == right
		case ast.Ne:
			truth = left != right
		case ast.Gt:
			truth = left > right
		case ast.Ge:
			truth = left >= right
		case ast.Lt:
			truth = left < right
		case ast.Le:
			truth = left <= right
		default:
			return 0, fmt.Errorf("unknown comparison in tree: %w", ast.ErrMalformedTree)
		}
		return scalar[S](truth), nil

	case *ast.Logical[S]:
		// Both sides are always evaluated; the engine defines no
		// short-circuit semantics.
		left, err := Evaluate(n.Left, env)
		if err != nil {
			return 0, err
		}
		right, err := Evaluate(n.Right, env)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case ast.And:
			return scalar[S](left != 0 && right != 0), nil
		case ast.Or:
			return scalar[S](left != 0 || right != 0), nil
		default:
			return 0, fmt.Errorf("unknown logical operator in tree: %w", ast.ErrMalformedTree)
		}

	case *ast.Branch[S]:
		cond, err := Evaluate(n.Cond, env)
		if err != nil {
			return 0, err
		}
		if cond != 0 {
			return Evaluate(n.Yes, env)
		}
		return Evaluate(n.No, env)

	default:
		return 0, fmt.Errorf("nil or unknown node: %w", ast.ErrMalformedTree)
	}
}

// scalar coerces a truth value into the scalar domain at the node boundary.
func scalar[S ast.Scalar](truth bool) S {
	if truth {
		return 1
	}
	return 0
}
