// Package infix parses the engine's infix mini-language.
package infix

import (
	"fmt"
	"strings"

	"github.com/gogpu/shex/ast"
)

// Kind discriminates the token variants of the mini-language.
type Kind uint8

const (
	KindNumber Kind = iota
	KindVariable
	KindOperator   // + - * / ^ %
	KindUnary      // sign-disambiguated + -
	KindFunction   // sin cos tan sqrt log log2 log10 ceil floor min max pow
	KindComma      // ,
	KindComparison // == != > >= < <=
	KindLogical    // && ||
	KindTernary    // ? :
	KindOpenParen  // (
	KindCloseParen // )
	KindEOT        // end of text sentinel
)

// String returns a display name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindVariable:
		return "variable"
	case KindOperator:
		return "operator"
	case KindUnary:
		return "unary sign"
	case KindFunction:
		return "function"
	case KindComma:
		return "comma"
	case KindComparison:
		return "comparison"
	case KindLogical:
		return "logical operator"
	case KindTernary:
		return "ternary"
	case KindOpenParen:
		return "open parenthesis"
	case KindCloseParen:
		return "close parenthesis"
	case KindEOT:
		return "end of text"
	default:
		return "unknown"
	}
}

// Sign is the payload of a KindUnary token.
type Sign uint8

const (
	Positive Sign = iota
	Negative
)

// TernarySym is the payload of a KindTernary token.
type TernarySym uint8

const (
	Query TernarySym = iota // ?
	Colon                   // :
)

// Function names the twelve reserved functions. The tokenizer classifies any
// identifier matching one of these as KindFunction, shadowing variables of
// the same name.
type Function uint8

const (
	FuncSin Function = iota
	FuncCos
	FuncTan
	FuncSqrt
	FuncLog
	FuncLog2
	FuncLog10
	FuncCeil
	FuncFloor
	FuncMin
	FuncMax
	FuncPow
)

// Arity returns the operand count of the function (1 or 2).
func (f Function) Arity() int {
	switch f {
	case FuncMin, FuncMax, FuncPow:
		return 2
	default:
		return 1
	}
}

// String returns the source name of the function.
func (f Function) String() string {
	switch f {
	case FuncSin:
		return "sin"
	case FuncCos:
		return "cos"
	case FuncTan:
		return "tan"
	case FuncSqrt:
		return "sqrt"
	case FuncLog:
		return "log"
	case FuncLog2:
		return "log2"
	case FuncLog10:
		return "log10"
	case FuncCeil:
		return "ceil"
	case FuncFloor:
		return "floor"
	case FuncMin:
		return "min"
	case FuncMax:
		return "max"
	case FuncPow:
		return "pow"
	default:
		return "?fn"
	}
}

// Token is a positional lexeme. Pos is the 0-based byte offset of the token's
// first character in the source text. The payload field in use depends on
// Kind; the rest are zero.
type Token[S ast.Scalar] struct {
	Kind Kind
	Pos  int

	Value S             // KindNumber
	Name  string        // KindVariable
	Op    ast.Op        // KindOperator
	Sign  Sign          // KindUnary
	Fn    Function      // KindFunction
	Cmp   ast.CompareOp // KindComparison
	Log   ast.LogicOp   // KindLogical
	Sym   TernarySym    // KindTernary
}

// isOperatorClass reports whether the token participates in the shunting
// yard's operator handling (it carries precedence and associativity).
func (t Token[S]) isOperatorClass() bool {
	switch t.Kind {
	case KindOperator, KindUnary, KindComparison, KindLogical, KindTernary:
		return true
	default:
		return false
	}
}

// precedence returns the binding strength of an operator-class token.
// Higher binds tighter.
func (t Token[S]) precedence() int {
	switch t.Kind {
	case KindUnary:
		return 50
	case KindOperator:
		switch t.Op {
		case ast.Pow:
			return 40
		case ast.Mul, ast.Div, ast.Mod:
			return 30
		default: // ast.Add, ast.Sub
			return 20
		}
	case KindComparison:
		switch t.Cmp {
		case ast.Eq, ast.Ne:
			return 10
		default: // < <= > >=
			return 15
		}
	case KindLogical:
		if t.Log == ast.And {
			return 9
		}
		return 8
	case KindTernary:
		return 5
	default:
		return 0
	}
}

// leftAssociative reports the associativity of an operator-class token.
func (t Token[S]) leftAssociative() bool {
	switch t.Kind {
	case KindUnary, KindTernary:
		return false
	case KindOperator:
		return t.Op != ast.Pow
	default:
		return true
	}
}

// lexeme returns the source spelling of the token, used by FormatTokens.
func (t Token[S]) lexeme() string {
	switch t.Kind {
	case KindNumber:
		return fmt.Sprintf("%v", t.Value)
	case KindVariable:
		return t.Name
	case KindOperator:
		return t.Op.String()
	case KindUnary:
		if t.Sign == Negative {
			return "u-"
		}
		return "u+"
	case KindFunction:
		return t.Fn.String()
	case KindComma:
		return ","
	case KindComparison:
		return t.Cmp.String()
	case KindLogical:
		return t.Log.String()
	case KindTernary:
		if t.Sym == Colon {
			return ":"
		}
		return "?"
	case KindOpenParen:
		return "("
	case KindCloseParen:
		return ")"
	default:
		return ""
	}
}

// FormatTokens renders a token sequence as space-separated lexemes, one line.
// Useful for inspecting the RPN stream a shunted sequence produces.
func FormatTokens[S ast.Scalar](tokens []Token[S]) string {
	var sb strings.Builder
	for i, t := range tokens {
		if t.Kind == KindEOT {
			continue
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.lexeme())
	}
	return sb.String()
}
