package infix

import "github.com/gogpu/shex/ast"

// Build constructs the AST from a token sequence in RPN order.
//
// Operands reach the stack in source order, so for every binary token the
// first pop yields the right source operand and the second pop the left.
// Build stores them back in source order: node.Left is always the left
// operand as written. Consumers never need to swap.
func Build[S ast.Scalar](rpn []Token[S], source string) (ast.Node[S], error) {
	stack := make([]ast.Node[S], 0, len(rpn))

	push := func(n ast.Node[S]) {
		stack = append(stack, n)
	}
	pop := func() ast.Node[S] {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return n
	}

	for _, tok := range rpn {
		switch tok.Kind {
		case KindNumber:
			push(&ast.Number[S]{Value: tok.Value})

		case KindVariable:
			push(&ast.Variable[S]{Name: tok.Name})

		case KindUnary:
			if len(stack) < 1 {
				return nil, parseErrorf(tok.Pos, source,
					"unary sign with no operand")
			}
			if tok.Sign == Negative {
				// Fold into a literal when possible; otherwise subtract
				// from zero so -x and -(x+1) keep their meaning.
				switch n := pop().(type) {
				case *ast.Number[S]:
					push(&ast.Number[S]{Value: -n.Value})
				default:
					push(&ast.Operation[S]{
						Op:    ast.Sub,
						Left:  &ast.Number[S]{Value: 0},
						Right: n,
					})
				}
			}

		case KindOperator:
			if len(stack) < 2 {
				return nil, parseErrorf(tok.Pos, source,
					"operator %q with insufficient operands", tok.Op.String())
			}
			right, left := pop(), pop()
			push(&ast.Operation[S]{Op: tok.Op, Left: left, Right: right})

		case KindFunction:
			if tok.Fn.Arity() == 2 {
				if len(stack) < 2 {
					return nil, parseErrorf(tok.Pos, source,
						"function %q with insufficient operands", tok.Fn.String())
				}
				right, left := pop(), pop()
				push(&ast.Function2[S]{Fn: fn2[tok.Fn], Left: left, Right: right})
				break
			}
			if len(stack) < 1 {
				return nil, parseErrorf(tok.Pos, source,
					"function %q with insufficient operands", tok.Fn.String())
			}
			push(&ast.Function1[S]{Fn: fn1[tok.Fn], Arg: pop()})

		case KindComparison:
			if len(stack) < 2 {
				return nil, parseErrorf(tok.Pos, source,
					"comparison %q with insufficient operands", tok.Cmp.String())
			}
			right, left := pop(), pop()
			push(&ast.Comparison[S]{Op: tok.Cmp, Left: left, Right: right})

		case KindLogical:
			if len(stack) < 2 {
				return nil, parseErrorf(tok.Pos, source,
					"logical operator %q with insufficient operands", tok.Log.String())
			}
			right, left := pop(), pop()
			push(&ast.Logical[S]{Op: tok.Log, Left: left, Right: right})

		case KindTernary:
			// The ':' separator was ordered by the shunter and has no
			// construction action of its own.
			if tok.Sym == Colon {
				break
			}
			if len(stack) < 3 {
				return nil, parseErrorf(tok.Pos, source,
					"ternary operator with insufficient operands")
			}
			no, yes, cond := pop(), pop(), pop()
			push(&ast.Branch[S]{Cond: cond, Yes: yes, No: no})
		}
	}

	switch len(stack) {
	case 1:
		return stack[0], nil
	case 0:
		return nil, parseErrorf(-1, source, "empty expression")
	default:
		return nil, parseErrorf(-1, source,
			"%d operands left over after parsing", len(stack)-1)
	}
}

// fn1 and fn2 map reserved function tokens onto the tree's enums.
var fn1 = map[Function]ast.Func1{
	FuncSin:   ast.Sin,
	FuncCos:   ast.Cos,
	FuncTan:   ast.Tan,
	FuncSqrt:  ast.Sqrt,
	FuncLog:   ast.Log,
	FuncLog2:  ast.Log2,
	FuncLog10: ast.Log10,
	FuncCeil:  ast.Ceil,
	FuncFloor: ast.Floor,
}

var fn2 = map[Function]ast.Func2{
	FuncMin: ast.Min,
	FuncMax: ast.Max,
	FuncPow: ast.PowFn,
}

// Parse runs the full frontend pipeline: tokenize, reorder to RPN, build.
func Parse[S ast.Scalar](source string) (ast.Node[S], error) {
	tokens, err := NewLexer[S](source).Tokenize()
	if err != nil {
		return nil, err
	}
	rpn, err := Shunt(tokens, source)
	if err != nil {
		return nil, err
	}
	return Build(rpn, source)
}
