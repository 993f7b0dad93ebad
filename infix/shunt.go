package infix

import "github.com/gogpu/shex/ast"

// Shunt reorders an infix token sequence into reverse Polish notation using
// Dijkstra's shunting yard algorithm, honoring the precedence and
// associativity table carried by the tokens. The trailing KindEOT sentinel
// is consumed; parentheses are structural and never appear in the output.
func Shunt[S ast.Scalar](tokens []Token[S], source string) ([]Token[S], error) {
	output := make([]Token[S], 0, len(tokens))
	stack := make([]Token[S], 0, len(tokens)/2)

	for _, tok := range tokens {
		switch tok.Kind {
		case KindNumber, KindVariable:
			output = append(output, tok)

		case KindFunction:
			stack = append(stack, tok)

		case KindComma:
			// Pop to the output until the opening parenthesis of the
			// enclosing call shows up; the parenthesis stays put.
			for {
				if len(stack) == 0 {
					return nil, parseErrorf(tok.Pos, source,
						"misplaced separator or unmatched parenthesis")
				}
				top := stack[len(stack)-1]
				if top.Kind == KindOpenParen {
					break
				}
				output = append(output, top)
				stack = stack[:len(stack)-1]
			}

		case KindOperator, KindUnary, KindComparison, KindLogical, KindTernary:
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if !top.isOperatorClass() {
					break
				}
				if (tok.leftAssociative() && tok.precedence() <= top.precedence()) ||
					tok.precedence() < top.precedence() {
					output = append(output, top)
					stack = stack[:len(stack)-1]
					continue
				}
				break
			}
			stack = append(stack, tok)

		case KindOpenParen:
			stack = append(stack, tok)

		case KindCloseParen:
			for {
				if len(stack) == 0 {
					return nil, parseErrorf(tok.Pos, source, "mismatched parenthesis")
				}
				top := stack[len(stack)-1]
				if top.Kind == KindOpenParen {
					break
				}
				output = append(output, top)
				stack = stack[:len(stack)-1]
			}
			// Discard the opening parenthesis; it is not emitted.
			stack = stack[:len(stack)-1]
			// A function name directly below the parenthesis pair belongs
			// to the call that just closed.
			if len(stack) > 0 && stack[len(stack)-1].Kind == KindFunction {
				output = append(output, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}

		case KindEOT:
			// Consumed here; the sentinel carries no ordering information.
		}
	}

	// Drain the stack. Any parenthesis left at this point was never matched.
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.Kind == KindOpenParen || top.Kind == KindCloseParen {
			return nil, parseErrorf(top.Pos, source, "mismatched parenthesis")
		}
		output = append(output, top)
		stack = stack[:len(stack)-1]
	}

	return output, nil
}
