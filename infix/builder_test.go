package infix

import (
	"errors"
	"testing"

	"github.com/gogpu/shex/ast"
)

func mustParse(t *testing.T, input string) ast.Node[float32] {
	t.Helper()
	node, err := Parse[float32](input)
	if err != nil {
		t.Fatalf("Input %q: unexpected error: %v", input, err)
	}
	return node
}

func num(v float32) ast.Node[float32]    { return &ast.Number[float32]{Value: v} }
func varb(name string) ast.Node[float32] { return &ast.Variable[float32]{Name: name} }

func TestBuildTreeShapes(t *testing.T) {
	tests := []struct {
		input    string
		expected ast.Node[float32]
	}{
		{"42", num(42)},
		{"x", varb("x")},
		{
			// node.Left is the left source operand: 1 - 2, not 2 - 1.
			"1 - 2",
			&ast.Operation[float32]{Op: ast.Sub, Left: num(1), Right: num(2)},
		},
		{
			"1 + 2 * 3",
			&ast.Operation[float32]{
				Op:   ast.Add,
				Left: num(1),
				Right: &ast.Operation[float32]{
					Op: ast.Mul, Left: num(2), Right: num(3),
				},
			},
		},
		{
			"sin(x)",
			&ast.Function1[float32]{Fn: ast.Sin, Arg: varb("x")},
		},
		{
			"pow(x, 3)",
			&ast.Function2[float32]{Fn: ast.PowFn, Left: varb("x"), Right: num(3)},
		},
		{
			"min(a, b)",
			&ast.Function2[float32]{Fn: ast.Min, Left: varb("a"), Right: varb("b")},
		},
		{
			"a <= b",
			&ast.Comparison[float32]{Op: ast.Le, Left: varb("a"), Right: varb("b")},
		},
		{
			"a && b",
			&ast.Logical[float32]{Op: ast.And, Left: varb("a"), Right: varb("b")},
		},
		{
			"a ? b : c",
			&ast.Branch[float32]{Cond: varb("a"), Yes: varb("b"), No: varb("c")},
		},
	}

	for _, tt := range tests {
		node := mustParse(t, tt.input)
		if !ast.Equal(node, tt.expected) {
			t.Errorf("Input %q: tree does not match expected shape", tt.input)
		}
	}
}

func TestBuildUnary(t *testing.T) {
	tests := []struct {
		input    string
		expected ast.Node[float32]
	}{
		// A sign before a literal folds into the literal.
		{"-5", num(-5)},
		{"+5", num(5)},
		{"1 - -5", &ast.Operation[float32]{Op: ast.Sub, Left: num(1), Right: num(-5)}},
		// A sign before anything else becomes a subtraction from zero.
		{"-x", &ast.Operation[float32]{Op: ast.Sub, Left: num(0), Right: varb("x")}},
		{
			"-(x + 1)",
			&ast.Operation[float32]{
				Op:   ast.Sub,
				Left: num(0),
				Right: &ast.Operation[float32]{
					Op: ast.Add, Left: varb("x"), Right: num(1),
				},
			},
		},
		{"-sin(x)", &ast.Operation[float32]{
			Op:    ast.Sub,
			Left:  num(0),
			Right: &ast.Function1[float32]{Fn: ast.Sin, Arg: varb("x")},
		}},
		// Unary plus is a no-op on the tree.
		{"+x", varb("x")},
	}

	for _, tt := range tests {
		node := mustParse(t, tt.input)
		if !ast.Equal(node, tt.expected) {
			t.Errorf("Input %q: tree does not match expected shape", tt.input)
		}
	}
}

// binaryOps is the full binary operator table: lexeme, precedence, and
// right-associativity as specified for the language.
var binaryOps = []struct {
	lexeme     string
	precedence int
	rightAssoc bool
}{
	{"^", 40, true},
	{"*", 30, false},
	{"/", 30, false},
	{"%", 30, false},
	{"+", 20, false},
	{"-", 20, false},
	{"<", 15, false},
	{"<=", 15, false},
	{">", 15, false},
	{">=", 15, false},
	{"==", 10, false},
	{"!=", 10, false},
	{"&&", 9, false},
	{"||", 8, false},
}

// binary builds the node for `left OP right` given the operator's lexeme.
func binary(lexeme string, left, right ast.Node[float32]) ast.Node[float32] {
	switch lexeme {
	case "+":
		return &ast.Operation[float32]{Op: ast.Add, Left: left, Right: right}
	case "-":
		return &ast.Operation[float32]{Op: ast.Sub, Left: left, Right: right}
	case "*":
		return &ast.Operation[float32]{Op: ast.Mul, Left: left, Right: right}
	case "/":
		return &ast.Operation[float32]{Op: ast.Div, Left: left, Right: right}
	case "^":
		return &ast.Operation[float32]{Op: ast.Pow, Left: left, Right: right}
	case "%":
		return &ast.Operation[float32]{Op: ast.Mod, Left: left, Right: right}
	case "==":
		return &ast.Comparison[float32]{Op: ast.Eq, Left: left, Right: right}
	case "!=":
		return &ast.Comparison[float32]{Op: ast.Ne, Left: left, Right: right}
	case ">":
		return &ast.Comparison[float32]{Op: ast.Gt, Left: left, Right: right}
	case ">=":
		return &ast.Comparison[float32]{Op: ast.Ge, Left: left, Right: right}
	case "<":
		return &ast.Comparison[float32]{Op: ast.Lt, Left: left, Right: right}
	case "<=":
		return &ast.Comparison[float32]{Op: ast.Le, Left: left, Right: right}
	case "&&":
		return &ast.Logical[float32]{Op: ast.And, Left: left, Right: right}
	case "||":
		return &ast.Logical[float32]{Op: ast.Or, Left: left, Right: right}
	default:
		panic("unknown operator lexeme " + lexeme)
	}
}

// TestBuildPrecedenceGrid parses `a A b B c` for every operator pair and
// checks the grouping against manual reduction with the precedence table.
func TestBuildPrecedenceGrid(t *testing.T) {
	for _, opA := range binaryOps {
		for _, opB := range binaryOps {
			input := "a " + opA.lexeme + " b " + opB.lexeme + " c"
			node, err := Parse[float32](input)
			if err != nil {
				t.Errorf("Input %q: unexpected error: %v", input, err)
				continue
			}

			// Higher precedence groups first; on a tie, left association
			// groups left and right association groups right.
			var expected ast.Node[float32]
			groupLeft := opA.precedence > opB.precedence ||
				(opA.precedence == opB.precedence && !opA.rightAssoc)
			if groupLeft {
				expected = binary(opB.lexeme, binary(opA.lexeme, varb("a"), varb("b")), varb("c"))
			} else {
				expected = binary(opA.lexeme, varb("a"), binary(opB.lexeme, varb("b"), varb("c")))
			}

			if !ast.Equal(node, expected) {
				t.Errorf("Input %q: grouping does not match the precedence table", input)
			}
		}
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []string{
		"min(x)",
		"max(y)",
		"pow(2)",
		"2(x)",
		"(a b)",
	}
	// The binary functions fail the builder's arity check, "2(x)" leaves an
	// operand over, and "(a b)" already fails in the lexer. All surface as
	// frontend errors from Parse.
	for _, input := range tests {
		if _, err := Parse[float32](input); err == nil {
			t.Errorf("Input %q: expected an error, got none", input)
		}
	}
}

func TestBuildParseErrorTypes(t *testing.T) {
	tests := []string{
		"min(x)",
		"2(x)",
		"",
	}
	for _, input := range tests {
		_, err := Parse[float32](input)
		if err == nil {
			t.Errorf("Input %q: expected a parse error, got none", input)
			continue
		}
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("Input %q: expected *ParseError, got %T", input, err)
		}
	}
}

func TestBuildHandBuiltRPN(t *testing.T) {
	// Build is usable with a hand-ordered stream; under-arity streams fail.
	rpn := []Token[float32]{
		{Kind: KindNumber, Value: 2},
		{Kind: KindNumber, Value: 3},
		{Kind: KindOperator, Op: ast.Sub},
	}
	node, err := Build(rpn, "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected := &ast.Operation[float32]{Op: ast.Sub, Left: num(2), Right: num(3)}
	if !ast.Equal(node, expected) {
		t.Error("Hand-built RPN produced the wrong tree")
	}

	short := []Token[float32]{
		{Kind: KindNumber, Value: 2},
		{Kind: KindOperator, Op: ast.Add},
	}
	if _, err := Build(short, ""); err == nil {
		t.Error("Expected an error for an operator with one operand")
	}

	var parseErr *ParseError
	_, err = Build([]Token[float32]{{Kind: KindUnary, Sign: Negative}}, "")
	if !errors.As(err, &parseErr) {
		t.Errorf("Expected *ParseError for a unary sign with no operand, got %T", err)
	}
}
