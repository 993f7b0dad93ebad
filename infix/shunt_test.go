package infix

import (
	"errors"
	"testing"
)

// shunt lexes and reorders, failing the test on a lex error.
func shunt(t *testing.T, input string) ([]Token[float32], error) {
	t.Helper()
	tokens, err := NewLexer[float32](input).Tokenize()
	if err != nil {
		t.Fatalf("Input %q: unexpected lex error: %v", input, err)
	}
	return Shunt(tokens, input)
}

func TestShuntOrdering(t *testing.T) {
	tests := []struct {
		input string
		rpn   string
	}{
		{"1", "1"},
		{"a + b", "a b +"},
		{"a + b * c", "a b c * +"},
		{"a * b + c", "a b * c +"},
		{"(a + b) * c", "a b + c *"},

		// Associativity: ^ groups right, everything arithmetic else left.
		{"a ^ b ^ c", "a b c ^ ^"},
		{"a - b - c", "a b - c -"},
		{"a / b % c", "a b / c %"},

		// Unary signs bind tighter than any binary operator.
		{"-a * b", "a u- b *"},
		{"2 ^ -3", "2 3 u- ^"},

		{"min(a, b)", "a b min"},
		{"pow(a + b, 2)", "a b + 2 pow"},
		{"sin(x)", "x sin"},

		// Comparison, logical, and ternary precedence tiers.
		{"a < b == c", "a b < c =="},
		{"a && b || c", "a b && c ||"},
		{"a == b && c", "a b == c &&"},
		{"a ? b : c", "a b c : ?"},
		{"a ? b : c ? d : e", "a b c d e : ? : ?"},
		{"a < b ? a : b", "a b < a b : ?"},
	}

	for _, tt := range tests {
		rpn, err := shunt(t, tt.input)
		if err != nil {
			t.Errorf("Input %q: unexpected error: %v", tt.input, err)
			continue
		}
		if got := FormatTokens(rpn); got != tt.rpn {
			t.Errorf("Input %q: expected RPN %q, got %q", tt.input, tt.rpn, got)
		}
	}
}

func TestShuntErrors(t *testing.T) {
	tests := []string{
		")))))))+x",  // unmatched closing parentheses
		"(a + b",     // unmatched opening parenthesis
		"((a)",       // one parenthesis left on the stack
		"a, b",       // separator outside any call
	}

	for _, input := range tests {
		_, err := shunt(t, input)
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
