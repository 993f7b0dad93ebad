package infix

import (
	"strconv"

	"github.com/gogpu/shex/ast"
)

// Lexer tokenizes an expression source string.
//
// The lexer is also where syntactically impossible adjacencies are rejected:
// an infix operator with no expression before it, an identifier directly
// following a value (no implicit multiplication), a sign directly following a
// function name, and a trailing operator all fail here with a positioned
// LexError rather than surfacing later as a confusing structural error.
type Lexer[S ast.Scalar] struct {
	source string
	pos    int
	tokens []Token[S]
}

// NewLexer creates a lexer for the given source.
func NewLexer[S ast.Scalar](source string) *Lexer[S] {
	// Expressions average roughly one token per three characters.
	estTokens := len(source) / 3
	if estTokens < 8 {
		estTokens = 8
	}
	return &Lexer[S]{
		source: source,
		tokens: make([]Token[S], 0, estTokens),
	}
}

// Tokenize returns the token sequence for the source, terminated by a
// KindEOT sentinel carrying the terminal offset.
func (l *Lexer[S]) Tokenize() ([]Token[S], error) {
	for {
		l.skipWhitespace()
		if l.pos >= len(l.source) {
			break
		}
		if err := l.scanToken(); err != nil {
			return nil, err
		}
	}

	// A non-empty expression must end with something that terminates an
	// expression, not with a dangling operator.
	if len(l.tokens) > 0 {
		switch last := l.tokens[len(l.tokens)-1]; last.Kind {
		case KindNumber, KindVariable, KindCloseParen:
		default:
			return nil, lexErrorf(last.Pos, l.source,
				"expression ends with %s", last.Kind)
		}
	}

	l.tokens = append(l.tokens, Token[S]{Kind: KindEOT, Pos: len(l.source)})
	return l.tokens, nil
}

func (l *Lexer[S]) scanToken() error {
	start := l.pos
	c := l.source[l.pos]

	if isDigit(c) || c == '.' {
		return l.number(start)
	}

	// Two-character operators.
	if l.pos+1 < len(l.source) {
		switch l.source[l.pos : l.pos+2] {
		case "==":
			return l.infixOperator(start, 2, Token[S]{Kind: KindComparison, Cmp: ast.Eq})
		case "!=":
			return l.infixOperator(start, 2, Token[S]{Kind: KindComparison, Cmp: ast.Ne})
		case "<=":
			return l.infixOperator(start, 2, Token[S]{Kind: KindComparison, Cmp: ast.Le})
		case ">=":
			return l.infixOperator(start, 2, Token[S]{Kind: KindComparison, Cmp: ast.Ge})
		case "&&":
			return l.infixOperator(start, 2, Token[S]{Kind: KindLogical, Log: ast.And})
		case "||":
			return l.infixOperator(start, 2, Token[S]{Kind: KindLogical, Log: ast.Or})
		}
	}

	switch c {
	case '+':
		return l.sign(start, Positive, ast.Add)
	case '-':
		return l.sign(start, Negative, ast.Sub)
	case '*':
		return l.infixOperator(start, 1, Token[S]{Kind: KindOperator, Op: ast.Mul})
	case '/':
		return l.infixOperator(start, 1, Token[S]{Kind: KindOperator, Op: ast.Div})
	case '^':
		return l.infixOperator(start, 1, Token[S]{Kind: KindOperator, Op: ast.Pow})
	case '%':
		return l.infixOperator(start, 1, Token[S]{Kind: KindOperator, Op: ast.Mod})
	case '?':
		return l.infixOperator(start, 1, Token[S]{Kind: KindTernary, Sym: Query})
	case ':':
		return l.infixOperator(start, 1, Token[S]{Kind: KindTernary, Sym: Colon})
	case ',':
		return l.infixOperator(start, 1, Token[S]{Kind: KindComma})
	case '<':
		return l.infixOperator(start, 1, Token[S]{Kind: KindComparison, Cmp: ast.Lt})
	case '>':
		return l.infixOperator(start, 1, Token[S]{Kind: KindComparison, Cmp: ast.Gt})
	case '(':
		l.pos++
		l.add(Token[S]{Kind: KindOpenParen, Pos: start})
		return nil
	case ')':
		l.pos++
		l.add(Token[S]{Kind: KindCloseParen, Pos: start})
		return nil
	}

	if isIdentChar(c) {
		return l.identifier(start)
	}

	return lexErrorf(start, l.source, "unexpected character %q", rune(c))
}

// sign handles '+' and '-', which need unary/binary disambiguation against
// the previous token.
func (l *Lexer[S]) sign(start int, s Sign, op ast.Op) error {
	l.pos++
	if len(l.tokens) == 0 {
		l.add(Token[S]{Kind: KindUnary, Pos: start, Sign: s})
		return nil
	}
	switch l.tokens[len(l.tokens)-1].Kind {
	case KindNumber, KindVariable, KindCloseParen:
		l.add(Token[S]{Kind: KindOperator, Pos: start, Op: op})
	case KindFunction:
		return lexErrorf(start, l.source, "unary sign cannot follow a function name")
	case KindUnary:
		return lexErrorf(start, l.source, "consecutive unary signs")
	default:
		l.add(Token[S]{Kind: KindUnary, Pos: start, Sign: s})
	}
	return nil
}

// infixOperator emits an operator-class token that requires a preceding
// expression: everything except the sign-disambiguated '+'/'-'.
func (l *Lexer[S]) infixOperator(start, width int, tok Token[S]) error {
	tok.Pos = start
	if len(l.tokens) == 0 {
		return lexErrorf(start, l.source, "%s with no expression before it", tok.Kind)
	}
	switch l.tokens[len(l.tokens)-1].Kind {
	case KindNumber, KindVariable, KindCloseParen:
	default:
		return lexErrorf(start, l.source, "%s with no expression before it", tok.Kind)
	}
	l.pos += width
	l.add(tok)
	return nil
}

// number scans digit* ('.' digit*)? ([eE] [+-]? digit*)? and converts it by
// standard textual parsing.
func (l *Lexer[S]) number(start int) error {
	for l.pos < len(l.source) && isDigit(l.source[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.source) && l.source[l.pos] == '.' {
		l.pos++
		for l.pos < len(l.source) && isDigit(l.source[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.source) && (l.source[l.pos] == 'e' || l.source[l.pos] == 'E') {
		l.pos++
		if l.pos < len(l.source) && (l.source[l.pos] == '+' || l.source[l.pos] == '-') {
			l.pos++
		}
		for l.pos < len(l.source) && isDigit(l.source[l.pos]) {
			l.pos++
		}
	}

	text := l.source[start:l.pos]
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return lexErrorf(start, l.source, "malformed number %q", text)
	}
	l.add(Token[S]{Kind: KindNumber, Pos: start, Value: S(value)})
	return nil
}

// identifier scans a maximal [A-Za-z0-9_]+ run and classifies it as a
// reserved function name or a variable. Maximal munch is what makes the
// fused names log2 and log10 win over log followed by a digit.
func (l *Lexer[S]) identifier(start int) error {
	for l.pos < len(l.source) && isIdentChar(l.source[l.pos]) {
		l.pos++
	}
	word := l.source[start:l.pos]

	// No implicit multiplication: a name cannot directly follow a value,
	// a function name, or a closing parenthesis.
	if len(l.tokens) > 0 {
		switch l.tokens[len(l.tokens)-1].Kind {
		case KindNumber, KindVariable, KindFunction, KindCloseParen:
			return lexErrorf(start, l.source, "unexpected name %q after %s",
				word, l.tokens[len(l.tokens)-1].Kind)
		}
	}

	if fn, ok := functions[word]; ok {
		l.add(Token[S]{Kind: KindFunction, Pos: start, Fn: fn})
		return nil
	}
	l.add(Token[S]{Kind: KindVariable, Pos: start, Name: word})
	return nil
}

// functions maps the reserved names. A reserved name always lexes as a
// function and therefore shadows any same-named variable.
var functions = map[string]Function{
	"sin":   FuncSin,
	"cos":   FuncCos,
	"tan":   FuncTan,
	"sqrt":  FuncSqrt,
	"log":   FuncLog,
	"log2":  FuncLog2,
	"log10": FuncLog10,
	"ceil":  FuncCeil,
	"floor": FuncFloor,
	"min":   FuncMin,
	"max":   FuncMax,
	"pow":   FuncPow,
}

func (l *Lexer[S]) add(tok Token[S]) {
	l.tokens = append(l.tokens, tok)
}

func (l *Lexer[S]) skipWhitespace() {
	for l.pos < len(l.source) {
		switch l.source[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentChar(c byte) bool {
	return c == '_' || isDigit(c) ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
