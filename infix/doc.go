// Package infix is the engine's frontend: it turns an expression written in
// the infix mini-language into a tree the ast package defines.
//
// # Pipeline
//
// Parsing runs in three stages, each usable on its own:
//
//   - Lexer: source text -> positional tokens, with unary/binary sign
//     disambiguation and adjacency checking
//   - Shunt: infix token order -> reverse Polish notation, via the shunting
//     yard algorithm and the operator precedence table
//   - Build: RPN -> rooted tree
//
// Parse chains the three:
//
//	node, err := infix.Parse[float32]("sin(2*x) + cos(pi/y)")
//	if err != nil {
//	    var lexErr *infix.LexError
//	    if errors.As(err, &lexErr) {
//	        fmt.Println(lexErr.FormatWithContext())
//	    }
//	}
//
// # Language
//
// Numbers, named variables, + - * / ^ %, comparisons, eager && and ||, the
// ?: conditional, and twelve reserved functions (sin cos tan sqrt log log2
// log10 ceil floor min max pow). Reserved names shadow variables. There is
// no implicit multiplication: `2x` is a lexical error.
package infix
