// Command shexc is the expression engine CLI.
//
// Usage:
//
//	shexc [options] <expression>
//
// Examples:
//
//	shexc -D x=10 -D pi=3.14159 "1.0e2 + x * pi"      # Evaluate
//	shexc -glsl 130 -fn calculate "x % y"             # Emit a GLSL function
//	shexc -rpn "a + b * c"                            # Show the RPN stream
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gogpu/shex"
	"github.com/gogpu/shex/ast"
	"github.com/gogpu/shex/glsl"
	"github.com/gogpu/shex/infix"
)

// defineFlag collects repeated -D name=value definitions.
type defineFlag []string

func (d *defineFlag) String() string { return strings.Join(*d, ",") }

func (d *defineFlag) Set(value string) error {
	*d = append(*d, value)
	return nil
}

var (
	defines   defineFlag
	emitGLSL  = flag.String("glsl", "", "emit GLSL for the given dialect (100 or 130) instead of evaluating")
	fnName    = flag.String("fn", "", "wrap emitted GLSL in a function with this name")
	showRPN   = flag.Bool("rpn", false, "print the expression in reverse Polish notation")
	useDouble = flag.Bool("double", false, "use a 64-bit scalar domain")
	version   = flag.Bool("version", false, "print version")
)

const shexVersion = "0.1.0-dev"

func main() {
	flag.Var(&defines, "D", "define a variable, e.g. -D x=10 (repeatable)")
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("shexc version %s\n", shexVersion)
		return
	}

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one expression argument")
		usage()
		os.Exit(1)
	}

	var err error
	if *useDouble {
		err = run[float64](args[0])
	} else {
		err = run[float32](args[0])
	}
	if err != nil {
		var lexErr *infix.LexError
		var parseErr *infix.ParseError
		switch {
		case errors.As(err, &lexErr):
			fmt.Fprint(os.Stderr, lexErr.FormatWithContext())
		case errors.As(err, &parseErr):
			fmt.Fprint(os.Stderr, parseErr.FormatWithContext())
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run[S ast.Scalar](source string) error {
	if *showRPN {
		tokens, err := infix.NewLexer[S](source).Tokenize()
		if err != nil {
			return err
		}
		rpn, err := infix.Shunt(tokens, source)
		if err != nil {
			return err
		}
		fmt.Println(infix.FormatTokens(rpn))
		return nil
	}

	node, err := shex.Parse[S](source)
	if err != nil {
		return err
	}

	if *emitGLSL != "" {
		var dialect glsl.Dialect
		switch *emitGLSL {
		case "100":
			dialect = glsl.Dialect100
		case "130":
			dialect = glsl.Dialect130
		default:
			return fmt.Errorf("unknown GLSL dialect %q (want 100 or 130)", *emitGLSL)
		}
		var code string
		if *fnName != "" {
			code, err = glsl.Function[S](node, *fnName, dialect)
		} else {
			code, err = shex.Generate[S](node, dialect)
		}
		if err != nil {
			return err
		}
		fmt.Println(code)
		return nil
	}

	env, err := environment[S]()
	if err != nil {
		return err
	}
	value, err := shex.Evaluate(node, env)
	if err != nil {
		return err
	}
	fmt.Println(value)
	return nil
}

func environment[S ast.Scalar]() (shex.Env[S], error) {
	env := make(shex.Env[S], len(defines))
	for _, def := range defines {
		name, text, ok := strings.Cut(def, "=")
		if !ok {
			return nil, fmt.Errorf("malformed definition %q (want name=value)", def)
		}
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed value in %q: %v", def, err)
		}
		env[name] = S(value)
	}
	return env, nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: shexc [options] <expression>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  shexc -D x=10 -D y=20 \"(x + y) * 10\"   Evaluate with variables\n")
	fmt.Fprintf(os.Stderr, "  shexc -glsl 130 \"x %% y\"                Emit a GLSL expression\n")
	fmt.Fprintf(os.Stderr, "  shexc -rpn \"a + b * c\"                 Show the RPN ordering\n")
}
