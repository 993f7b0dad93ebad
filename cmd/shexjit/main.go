// Command shexjit parses an expression, compiles it to native code with the
// LLVM backend, and prints the result of calling the compiled function.
//
// Building it requires an LLVM toolchain (the jit package uses cgo).
//
// Usage:
//
//	shexjit -D x=10 -D y=4 -D pi=3.14159 "<expression>"
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gogpu/shex"
	"github.com/gogpu/shex/jit"
)

type defineFlag []string

func (d *defineFlag) String() string { return strings.Join(*d, ",") }

func (d *defineFlag) Set(value string) error {
	*d = append(*d, value)
	return nil
}

var defines defineFlag

func main() {
	flag.Var(&defines, "D", "define a variable, e.g. -D x=10 (repeatable)")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: shexjit [-D name=value]... <expression>")
		os.Exit(1)
	}

	env := make(map[string]float32, len(defines))
	for _, def := range defines {
		name, text, ok := strings.Cut(def, "=")
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: malformed definition %q\n", def)
			os.Exit(1)
		}
		value, err := strconv.ParseFloat(text, 32)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: malformed value in %q: %v\n", def, err)
			os.Exit(1)
		}
		env[name] = float32(value)
	}

	node, err := shex.Parse[float32](args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	engine, err := jit.Compile(node, env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer engine.Dispose()

	fmt.Println(engine.Evaluate())
}
