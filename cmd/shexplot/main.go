// Command shexplot opens a window and plots an expression as a function of
// x over a configurable range. It is the engine's interactive smoke test:
// the curve on screen is the evaluator's output, sample by sample.
//
// Usage:
//
//	shexplot -e "sin(2*x) + cos(pi/4)/3" -xmin -10 -xmax 10
//
// The environment exposes x (the sample position) and pi.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"os"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"

	"github.com/gogpu/shex"
	"github.com/gogpu/shex/ast"
)

var (
	expression = flag.String("e", "sin(2*x) + cos(pi/4)/3", "expression to plot (variables: x, pi)")
	xmin       = flag.Float64("xmin", -10, "left edge of the plotted range")
	xmax       = flag.Float64("xmax", 10, "right edge of the plotted range")
)

var (
	plotBg  = color.NRGBA{R: 0x1E, G: 0x1E, B: 0x1E, A: 0xFF}
	axisFg  = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xFF}
	curveFg = color.NRGBA{R: 0x4E, G: 0xC9, B: 0xB0, A: 0xFF}
)

func main() {
	flag.Parse()

	node, err := shex.Parse[float32](*expression)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, name := range shex.Variables(node) {
		if name != "x" && name != "pi" {
			fmt.Fprintf(os.Stderr, "Error: unknown variable %q (only x and pi are bound)\n", name)
			os.Exit(1)
		}
	}
	if *xmax <= *xmin {
		fmt.Fprintln(os.Stderr, "Error: xmax must be greater than xmin")
		os.Exit(1)
	}

	go func() {
		w := new(app.Window)
		w.Option(app.Title("shexplot: "+*expression), app.Size(unit.Dp(800), unit.Dp(480)))
		if err := run(w, node); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func run(w *app.Window, node ast.Node[float32]) error {
	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			drawPlot(gtx.Ops, gtx.Constraints.Max, node)
			e.Frame(gtx.Ops)
		}
	}
}

// drawPlot samples the expression once per pixel column and strokes the
// resulting polyline, with axes where the range crosses zero.
func drawPlot(ops *op.Ops, size image.Point, node ast.Node[float32]) {
	paint.FillShape(ops, plotBg, clip.Rect(image.Rect(0, 0, size.X, size.Y)).Op())
	if size.X < 2 || size.Y < 2 {
		return
	}

	env := shex.Env[float32]{"pi": float32(math.Pi)}
	samples := make([]float32, size.X)
	finite := make([]bool, size.X)
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for px := 0; px < size.X; px++ {
		x := *xmin + (*xmax-*xmin)*float64(px)/float64(size.X-1)
		env["x"] = float32(x)
		y, err := shex.Evaluate(node, env)
		// The variable set was checked up front; any remaining failure
		// means a non-finite sample, which the plot just skips.
		if err != nil || math.IsNaN(float64(y)) || math.IsInf(float64(y), 0) {
			continue
		}
		samples[px] = y
		finite[px] = true
		ymin = math.Min(ymin, float64(y))
		ymax = math.Max(ymax, float64(y))
	}
	if ymin > ymax {
		return // nothing finite to draw
	}
	if ymin == ymax {
		ymin, ymax = ymin-1, ymax+1
	}

	// A little headroom so the curve does not hug the window edges.
	pad := (ymax - ymin) * 0.05
	ymin, ymax = ymin-pad, ymax+pad

	toY := func(y float64) float32 {
		return float32((ymax - y) / (ymax - ymin) * float64(size.Y-1))
	}

	// Axes.
	if ymin < 0 && ymax > 0 {
		zero := int(toY(0))
		paint.FillShape(ops, axisFg, clip.Rect(image.Rect(0, zero, size.X, zero+1)).Op())
	}
	if *xmin < 0 && *xmax > 0 {
		zero := int(-*xmin / (*xmax - *xmin) * float64(size.X-1))
		paint.FillShape(ops, axisFg, clip.Rect(image.Rect(zero, 0, zero+1, size.Y)).Op())
	}

	// Curve.
	var path clip.Path
	path.Begin(ops)
	drawing := false
	for px := 0; px < size.X; px++ {
		if !finite[px] {
			drawing = false
			continue
		}
		pt := f32.Pt(float32(px), toY(float64(samples[px])))
		if drawing {
			path.LineTo(pt)
		} else {
			path.MoveTo(pt)
			drawing = true
		}
	}
	paint.FillShape(ops, curveFg, clip.Stroke{Path: path.End(), Width: 2}.Op())
}
