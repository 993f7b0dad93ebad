// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package jit

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ajsnow/llvm"

	"github.com/gogpu/shex/ast"
	"github.com/gogpu/shex/eval"
)

// codegenMu serializes Engine construction for the lifetime of the
// code-generation calls. Invoking an already-compiled function does not
// take it.
var codegenMu sync.Mutex

var nativeOnce sync.Once

// Engine holds one compiled expression and the variable slots it reads.
type Engine struct {
	module llvm.Module
	engine llvm.ExecutionEngine
	fn     llvm.Value

	// slots pins the variable storage the generated code loads through.
	// The Engine must stay reachable for as long as the function is called.
	slots map[string]*float32
}

// Compile lowers n into a native function. The environment's values are
// copied into slots owned by the Engine; Set updates them between calls
// without recompiling.
func Compile(n ast.Node[float32], env map[string]float32) (*Engine, error) {
	codegenMu.Lock()
	defer codegenMu.Unlock()

	nativeOnce.Do(func() {
		llvm.InitializeNativeTarget()
	})

	slots := make(map[string]*float32, len(env))
	for name, value := range env {
		v := value
		slots[name] = &v
	}

	module := llvm.NewModule("shex jit")
	engine, err := llvm.NewExecutionEngine(module)
	if err != nil {
		return nil, fmt.Errorf("jit: could not initialize LLVM execution engine: %w", err)
	}

	fpm := llvm.NewFunctionPassManagerForModule(module)
	fpm.AddPromoteMemoryToRegisterPass()
	fpm.AddInstructionCombiningPass()
	fpm.AddReassociatePass()
	fpm.AddGVNPass()
	fpm.AddCFGSimplificationPass()
	fpm.InitializeFunc()

	fnType := llvm.FunctionType(llvm.FloatType(), nil, false)
	fn := llvm.AddFunction(module, "evaluate", fnType)
	block := llvm.AddBasicBlock(fn, "entry")

	builder := llvm.NewBuilder()
	defer builder.Dispose()
	builder.SetInsertPointAtEnd(block)

	g := &lowerer{builder: builder, module: module, slots: slots}
	if err := ast.Walk(n, g); err != nil {
		engine.Dispose()
		return nil, err
	}
	builder.CreateRet(g.stack[0])
	fpm.RunFunc(fn)

	return &Engine{module: module, engine: engine, fn: fn, slots: slots}, nil
}

// Evaluate calls the compiled function with the current slot values.
func (e *Engine) Evaluate() float32 {
	result := e.engine.RunFunction(e.fn, []llvm.GenericValue{})
	return float32(result.Float(llvm.FloatType()))
}

// Set updates a variable slot read by the compiled function.
func (e *Engine) Set(name string, value float32) error {
	slot, ok := e.slots[name]
	if !ok {
		return &eval.UnknownVariableError{Name: name}
	}
	*slot = value
	return nil
}

// Dispose releases the execution engine and the module it owns. The
// compiled function must not be called afterwards.
func (e *Engine) Dispose() {
	e.engine.Dispose()
}

// lowerer converts the tree to LLVM IR through the post-order Visitor
// contract, keeping operand values on a stack.
type lowerer struct {
	builder llvm.Builder
	module  llvm.Module
	slots   map[string]*float32
	stack   []llvm.Value
}

func (g *lowerer) push(v llvm.Value) {
	g.stack = append(g.stack, v)
}

func (g *lowerer) pop() llvm.Value {
	v := g.stack[len(g.stack)-1]
	g.stack = g.stack[:len(g.stack)-1]
	return v
}

// pop2 pops a binary node's operands; post order pushed left first.
func (g *lowerer) pop2() (left, right llvm.Value) {
	right = g.pop()
	left = g.pop()
	return left, right
}

func (g *lowerer) Number(n *ast.Number[float32]) error {
	g.push(llvm.ConstFloat(llvm.FloatType(), float64(n.Value)))
	return nil
}

func (g *lowerer) Variable(n *ast.Variable[float32]) error {
	slot, ok := g.slots[n.Name]
	if !ok {
		return &eval.UnknownVariableError{Name: n.Name}
	}
	// Bake the slot address into the code and load through it, so the
	// function sees updates made with Set.
	addr := llvm.ConstInt(llvm.Int64Type(), uint64(uintptr(unsafe.Pointer(slot))), false)
	ptr := g.builder.CreateIntToPtr(addr, llvm.PointerType(llvm.FloatType(), 0), "varptr")
	g.push(g.builder.CreateLoad(ptr, n.Name))
	return nil
}

func (g *lowerer) Operation(n *ast.Operation[float32]) error {
	left, right := g.pop2()
	switch n.Op {
	case ast.Add:
		g.push(g.builder.CreateFAdd(left, right, "addtmp"))
	case ast.Sub:
		g.push(g.builder.CreateFSub(left, right, "subtmp"))
	case ast.Mul:
		g.push(g.builder.CreateFMul(left, right, "multmp"))
	case ast.Div:
		g.push(g.builder.CreateFDiv(left, right, "divtmp"))
	case ast.Pow:
		g.push(g.call2("llvm.pow.f32", left, right, "powtmp"))
	case ast.Mod:
		g.push(g.builder.CreateFRem(left, right, "modtmp"))
	default:
		return ast.ErrMalformedTree
	}
	return nil
}

func (g *lowerer) Function1(n *ast.Function1[float32]) error {
	arg := g.pop()
	switch n.Fn {
	case ast.Sin:
		g.push(g.call1("llvm.sin.f32", arg, "sintmp"))
	case ast.Cos:
		g.push(g.call1("llvm.cos.f32", arg, "costmp"))
	case ast.Tan:
		// No tan intrinsic; divide sin by cos.
		sin := g.call1("llvm.sin.f32", arg, "sintmp")
		cos := g.call1("llvm.cos.f32", arg, "costmp")
		g.push(g.builder.CreateFDiv(sin, cos, "tantmp"))
	case ast.Sqrt:
		g.push(g.call1("llvm.sqrt.f32", arg, "sqrttmp"))
	case ast.Log:
		g.push(g.call1("llvm.log.f32", arg, "logtmp"))
	case ast.Log2:
		g.push(g.call1("llvm.log2.f32", arg, "log2tmp"))
	case ast.Log10:
		g.push(g.call1("llvm.log10.f32", arg, "log10tmp"))
	case ast.Ceil:
		g.push(g.call1("llvm.ceil.f32", arg, "ceiltmp"))
	case ast.Floor:
		g.push(g.call1("llvm.floor.f32", arg, "floortmp"))
	default:
		return ast.ErrMalformedTree
	}
	return nil
}

func (g *lowerer) Function2(n *ast.Function2[float32]) error {
	left, right := g.pop2()
	switch n.Fn {
	case ast.Min:
		gt := g.builder.CreateFCmp(llvm.FloatOGT, left, right, "ogttmp")
		g.push(g.builder.CreateSelect(gt, right, left, "mintmp"))
	case ast.Max:
		gt := g.builder.CreateFCmp(llvm.FloatOGT, left, right, "ogttmp")
		g.push(g.builder.CreateSelect(gt, left, right, "maxtmp"))
	case ast.PowFn:
		g.push(g.call2("llvm.pow.f32", left, right, "powtmp"))
	default:
		return ast.ErrMalformedTree
	}
	return nil
}

func (g *lowerer) Comparison(n *ast.Comparison[float32]) error {
	left, right := g.pop2()
	var pred llvm.FloatPredicate
	switch n.Op {
	case ast.Eq:
		pred = llvm.FloatOEQ
	case ast.Ne:
		pred = llvm.FloatONE
	case ast.Gt:
		pred = llvm.FloatOGT
	case ast.Ge:
		pred = llvm.FloatOGE
	case ast.Lt:
		pred = llvm.FloatOLT
	case ast.Le:
		pred = llvm.FloatOLE
	default:
		return ast.ErrMalformedTree
	}
	cmp := g.builder.CreateFCmp(pred, left, right, "cmptmp")
	g.push(g.builder.CreateUIToFP(cmp, llvm.FloatType(), "booltmp"))
	return nil
}

func (g *lowerer) Logical(n *ast.Logical[float32]) error {
	left, right := g.pop2()
	zero := llvm.ConstFloat(llvm.FloatType(), 0)
	lt := g.builder.CreateFCmp(llvm.FloatONE, left, zero, "ltruth")
	rt := g.builder.CreateFCmp(llvm.FloatONE, right, zero, "rtruth")
	var both llvm.Value
	switch n.Op {
	case ast.And:
		both = g.builder.CreateAnd(lt, rt, "andtmp")
	case ast.Or:
		both = g.builder.CreateOr(lt, rt, "ortmp")
	default:
		return ast.ErrMalformedTree
	}
	g.push(g.builder.CreateUIToFP(both, llvm.FloatType(), "booltmp"))
	return nil
}

func (g *lowerer) Branch(n *ast.Branch[float32]) error {
	// Post order already generated all three subtrees; select picks the
	// value of the taken one.
	no := g.pop()
	yes := g.pop()
	cond := g.pop()
	zero := llvm.ConstFloat(llvm.FloatType(), 0)
	truth := g.builder.CreateFCmp(llvm.FloatONE, cond, zero, "ifcond")
	g.push(g.builder.CreateSelect(truth, yes, no, "iftmp"))
	return nil
}

// intrinsic returns (declaring on first use) a float intrinsic of the
// given arity.
func (g *lowerer) intrinsic(name string, arity int) llvm.Value {
	fn := g.module.NamedFunction(name)
	if !fn.IsNil() {
		return fn
	}
	params := make([]llvm.Type, arity)
	for i := range params {
		params[i] = llvm.FloatType()
	}
	return llvm.AddFunction(g.module, name, llvm.FunctionType(llvm.FloatType(), params, false))
}

func (g *lowerer) call1(name string, arg llvm.Value, tmp string) llvm.Value {
	return g.builder.CreateCall(g.intrinsic(name, 1), []llvm.Value{arg}, tmp)
}

func (g *lowerer) call2(name string, a, b llvm.Value, tmp string) llvm.Value {
	return g.builder.CreateCall(g.intrinsic(name, 2), []llvm.Value{a, b}, tmp)
}
