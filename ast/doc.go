// Package ast defines the expression tree shared by every consumer of the
// engine: the evaluator, the GLSL emitter, and the optional JIT backend.
//
// A tree is built by the infix package and is immutable by convention once
// parsed. Nodes own their children exclusively; Clone produces a fully
// independent copy. Trees carry no reference to any variable environment:
// a Variable node stores only its name, which consumers resolve at visit
// time. This lets one tree be evaluated against many environments and
// shared across goroutines for read-only traversal.
//
// The tree is parameterized by the scalar element type S, typically float32.
package ast
