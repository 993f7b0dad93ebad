// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package glsl serializes an expression tree to GLSL source text.
//
// The output is a pure textual mapping of the tree: no evaluation, no
// simplification, no type inference beyond the scalar element type's literal
// suffix. Operators the target dialect lacks are rewritten in place: '%'
// expands to a trunc- or floor/ceil-based remainder depending on the
// dialect, '^' and log10 become calls the dialect can compile.
package glsl
