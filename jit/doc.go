// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package jit lowers an expression tree to a native nullary function using
// LLVM, for repeated high-throughput evaluation of one formula.
//
// The backend consumes the tree through the ast.Visitor contract and is
// float32-only. Building an Engine takes a process-wide lock: LLVM's code
// generation mutates global state and is not reentrant. Calling the compiled
// function afterwards needs no lock and is safe from any goroutine.
//
// Importing this package requires an LLVM toolchain at build time (cgo); the
// rest of the module does not depend on it.
package jit
