package ast

import "errors"

// ErrMalformedTree reports a nil child or an unknown node variant reached
// during traversal. Trees produced by the parser never trigger it; only
// hand-built trees can.
var ErrMalformedTree = errors.New("malformed syntax tree")
