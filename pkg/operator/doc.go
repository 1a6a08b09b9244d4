// Package operator defines the fixed-arity function shapes a scalar
// or vector derived node invokes to recompute its value, plus a
// handful of trivial operators used by tests and the demo program.
//
// # Overview
//
// A derived node needs an ordered list of input handles and a compute
// function. Rather than a single variadic closure (which would force
// a slice allocation on every stabilize call), this package exposes a
// fixed-arity family: Func1, Func2, Func3 take their inputs as plain
// float64 arguments; FuncN takes a pre-allocated slice the caller
// owns and reuses across passes. Any node with more than three inputs
// uses FuncN.
//
// The financial function library (moving averages, RSI, MACD, and the
// like) is out of scope here: this package only fixes the operator
// *shape*, plus a few trivial arithmetic operators (Add, Subtract,
// Divide2, Mean2, VectorScale) standing in for a user-supplied
// library.
package operator
