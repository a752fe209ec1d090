package repl

import "github.com/qosasa/qosasa/pkg"

// Sentinel errors.
var (
	ErrOutOfBounds  = pkg.NewError("index out of range")
	ErrEditDeclined = pkg.NewError("decline edit")
	ErrReadTemplate = pkg.NewError("read template")
)
