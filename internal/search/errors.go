package search

import "errors"

// ErrVectorLengthMismatch indicates two vectors have different dimensions.
// The engine never truncates or pads to hide it.
var ErrVectorLengthMismatch = errors.New("vector length mismatch")
