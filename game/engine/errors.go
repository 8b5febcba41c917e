package engine

import "errors"

var (
	// ErrInvalidTriangleOrientation indicates an orientation the triangle type does not allow.
	ErrInvalidTriangleOrientation = errors.New("engine: invalid triangle orientation")
	// ErrInvalidPatternShape indicates an empty shapes sequence or shapes with differing colour-group counts.
	ErrInvalidPatternShape = errors.New("engine: invalid pattern shape")
)
