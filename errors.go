package dax

import (
	"errors"
	"fmt"
)

var (
	ErrNoRoot       = errors.New("document has no root element")
	ErrInvalidInput = errors.New("invalid input")
)

// ParseError is returned when the input cannot be read as XML. The
// position is the reader's position when the failure was detected.
type ParseError struct {
	Err    error
	Line   int
	Column int
	Offset int64
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d", e.Err, e.Line, e.Column)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
