package executor

import (
	"errors"

	"github.com/ezrec/bftree/ir"
	"github.com/ezrec/bftree/translate"
)

var f = translate.From

var (
	// Runtime errors
	ErrInputExhausted = errors.New(f("input exhausted"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pos  int
	Kind ir.Kind
	Err  error
}

func (err *ErrRuntime) Error() string {
	return f("offset %d %v: %v", err.Pos, err.Kind, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
