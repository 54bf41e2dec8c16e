package ir

import (
	"errors"

	"github.com/ezrec/bftree/translate"
)

var f = translate.From

var (
	// Translator errors
	ErrLoopUnterminated = errors.New(f("[ without ]"))
	ErrLoopUnmatched    = errors.New(f("] without ["))
	ErrOpKind           = errors.New(f("op kind unknown"))

	// Image errors
	ErrImageMagic   = errors.New(f("not a compiled image"))
	ErrImageVersion = errors.New(f("compiled image version unsupported"))
	ErrImageRoot    = errors.New(f("compiled image root is not a routine"))
	ErrImageTree    = errors.New(f("compiled image tree is malformed"))
)

// ErrSyntax indicates the source offset of a translation error.
type ErrSyntax struct {
	Pos int
	Err error
}

func (err *ErrSyntax) Error() string {
	return f("offset %d %v", err.Pos, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}
