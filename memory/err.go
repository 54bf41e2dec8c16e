package memory

import (
	"errors"

	"github.com/ezrec/bftree/translate"
)

var f = translate.From

var (
	// Memory errors
	ErrBounds       = errors.New(f("cursor out of bounds"))
	ErrSize         = errors.New(f("tape size invalid"))
	ErrBoundsPolicy = errors.New(f("unknown bounds policy"))
)
