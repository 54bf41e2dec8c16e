package source

import (
	"errors"

	"github.com/ezrec/bftree/translate"
)

var f = translate.From

var (
	// Script errors
	ErrScriptProgram = errors.New(f("script does not set program"))
	ErrScriptType    = errors.New(f("script program is not a string"))
)
