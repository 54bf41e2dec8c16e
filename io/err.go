package io

import (
	"errors"

	"github.com/ezrec/bftree/translate"
)

var f = translate.From

var (
	// Tape errors
	ErrNoInput  = errors.New(f("no input attached"))
	ErrShortOut = errors.New(f("short output write"))

	// Terminal errors
	ErrInterrupt = errors.New(f("interrupted from terminal"))
)
