package ir

import (
	"fmt"
)

// Kind is the variant tag of an Op.
type Kind int

const (
	OP_ROUTINE      = Kind(0) // routine
	OP_SEEK         = Kind(1) // seek
	OP_INC          = Kind(2) // inc
	OP_INPUT        = Kind(3) // input
	OP_OUTPUT       = Kind(4) // output
	OP_ZERO         = Kind(5) // zero
	OP_ADD_AND_ZERO = Kind(6) // addzero

	OP_KIND_COUNT = 7 // Number of op kinds.
)

var kindName = [OP_KIND_COUNT]string{
	OP_ROUTINE:      "routine",
	OP_SEEK:         "seek",
	OP_INC:          "inc",
	OP_INPUT:        "input",
	OP_OUTPUT:       "output",
	OP_ZERO:         "zero",
	OP_ADD_AND_ZERO: "addzero",
}

func (kind Kind) String() string {
	if !kind.Valid() {
		return fmt.Sprintf("Kind(%d)", int(kind))
	}
	return kindName[kind]
}

// Valid is true for the closed set of op kinds.
func (kind Kind) Valid() bool {
	return kind >= 0 && kind < OP_KIND_COUNT
}

// ParseKind returns the Kind with the given name.
func ParseKind(name string) (kind Kind, err error) {
	for n, text := range kindName {
		if text == name {
			kind = Kind(n)
			return
		}
	}

	err = ErrOpKind
	return
}
