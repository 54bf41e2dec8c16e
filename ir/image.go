package ir

import (
	"bytes"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

const (
	IMAGE_MAGIC   = "BFT\x00" // Leading bytes of a compiled image.
	IMAGE_VERSION = 1         // Current compiled image layout.
)

var imageEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	imageEncMode = em
}

// image is the wire form of a compiled Program.
type image struct {
	Version int `cbor:"1,keyasint"`
	Root    Op  `cbor:"2,keyasint"`
}

// MarshalBinary encodes the program as a compiled image.
func (prog *Program) MarshalBinary() (data []byte, err error) {
	body, err := imageEncMode.Marshal(&image{Version: IMAGE_VERSION, Root: prog.Root})
	if err != nil {
		return
	}

	data = append([]byte(IMAGE_MAGIC), body...)
	return
}

// UnmarshalBinary decodes a compiled image.
func (prog *Program) UnmarshalBinary(data []byte) (err error) {
	if !bytes.HasPrefix(data, []byte(IMAGE_MAGIC)) {
		err = ErrImageMagic
		return
	}

	var img image
	err = cbor.Unmarshal(data[len(IMAGE_MAGIC):], &img)
	if err != nil {
		return
	}

	if img.Version != IMAGE_VERSION {
		err = fmt.Errorf("%w: %d", ErrImageVersion, img.Version)
		return
	}

	if img.Root.Kind != OP_ROUTINE || img.Root.Cond {
		err = ErrImageRoot
		return
	}

	for op := range img.Root.All() {
		if !op.Kind.Valid() {
			err = fmt.Errorf("%w: %d", ErrOpKind, int(op.Kind))
			return
		}

		switch {
		case op.Kind == OP_ROUTINE && !op.Cond && op != &img.Root:
			err = fmt.Errorf("%w: offset %d: nested routine is not a loop", ErrImageTree, op.Pos)
			return
		case op.Kind == OP_ADD_AND_ZERO && op.Step <= 0:
			err = fmt.Errorf("%w: offset %d: step %d", ErrImageTree, op.Pos, op.Step)
			return
		}
	}

	prog.Root = img.Root

	return
}
