package ir

import (
	"errors"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
)

func TestImage(t *testing.T) {
	assert := assert.New(t)

	prog, err := (&Translator{}).ParseBytes([]byte(">,[->+>+++<<]>>[-<+>]<[.[-]]"))
	assert.NoError(err)

	data, err := prog.MarshalBinary()
	assert.NoError(err)
	assert.Equal(IMAGE_MAGIC, string(data[:len(IMAGE_MAGIC)]))

	loaded := &Program{}
	err = loaded.UnmarshalBinary(data)
	assert.NoError(err)
	assert.True(prog.Root.Equal(&loaded.Root))
	assert.Equal(prog.String(), loaded.String())

	// Positions survive the round trip.
	assert.Equal(prog.Root.Ops[1].Pos, loaded.Root.Ops[1].Pos)

	// Encoding is canonical.
	again, err := loaded.MarshalBinary()
	assert.NoError(err)
	assert.Equal(data, again)
}

func TestImageErrors(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{}

	err := prog.UnmarshalBinary([]byte("+++."))
	assert.True(errors.Is(err, ErrImageMagic))

	err = prog.UnmarshalBinary([]byte(IMAGE_MAGIC + "\xff"))
	assert.Error(err)

	body, _ := cbor.Marshal(&image{Version: 99, Root: MakeRoutine(false)})
	err = prog.UnmarshalBinary(append([]byte(IMAGE_MAGIC), body...))
	assert.True(errors.Is(err, ErrImageVersion))

	body, _ = cbor.Marshal(&image{Version: IMAGE_VERSION, Root: MakeLoop()})
	err = prog.UnmarshalBinary(append([]byte(IMAGE_MAGIC), body...))
	assert.True(errors.Is(err, ErrImageRoot))

	body, _ = cbor.Marshal(&image{Version: IMAGE_VERSION, Root: MakeRoutine(false, Op{Kind: Kind(42)})})
	err = prog.UnmarshalBinary(append([]byte(IMAGE_MAGIC), body...))
	assert.True(errors.Is(err, ErrOpKind))

	table := []Op{
		MakeRoutine(false, MakeRoutine(false, MakeInc(1))),
		MakeRoutine(false, MakeLoop(MakeSeek(1), MakeRoutine(false))),
		MakeRoutine(false, MakeAddAndZero(0, Target{1, 1})),
		MakeRoutine(false, MakeLoop(MakeAddAndZero(-2, Target{1, 1}))),
	}

	for _, root := range table {
		body, _ = cbor.Marshal(&image{Version: IMAGE_VERSION, Root: root})
		err = prog.UnmarshalBinary(append([]byte(IMAGE_MAGIC), body...))
		assert.True(errors.Is(err, ErrImageTree), "%v", root)
	}

	// A rejected image leaves the program untouched.
	assert.Equal(0, len(prog.Root.Ops))
}
