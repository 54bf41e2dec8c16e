package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/bftree/ir"
	"github.com/ezrec/bftree/memory"
)

func TestDefault(t *testing.T) {
	assert := assert.New(t)

	opts := Default(true, false)
	assert.True(opts.Buffer)
	assert.False(opts.Profile)
	assert.True(opts.Reader.Raw)
	assert.Equal(memory.MEM_SIZE, opts.Tape.Size)
	assert.Equal(memory.BOUNDS_WRAP, opts.Tape.Bounds)
	assert.True(opts.Translate.Optimize)
	assert.False(opts.Translate.Strict)
}

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	text := []string{
		`buffer = true`,
		`locale = "en-GB"`,
		`[tape]`,
		`size = 100`,
		`bounds = "fatal"`,
		`[translate]`,
		`strict = true`,
		`[reader]`,
		`echo = false`,
	}

	opts, err := Decode(strings.Join(text, "\n"))
	assert.NoError(err)
	assert.True(opts.Buffer)
	assert.False(opts.Profile)
	assert.Equal("en-GB", opts.Locale)
	assert.Equal(100, opts.Tape.Size)
	assert.Equal(memory.BOUNDS_FATAL, opts.Tape.Bounds)
	assert.True(opts.Translate.Strict)
	assert.True(opts.Translate.Optimize)
	assert.True(opts.Reader.Raw)
	assert.False(opts.Reader.Echo)
}

func TestDecodeErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := Decode(`[tape]` + "\n" + `bounds = "clamp"`)
	assert.Error(err)

	_, err = Decode(`[tape]` + "\n" + `size = 0`)
	assert.True(errors.Is(err, memory.ErrSize))

	_, err = Decode(`buffer = `)
	assert.Error(err)
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "bftree.toml")
	assert.NoError(os.WriteFile(path, []byte("profile = true\n"), 0o644))

	opts, err := Load(path)
	assert.NoError(err)
	assert.True(opts.Profile)
	assert.Equal(memory.MEM_SIZE, opts.Tape.Size)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.True(errors.Is(err, os.ErrNotExist))

	bad := filepath.Join(dir, "bad.toml")
	assert.NoError(os.WriteFile(bad, []byte("[tape]\nsize = -1\n"), 0o644))
	_, err = Load(bad)
	assert.True(errors.Is(err, memory.ErrSize))
	assert.Contains(err.Error(), bad)
}

func TestOptionsTranslator(t *testing.T) {
	assert := assert.New(t)

	opts := Default(false, false)
	tr := opts.Translator(true)
	assert.True(tr.Verbose)
	assert.False(tr.Strict)
	assert.Nil(tr.Optimizers)

	opts.Translate.Strict = true
	opts.Translate.Optimize = false
	tr = opts.Translator(false)
	assert.True(tr.Strict)
	assert.NotNil(tr.Optimizers)
	assert.Equal(0, len(tr.Optimizers))

	prog, err := tr.ParseBytes([]byte("+[-]"))
	assert.NoError(err)
	assert.Equal(ir.OP_ROUTINE, prog.Root.Ops[1].Kind)
}
