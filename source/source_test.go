package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	plain := filepath.Join(dir, "hello.b")
	assert.NoError(os.WriteFile(plain, []byte("+++."), 0o644))

	text, err := Load(plain, nil)
	assert.NoError(err)
	assert.Equal("+++.", string(text))

	text, err = Load("-", strings.NewReader(",."))
	assert.NoError(err)
	assert.Equal(",.", string(text))

	_, err = Load(filepath.Join(dir, "missing.b"), nil)
	assert.True(errors.Is(err, os.ErrNotExist))

	script := filepath.Join(dir, "gen.star")
	assert.NoError(os.WriteFile(script, []byte(`program = add(5) + loop(add(-1) + move(1) + add(4) + move(-1)) + move(1) + "."`), 0o644))

	text, err = Load(script, nil)
	assert.NoError(err)
	assert.Equal("+++++[->++++<]>.", string(text))
}

func TestGenerate(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		script string
		text   string
	}){
		{`program = ""`, ""},
		{`program = "+" * 3 + "."`, "+++."},
		{`program = move(-2) + add(-3) + zero()`, "<<---[-]"},
		{`program = text("AB")`, strings.Repeat("+", 65) + ".+.[-]"},
		{`program = text("")`, ""},
		{`program = text("A") + text("A")`, strings.Repeat(strings.Repeat("+", 65)+".[-]", 2)},
		{"def twice(s):\n    return s + s\nprogram = twice(add(1))", "++"},
	}

	for _, entry := range table {
		text, err := Generate("test.star", []byte(entry.script))
		assert.NoError(err, entry.script)
		assert.Equal(entry.text, string(text), entry.script)
	}
}

func TestGenerateErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := Generate("none.star", []byte(`x = 1`))
	assert.True(errors.Is(err, ErrScriptProgram))

	_, err = Generate("type.star", []byte(`program = 42`))
	assert.True(errors.Is(err, ErrScriptType))

	_, err = Generate("syntax.star", []byte(`program = (`))
	assert.Error(err)

	_, err = Generate("args.star", []byte(`program = move("x")`))
	assert.Error(err)
}
