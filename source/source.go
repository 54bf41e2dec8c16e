// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package source loads Brainfuck program text.
//
// Plain files are used as-is. Files ending in ".star" are Starlark
// scripts that generate the program: the script must set the global
// `program` to the generated text. These helpers are predeclared:
//
//	move(n)    ">" n times, or "<" -n times
//	add(n)     "+" n times, or "-" -n times
//	loop(body) "[" body "]"
//	zero()     "[-]"
//	text(s)    prints s, using the current cell as scratch
package source

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

const (
	SCRIPT_EXT = ".star" // File extension of generator scripts.
)

// Load reads the program at path. A path of "-" reads stdin.
func Load(path string, stdin io.Reader) (text []byte, err error) {
	if path == "-" {
		text, err = io.ReadAll(stdin)
		return
	}

	text, err = os.ReadFile(path)
	if err != nil {
		return
	}

	if filepath.Ext(path) == SCRIPT_EXT {
		text, err = Generate(path, text)
	}

	return
}

func repeat(up, down string) func(n int) string {
	return func(n int) string {
		if n < 0 {
			return strings.Repeat(down, -n)
		}
		return strings.Repeat(up, n)
	}
}

var (
	moveText = repeat(">", "<")
	addText  = repeat("+", "-")
)

// textProgram prints s, leaving the current cell zero.
func textProgram(s string) string {
	var sb strings.Builder
	var cell byte
	for _, c := range []byte(s) {
		delta := int(c) - int(cell)
		switch {
		case delta > 128:
			delta -= 256
		case delta < -128:
			delta += 256
		}
		sb.WriteString(addText(delta))
		sb.WriteByte('.')
		cell = c
	}
	if cell != 0 {
		sb.WriteString("[-]")
	}
	return sb.String()
}

func builtinInt(name string, fn func(int) string) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var n int
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &n); err != nil {
			return nil, err
		}
		return starlark.String(fn(n)), nil
	})
}

func builtinString(name string, fn func(string) string) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var s string
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &s); err != nil {
			return nil, err
		}
		return starlark.String(fn(s)), nil
	})
}

var predeclared = starlark.StringDict{
	"move": builtinInt("move", moveText),
	"add":  builtinInt("add", addText),
	"loop": builtinString("loop", func(body string) string { return "[" + body + "]" }),
	"zero": starlark.NewBuiltin("zero", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
			return nil, err
		}
		return starlark.String("[-]"), nil
	}),
	"text": builtinString("text", textProgram),
}

// Generate runs a Starlark generator script, returning its program text.
func Generate(name string, script []byte) (text []byte, err error) {
	thread := &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			log.Printf("%v: %v", name, msg)
		},
	}
	opts := syntax.FileOptions{}

	globals, err := starlark.ExecFileOptions(&opts, thread, name, script, predeclared)
	if err != nil {
		return
	}

	value, ok := globals["program"]
	if !ok {
		err = fmt.Errorf("%v: %w", name, ErrScriptProgram)
		return
	}

	str, ok := value.(starlark.String)
	if !ok {
		err = fmt.Errorf("%v: %w: %v", name, ErrScriptType, value.Type())
		return
	}

	text = []byte(string(str))
	return
}
