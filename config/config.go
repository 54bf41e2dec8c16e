// Package config holds the options that control a bftree run.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	bfio "github.com/ezrec/bftree/io"
	"github.com/ezrec/bftree/ir"
	"github.com/ezrec/bftree/memory"
)

// TapeOptions configures the memory tape.
type TapeOptions struct {
	Size   int           `toml:"size"`   // Number of cells.
	Bounds memory.Bounds `toml:"bounds"` // Cursor policy at the tape edges.
}

// TranslateOptions configures the translator.
type TranslateOptions struct {
	Strict   bool `toml:"strict"`   // Unbalanced brackets are errors.
	Optimize bool `toml:"optimize"` // Apply the loop optimizers.
}

// Options defines how a program is translated and run.
type Options struct {
	Buffer    bool               `toml:"buffer"`  // Buffer output until the program finishes.
	Profile   bool               `toml:"profile"` // Count executed steps.
	Locale    string             `toml:"locale"`  // Message locale, as a BCP 47 tag.
	Reader    bfio.ReaderOptions `toml:"reader"`
	Tape      TapeOptions        `toml:"tape"`
	Translate TranslateOptions   `toml:"translate"`
}

// Default creates the default options.
func Default(buffer bool, profile bool) Options {
	return Options{
		Buffer:  buffer,
		Profile: profile,
		Reader:  bfio.DefaultReaderOptions(),
		Tape: TapeOptions{
			Size:   memory.MEM_SIZE,
			Bounds: memory.BOUNDS_WRAP,
		},
		Translate: TranslateOptions{
			Optimize: true,
		},
	}
}

// Decode reads TOML text over the default options.
func Decode(text string) (opts Options, err error) {
	opts = Default(false, false)

	_, err = toml.Decode(text, &opts)
	if err != nil {
		return
	}

	if opts.Tape.Size <= 0 {
		err = fmt.Errorf("%w: %d", memory.ErrSize, opts.Tape.Size)
		return
	}

	return
}

// Load reads a TOML options file.
func Load(path string) (opts Options, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	opts, err = Decode(string(data))
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
		return
	}

	return
}

// Translator creates a translator configured by the options.
func (opts Options) Translator(verbose bool) (tr *ir.Translator) {
	tr = &ir.Translator{
		Verbose: verbose,
		Strict:  opts.Translate.Strict,
	}

	if !opts.Translate.Optimize {
		tr.Optimizers = []ir.Optimizer{}
	}

	return
}
