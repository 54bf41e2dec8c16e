// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/ezrec/bftree/config"
	"github.com/ezrec/bftree/executor"
	bfio "github.com/ezrec/bftree/io"
	"github.com/ezrec/bftree/ir"
	"github.com/ezrec/bftree/memory"
	"github.com/ezrec/bftree/source"
	"github.com/ezrec/bftree/translate"
)

func main() {
	var compile string
	var expr string
	var load string
	var save string
	var dump bool
	var input string
	var output string
	var buffer bool
	var profile bool
	var strict bool
	var optimize bool
	var bounds string
	var options string
	var verbose bool

	flag.StringVar(&compile, "c", "", "Program file to translate (.b, or .star script), - for stdin")
	flag.StringVar(&expr, "e", "", "Program text to translate")
	flag.StringVar(&load, "r", "", "Compiled image to run")
	flag.StringVar(&save, "s", "", "Save compiled image, do not execute")
	flag.BoolVar(&dump, "dump", false, "Dump the instruction tree as YAML, do not execute")
	flag.StringVar(&input, "i", "-", "Program input")
	flag.StringVar(&output, "o", "-", "Program output")
	flag.BoolVar(&buffer, "b", false, "Buffer output until the program finishes")
	flag.BoolVar(&profile, "p", false, "Report execution profile")
	flag.BoolVar(&strict, "strict", false, "Unbalanced brackets are errors")
	flag.BoolVar(&optimize, "O", true, "Apply loop optimizers")
	flag.StringVar(&bounds, "bounds", "wrap", "Tape bounds policy (wrap or fatal)")
	flag.StringVar(&options, "config", "", "TOML options file")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	opts := config.Default(false, false)
	if len(options) != 0 {
		var err error
		opts, err = config.Load(options)
		if err != nil {
			log.Fatal(err)
		}
	}

	// Flags given on the command line override the options file.
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "b":
			opts.Buffer = buffer
		case "p":
			opts.Profile = profile
		case "strict":
			opts.Translate.Strict = strict
		case "O":
			opts.Translate.Optimize = optimize
		case "bounds":
			var err error
			opts.Tape.Bounds, err = memory.ParseBounds(bounds)
			if err != nil {
				log.Fatalf("-bounds: %v", err)
			}
		}
	})

	if len(opts.Locale) != 0 {
		err := translate.SetLocale(opts.Locale)
		if err != nil {
			log.Fatalf("%v: %v", opts.Locale, err)
		}
	}

	name := os.Args[0]
	prog := &ir.Program{Root: ir.MakeRoutine(false)}
	var translated time.Duration

	switch {
	case len(load) != 0:
		name = load
		data, err := os.ReadFile(load)
		if err != nil {
			log.Fatal(err)
		}
		err = prog.UnmarshalBinary(data)
		if err != nil {
			log.Fatalf("%v: %v", load, err)
		}
	case len(compile) != 0 || len(expr) != 0:
		text := []byte(expr)
		name = "-e"
		if len(compile) != 0 {
			var err error
			name = compile
			text, err = source.Load(compile, os.Stdin)
			if err != nil {
				log.Fatalf("%v: %v", compile, err)
			}
		}

		start := time.Now()
		var err error
		prog, err = opts.Translator(verbose).ParseBytes(text)
		if err != nil {
			log.Fatalf("%v: %v", name, err)
		}
		translated = time.Since(start)
	}

	if len(save) != 0 {
		data, err := prog.MarshalBinary()
		if err != nil {
			log.Fatalf("%v: %v", save, err)
		}
		err = os.WriteFile(save, data, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	if dump {
		err := prog.DumpYAML(os.Stdout)
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	ex, err := executor.NewExecutor(opts)
	if err != nil {
		log.Fatal(err)
	}
	ex.Verbose = verbose

	if input == "-" {
		ex.Tape.Input = bfio.NewTermReader(os.Stdin, os.Stderr, opts.Reader)
	} else {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		ex.Tape.Input = inf
	}

	if output == "-" {
		ex.Tape.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		ex.Tape.Output = ouf
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_, err = ex.Run(ctx, prog)

	if opts.Profile {
		stats := prog.Stats()
		ex.Profile.Translate = translated
		log.Printf("%v: %v", name, translate.From("%d ops, %d loops, depth %d", stats.Ops, stats.Loops, stats.Depth))
		log.Printf("%v: %v", name, ex.Profile.String())
	}

	if err != nil {
		log.Fatalf("%v: %v", name, err)
	}
}
