// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package executor runs an instruction tree against a memory tape.
package executor

import (
	"context"
	"errors"
	"io"
	"log"
	"math/bits"
	"time"

	"github.com/ezrec/bftree/config"
	bfio "github.com/ezrec/bftree/io"
	"github.com/ezrec/bftree/ir"
	"github.com/ezrec/bftree/memory"
)

// Executor state. Memory + IO tape.
type Executor struct {
	Verbose bool           // If set, logs every executed op.
	Options config.Options // Options the executor was created with.
	Memory  *memory.Memory // Data tape.
	Tape    bfio.Tape      // Program input and output.
	Profile Profile        // Counters of the last run. Only kept if Options.Profile is set.
}

// NewExecutor creates an executor with a fresh memory tape.
func NewExecutor(opts config.Options) (ex *Executor, err error) {
	mem, err := memory.New(opts.Tape.Size, opts.Tape.Bounds)
	if err != nil {
		return
	}

	ex = &Executor{
		Options: opts,
		Memory:  mem,
	}
	ex.Tape.Buffer = opts.Buffer

	return
}

// Reset clears memory, output and the profile.
func (ex *Executor) Reset() {
	ex.Memory.Reset()
	ex.Tape.Rewind()
	ex.Profile.Reset()
}

// Run executes a program from a clean state. On success all output is
// returned, and flushed to the tape output if buffered. On failure no
// output is returned.
func (ex *Executor) Run(ctx context.Context, prog *ir.Program) (output []byte, err error) {
	ex.Reset()

	start := time.Now()
	err = ex.Execute(ctx, &prog.Root)
	ex.Profile.Execute = time.Since(start)
	if err != nil {
		return
	}

	err = ex.Tape.Flush()
	if err != nil {
		return
	}

	output = ex.Tape.Bytes()

	return
}

// Execute runs a single op, and everything nested under it.
func (ex *Executor) Execute(ctx context.Context, op *ir.Op) (err error) {
	mem := ex.Memory

	if ex.Options.Profile && op.Kind.Valid() {
		ex.Profile.Steps[op.Kind]++
	}

	if ex.Verbose {
		if op.Kind == ir.OP_ROUTINE {
			log.Printf("%d: %v cond=%v [%d]=%d", op.Pos, op.Kind, op.Cond, mem.Cursor(), mem.Read())
		} else {
			log.Printf("%d: %v [%d]=%d", op.Pos, op, mem.Cursor(), mem.Read())
		}
	}

	switch op.Kind {
	case ir.OP_ROUTINE:
		// Nested ops report their own location.
		return ex.routine(ctx, op)
	case ir.OP_SEEK:
		err = mem.Seek(op.Amount)
	case ir.OP_INC:
		mem.Inc(op.Amount)
	case ir.OP_INPUT:
		var c byte
		c, err = ex.Tape.ReadByte()
		if errors.Is(err, io.EOF) {
			err = ErrInputExhausted
		}
		if err == nil {
			mem.Write(c)
		}
	case ir.OP_OUTPUT:
		err = ex.Tape.WriteByte(mem.Read())
	case ir.OP_ZERO:
		mem.SetZero()
	case ir.OP_ADD_AND_ZERO:
		err = ex.addAndZero(ctx, op)
	default:
		err = ir.ErrOpKind
	}

	if err != nil {
		err = &ErrRuntime{Pos: op.Pos, Kind: op.Kind, Err: err}
	}

	return
}

// routine runs a block once, or as a loop while the current cell is
// nonzero.
func (ex *Executor) routine(ctx context.Context, op *ir.Op) (err error) {
	mem := ex.Memory

	if op.Cond && mem.IsZero() {
		return
	}

	for {
		if op.Cond && ex.Options.Profile {
			ex.Profile.Iterations++
		}

		for n := range op.Ops {
			err = ex.Execute(ctx, &op.Ops[n])
			if err != nil {
				return
			}
		}

		if !op.Cond || mem.IsZero() {
			return
		}

		err = ctx.Err()
		if err != nil {
			err = &ErrRuntime{Pos: op.Pos, Kind: op.Kind, Err: err}
			return
		}
	}
}

// addAndZero applies every pass of the replaced loop at once.
func (ex *Executor) addAndZero(ctx context.Context, op *ir.Op) (err error) {
	mem := ex.Memory

	value := mem.Read()
	if value == 0 {
		return
	}

	// Targets that wrap around onto the base cell change its step.
	step := op.Step
	base := mem.Cursor()
	for _, tgt := range op.Targets {
		var index int
		index, err = mem.Index(tgt.Offset)
		if err != nil {
			return
		}
		if index == base {
			step -= tgt.Amount
		}
	}

	count, ok := loopCount(value, step)
	if !ok {
		return ex.addAndZeroForever(ctx, op)
	}

	for _, tgt := range op.Targets {
		index, _ := mem.Index(tgt.Offset)
		if index == base {
			continue
		}
		err = mem.Add(tgt.Offset, count*tgt.Amount)
		if err != nil {
			return
		}
	}

	mem.SetZero()

	if ex.Options.Profile {
		ex.Profile.Folded += count
	}

	return
}

// addAndZeroForever runs the replaced loop pass by pass. The base cell
// never reaches zero, so this only ends on a bounds error or when ctx is
// done.
func (ex *Executor) addAndZeroForever(ctx context.Context, op *ir.Op) (err error) {
	mem := ex.Memory

	for !mem.IsZero() {
		err = ctx.Err()
		if err != nil {
			return
		}

		if ex.Options.Profile {
			ex.Profile.Iterations++
		}

		mem.Inc(-op.Step)
		for _, tgt := range op.Targets {
			err = mem.Add(tgt.Offset, tgt.Amount)
			if err != nil {
				return
			}
		}
	}

	return
}

// loopCount returns the number of passes a loop decrementing its base
// cell by step makes before the cell, starting at value, reaches zero.
// If the cell never reaches zero, ok is false.
func loopCount(value byte, step int) (count int, ok bool) {
	if value == 0 {
		ok = true
		return
	}

	s := byte(step)
	if s == 0 {
		return
	}

	// count*step == value (mod 256) has a solution only if value has at
	// least as many factors of two as step.
	shift := bits.TrailingZeros8(s)
	if bits.TrailingZeros8(value) < shift {
		return
	}

	// Newton iteration for the inverse of the odd part. An odd number is
	// its own inverse modulo 8, and each round doubles the correct bits.
	odd := s >> shift
	inv := odd
	inv *= 2 - odd*inv
	inv *= 2 - odd*inv

	count = int(((value >> shift) * inv) & (0xff >> shift))
	ok = true

	return
}

// Interpret translates and runs source, reading program input from input.
func Interpret(ctx context.Context, source []byte, input io.Reader, opts config.Options) (output []byte, err error) {
	prog, err := opts.Translator(false).ParseBytes(source)
	if err != nil {
		return
	}

	ex, err := NewExecutor(opts)
	if err != nil {
		return
	}
	ex.Tape.Input = input

	return ex.Run(ctx, prog)
}
