// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package ir

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/ezrec/bftree/internal"
)

// Target is a single destination of an OP_ADD_AND_ZERO.
type Target struct {
	Offset int `cbor:"1,keyasint" yaml:"offset"` // Cell offset from the base cell.
	Amount int `cbor:"2,keyasint" yaml:"amount"` // Amount added per loop pass.
}

// Factor returns the multiple of the base cell added to the target.
func (tgt Target) Factor(step int) float64 {
	if tgt.Amount == 0 || step == 0 {
		return 0
	}
	return float64(tgt.Amount) / float64(step)
}

// Op is a single node of the instruction tree.
//
// Which fields are meaningful depends on Kind:
//   - OP_ROUTINE: Ops, Cond
//   - OP_SEEK, OP_INC: Amount
//   - OP_ADD_AND_ZERO: Step, Targets
//   - OP_INPUT, OP_OUTPUT, OP_ZERO: none
//
// Pos is the source offset of the first token the op was built from.
type Op struct {
	Kind    Kind     `cbor:"1,keyasint"`
	Amount  int      `cbor:"2,keyasint,omitempty"`
	Cond    bool     `cbor:"3,keyasint,omitempty"`
	Ops     []Op     `cbor:"4,keyasint,omitempty"`
	Step    int      `cbor:"5,keyasint,omitempty"`
	Targets []Target `cbor:"6,keyasint,omitempty"`
	Pos     int      `cbor:"7,keyasint,omitempty"`
}

// MakeSeek creates a cursor move by amount.
func MakeSeek(amount int) Op {
	return Op{Kind: OP_SEEK, Amount: amount}
}

// MakeInc creates a current cell increment by amount.
func MakeInc(amount int) Op {
	return Op{Kind: OP_INC, Amount: amount}
}

// MakeInput creates a read into the current cell.
func MakeInput() Op {
	return Op{Kind: OP_INPUT}
}

// MakeOutput creates a write of the current cell.
func MakeOutput() Op {
	return Op{Kind: OP_OUTPUT}
}

// MakeZero creates a clear of the current cell.
func MakeZero() Op {
	return Op{Kind: OP_ZERO}
}

// MakeRoutine creates a block. A conditional block is a loop.
func MakeRoutine(cond bool, ops ...Op) Op {
	return Op{Kind: OP_ROUTINE, Cond: cond, Ops: ops}
}

// MakeLoop creates a conditional block.
func MakeLoop(ops ...Op) Op {
	return MakeRoutine(true, ops...)
}

// MakeAddAndZero creates a distribute-and-clear of the current cell.
func MakeAddAndZero(step int, targets ...Target) Op {
	return Op{Kind: OP_ADD_AND_ZERO, Step: step, Targets: targets}
}

// All returns the op and every op nested under it, in pre-order.
func (op *Op) All() iter.Seq[*Op] {
	seqs := []iter.Seq[*Op]{internal.IterSeqOne(op)}
	for n := range op.Ops {
		seqs = append(seqs, op.Ops[n].All())
	}

	return internal.IterSeqConcat(seqs...)
}

// Depth returns the deepest loop nesting under the op.
func (op *Op) Depth() (depth int) {
	for n := range op.Ops {
		depth = max(depth, op.Ops[n].Depth())
	}

	if op.Kind == OP_ROUTINE && op.Cond {
		depth++
	}

	return
}

// Equal compares two trees, ignoring source positions.
func (op *Op) Equal(other *Op) bool {
	if op.Kind != other.Kind ||
		op.Amount != other.Amount ||
		op.Cond != other.Cond ||
		op.Step != other.Step ||
		len(op.Ops) != len(other.Ops) ||
		!slices.Equal(op.Targets, other.Targets) {
		return false
	}

	for n := range op.Ops {
		if !op.Ops[n].Equal(&other.Ops[n]) {
			return false
		}
	}

	return true
}

// String returns a compact text form of the tree.
func (op Op) String() string {
	switch op.Kind {
	case OP_ROUTINE:
		words := make([]string, 0, len(op.Ops))
		for _, child := range op.Ops {
			words = append(words, child.String())
		}
		text := strings.Join(words, " ")
		if op.Cond {
			text = "[" + text + "]"
		}
		return text
	case OP_SEEK:
		if op.Amount < 0 {
			return fmt.Sprintf("<%d", -op.Amount)
		}
		return fmt.Sprintf(">%d", op.Amount)
	case OP_INC:
		if op.Amount < 0 {
			return fmt.Sprintf("-%d", -op.Amount)
		}
		return fmt.Sprintf("+%d", op.Amount)
	case OP_INPUT:
		return ","
	case OP_OUTPUT:
		return "."
	case OP_ZERO:
		return "zero"
	case OP_ADD_AND_ZERO:
		words := []string{op.Kind.String(), fmt.Sprintf("%d", op.Step)}
		for _, tgt := range op.Targets {
			words = append(words, fmt.Sprintf("%+d:%+d", tgt.Offset, tgt.Amount))
		}
		return "(" + strings.Join(words, " ") + ")"
	}

	return op.Kind.String()
}

// Source returns Brainfuck text that translates to an equivalent tree.
func (op *Op) Source() string {
	var sb strings.Builder
	op.source(&sb)
	return sb.String()
}

func repeat(sb *strings.Builder, amount int, up, down string) {
	if amount < 0 {
		sb.WriteString(strings.Repeat(down, -amount))
	} else {
		sb.WriteString(strings.Repeat(up, amount))
	}
}

func (op *Op) source(sb *strings.Builder) {
	switch op.Kind {
	case OP_ROUTINE:
		if op.Cond {
			sb.WriteByte('[')
		}
		for n := range op.Ops {
			op.Ops[n].source(sb)
		}
		if op.Cond {
			sb.WriteByte(']')
		}
	case OP_SEEK:
		repeat(sb, op.Amount, ">", "<")
	case OP_INC:
		repeat(sb, op.Amount, "+", "-")
	case OP_INPUT:
		sb.WriteByte(',')
	case OP_OUTPUT:
		sb.WriteByte('.')
	case OP_ZERO:
		sb.WriteString("[-]")
	case OP_ADD_AND_ZERO:
		sb.WriteByte('[')
		repeat(sb, -op.Step, "+", "-")
		if len(op.Targets) == 0 {
			// A single empty target keeps the loop from reading as a zero loop.
			sb.WriteString(">+-<]")
			return
		}
		offset := 0
		for _, tgt := range op.Targets {
			repeat(sb, tgt.Offset-offset, ">", "<")
			repeat(sb, tgt.Amount, "+", "-")
			offset = tgt.Offset
		}
		repeat(sb, -offset, ">", "<")
		sb.WriteByte(']')
	}
}
