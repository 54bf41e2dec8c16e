package ir

import (
	"iter"
)

// Program is a translated Brainfuck program.
type Program struct {
	Root Op // Top-level, non-conditional routine.
}

// Stats summarizes the shape of a program tree.
type Stats struct {
	Ops   int                // Total ops, excluding the top-level routine.
	Kinds [OP_KIND_COUNT]int // Ops of each kind, excluding the top-level routine.
	Loops int                // Conditional routines left after optimization.
	Depth int                // Deepest loop nesting.
}

// Ops returns an iterator over every op in the program, in pre-order.
func (prog *Program) Ops() iter.Seq[*Op] {
	return prog.Root.All()
}

// Stats counts the ops in the program.
func (prog *Program) Stats() (stats Stats) {
	for op := range prog.Ops() {
		if op == &prog.Root {
			continue
		}
		stats.Ops++
		if op.Kind.Valid() {
			stats.Kinds[op.Kind]++
		}
		if op.Kind == OP_ROUTINE && op.Cond {
			stats.Loops++
		}
	}

	stats.Depth = prog.Root.Depth()

	return
}

// Source returns Brainfuck text equivalent to the program.
func (prog *Program) Source() string {
	return prog.Root.Source()
}

func (prog *Program) String() string {
	return prog.Root.String()
}
