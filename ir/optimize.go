package ir

// Optimizer rewrites a just-closed loop body. If ok, the returned op
// replaces the whole routine.
type Optimizer func(ops []Op, cond bool) (op Op, ok bool)

// DefaultOptimizers are the loop optimizers applied by a Translator, in order.
var DefaultOptimizers = []Optimizer{
	OptimizeZeroLoop,
	OptimizeAddAndZero,
}

// OptimizeZeroLoop replaces a conditional loop made only of increments
// with OP_ZERO.
//
// Examples: `[-]`, `[+]`, `[---]`.
func OptimizeZeroLoop(ops []Op, cond bool) (op Op, ok bool) {
	if !cond || len(ops) == 0 {
		return
	}

	for _, each := range ops {
		if each.Kind != OP_INC {
			return
		}
	}

	return MakeZero(), true
}

// OptimizeAddAndZero replaces loops that add a multiple of the base cell
// to other cells, and then clear the base cell, with OP_ADD_AND_ZERO.
//
// The loop body must be:
//   - a decrement of the base cell by 'step'
//   - any number of (seek, increment) pairs, none landing on the base cell
//   - a final seek back to the base cell
//
// Examples:
//   - `[->+<]` adds the base cell to the next cell.
//   - `[->+>+>+<<<]` adds the base cell to the next three cells.
//   - `[-<<+>+>>>+<+<]` adds the base cell to cells -2, -1, 1 and 2.
//   - `[--->+++>+++<<]` steps by 3, adding the base cell to the next two.
//   - `[->+>++>-<<<]` adds x1, x2 and x-1 to the next three cells.
func OptimizeAddAndZero(ops []Op, cond bool) (op Op, ok bool) {
	if !cond || len(ops) < 4 {
		return
	}

	first := ops[0]
	if first.Kind != OP_INC || first.Amount >= 0 {
		return
	}
	step := -first.Amount

	targets := make([]Target, 0, (len(ops)-2)/2)
	offset := 0

	for n := 1; n+1 < len(ops); n += 2 {
		seek, inc := ops[n], ops[n+1]
		if seek.Kind != OP_SEEK || inc.Kind != OP_INC {
			return
		}

		offset += seek.Amount

		// The base cell must never be touched.
		if offset == 0 {
			return
		}

		if inc.Amount != 0 {
			targets = append(targets, Target{Offset: offset, Amount: inc.Amount})
		}

		if n+1 == len(ops)-2 {
			reset := ops[n+2]
			if reset.Kind != OP_SEEK || reset.Amount != -offset {
				return
			}

			return MakeAddAndZero(step, targets...), true
		}
	}

	return
}
