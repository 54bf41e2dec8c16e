package executor

import (
	"strings"
	"time"

	"github.com/ezrec/bftree/ir"
)

// Profile counts the work done by a run.
type Profile struct {
	Steps      [ir.OP_KIND_COUNT]int // Ops executed, by kind.
	Iterations int                   // Loop body passes.
	Folded     int                   // Loop passes replaced by a single OP_ADD_AND_ZERO.
	Translate  time.Duration         // Wall time spent translating, if known.
	Execute    time.Duration         // Wall time of the last run.
}

// Reset clears all counters.
func (prof *Profile) Reset() {
	*prof = Profile{}
}

// Total returns the number of ops executed.
func (prof *Profile) Total() (total int) {
	for _, count := range prof.Steps {
		total += count
	}
	return
}

// String returns a human readable report.
func (prof *Profile) String() string {
	lines := []string{
		f("steps: %d", prof.Total()),
	}

	for n, count := range prof.Steps {
		if count == 0 {
			continue
		}
		lines = append(lines, f("  %v: %d", ir.Kind(n), count))
	}

	lines = append(lines,
		f("loop passes: %d", prof.Iterations),
		f("folded passes: %d", prof.Folded),
	)

	if prof.Translate != 0 {
		lines = append(lines, f("translate: %v", prof.Translate))
	}
	lines = append(lines, f("execute: %v", prof.Execute))

	return strings.Join(lines, "\n")
}
