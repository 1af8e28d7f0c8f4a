// Package sorting implements the six instrumented comparison sorts that
// sortviz animates.
//
// The algorithms are deliberately the textbook variants a viewer expects to
// see, with fixed tie-breaks and fixed instrumentation points. They are not a
// general purpose sorting library.
//
// # Contract
//
// Every algorithm has the signature [Func]: it mutates a [Sequence] in place
// and reports progress to a [Tracer]. Emit publishes the indices currently of
// interest as a [Highlight] value; Pause is the pacing yield point, measured
// in abstract units (one unit is one millisecond at normal speed).
//
// A non-nil error from Pause aborts the algorithm, which returns that error
// unchanged. The sequence is then left partially sorted but still a
// permutation of its input.
//
// # Usage
//
//	alg, err := sorting.Parse("quick")
//	if err != nil {
//	    return err
//	}
//	values := sorting.Ints{5, 3, 8, 1, 9, 2}
//	_ = alg.Func()(values, sorting.NopTracer{})
//	// values == [1 2 3 5 8 9]
package sorting
