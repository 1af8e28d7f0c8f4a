package sorting

import (
	"strings"

	"github.com/matzehuels/sortviz/pkg/errors"
)

// Func is the signature shared by all six algorithms.
type Func func(s Sequence, tr Tracer) error

// Algorithm identifies one of the six sorts.
type Algorithm string

const (
	Selection Algorithm = "selection"
	Insertion Algorithm = "insertion"
	Bubble    Algorithm = "bubble"
	Merge     Algorithm = "merge"
	Quick     Algorithm = "quick"
	Heap      Algorithm = "heap"
)

type entry struct {
	alg    Algorithm
	title  string
	fn     Func
	pause  int
	stable bool
}

// In key order: the n-th entry is bound to key n in the terminal UI.
var registry = []entry{
	{Selection, "Selection Sort", SelectionSort, selectionPause, false},
	{Insertion, "Insertion Sort", InsertionSort, insertionPause, true},
	{Bubble, "Bubble Sort", BubbleSort, bubblePause, true},
	{Merge, "Merge Sort", MergeSort, mergeCopyPause, true},
	{Quick, "Quick Sort", QuickSort, quickSwapPause, false},
	{Heap, "Heap Sort", HeapSort, heapSwapPause, false},
}

// All returns the algorithms in their canonical order.
func All() []Algorithm {
	out := make([]Algorithm, len(registry))
	for i, e := range registry {
		out[i] = e.alg
	}
	return out
}

// Names returns the identifiers accepted by [Parse].
func Names() []string {
	out := make([]string, len(registry))
	for i, e := range registry {
		out[i] = string(e.alg)
	}
	return out
}

// Parse resolves an algorithm identifier. Matching is case-insensitive and
// tolerates a trailing "sort" ("Quick Sort", "heapsort").
func Parse(id string) (Algorithm, error) {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(id), " ", ""))
	if err := errors.ValidateAlgorithmID(norm); err != nil {
		return "", err
	}
	norm = strings.TrimSuffix(norm, "sort")
	for _, e := range registry {
		if string(e.alg) == norm {
			return e.alg, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidAlgorithm,
		"unknown algorithm %q (must be one of: %s)", id, strings.Join(Names(), ", "))
}

// Lookup resolves an identifier straight to its implementation.
func Lookup(id string) (Func, error) {
	alg, err := Parse(id)
	if err != nil {
		return nil, err
	}
	return alg.Func(), nil
}

func (a Algorithm) entry() (entry, bool) {
	for _, e := range registry {
		if e.alg == a {
			return e, true
		}
	}
	return entry{}, false
}

// Valid reports whether a names a registered algorithm.
func (a Algorithm) Valid() bool {
	_, ok := a.entry()
	return ok
}

// Func returns the implementation, or nil for an unknown algorithm.
func (a Algorithm) Func() Func {
	e, _ := a.entry()
	return e.fn
}

// Title returns the display name, e.g. "Heap Sort".
func (a Algorithm) Title() string {
	if e, ok := a.entry(); ok {
		return e.title
	}
	return string(a)
}

// PauseUnits returns the pacing units spent at each of the algorithm's pause
// points.
func (a Algorithm) PauseUnits() int {
	e, _ := a.entry()
	return e.pause
}

// Stable reports whether equal values keep their relative order.
func (a Algorithm) Stable() bool {
	e, _ := a.entry()
	return e.stable
}

// Key returns the 1-based position in [All], or 0 for an unknown algorithm.
func (a Algorithm) Key() int {
	for i, e := range registry {
		if e.alg == a {
			return i + 1
		}
	}
	return 0
}
