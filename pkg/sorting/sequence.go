package sorting

// Unset marks a highlight slot that points at no bar.
const Unset = -1

// Highlight holds the bar indices a running sort is currently touching.
// Each index is either a position in the sequence or [Unset].
type Highlight struct {
	Primary   int `json:"primary"`
	Secondary int `json:"secondary"`
	Tertiary  int `json:"tertiary"`
}

// NoHighlight is the Highlight with every slot cleared.
var NoHighlight = Highlight{Primary: Unset, Secondary: Unset, Tertiary: Unset}

// Mark builds a Highlight from up to three indices in primary, secondary,
// tertiary order. Omitted slots are [Unset]; extra indices are ignored.
func Mark(indices ...int) Highlight {
	h := NoHighlight
	if len(indices) > 0 {
		h.Primary = indices[0]
	}
	if len(indices) > 1 {
		h.Secondary = indices[1]
	}
	if len(indices) > 2 {
		h.Tertiary = indices[2]
	}
	return h
}

// Cleared reports whether no slot is set.
func (h Highlight) Cleared() bool {
	return h == NoHighlight
}

// Sequence is the mutable storage a sort operates on. Implementations must
// not copy: the renderer observes the same storage the sort mutates.
type Sequence interface {
	Len() int
	Get(i int) int
	Set(i, v int)
}

// Ints adapts a plain int slice to [Sequence].
type Ints []int

func (s Ints) Len() int      { return len(s) }
func (s Ints) Get(i int) int { return s[i] }
func (s Ints) Set(i, v int)  { s[i] = v }

// Tracer receives the instrumentation of a running sort.
type Tracer interface {
	// Emit publishes the indices of interest.
	Emit(h Highlight)

	// Pause yields for the given number of pacing units. A non-nil error
	// aborts the sort.
	Pause(units int) error
}

// NopTracer discards all instrumentation and never pauses.
type NopTracer struct{}

func (NopTracer) Emit(Highlight)  {}
func (NopTracer) Pause(int) error { return nil }

func swap(s Sequence, i, j int) {
	vi, vj := s.Get(i), s.Get(j)
	s.Set(i, vj)
	s.Set(j, vi)
}
