// Package visual holds the shared state a renderer reads while a sort runs:
// the working array of bar heights and the current highlight.
//
// Both are written by exactly one sorting goroutine and read by any number of
// renderers at their own cadence. Readers never block the writer and see
// last-write-wins values; a frame may mix heights from two adjacent steps.
package visual

import (
	"sync/atomic"

	"github.com/matzehuels/sortviz/pkg/sorting"
)

// Role is how a renderer should color a bar.
type Role int

const (
	RoleDefault Role = iota
	RoleActive
	RoleCompare
	RoleDone
)

func (r Role) String() string {
	switch r {
	case RoleActive:
		return "active"
	case RoleCompare:
		return "compare"
	case RoleDone:
		return "done"
	default:
		return "default"
	}
}

// Snapshot is one consistent view of the highlight. Complete implies all
// three indices are [sorting.Unset].
type Snapshot struct {
	sorting.Highlight
	Complete bool `json:"complete"`
}

var cleared = Snapshot{Highlight: sorting.NoHighlight}

// RoleOf maps bar i to its color role.
func (s Snapshot) RoleOf(i int) Role {
	switch {
	case s.Complete:
		return RoleDone
	case i == s.Primary || i == s.Tertiary:
		return RoleActive
	case i == s.Secondary:
		return RoleCompare
	default:
		return RoleDefault
	}
}

// State publishes highlights from a running sort. The zero value is ready to
// use and reads as cleared.
type State struct {
	cur atomic.Pointer[Snapshot]
}

// Emit publishes h and clears the complete flag. It implements the emit half
// of [sorting.Tracer].
func (st *State) Emit(h sorting.Highlight) {
	st.cur.Store(&Snapshot{Highlight: h})
}

// Complete marks the array sorted and clears all indices.
func (st *State) Complete() {
	st.cur.Store(&Snapshot{Highlight: sorting.NoHighlight, Complete: true})
}

// Reset clears indices and the complete flag.
func (st *State) Reset() {
	st.cur.Store(&cleared)
}

// Load returns the latest snapshot.
func (st *State) Load() Snapshot {
	if s := st.cur.Load(); s != nil {
		return *s
	}
	return cleared
}
