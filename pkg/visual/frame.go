package visual

// Frame is one renderer pull: the heights plus the highlight read right
// after them.
type Frame struct {
	Values []int `json:"values"`
	Snapshot
}

// Capture reads bars then state. The two reads are not atomic with respect
// to each other.
func Capture(b *Bars, st *State) Frame {
	return Frame{Values: b.Values(), Snapshot: st.Load()}
}

// Roles returns the color role of every bar in the frame.
func (f Frame) Roles() []Role {
	roles := make([]Role, len(f.Values))
	for i := range roles {
		roles[i] = f.RoleOf(i)
	}
	return roles
}
