package metrics

// History is a per-epoch metric log ordered newest first.
// Index 0 is the most recent epoch.
type History []float64

// Push records v as the newest value.
func (h *History) Push(v float64) {
	*h = append(History{v}, *h...)
}

// Len returns the number of recorded epochs.
func (h History) Len() int {
	return len(h)
}

// Latest returns the newest value and false when the history is empty.
func (h History) Latest() (float64, bool) {
	if len(h) == 0 {
		return 0, false
	}
	return h[0], true
}

// Clone returns an independent copy.
func (h History) Clone() History {
	if h == nil {
		return History{}
	}
	out := make(History, len(h))
	copy(out, h)
	return out
}

// Chronological returns the values oldest first, as plotted on an epoch axis.
func (h History) Chronological() []float64 {
	out := make([]float64, len(h))
	for i, v := range h {
		out[len(h)-1-i] = v
	}
	return out
}
