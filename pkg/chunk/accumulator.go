package chunk

import "sort"

// Accumulator collects scanned chunk strings keyed by index. Insertion is
// idempotent and order-independent; completion is defined purely by set
// cardinality against the declared total.
type Accumulator struct {
	total  int
	chunks map[int]string
}

// NewAccumulator returns an empty accumulator with an unknown total.
func NewAccumulator() *Accumulator {
	return &Accumulator{chunks: make(map[int]string)}
}

// Insert records the chunk string s at the given index. The first observed
// total wins for the whole session, as does the first payload seen for any
// index. It reports whether the index was newly added.
func (a *Accumulator) Insert(index, total int, s string) bool {
	if a.total == 0 {
		a.total = total
	}
	if _, seen := a.chunks[index]; seen {
		return false
	}
	a.chunks[index] = s
	return true
}

// Len returns the number of distinct indices collected so far.
func (a *Accumulator) Len() int { return len(a.chunks) }

// Total returns the declared chunk count, or 0 while it is still unknown.
func (a *Accumulator) Total() int { return a.total }

// Complete reports whether every chunk of the transfer has been collected.
// It is always false while the total is unknown.
func (a *Accumulator) Complete() bool {
	return a.total > 0 && len(a.chunks) == a.total
}

// Ordered returns the collected chunk strings sorted by index.
func (a *Accumulator) Ordered() []string {
	indices := make([]int, 0, len(a.chunks))
	for i := range a.chunks {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	out := make([]string, 0, len(indices))
	for _, i := range indices {
		out = append(out, a.chunks[i])
	}
	return out
}

// Reset discards all collected chunks and forgets the total.
func (a *Accumulator) Reset() {
	a.total = 0
	a.chunks = make(map[int]string)
}
