package cmap

// A KeyRange is a span of keys with an inclusive start key. The end of the
// span may be unbounded, inclusive, or exclusive.
//
// A bounded range whose end orders before its start contains no keys.
// Operations given such a range produce empty results.
type KeyRange[K any] struct {
	start K
	end   K
	bound bound
}

type bound int

const (
	unbounded bound = iota
	inclusive
	exclusive
)

// From returns the range containing every key at or above start.
func From[K any](start K) KeyRange[K] {
	return KeyRange[K]{start: start}
}

// Span returns the range [start, end), excluding end.
func Span[K any](start, end K) KeyRange[K] {
	return KeyRange[K]{start: start, end: end, bound: exclusive}
}

// Through returns the range [start, end], including end.
func Through[K any](start, end K) KeyRange[K] {
	return KeyRange[K]{start: start, end: end, bound: inclusive}
}

// Start returns the inclusive start key of the range.
func (r KeyRange[K]) Start() K {
	return r.start
}

// lastKey resolves the inclusive end of the range. hasEnd is false for
// unbounded ranges. empty is true if the range contains no keys.
func (r KeyRange[K]) lastKey(keys KeySpace[K]) (last K, hasEnd, empty bool) {
	switch r.bound {
	case inclusive:
		last = r.end
	case exclusive:
		var ok bool
		last, ok = keys.Prev(r.end)
		if !ok {
			// The end key is the first representable key, so nothing can
			// precede the exclusive bound.
			return last, true, true
		}
	default:
		return last, false, false
	}
	return last, true, keys.Compare(last, r.start) < 0
}
