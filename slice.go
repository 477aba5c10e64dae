package cmap

// InsertSlice sets the values for the run of adjacent keys starting at
// start, equivalent to one Insert per value but performed as a single
// region-level splice. Any regions the run overlaps or touches are merged
// into one. Values previously stored for keys in the run are returned in
// ascending key order.
//
// Panics if the run extends past the last representable key.
func (m *Map[K, V]) InsertSlice(start K, values []V) []V {
	if len(values) == 0 {
		return nil
	}
	last, ok := m.keys.Advance(start, len(values)-1)
	if !ok {
		panic("cmap: inserted slice extends past the end of the key space")
	}

	newStart := start
	var prefix, suffix, displaced []V

	// A region at or before start may overlap or touch the front of the
	// run. Its values before start are kept as the merged region's prefix.
	if r := m.regionAtOrBefore(start); r != nil {
		if d, ok := m.keys.Distance(start, r.start); ok && d <= len(r.values) {
			newStart = r.start
			prefix = r.values[:d]
			if overlap := r.values[d:]; len(overlap) > 0 {
				if len(overlap) > len(values) {
					suffix = overlap[len(values):]
					overlap = overlap[:len(values)]
				}
				displaced = append(displaced, overlap...)
			}
			m.tree.Delete(r)
		}
	}

	// Regions starting inside the run are displaced by it; a region
	// starting just after the run is merged with it.
	collectEnd := last
	if next, ok := m.keys.Next(last); ok {
		collectEnd = next
	}
	var absorbed []*region[K, V]
	m.tree.AscendGreaterOrEqual(m.probe(start), func(r *region[K, V]) bool {
		if m.keys.Compare(r.start, collectEnd) > 0 {
			return false
		}
		absorbed = append(absorbed, r)
		return true
	})
	for _, r := range absorbed {
		m.tree.Delete(r)
		d, _ := m.keys.Distance(r.start, start)
		if n := len(values) - d; n < len(r.values) {
			// The region reaches past the end of the run.
			suffix = r.values[n:]
			displaced = append(displaced, r.values[:n]...)
		} else {
			displaced = append(displaced, r.values...)
		}
	}

	merged := make([]V, 0, len(prefix)+len(values)+len(suffix))
	merged = append(merged, prefix...)
	merged = append(merged, values...)
	merged = append(merged, suffix...)
	m.tree.ReplaceOrInsert(&region[K, V]{start: newStart, values: merged})
	m.size += len(values) - len(displaced)
	return displaced
}

// GetSlice returns the values stored for a range of keys. The entire range
// must lie within a single contiguous region; a range that crosses a gap
// or a region boundary yields no slice. Empty and backwards ranges yield
// no slice.
//
// The returned slice aliases the map's storage: elements may be modified
// in place, and the slice is invalidated by any mutating call on the map.
func (m *Map[K, V]) GetSlice(kr KeyRange[K]) ([]V, bool) {
	r, off := m.findRegion(kr.start)
	if r == nil {
		return nil, false
	}
	last, hasEnd, empty := kr.lastKey(m.keys)
	if empty {
		return nil, false
	}
	if !hasEnd {
		return r.values[off:], true
	}
	n, ok := m.keys.Distance(last, kr.start)
	if !ok || n >= len(r.values)-off {
		return nil, false
	}
	return r.values[off : off+n+1], true
}

// GetSliceWithLen returns the n values stored for the run of adjacent keys
// starting at start. Like GetSlice, the whole run must lie within a single
// region and the returned slice aliases the map's storage.
func (m *Map[K, V]) GetSliceWithLen(start K, n int) ([]V, bool) {
	if n <= 0 {
		return nil, false
	}
	if _, ok := m.keys.Advance(start, n-1); !ok {
		// The run extends past the end of the key space.
		return nil, false
	}
	r, off := m.findRegion(start)
	if r == nil || n > len(r.values)-off {
		return nil, false
	}
	return r.values[off : off+n], true
}

// ClearRange removes every key in a range of keys. Regions fully inside
// the range are deleted; regions overlapping an edge of the range are
// truncated, which may split a region in two.
func (m *Map[K, V]) ClearRange(kr KeyRange[K]) {
	last, hasEnd, empty := kr.lastKey(m.keys)
	if empty {
		return
	}
	m.clearSpan(kr.start, last, hasEnd)
}

// ClearWithLen removes the n adjacent keys starting at start.
func (m *Map[K, V]) ClearWithLen(start K, n int) {
	if n <= 0 {
		return
	}
	if last, ok := m.keys.Advance(start, n-1); ok {
		m.clearSpan(start, last, true)
	} else {
		// The span covers everything up to the last representable key.
		m.clearSpan(start, start, false)
	}
}

// clearSpan removes the keys in [start, last], or all keys at or above
// start if hasEnd is false.
func (m *Map[K, V]) clearSpan(start, last K, hasEnd bool) {
	var affected []*region[K, V]
	if r := m.regionAtOrBefore(start); r != nil {
		// Strictly before start; a region starting exactly at start is
		// collected by the ascending pass below.
		if d, ok := m.keys.Distance(start, r.start); ok && d > 0 && d < len(r.values) {
			affected = append(affected, r)
		}
	}
	m.tree.AscendGreaterOrEqual(m.probe(start), func(r *region[K, V]) bool {
		if hasEnd && m.keys.Compare(r.start, last) > 0 {
			return false
		}
		affected = append(affected, r)
		return true
	})

	for _, r := range affected {
		lo := 0
		if m.keys.Compare(r.start, start) < 0 {
			lo, _ = m.keys.Distance(start, r.start)
		}
		hi := len(r.values) - 1
		if hasEnd {
			if d, ok := m.keys.Distance(last, r.start); ok && d < hi {
				hi = d
			}
		}

		var right []V
		if hi < len(r.values)-1 {
			right = append([]V(nil), r.values[hi+1:]...)
		}
		if lo > 0 {
			// Truncate in place; the region keeps its start key.
			clear(r.values[lo:])
			r.values = r.values[:lo:lo]
		} else {
			m.tree.Delete(r)
		}
		if right != nil {
			rightStart, _ := m.keys.Advance(r.start, hi+1)
			m.tree.ReplaceOrInsert(&region[K, V]{start: rightStart, values: right})
		}
		m.size -= hi - lo + 1
	}
}
