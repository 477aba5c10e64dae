package cmap

// Iterate calls fn for every key and value in ascending key order,
// stopping early if fn returns false.
func (m *Map[K, V]) Iterate(fn func(key K, value V) bool) {
	m.IterateMut(func(key K, value *V) bool {
		return fn(key, *value)
	})
}

// IterateMut is like Iterate, but passes a pointer through which the value
// may be modified in place.
func (m *Map[K, V]) IterateMut(fn func(key K, value *V) bool) {
	m.tree.Ascend(func(r *region[K, V]) bool {
		key := r.start
		for i := range r.values {
			if !fn(key, &r.values[i]) {
				return false
			}
			if i+1 < len(r.values) {
				key, _ = m.keys.Next(key)
			}
		}
		return true
	})
}

// IterateSlices calls fn once per contiguous region, with the region's
// start key and value slice, in ascending key order. The slice aliases the
// map's storage: elements may be modified in place, but the slice must not
// be grown or shrunk.
func (m *Map[K, V]) IterateSlices(fn func(start K, values []V) bool) {
	m.tree.Ascend(func(r *region[K, V]) bool {
		return fn(r.start, r.values)
	})
}

// IterateRange calls fn for every present key in the given range, in
// ascending key order. Regions overlapping an edge of the range are
// visited only partially.
func (m *Map[K, V]) IterateRange(kr KeyRange[K], fn func(key K, value V) bool) {
	m.iterateRange(kr, func(key K, value *V) bool {
		return fn(key, *value)
	})
}

// IterateRangeMut is like IterateRange, but passes a pointer through which
// the value may be modified in place.
func (m *Map[K, V]) IterateRangeMut(kr KeyRange[K], fn func(key K, value *V) bool) {
	m.iterateRange(kr, fn)
}

func (m *Map[K, V]) iterateRange(kr KeyRange[K], fn func(K, *V) bool) {
	last, hasEnd, empty := kr.lastKey(m.keys)
	if empty {
		return
	}
	first := kr.start
	startOff := 0
	if r, off := m.findRegion(kr.start); r != nil {
		first = r.start
		startOff = off
	}
	m.tree.AscendGreaterOrEqual(m.probe(first), func(r *region[K, V]) bool {
		i := 0
		key := r.start
		if m.keys.Compare(r.start, first) == 0 {
			i = startOff
			key, _ = m.keys.Advance(key, startOff)
		}
		for ; i < len(r.values); i++ {
			if hasEnd && m.keys.Compare(key, last) > 0 {
				return false
			}
			if !fn(key, &r.values[i]) {
				return false
			}
			if i+1 < len(r.values) {
				key, _ = m.keys.Next(key)
			}
		}
		return true
	})
}
