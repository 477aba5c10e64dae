package cmap

import "cmp"

// An Index is the position of a value within a map: the start key of the
// region containing it, and the value's offset within that region.
//
// An Index is invalidated by any mutating call on the map that merges,
// splits, or removes its region.
type Index[K any] struct {
	Key    K
	Offset int
}

// Find returns the position of the value stored for a key.
func (m *Map[K, V]) Find(key K) (Index[K], bool) {
	r, off := m.findRegion(key)
	if r == nil {
		return Index[K]{}, false
	}
	return Index[K]{Key: r.start, Offset: off}, true
}

// First returns the position of the value with the smallest key.
func (m *Map[K, V]) First() (Index[K], bool) {
	r, ok := m.tree.Min()
	if !ok {
		return Index[K]{}, false
	}
	return Index[K]{Key: r.start}, true
}

// Last returns the position of the value with the largest key.
func (m *Map[K, V]) Last() (Index[K], bool) {
	r, ok := m.tree.Max()
	if !ok {
		return Index[K]{}, false
	}
	return Index[K]{Key: r.start, Offset: len(r.values) - 1}, true
}

// FindAtLeast returns the position of the value with the smallest key that
// is at or above key.
func (m *Map[K, V]) FindAtLeast(key K) (Index[K], bool) {
	if idx, ok := m.Find(key); ok {
		return idx, true
	}
	return m.FindMore(key)
}

// FindMore returns the position of the value with the smallest key that is
// strictly above key.
func (m *Map[K, V]) FindMore(key K) (Index[K], bool) {
	if r, off := m.findRegion(key); r != nil && off+1 < len(r.values) {
		return Index[K]{Key: r.start, Offset: off + 1}, true
	}
	next, ok := m.keys.Next(key)
	if !ok {
		return Index[K]{}, false
	}
	var idx Index[K]
	found := false
	m.tree.AscendGreaterOrEqual(m.probe(next), func(r *region[K, V]) bool {
		idx = Index[K]{Key: r.start}
		found = true
		return false
	})
	return idx, found
}

// FindAtMost returns the position of the value with the largest key that
// is at or below key.
func (m *Map[K, V]) FindAtMost(key K) (Index[K], bool) {
	if idx, ok := m.Find(key); ok {
		return idx, true
	}
	return m.FindLess(key)
}

// FindLess returns the position of the value with the largest key that is
// strictly below key.
func (m *Map[K, V]) FindLess(key K) (Index[K], bool) {
	var idx Index[K]
	found := false
	m.tree.DescendLessOrEqual(m.probe(key), func(r *region[K, V]) bool {
		if m.keys.Compare(r.start, key) >= 0 {
			// The region starting exactly at key holds no smaller keys.
			return true
		}
		off := len(r.values) - 1
		if d, ok := m.keys.Distance(key, r.start); ok && d-1 < off {
			off = d - 1
		}
		idx = Index[K]{Key: r.start, Offset: off}
		found = true
		return false
	})
	return idx, found
}

// FindRange returns the positions of the first and last values within a
// range of keys. Returns false if the map holds no key in the range.
func (m *Map[K, V]) FindRange(kr KeyRange[K]) (first, last Index[K], ok bool) {
	lastKey, hasEnd, empty := kr.lastKey(m.keys)
	if empty {
		return first, last, false
	}
	first, ok = m.FindAtLeast(kr.start)
	if !ok {
		return Index[K]{}, Index[K]{}, false
	}
	if hasEnd {
		last, ok = m.FindAtMost(lastKey)
	} else {
		last, ok = m.Last()
	}
	if !ok || m.compareIndex(first, last) > 0 {
		return Index[K]{}, Index[K]{}, false
	}
	return first, last, true
}

func (m *Map[K, V]) compareIndex(a, b Index[K]) int {
	if c := m.keys.Compare(a.Key, b.Key); c != 0 {
		return c
	}
	return cmp.Compare(a.Offset, b.Offset)
}
