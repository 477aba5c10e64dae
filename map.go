package cmap

import (
	"github.com/google/btree"
	"golang.org/x/exp/constraints"

	"github.com/alexFickle/contiguous-map/internal/util"
)

// Degree of the region B-tree. Regions are coarse (one item per contiguous
// run of keys), so a modest fanout is plenty.
const btreeDegree = 16

// region is a maximal run of adjacent keys. values[i] is the value stored
// for the key i steps after start.
type region[K, V any] struct {
	start  K
	values []V
}

// Map is an ordered associative container that stores values with adjacent
// keys contiguously, so runs of values can be read and written as slices.
//
// Maps store every contiguous run of keys as exactly one region: no two
// stored regions overlap or are adjacent to each other.
type Map[K, V any] struct {
	keys KeySpace[K]
	tree *btree.BTreeG[*region[K, V]]
	size int
}

// New returns an empty map for built-in integer key types.
func New[K constraints.Integer, V any]() *Map[K, V] {
	return NewWith[K, V](IntKeys[K]{})
}

// NewWith returns an empty map using the given key space.
func NewWith[K, V any](keys KeySpace[K]) *Map[K, V] {
	less := func(a, b *region[K, V]) bool {
		return keys.Compare(a.start, b.start) < 0
	}
	return &Map[K, V]{
		keys: keys,
		tree: btree.NewG(btreeDegree, less),
	}
}

// An Entry is a contiguous run of values, used with FromEntries.
type Entry[K, V any] struct {
	Start  K
	Values []V
}

// FromEntries builds a map by inserting one run of values per entry, in
// the given order.
func FromEntries[K constraints.Integer, V any](entries ...Entry[K, V]) *Map[K, V] {
	m := New[K, V]()
	for _, e := range entries {
		m.InsertSlice(e.Start, e.Values)
	}
	return m
}

func (m *Map[K, V]) probe(key K) *region[K, V] {
	return &region[K, V]{start: key}
}

// regionAtOrBefore returns the last region whose start key is <= key, or
// nil if no such region exists.
func (m *Map[K, V]) regionAtOrBefore(key K) *region[K, V] {
	var found *region[K, V]
	m.tree.DescendLessOrEqual(m.probe(key), func(r *region[K, V]) bool {
		found = r
		return false
	})
	return found
}

// findRegion returns the region containing key and the key's offset within
// it, or (nil, 0) if the key is not present.
func (m *Map[K, V]) findRegion(key K) (*region[K, V], int) {
	r := m.regionAtOrBefore(key)
	if r == nil {
		return nil, 0
	}
	off, ok := m.keys.Distance(key, r.start)
	if !ok || off >= len(r.values) {
		return nil, 0
	}
	return r, off
}

// Insert sets the value for a key. Returns the previous value for the key
// if one existed.
func (m *Map[K, V]) Insert(key K, value V) (V, bool) {
	var old V
	if r := m.regionAtOrBefore(key); r != nil {
		off, ok := m.keys.Distance(key, r.start)
		if ok && off < len(r.values) {
			old = r.values[off]
			r.values[off] = value
			return old, true
		}
		if ok && off == len(r.values) {
			// Extend the region ending just before key.
			r.values = append(r.values, value)
			m.size++
			m.mergeAfter(r, key)
			return old, false
		}
	}

	// No region to extend; start a new one.
	r := &region[K, V]{start: key, values: []V{value}}
	m.tree.ReplaceOrInsert(r)
	m.size++
	m.mergeAfter(r, key)
	return old, false
}

// mergeAfter absorbs the region starting immediately after lastKey into r,
// restoring the non-adjacency invariant. lastKey must be the last key of r.
func (m *Map[K, V]) mergeAfter(r *region[K, V], lastKey K) {
	next, ok := m.keys.Next(lastKey)
	if !ok {
		return
	}
	if absorbed, found := m.tree.Delete(m.probe(next)); found {
		r.values = append(r.values, absorbed.values...)
	}
}

// Get returns the value stored for a key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	r, off := m.findRegion(key)
	if r == nil {
		var zero V
		return zero, false
	}
	return r.values[off], true
}

// GetMut returns a pointer to the value stored for a key, or nil if the
// key is not present. The pointer aliases the map's storage and is
// invalidated by any mutating call on the map.
func (m *Map[K, V]) GetMut(key K) *V {
	r, off := m.findRegion(key)
	if r == nil {
		return nil
	}
	return &r.values[off]
}

// Remove deletes a key from the map, returning the value it stored.
// Removing an interior key of a region splits the region in two.
func (m *Map[K, V]) Remove(key K) (V, bool) {
	r, off := m.findRegion(key)
	if r == nil {
		var zero V
		return zero, false
	}
	value := r.values[off]
	switch {
	case len(r.values) == 1:
		m.tree.Delete(r)
	case off == 0:
		// The start key orders the tree, so the region must be reinserted.
		m.tree.Delete(r)
		r.start, _ = m.keys.Next(key)
		r.values = util.SlicePopFirst(r.values)
		m.tree.ReplaceOrInsert(r)
	case off == len(r.values)-1:
		r.values = util.SlicePopLast(r.values)
	default:
		rightStart, _ := m.keys.Next(key)
		right := &region[K, V]{
			start:  rightStart,
			values: append([]V(nil), r.values[off+1:]...),
		}
		clear(r.values[off:])
		r.values = r.values[:off:off]
		m.tree.ReplaceOrInsert(right)
	}
	m.size--
	return value, true
}

// Clone returns a deep copy of the map. The copy shares the key space
// with the original but none of its region storage.
func (m *Map[K, V]) Clone() *Map[K, V] {
	c := NewWith[K, V](m.keys)
	m.tree.Ascend(func(r *region[K, V]) bool {
		c.tree.ReplaceOrInsert(&region[K, V]{
			start:  r.start,
			values: append([]V(nil), r.values...),
		})
		return true
	})
	c.size = m.size
	return c
}

// EqualFunc reports whether two maps store equal values for exactly the
// same keys, comparing values with eq. Both maps must use the same key
// space.
func (m *Map[K, V]) EqualFunc(other *Map[K, V], eq func(a, b V) bool) bool {
	if m.size != other.size || m.tree.Len() != other.tree.Len() {
		return false
	}
	// Regions are maximal, so equal maps decompose into identical regions.
	equal := true
	m.tree.Ascend(func(r *region[K, V]) bool {
		o, ok := other.tree.Get(other.probe(r.start))
		if !ok || len(o.values) != len(r.values) {
			equal = false
			return false
		}
		for i := range r.values {
			if !eq(r.values[i], o.values[i]) {
				equal = false
				return false
			}
		}
		return true
	})
	return equal
}

// Len returns the number of values in the map.
func (m *Map[K, V]) Len() int {
	return m.size
}

// IsEmpty returns true if the map contains no values.
func (m *Map[K, V]) IsEmpty() bool {
	return m.size == 0
}

// Clear removes all values from the map.
func (m *Map[K, V]) Clear() {
	m.tree.Clear(false)
	m.size = 0
}

// NumContiguousRegions returns the number of contiguous regions currently
// stored in the map.
func (m *Map[K, V]) NumContiguousRegions() int {
	return m.tree.Len()
}
