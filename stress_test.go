package cmap

import (
	"math/rand"
	"testing"

	"github.com/bits-and-blooms/bitset"
)

// checkRegionInvariants walks the stored regions and verifies that they
// are sorted, non-empty, pairwise disjoint, and pairwise non-adjacent, and
// that the region and value counts agree with Len and
// NumContiguousRegions.
func checkRegionInvariants(t *testing.T, m *Map[uint32, int]) {
	t.Helper()
	keys := IntKeys[uint32]{}
	regions := 0
	values := 0
	var prevNext uint32
	havePrev := false
	m.IterateSlices(func(start uint32, vals []int) bool {
		if len(vals) == 0 {
			t.Errorf("Empty region at %d", start)
			return false
		}
		if havePrev && start <= prevNext {
			t.Errorf("Region at %d overlaps or is adjacent to the previous region ending before %d",
				start, prevNext)
		}
		end, ok := keys.Advance(start, len(vals)-1)
		if !ok {
			t.Errorf("Region at %d runs past the end of the key space", start)
			return false
		}
		prevNext, havePrev = end+1, end != ^uint32(0)
		regions++
		values += len(vals)
		return true
	})
	if regions != m.NumContiguousRegions() {
		t.Errorf("Region count %d != NumContiguousRegions() %d", regions, m.NumContiguousRegions())
	}
	if values != m.Len() {
		t.Errorf("Value count %d != Len() %d", values, m.Len())
	}
}

// checkAgainstModel compares the map's contents against a bitset presence
// model and a value array.
func checkAgainstModel(t *testing.T, m *Map[uint32, int], present *bitset.BitSet, values []int) {
	t.Helper()
	got := 0
	m.Iterate(func(key uint32, value int) bool {
		if !present.Test(uint(key)) {
			t.Errorf("Iterate gave key %d not in the model", key)
		} else if values[key] != value {
			t.Errorf("Iterate gave (%d, %d), model has %d", key, value, values[key])
		}
		got++
		return true
	})
	if want := int(present.Count()); got != want {
		t.Errorf("Iterate gave %d values, model has %d", got, want)
	}
	for key, ok := present.NextSet(0); ok; key, ok = present.NextSet(key + 1) {
		if v, found := m.Get(uint32(key)); !found || v != values[key] {
			t.Errorf("Get(%d) (%d, %v) != (%d, true)", key, v, found, values[key])
		}
	}
}

func TestMapStress(t *testing.T) {
	const KeyRangeLen = 4096
	const MaxSliceLen = 64
	const Iterations = 3000

	m := New[uint32, int]()
	present := bitset.New(KeyRangeLen)
	values := make([]int, KeyRangeLen)

	for i := 0; i < Iterations; i++ {
		key := uint32(rand.Intn(KeyRangeLen - MaxSliceLen))
		length := rand.Intn(MaxSliceLen) + 1
		switch rand.Intn(5) {
		case 0:
			m.Insert(key, i)
			present.Set(uint(key))
			values[key] = i
		case 1:
			vals := make([]int, length)
			for j := range vals {
				vals[j] = i
			}
			m.InsertSlice(key, vals)
			for j := 0; j < length; j++ {
				present.Set(uint(key) + uint(j))
				values[int(key)+j] = i
			}
		case 2:
			_, removed := m.Remove(key)
			if removed != present.Test(uint(key)) {
				t.Errorf("Remove(%d) %v, model has %v", key, removed, present.Test(uint(key)))
			}
			present.Clear(uint(key))
		case 3:
			m.ClearWithLen(key, length)
			for j := 0; j < length; j++ {
				present.Clear(uint(key) + uint(j))
			}
		case 4:
			if v, ok := m.Get(key); ok != present.Test(uint(key)) || (ok && v != values[key]) {
				t.Errorf("Get(%d) (%d, %v) disagrees with the model", key, v, ok)
			}
		}

		if i%100 == 0 {
			checkRegionInvariants(t, m)
			checkAgainstModel(t, m, present, values)
		}
	}

	checkRegionInvariants(t, m)
	checkAgainstModel(t, m, present, values)
}

func TestMapStressSliceLookups(t *testing.T) {
	const KeyRangeLen = 2048
	const MaxSliceLen = 32
	const Iterations = 500

	m := New[uint32, int]()
	present := bitset.New(KeyRangeLen)

	for i := 0; i < Iterations; i++ {
		key := uint32(rand.Intn(KeyRangeLen - MaxSliceLen))
		length := rand.Intn(MaxSliceLen) + 1
		m.InsertSlice(key, make([]int, length))
		for j := 0; j < length; j++ {
			present.Set(uint(key) + uint(j))
		}

		// A slice lookup succeeds exactly when every key in the span is
		// present in one unbroken run.
		start := uint32(rand.Intn(KeyRangeLen - MaxSliceLen))
		n := rand.Intn(MaxSliceLen) + 1
		contiguous := true
		for j := 0; j < n; j++ {
			if !present.Test(uint(start) + uint(j)) {
				contiguous = false
				break
			}
		}
		s, ok := m.GetSliceWithLen(start, n)
		if ok != contiguous {
			t.Errorf("GetSliceWithLen(%d, %d) ok=%v, model says %v", start, n, ok, contiguous)
		}
		if ok && len(s) != n {
			t.Errorf("GetSliceWithLen(%d, %d) gave %d values", start, n, len(s))
		}
	}
}
