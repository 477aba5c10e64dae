package util

// SlicePopFirst removes the first element of s, zeroing the vacated slot
// so it does not pin the removed value.
func SlicePopFirst[S ~[]E, E any](s S) S {
	var zeroVal E
	s[0] = zeroVal
	return s[1:]
}

// SlicePopLast removes the last element of s, zeroing the vacated slot so
// it does not pin the removed value.
func SlicePopLast[S ~[]E, E any](s S) S {
	var zeroVal E
	s[len(s)-1] = zeroVal
	return s[:len(s)-1]
}
