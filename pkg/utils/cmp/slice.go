package cmp

// SliceEq checks two slices have equal elements in the same order.
func SliceEq[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SliceEqWith checks two slices are element-wise equal under pred.
func SliceEqWith[T any, U any](a []T, b []U, pred func(T, U) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !pred(a[i], b[i]) {
			return false
		}
	}
	return true
}

// SliceContentEq checks two slices have the same elements,
// ignoring order and multiplicity of duplicates.
func SliceContentEq[T comparable](a, b []T) bool {
	am := map[T]struct{}{}
	for _, v := range a {
		am[v] = struct{}{}
	}
	bm := map[T]struct{}{}
	for _, v := range b {
		bm[v] = struct{}{}
	}
	if len(am) != len(bm) {
		return false
	}
	for k := range am {
		if _, ok := bm[k]; !ok {
			return false
		}
	}
	return true
}
