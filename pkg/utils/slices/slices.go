package slices

// Map applies mapper to each element of sli.
//
// The returned slice has the same length as sli,
// and its N-th element is mapper(sli[N]).
func Map[T any, R any](sli []T, mapper func(v T) R) []R {
	ret := make([]R, len(sli))
	for nth, v := range sli {
		ret[nth] = mapper(v)
	}
	return ret
}

// MapUntilError maps sli with mapper, stopping at the first error.
//
// On error, it returns (nil, error). Otherwise (mapped slice, nil).
func MapUntilError[T any, R any](sli []T, mapper func(v T) (R, error)) ([]R, error) {
	ret := make([]R, len(sli))
	for nth, v := range sli {
		r, err := mapper(v)
		if err != nil {
			return nil, err
		}
		ret[nth] = r
	}
	return ret, nil
}

// Filter returns elements of vs for which predicator returns true,
// preserving order.
func Filter[T any](vs []T, predicator func(v T) bool) []T {
	ret := []T{}
	for _, v := range vs {
		if predicator(v) {
			ret = append(ret, v)
		}
	}
	return ret
}

// First returns the first element matching predicator.
//
// The second return value is false when no element matches.
func First[T any](vs []T, predicator func(v T) bool) (T, bool) {
	for _, v := range vs {
		if predicator(v) {
			return v, true
		}
	}
	return *new(T), false
}

// Group splits vs into (satisfied, notSatisfied) by predicator,
// preserving order in both groups.
func Group[T any](vs []T, predicator func(v T) bool) ([]T, []T) {
	sat := []T{}
	notSat := []T{}
	for _, v := range vs {
		if predicator(v) {
			sat = append(sat, v)
		} else {
			notSat = append(notSat, v)
		}
	}
	return sat, notSat
}

// KeysOf flattens a map into a slice of its keys. Order is not defined.
func KeysOf[T any, K comparable](m map[K]T) []K {
	sli := make([]K, 0, len(m))
	for k := range m {
		sli = append(sli, k)
	}
	return sli
}

// Concat joins slices into one.
func Concat[T any](ss ...[]T) []T {
	length := 0
	for _, s := range ss {
		length += len(s)
	}
	ret := make([]T, 0, length)
	for _, s := range ss {
		ret = append(ret, s...)
	}
	return ret
}
