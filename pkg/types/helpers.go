package types

import "cmp"

// CompareOrdered returns -1, 0 or +1 following the natural ascending order of
// numeric and string values. NaN sorts before every other float.
func CompareOrdered[T cmp.Ordered](a, b T) int {
	return cmp.Compare(a, b)
}

// CompareBool orders false before true.
func CompareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
