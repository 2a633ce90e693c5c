// Package functools holds small generic helpers over slices.
package functools

// Map applies fn to every element. A nil slice maps to nil.
func Map[T any, R any](slice []T, fn func(T) R) []R {
	if slice == nil {
		return nil
	}
	out := make([]R, len(slice))
	for i, v := range slice {
		out[i] = fn(v)
	}
	return out
}

// MapWithError is Map for conversions that can fail. It stops at the first
// error and returns it unchanged, so error marks survive for the caller.
func MapWithError[T any, R any](slice []T, fn func(T) (R, error)) ([]R, error) {
	if slice == nil {
		return nil, nil
	}
	out := make([]R, len(slice))
	for i, v := range slice {
		r, err := fn(v)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}
