package common

import (
	"fmt"
	"strings"
)

func Map[I, O any](p func(I) O, xs []I) []O {
	result := make([]O, len(xs))
	for i, x := range xs {
		result[i] = p(x)
	}
	return result
}

func MapIf[I, O any](p func(I) (O, bool), xs []I) []O {
	result := make([]O, 0, len(xs))
	for _, x := range xs {
		if r, ok := p(x); ok {
			result = append(result, r)
		}
	}
	return result
}

func Filter[T any](p func(T) bool, xs []T) []T {
	result := make([]T, 0, len(xs))
	for _, x := range xs {
		if p(x) {
			result = append(result, x)
		}
	}
	return result
}

func Repeat[T any](x T, n int) []T {
	if n <= 0 {
		return nil
	}
	result := make([]T, n)
	for i := range result {
		result[i] = x
	}
	return result
}

func Any[T any](p func(T) bool, xs []T) bool {
	for _, x := range xs {
		if p(x) {
			return true
		}
	}
	return false
}

func Find[T any](p func(T) bool, xs []T) (T, bool) {
	for _, x := range xs {
		if p(x) {
			return x, true
		}
	}

	var x T
	return x, false
}

// Concat builds a fresh slice, never aliasing its inputs.
func Concat[T any](xs ...[]T) []T {
	n := 0
	for _, x := range xs {
		n += len(x)
	}
	result := make([]T, 0, n)
	for _, x := range xs {
		result = append(result, x...)
	}
	return result
}

func Join[T fmt.Stringer](xs []T, sep string) string {
	return strings.Join(Map(func(x T) string { return x.String() }, xs), sep)
}
