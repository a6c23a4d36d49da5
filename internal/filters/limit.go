package filters

import "iter"

// Limit yields at most n items from seq, preserving order and laziness: the
// upstream sequence is consumed only as far as the downstream consumer asks,
// never past the n-th item. When n is zero or negative the sequence passes
// through unbounded.
//
// Limit is independent of the query engine and composes with any sequence.
func Limit[T any](seq iter.Seq[T], n int) iter.Seq[T] {
	if n <= 0 {
		return seq
	}
	return func(yield func(T) bool) {
		remaining := n
		for v := range seq {
			if !yield(v) {
				return
			}
			remaining--
			if remaining == 0 {
				return
			}
		}
	}
}

// Collect drains a sequence into a slice. Convenience for callers that need
// the whole result at once, such as the serializers and tests.
func Collect[T any](seq iter.Seq[T]) []T {
	var out []T
	for v := range seq {
		out = append(out, v)
	}
	return out
}
