package storage

// translateRange resolves raw (start, end) indices against a collection of
// length n. Negative indices count from the end; the result is clamped to
// [0, n] for start and [-1, n-1] for end. The clamped pair is an inclusive
// interval, empty when start > end. Shared by list and sorted-set range
// operations.
func translateRange(n, start, end int) (int, int) {
	if start < 0 {
		start += n
	}
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}

	if end < 0 {
		end += n
	}
	if end < -1 {
		end = -1
	}
	if end > n-1 {
		end = n - 1
	}
	return start, end
}

// translateLimit resolves an offset/count pagination pair against a
// collection of length n. Distinct from index ranges: the result selects the
// next num elements from start, and degenerates to an empty window when
// start is past the end or num is non-positive.
func translateLimit(n, start, num int) (int, int) {
	if start > n || num <= 0 {
		return 0, 0
	}
	return start, num
}
