package zset

import "sort"

// Pair is a single sorted-set entry.
type Pair struct {
	Member string
	Score  float64
}

// SortedSet is an order-statistics set of (member, score) pairs. Members are
// unique; entries are totally ordered by score ascending, then member
// lexicographically ascending for equal scores. The tie-break makes rank and
// range queries deterministic.
//
// The backing is a score lookup map plus a slice kept sorted by
// (score, member). Insert and remove are O(n) due to the slice shift, rank
// and range lookups are O(log n). The structure is not safe for concurrent
// mutation.
type SortedSet struct {
	scores  map[string]float64
	ordered []Pair
}

func New() *SortedSet {
	return &SortedSet{
		scores: make(map[string]float64),
	}
}

func (s *SortedSet) Len() int {
	return len(s.ordered)
}

// search returns the position of (score, member) in the ordered slice, which
// is the insertion point when the pair is absent.
func (s *SortedSet) search(member string, score float64) int {
	return sort.Search(len(s.ordered), func(i int) bool {
		p := s.ordered[i]
		if p.Score != score {
			return p.Score > score
		}
		return p.Member >= member
	})
}

// Insert adds the member with the given score, or updates the score of an
// existing member. Returns true only if the member was newly added.
func (s *SortedSet) Insert(member string, score float64) bool {
	old, exists := s.scores[member]
	if exists {
		if old != score {
			s.removeAt(s.search(member, old))
			s.insertAt(member, score)
			s.scores[member] = score
		}
		return false
	}

	s.insertAt(member, score)
	s.scores[member] = score
	return true
}

// Remove deletes the member. Returns true if it was present.
func (s *SortedSet) Remove(member string) bool {
	score, exists := s.scores[member]
	if !exists {
		return false
	}
	s.removeAt(s.search(member, score))
	delete(s.scores, member)
	return true
}

// Score returns the member's score and whether the member is present.
func (s *SortedSet) Score(member string) (float64, bool) {
	score, ok := s.scores[member]
	return score, ok
}

// Rank returns the member's 0-based position in ascending (score, member)
// order, and whether the member is present.
func (s *SortedSet) Rank(member string) (int, bool) {
	score, ok := s.scores[member]
	if !ok {
		return 0, false
	}
	return s.search(member, score), true
}

// Range returns the entries in the inclusive rank interval [start, end].
// Indices must already be translated to valid bounds; an inverted interval
// yields an empty result. desc reverses the output order without changing
// which entries are selected.
func (s *SortedSet) Range(start, end int, desc bool) []Pair {
	if start < 0 {
		start = 0
	}
	if end >= len(s.ordered) {
		end = len(s.ordered) - 1
	}
	if start > end {
		return nil
	}

	out := make([]Pair, end-start+1)
	copy(out, s.ordered[start:end+1])
	if desc {
		reverse(out)
	}
	return out
}

// ScoreRange returns the entries with min <= score <= max in ascending
// (score, member) order.
func (s *SortedSet) ScoreRange(min, max float64) []Pair {
	lo := sort.Search(len(s.ordered), func(i int) bool {
		return s.ordered[i].Score >= min
	})
	hi := sort.Search(len(s.ordered), func(i int) bool {
		return s.ordered[i].Score > max
	})
	if lo >= hi {
		return nil
	}

	out := make([]Pair, hi-lo)
	copy(out, s.ordered[lo:hi])
	return out
}

func (s *SortedSet) insertAt(member string, score float64) {
	i := s.search(member, score)
	s.ordered = append(s.ordered, Pair{})
	copy(s.ordered[i+1:], s.ordered[i:])
	s.ordered[i] = Pair{Member: member, Score: score}
}

func (s *SortedSet) removeAt(i int) {
	copy(s.ordered[i:], s.ordered[i+1:])
	s.ordered = s.ordered[:len(s.ordered)-1]
}

func reverse(pairs []Pair) {
	for i, j := 0, len(pairs)-1; i < j; i, j = i+1, j-1 {
		pairs[i], pairs[j] = pairs[j], pairs[i]
	}
}
