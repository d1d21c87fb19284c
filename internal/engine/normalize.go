package engine

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/eternalApril/mirage/internal/storage"
	"github.com/eternalApril/mirage/internal/zset"
)

// normalizeZAdd reconciles the two ZADD calling conventions. The canonical
// handler expects (score, member) pairs after the key; legacy callers pass
// (member, score) pairs, which are reordered here. The convention is fixed
// at engine construction, not sniffed per call.
func normalizeZAdd(e *Engine, args []string) ([]string, error) {
	if !e.legacy || len(args) < 3 {
		return args, nil
	}
	if (len(args)-1)%2 != 0 {
		return nil, errors.Wrap(storage.ErrInvalidArgument,
			"ZADD requires an equal number of values and scores")
	}

	out := make([]string, 0, len(args))
	out = append(out, args[0])
	for i := 1; i < len(args); i += 2 {
		out = append(out, args[i+1], args[i])
	}
	return out, nil
}

// normalizeSetEX swaps the legacy (key, value, seconds) ordering into the
// canonical (key, seconds, value).
func normalizeSetEX(e *Engine, args []string) ([]string, error) {
	if !e.legacy || len(args) != 3 {
		return args, nil
	}
	return []string{args[0], args[2], args[1]}, nil
}

// Fixed slots produced by normalizeScoreRange beyond the mandatory triple:
// offset, count (both empty when no LIMIT was given) and a withscores flag.
const (
	slotStart      = 3
	slotNum        = 4
	slotWithScores = 5
	scoreRangeLen  = 6
)

// normalizeScoreRange extracts the optional tail of ZRANGEBYSCORE and
// ZREVRANGEBYSCORE into fixed keyword slots. Beyond (key, min, max) the
// caller may pass a LIMIT offset count triple and a WITHSCORES flag, matched
// case-insensitively and in any order.
func normalizeScoreRange(_ *Engine, args []string) ([]string, error) {
	out := make([]string, scoreRangeLen)
	copy(out, args[:3])
	out[slotWithScores] = "0"

	for i := 3; i < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "limit":
			if i+2 >= len(args) {
				return nil, errors.Wrap(storage.ErrInvalidArgument, "LIMIT requires offset and count")
			}
			out[slotStart], out[slotNum] = args[i+1], args[i+2]
		case "withscores":
			out[slotWithScores] = "1"
		}
	}
	return out, nil
}

// flattenPairs turns a score-augmented pair result into the alternating flat
// member/score sequence that generic dispatch callers expect. Plain member
// lists pass through untouched.
func flattenPairs(result any) any {
	pairs, ok := result.([]zset.Pair)
	if !ok {
		return result
	}

	flat := make([]string, 0, len(pairs)*2)
	for _, p := range pairs {
		flat = append(flat, p.Member, formatScore(p.Score))
	}
	return flat
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'g', -1, 64)
}
