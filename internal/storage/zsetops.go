package storage

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/eternalApril/mirage/internal/zset"
)

// Limit is an optional offset/count window for score-range queries.
type Limit struct {
	Start int
	Num   int
}

// ZAdd inserts or updates the given (member, score) pairs, creating the
// sorted set when absent. Returns the number of members newly added; score
// updates on existing members do not count.
func (db *DB) ZAdd(key string, pairs ...zset.Pair) (int, error) {
	ent, err := db.entity(key, TypeZSet, true, "ZADD")
	if err != nil {
		return 0, err
	}

	added := 0
	for _, p := range pairs {
		if ent.ZSet.Insert(p.Member, p.Score) {
			added++
		}
	}
	return added, nil
}

// ZCard returns the cardinality; 0 when absent.
func (db *DB) ZCard(key string) (int, error) {
	ent, err := db.entity(key, TypeZSet, false, "ZCARD")
	if err != nil || ent == nil {
		return 0, err
	}
	return ent.ZSet.Len(), nil
}

// ZScore returns the member's score.
func (db *DB) ZScore(key, member string) (float64, bool, error) {
	ent, err := db.entity(key, TypeZSet, false, "ZSCORE")
	if err != nil || ent == nil {
		return 0, false, err
	}
	score, ok := ent.ZSet.Score(member)
	return score, ok, nil
}

// ZRank returns the member's 0-based ascending rank.
func (db *DB) ZRank(key, member string) (int, bool, error) {
	ent, err := db.entity(key, TypeZSet, false, "ZRANK")
	if err != nil || ent == nil {
		return 0, false, err
	}
	rank, ok := ent.ZSet.Rank(member)
	return rank, ok, nil
}

// ZRevRank returns the member's 0-based rank counted from the highest score.
func (db *DB) ZRevRank(key, member string) (int, bool, error) {
	ent, err := db.entity(key, TypeZSet, false, "ZREVRANK")
	if err != nil || ent == nil {
		return 0, false, err
	}
	rank, ok := ent.ZSet.Rank(member)
	if !ok {
		return 0, false, nil
	}
	return ent.ZSet.Len() - rank - 1, true, nil
}

// ZIncrBy adds delta to the member's score, inserting it at delta when
// absent, and returns the new score.
func (db *DB) ZIncrBy(key, member string, delta float64) (float64, error) {
	ent, err := db.entity(key, TypeZSet, true, "ZINCRBY")
	if err != nil {
		return 0, err
	}

	score, _ := ent.ZSet.Score(member)
	score += delta
	ent.ZSet.Insert(member, score)
	return score, nil
}

// ZRem removes members, returning how many were present. An emptied sorted
// set deletes the key.
func (db *DB) ZRem(key string, members ...string) (int, error) {
	ent, err := db.entity(key, TypeZSet, false, "ZREM")
	if err != nil || ent == nil {
		return 0, err
	}

	removed := 0
	for _, member := range members {
		if ent.ZSet.Remove(member) {
			removed++
		}
	}
	if removed > 0 && ent.empty() {
		db.dropKey(key)
	}
	return removed, nil
}

// ZCount returns the number of members with min <= score <= max.
func (db *DB) ZCount(key string, min, max float64) (int, error) {
	ent, err := db.entity(key, TypeZSet, false, "ZCOUNT")
	if err != nil || ent == nil {
		return 0, err
	}
	return len(ent.ZSet.ScoreRange(min, max)), nil
}

// ZRange returns the rank interval [start, end] after index translation;
// desc reverses the output order without changing the selection.
func (db *DB) ZRange(key string, start, end int, desc bool) ([]zset.Pair, error) {
	ent, err := db.entity(key, TypeZSet, false, "ZRANGE")
	if err != nil || ent == nil {
		return nil, err
	}

	start, end = translateRange(ent.ZSet.Len(), start, end)
	return ent.ZSet.Range(start, end, desc), nil
}

// ZRevRange is ZRange with descending output.
func (db *DB) ZRevRange(key string, start, end int) ([]zset.Pair, error) {
	return db.ZRange(key, start, end, true)
}

// ZRangeByScore returns the members with min <= score <= max in ascending
// (score, member) order, optionally windowed by limit.
func (db *DB) ZRangeByScore(key string, min, max float64, limit *Limit) ([]zset.Pair, error) {
	ent, err := db.entity(key, TypeZSet, false, "ZRANGEBYSCORE")
	if err != nil || ent == nil {
		return nil, err
	}
	return window(ent.ZSet.ScoreRange(min, max), limit), nil
}

// ZRevRangeByScore is the score-range query in descending order; the limit
// window applies after the reversal.
func (db *DB) ZRevRangeByScore(key string, max, min float64, limit *Limit) ([]zset.Pair, error) {
	ent, err := db.entity(key, TypeZSet, false, "ZREVRANGEBYSCORE")
	if err != nil || ent == nil {
		return nil, err
	}

	pairs := ent.ZSet.ScoreRange(min, max)
	for i, j := 0, len(pairs)-1; i < j; i, j = i+1, j-1 {
		pairs[i], pairs[j] = pairs[j], pairs[i]
	}
	return window(pairs, limit), nil
}

// ZRemRangeByRank removes the rank interval [start, end] after index
// translation, returning the number removed.
func (db *DB) ZRemRangeByRank(key string, start, end int) (int, error) {
	ent, err := db.entity(key, TypeZSet, false, "ZREMRANGEBYRANK")
	if err != nil || ent == nil {
		return 0, err
	}

	start, end = translateRange(ent.ZSet.Len(), start, end)
	return db.removePairs(key, ent, ent.ZSet.Range(start, end, false)), nil
}

// ZRemRangeByScore removes the members with min <= score <= max.
func (db *DB) ZRemRangeByScore(key string, min, max float64) (int, error) {
	ent, err := db.entity(key, TypeZSet, false, "ZREMRANGEBYSCORE")
	if err != nil || ent == nil {
		return 0, err
	}
	return db.removePairs(key, ent, ent.ZSet.ScoreRange(min, max)), nil
}

func (db *DB) removePairs(key string, ent *Entity, pairs []zset.Pair) int {
	removed := 0
	for _, p := range pairs {
		if ent.ZSet.Remove(p.Member) {
			removed++
		}
	}
	if removed > 0 && ent.empty() {
		db.dropKey(key)
	}
	return removed
}

// ZUnionStore merges the sorted sets at keys into destination, combining the
// scores of members present in several inputs with the named aggregate (sum
// when empty). Missing input keys contribute nothing. The destination is
// always overwritten; an empty result leaves it absent.
func (db *DB) ZUnionStore(destination string, keys []string, aggregate string) (int, error) {
	agg, err := aggregateFunc(aggregate)
	if err != nil {
		return 0, err
	}

	scores, err := db.gatherScores("ZUNIONSTORE", keys)
	if err != nil {
		return 0, err
	}

	merged := make(map[string]float64, len(scores))
	for member, list := range scores {
		merged[member] = reduceScores(list, agg)
	}
	return db.storeZSet(destination, merged), nil
}

// ZInterStore is ZUnionStore restricted to members present in every input
// key's set; partial membership excludes the member.
func (db *DB) ZInterStore(destination string, keys []string, aggregate string) (int, error) {
	agg, err := aggregateFunc(aggregate)
	if err != nil {
		return 0, err
	}

	scores, err := db.gatherScores("ZINTERSTORE", keys)
	if err != nil {
		return 0, err
	}

	merged := make(map[string]float64)
	for member, list := range scores {
		if len(list) != len(keys) {
			continue
		}
		merged[member] = reduceScores(list, agg)
	}
	return db.storeZSet(destination, merged), nil
}

// gatherScores collects, per member, the scores contributed by each input
// key that holds the member.
func (db *DB) gatherScores(op string, keys []string) (map[string][]float64, error) {
	scores := make(map[string][]float64)
	for _, key := range keys {
		ent, err := db.entity(key, TypeZSet, false, op)
		if err != nil {
			return nil, err
		}
		if ent == nil {
			continue
		}
		for _, p := range ent.ZSet.Range(0, ent.ZSet.Len()-1, false) {
			scores[p.Member] = append(scores[p.Member], p.Score)
		}
	}
	return scores, nil
}

// storeZSet unconditionally overwrites destination; an empty result deletes
// it, since empty sorted sets are never stored.
func (db *DB) storeZSet(destination string, scores map[string]float64) int {
	db.dropKey(destination)
	if len(scores) == 0 {
		return 0
	}

	ent := newEntity(TypeZSet)
	for member, score := range scores {
		ent.ZSet.Insert(member, score)
	}
	db.data[destination] = ent
	return ent.ZSet.Len()
}

func aggregateFunc(name string) (func(a, b float64) float64, error) {
	switch strings.ToLower(name) {
	case "", "sum":
		return func(a, b float64) float64 { return a + b }, nil
	case "min":
		return func(a, b float64) float64 {
			if a < b {
				return a
			}
			return b
		}, nil
	case "max":
		return func(a, b float64) float64 {
			if a > b {
				return a
			}
			return b
		}, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedAggregate, "%q", name)
	}
}

func reduceScores(scores []float64, agg func(a, b float64) float64) float64 {
	acc := scores[0]
	for _, s := range scores[1:] {
		acc = agg(acc, s)
	}
	return acc
}

func window(pairs []zset.Pair, limit *Limit) []zset.Pair {
	if limit == nil {
		return pairs
	}
	start, num := translateLimit(len(pairs), limit.Start, limit.Num)
	if num == 0 {
		return nil
	}
	end := start + num
	if end > len(pairs) {
		end = len(pairs)
	}
	return pairs[start:end]
}
