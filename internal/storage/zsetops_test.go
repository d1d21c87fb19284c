package storage

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eternalApril/mirage/internal/zset"
)

func zpairs(kv ...any) []zset.Pair {
	out := make([]zset.Pair, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		out = append(out, zset.Pair{Member: kv[i].(string), Score: kv[i+1].(float64)})
	}
	return out
}

func TestZAddZScore(t *testing.T) {
	db, _ := newTestDB(t)

	n, err := db.ZAdd("z", zpairs("a", 1.0, "b", 2.0)...)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Updating an existing member's score does not count as an add.
	n, err = db.ZAdd("z", zpairs("a", 5.0, "c", 3.0)...)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	score, ok, err := db.ZScore("z", "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 5.0, score)

	_, ok, err = db.ZScore("z", "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestZRankZRevRank(t *testing.T) {
	db, _ := newTestDB(t)

	_, err := db.ZAdd("z", zpairs("a", 1.0, "b", 2.0, "c", 3.0)...)
	require.NoError(t, err)

	rank, ok, err := db.ZRank("z", "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, rank)

	rank, ok, err = db.ZRevRank("z", "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, rank)

	_, ok, err = db.ZRank("z", "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestZIncrBy(t *testing.T) {
	db, _ := newTestDB(t)

	score, err := db.ZIncrBy("z", "a", 2.5)
	require.NoError(t, err)
	assert.Equal(t, 2.5, score)

	score, err = db.ZIncrBy("z", "a", -1.0)
	require.NoError(t, err)
	assert.Equal(t, 1.5, score)
}

func TestZRemEmptiesDeleteKey(t *testing.T) {
	db, _ := newTestDB(t)

	_, err := db.ZAdd("z", zpairs("a", 1.0, "b", 2.0)...)
	require.NoError(t, err)

	n, err := db.ZRem("z", "a", "missing")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, db.Exists("z"))

	n, err = db.ZRem("z", "b")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, db.Exists("z"))
}

func TestZRangeTieBreak(t *testing.T) {
	db, _ := newTestDB(t)

	// Equal scores order by member.
	_, err := db.ZAdd("z", zpairs("banana", 1.0, "apple", 1.0, "cherry", 0.5)...)
	require.NoError(t, err)

	got, err := db.ZRange("z", 0, -1, false)
	require.NoError(t, err)
	assert.Equal(t, zpairs("cherry", 0.5, "apple", 1.0, "banana", 1.0), got)

	got, err = db.ZRevRange("z", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, zpairs("banana", 1.0, "apple", 1.0, "cherry", 0.5), got)
}

func TestZRangeTranslation(t *testing.T) {
	db, _ := newTestDB(t)

	_, err := db.ZAdd("z", zpairs("a", 1.0, "b", 2.0, "c", 3.0, "d", 4.0)...)
	require.NoError(t, err)

	got, err := db.ZRange("z", -2, -1, false)
	require.NoError(t, err)
	assert.Equal(t, zpairs("c", 3.0, "d", 4.0), got)

	got, err = db.ZRange("z", 10, 20, false)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = db.ZRange("missing", 0, -1, false)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestZCount(t *testing.T) {
	db, _ := newTestDB(t)

	_, err := db.ZAdd("z", zpairs("a", 1.0, "b", 2.0, "c", 3.0)...)
	require.NoError(t, err)

	n, err := db.ZCount("z", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, n) // bounds are inclusive

	n, err = db.ZCount("z", 5, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestZRangeByScoreLimit(t *testing.T) {
	db, _ := newTestDB(t)

	_, err := db.ZAdd("z", zpairs("a", 1.0, "b", 2.0, "c", 3.0, "d", 4.0)...)
	require.NoError(t, err)

	got, err := db.ZRangeByScore("z", 1, 4, nil)
	require.NoError(t, err)
	assert.Equal(t, zpairs("a", 1.0, "b", 2.0, "c", 3.0, "d", 4.0), got)

	got, err = db.ZRangeByScore("z", 1, 4, &Limit{Start: 1, Num: 2})
	require.NoError(t, err)
	assert.Equal(t, zpairs("b", 2.0, "c", 3.0), got)

	// Offset past the result and non-positive counts degenerate to empty.
	got, err = db.ZRangeByScore("z", 1, 4, &Limit{Start: 10, Num: 2})
	require.NoError(t, err)
	assert.Empty(t, got)
	got, err = db.ZRangeByScore("z", 1, 4, &Limit{Start: 0, Num: 0})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestZRevRangeByScore(t *testing.T) {
	db, _ := newTestDB(t)

	_, err := db.ZAdd("z", zpairs("a", 1.0, "b", 2.0, "c", 3.0)...)
	require.NoError(t, err)

	got, err := db.ZRevRangeByScore("z", 3, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, zpairs("c", 3.0, "b", 2.0, "a", 1.0), got)

	// The window applies after the reversal.
	got, err = db.ZRevRangeByScore("z", 3, 1, &Limit{Start: 1, Num: 1})
	require.NoError(t, err)
	assert.Equal(t, zpairs("b", 2.0), got)
}

func TestZRemRangeByRank(t *testing.T) {
	db, _ := newTestDB(t)

	_, err := db.ZAdd("z", zpairs("a", 1.0, "b", 2.0, "c", 3.0, "d", 4.0)...)
	require.NoError(t, err)

	n, err := db.ZRemRangeByRank("z", 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := db.ZRange("z", 0, -1, false)
	require.NoError(t, err)
	assert.Equal(t, zpairs("c", 3.0, "d", 4.0), got)

	n, err = db.ZRemRangeByRank("z", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.False(t, db.Exists("z"))
}

func TestZRemRangeByScore(t *testing.T) {
	db, _ := newTestDB(t)

	_, err := db.ZAdd("z", zpairs("a", 1.0, "b", 2.0, "c", 3.0)...)
	require.NoError(t, err)

	n, err := db.ZRemRangeByScore("z", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	card, err := db.ZCard("z")
	require.NoError(t, err)
	assert.Equal(t, 1, card)
}

func TestZUnionStoreAggregates(t *testing.T) {
	db, _ := newTestDB(t)

	_, err := db.ZAdd("a", zpairs("x", 1.0, "y", 5.0)...)
	require.NoError(t, err)
	_, err = db.ZAdd("b", zpairs("x", 3.0, "z", 2.0)...)
	require.NoError(t, err)

	tests := []struct {
		aggregate string
		want      []zset.Pair
	}{
		{"", zpairs("z", 2.0, "x", 4.0, "y", 5.0)},
		{"sum", zpairs("z", 2.0, "x", 4.0, "y", 5.0)},
		{"MIN", zpairs("x", 1.0, "z", 2.0, "y", 5.0)},
		{"max", zpairs("z", 2.0, "x", 3.0, "y", 5.0)},
	}

	for _, tt := range tests {
		t.Run("agg="+tt.aggregate, func(t *testing.T) {
			n, err := db.ZUnionStore("dst", []string{"a", "b"}, tt.aggregate)
			require.NoError(t, err)
			assert.Equal(t, 3, n)

			got, err := db.ZRange("dst", 0, -1, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = db.ZUnionStore("dst", []string{"a", "b"}, "median")
	assert.True(t, errors.Is(err, ErrUnsupportedAggregate))
}

func TestZInterStore(t *testing.T) {
	db, _ := newTestDB(t)

	_, err := db.ZAdd("a", zpairs("x", 1.0, "y", 5.0)...)
	require.NoError(t, err)
	_, err = db.ZAdd("b", zpairs("x", 3.0, "z", 2.0)...)
	require.NoError(t, err)

	n, err := db.ZInterStore("dst", []string{"a", "b"}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := db.ZRange("dst", 0, -1, false)
	require.NoError(t, err)
	assert.Equal(t, zpairs("x", 4.0), got)
}

func TestZStoreOverwritesDestination(t *testing.T) {
	db, _ := newTestDB(t)

	_, err := db.ZAdd("dst", zpairs("stale", 9.0)...)
	require.NoError(t, err)
	_, err = db.ZAdd("a", zpairs("x", 1.0)...)
	require.NoError(t, err)

	n, err := db.ZUnionStore("dst", []string{"a"}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, ok, err := db.ZScore("dst", "stale")
	require.NoError(t, err)
	assert.False(t, ok)

	// An empty result leaves the destination absent rather than empty.
	n, err = db.ZInterStore("dst", []string{"a", "missing"}, "")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.False(t, db.Exists("dst"))
}
