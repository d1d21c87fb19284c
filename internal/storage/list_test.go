package storage

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushPop(t *testing.T) {
	db, _ := newTestDB(t)

	n, err := db.RPush("l", "a", "b")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// LPUSH prepends in argument order: the last argument ends up at the head.
	n, err = db.LPush("l", "x", "y")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	items, err := db.LRange("l", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "x", "a", "b"}, items)

	value, ok, err := db.LPop("l")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "y", value)

	value, ok, err = db.RPop("l")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b", value)
}

func TestPopEmptiesDeleteKey(t *testing.T) {
	db, _ := newTestDB(t)

	_, err := db.RPush("l", "only")
	require.NoError(t, err)

	_, ok, err := db.LPop("l")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, db.Exists("l"))
	assert.Equal(t, "none", db.Type("l"))

	_, ok, err = db.LPop("l")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLRangeTranslation(t *testing.T) {
	db, _ := newTestDB(t)

	_, err := db.RPush("l", "a", "b", "c", "d", "e")
	require.NoError(t, err)

	tests := []struct {
		name        string
		start, stop int
		want        []string
	}{
		{"full", 0, -1, []string{"a", "b", "c", "d", "e"}},
		{"middle", 1, 3, []string{"b", "c", "d"}},
		{"negative tail", -2, -1, []string{"d", "e"}},
		{"stop past end", 3, 100, []string{"d", "e"}},
		{"start past end", 10, 20, nil},
		{"inverted", 3, 1, nil},
		{"deep negative start", -100, 1, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.LRange("l", tt.start, tt.stop)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLIndex(t *testing.T) {
	db, _ := newTestDB(t)

	_, err := db.RPush("l", "a", "b", "c")
	require.NoError(t, err)

	value, ok, err := db.LIndex("l", 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a", value)

	value, ok, err = db.LIndex("l", -1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "c", value)

	_, ok, err = db.LIndex("l", 5)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = db.LIndex("missing", 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLSet(t *testing.T) {
	db, _ := newTestDB(t)

	err := db.LSet("missing", 0, "v")
	assert.True(t, errors.Is(err, ErrNoSuchKey))

	_, err = db.RPush("l", "a", "b", "c")
	require.NoError(t, err)

	require.NoError(t, db.LSet("l", 1, "B"))
	require.NoError(t, db.LSet("l", -1, "C"))

	items, err := db.LRange("l", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "B", "C"}, items)

	err = db.LSet("l", 3, "x")
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
}

func TestLRem(t *testing.T) {
	db, _ := newTestDB(t)

	seed := func() {
		db.Delete("l")
		_, err := db.RPush("l", "a", "b", "a", "c", "a")
		require.NoError(t, err)
	}

	seed()
	n, err := db.LRem("l", "a", 0)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	items, _ := db.LRange("l", 0, -1)
	assert.Equal(t, []string{"b", "c"}, items)

	seed()
	n, err = db.LRem("l", "a", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	items, _ = db.LRange("l", 0, -1)
	assert.Equal(t, []string{"b", "c", "a"}, items)

	seed()
	n, err = db.LRem("l", "a", -2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	items, _ = db.LRange("l", 0, -1)
	assert.Equal(t, []string{"a", "b", "c"}, items)

	n, err = db.LRem("missing", "a", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestLRemEmptiesDeleteKey(t *testing.T) {
	db, _ := newTestDB(t)

	_, err := db.RPush("l", "a", "a")
	require.NoError(t, err)

	n, err := db.LRem("l", "a", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.False(t, db.Exists("l"))
}

func TestLTrim(t *testing.T) {
	db, _ := newTestDB(t)

	_, err := db.RPush("l", "a", "b", "c", "d")
	require.NoError(t, err)

	require.NoError(t, db.LTrim("l", 1, 2))
	items, _ := db.LRange("l", 0, -1)
	assert.Equal(t, []string{"b", "c"}, items)

	// Trimming everything away deletes the key.
	require.NoError(t, db.LTrim("l", 5, 10))
	assert.False(t, db.Exists("l"))
}

func TestRPopLPush(t *testing.T) {
	db, _ := newTestDB(t)

	_, err := db.RPush("src", "a", "b")
	require.NoError(t, err)
	_, err = db.RPush("dst", "x")
	require.NoError(t, err)

	value, ok, err := db.RPopLPush("src", "dst")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b", value)

	items, _ := db.LRange("dst", 0, -1)
	assert.Equal(t, []string{"b", "x"}, items)

	_, ok, err = db.RPopLPush("missing", "dst")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLLen(t *testing.T) {
	db, _ := newTestDB(t)

	n, err := db.LLen("missing")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = db.RPush("l", "a", "b")
	require.NoError(t, err)
	n, err = db.LLen("l")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
