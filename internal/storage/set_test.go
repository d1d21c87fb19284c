package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSAddSRem(t *testing.T) {
	db, _ := newTestDB(t)

	n, err := db.SAdd("s", "a", "b", "a")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = db.SAdd("s", "b", "c")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = db.SRem("s", "a", "missing")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	members, err := db.SMembers("s")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, members)
}

func TestSRemEmptiesDeleteKey(t *testing.T) {
	db, _ := newTestDB(t)

	_, err := db.SAdd("s", "only")
	require.NoError(t, err)

	n, err := db.SRem("s", "only")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, db.Exists("s"))
}

func TestSCardSIsMember(t *testing.T) {
	db, _ := newTestDB(t)

	n, err := db.SCard("missing")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = db.SAdd("s", "a", "b")
	require.NoError(t, err)

	n, err = db.SCard("s")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	ok, err := db.SIsMember("s", "a")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = db.SIsMember("s", "z")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSPop(t *testing.T) {
	db, _ := newTestDB(t)

	_, ok, err := db.SPop("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = db.SAdd("s", "a", "b")
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		member, ok, err := db.SPop("s")
		require.NoError(t, err)
		require.True(t, ok)
		seen[member] = true
	}
	assert.Equal(t, map[string]bool{"a": true, "b": true}, seen)
	assert.False(t, db.Exists("s"))
}

func TestSRandMember(t *testing.T) {
	db, _ := newTestDB(t)

	_, err := db.SAdd("s", "a", "b", "c")
	require.NoError(t, err)

	// Positive count: distinct members, capped at the cardinality.
	members, err := db.SRandMember("s", 2)
	require.NoError(t, err)
	assert.Len(t, members, 2)
	assert.NotEqual(t, members[0], members[1])

	members, err = db.SRandMember("s", 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, members)

	// Negative count: repetition allowed, always -count results.
	members, err = db.SRandMember("s", -5)
	require.NoError(t, err)
	assert.Len(t, members, 5)
	for _, m := range members {
		assert.Contains(t, []string{"a", "b", "c"}, m)
	}

	// Set stays intact.
	n, err := db.SCard("s")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestSMove(t *testing.T) {
	db, _ := newTestDB(t)

	_, err := db.SAdd("src", "a", "b")
	require.NoError(t, err)

	ok, err := db.SMove("src", "dst", "a")
	require.NoError(t, err)
	assert.True(t, ok)

	members, _ := db.SMembers("dst")
	assert.Equal(t, []string{"a"}, members)
	members, _ = db.SMembers("src")
	assert.Equal(t, []string{"b"}, members)

	ok, err = db.SMove("src", "dst", "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	// Moving the last member drops the source key.
	ok, err = db.SMove("src", "dst", "b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, db.Exists("src"))
}

func TestSetAlgebra(t *testing.T) {
	db, _ := newTestDB(t)

	_, err := db.SAdd("a", "1", "2", "3")
	require.NoError(t, err)
	_, err = db.SAdd("b", "2", "3", "4")
	require.NoError(t, err)

	diff, err := db.SDiff("a", "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, diff)

	inter, err := db.SInter("a", "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3"}, inter)

	union, err := db.SUnion("a", "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4"}, union)

	// Missing keys act as empty sets.
	inter, err = db.SInter("a", "missing")
	require.NoError(t, err)
	assert.Empty(t, inter)

	union, err = db.SUnion("missing", "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, union)
}

func TestSetAlgebraStore(t *testing.T) {
	db, _ := newTestDB(t)

	_, err := db.SAdd("a", "1", "2")
	require.NoError(t, err)
	_, err = db.SAdd("b", "2", "3")
	require.NoError(t, err)

	n, err := db.SUnionStore("dst", "a", "b")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	members, _ := db.SMembers("dst")
	assert.Equal(t, []string{"1", "2", "3"}, members)

	// An empty result overwrites the destination into absence.
	n, err = db.SInterStore("dst", "a", "missing")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.False(t, db.Exists("dst"))
}
