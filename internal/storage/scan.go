package storage

import (
	"sort"
	"strconv"

	"github.com/pkg/errors"

	"github.com/eternalApril/mirage/internal/zset"
)

// scanPage implements the cursor-pagination contract shared by all scan
// commands. The snapshot is a freshly recomputed, deterministically ordered
// view of the collection; the cursor is an integer offset into it and no
// state persists between calls. Cursor "0" both starts and ends the loop:
// the next cursor is "0" once offset+count reaches the snapshot length.
//
// The pattern filter applies after slicing (through keyFn for compound
// elements), so a page can come back shorter than count. Mutation between
// calls can skip or repeat elements. Both are accepted, documented behavior
// of the emulation.
func scanPage[T any](snapshot []T, cursor, match string, count int, keyFn func(T) string) (string, []T, error) {
	if count <= 0 {
		return "", nil, errors.Wrapf(ErrInvalidArgument, "count must be positive: %d", count)
	}
	offset, err := strconv.Atoi(cursor)
	if err != nil || offset < 0 {
		return "", nil, errors.Wrapf(ErrInvalidArgument, "malformed cursor %q", cursor)
	}

	next := "0"
	if offset+count < len(snapshot) {
		next = strconv.Itoa(offset + count)
	}

	if offset > len(snapshot) {
		offset = len(snapshot)
	}
	end := offset + count
	if end > len(snapshot) {
		end = len(snapshot)
	}
	page := snapshot[offset:end]

	if match != "" {
		re := globRegexp(match)
		filtered := make([]T, 0, len(page))
		for _, v := range page {
			if re.MatchString(keyFn(v)) {
				filtered = append(filtered, v)
			}
		}
		page = filtered
	}
	return next, page, nil
}

// pageSize falls back to the configured default when the caller passes 0.
func (db *DB) pageSize(count int) int {
	if count == 0 {
		return db.scanCount
	}
	return count
}

// Scan paginates over the sorted key names of the namespace.
func (db *DB) Scan(cursor, match string, count int) (string, []string, error) {
	keys := make([]string, 0, len(db.data))
	for key := range db.data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return scanPage(keys, cursor, match, db.pageSize(count), func(k string) string { return k })
}

// SScan paginates over the sorted members of the set at key.
func (db *DB) SScan(key, cursor, match string, count int) (string, []string, error) {
	members, err := db.SMembers(key)
	if err != nil {
		return "", nil, err
	}
	return scanPage(members, cursor, match, db.pageSize(count), func(m string) string { return m })
}

// ZScan paginates over the sorted set at key in (score, member) order; the
// pattern applies to members.
func (db *DB) ZScan(key, cursor, match string, count int) (string, []zset.Pair, error) {
	pairs, err := db.ZRange(key, 0, -1, false)
	if err != nil {
		return "", nil, err
	}
	return scanPage(pairs, cursor, match, db.pageSize(count), func(p zset.Pair) string { return p.Member })
}

// FieldValue is one hash entry in HScan output.
type FieldValue struct {
	Field string
	Value string
}

// HScan paginates over the hash at key in field order; the pattern applies
// to field names.
func (db *DB) HScan(key, cursor, match string, count int) (string, []FieldValue, error) {
	all, err := db.HGetAll(key)
	if err != nil {
		return "", nil, err
	}

	entries := make([]FieldValue, 0, len(all))
	for field, value := range all {
		entries = append(entries, FieldValue{Field: field, Value: value})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Field < entries[j].Field })

	return scanPage(entries, cursor, match, db.pageSize(count), func(fv FieldValue) string { return fv.Field })
}
