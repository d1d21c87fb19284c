package storage

import (
	"time"

	"go.uber.org/zap"
)

// TTLStatus qualifies the result of a TTL query.
type TTLStatus int

const (
	// StatusNotFound means the key does not exist.
	StatusNotFound TTLStatus = -2
	// StatusNoTimeout means the key exists but has no expiry entry.
	StatusNoTimeout TTLStatus = -1
	// StatusActive means the key has an expiry entry; the returned count is
	// meaningful.
	StatusActive TTLStatus = 1
)

// Expire sets a relative expiry on the key. Returns false without touching
// anything when the key is absent.
func (db *DB) Expire(key string, delta time.Duration) bool {
	return db.expireAt(key, db.clock.Now().Add(delta))
}

// PExpire is Expire with millisecond granularity at the command layer; the
// bookkeeping is identical.
func (db *DB) PExpire(key string, delta time.Duration) bool {
	return db.expireAt(key, db.clock.Now().Add(delta))
}

// ExpireAt sets an absolute expiry instant on the key.
func (db *DB) ExpireAt(key string, when time.Time) bool {
	return db.expireAt(key, when)
}

func (db *DB) expireAt(key string, when time.Time) bool {
	if _, ok := db.data[key]; !ok {
		return false
	}
	db.timeouts[key] = when
	return true
}

// TTL returns the remaining lifetime of the key in whole seconds. The count
// is clamped to a minimum of -1, so a key that is already past its instant
// but not yet swept reports -1, the same as a key with one unit left. That
// conflation matches the emulated store and callers rely on it.
func (db *DB) TTL(key string) (int64, TTLStatus) {
	return db.timeToLive(key, time.Second)
}

// PTTL is TTL in whole milliseconds, with the same -1 clamp.
func (db *DB) PTTL(key string) (int64, TTLStatus) {
	return db.timeToLive(key, time.Millisecond)
}

func (db *DB) timeToLive(key string, unit time.Duration) (int64, TTLStatus) {
	if _, ok := db.data[key]; !ok {
		return 0, StatusNotFound
	}
	when, ok := db.timeouts[key]
	if !ok {
		return 0, StatusNoTimeout
	}

	remaining := when.Sub(db.clock.Now())
	count := int64(remaining / unit)
	if remaining%unit != 0 && remaining < 0 {
		count-- // floor, not truncate: -0.5 units is -1, not 0
	}
	if count < -1 {
		count = -1
	}
	return count, StatusActive
}

// Persist removes the key's expiry entry, making it eternal. Returns true
// only if the key existed and had an entry.
func (db *DB) Persist(key string) bool {
	if _, ok := db.data[key]; !ok {
		return false
	}
	if _, ok := db.timeouts[key]; !ok {
		return false
	}
	delete(db.timeouts, key)
	return true
}

// Sweep evicts every key whose expiry instant is strictly in the past,
// removing the expiry entry and, if the key is still present, the key and
// its value. This is the only mechanism that removes expired keys: no read
// or write triggers it, so an expired-but-unswept key keeps serving its old
// value until the caller sweeps. Returns the number of keys evicted.
func (db *DB) Sweep() int {
	now := db.clock.Now()
	swept := 0

	for key, when := range db.timeouts {
		if when.Before(now) {
			delete(db.timeouts, key)
			if _, ok := db.data[key]; ok {
				delete(db.data, key)
				swept++
			}
		}
	}

	if swept > 0 && db.logger.Core().Enabled(zap.DebugLevel) {
		db.logger.Debug("sweep evicted expired keys", zap.Int("evicted", swept))
	}
	return swept
}
