package storage

import (
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// SetOptions controls the conditional and expiry behavior of Set.
type SetOptions struct {
	EX time.Duration // relative expiry; seconds granularity at the command layer
	PX time.Duration // relative expiry in milliseconds; wins over EX when both set
	NX bool          // only set if the key does not exist
	XX bool          // only set if the key already exists
}

// Get returns the string value stored under key. A missing key yields
// ok == false; a key of another type fails with ErrWrongType. An expired but
// unswept key still returns its old value.
func (db *DB) Get(key string) (string, bool, error) {
	ent, ok := db.data[key]
	if !ok {
		return "", false, nil
	}
	if ent.Type != TypeString {
		return "", false, errors.Wrap(ErrWrongType, "GET requires a string")
	}
	return ent.Str, true, nil
}

// Set writes a plain string value. The write unconditionally replaces any
// prior type stored under the key and cancels any existing expiry entry.
// Returns true if the write was performed; NX/XX make it conditional, and
// setting both is a no-op. A non-positive explicit expiry is an error.
func (db *DB) Set(key, value string, opts SetOptions) (bool, error) {
	if opts.NX && opts.XX {
		return false, nil
	}

	_, exists := db.data[key]
	if opts.NX && exists {
		return false, nil
	}
	if opts.XX && !exists {
		return false, nil
	}

	expire := opts.EX
	if opts.PX != 0 {
		expire = opts.PX
	}
	if (opts.EX != 0 || opts.PX != 0) && expire <= 0 {
		return false, errors.Wrap(ErrInvalidArgument, "invalid expire time in SETEX")
	}

	db.data[key] = &Entity{Type: TypeString, Str: value}
	delete(db.timeouts, key)

	if expire > 0 {
		db.timeouts[key] = db.clock.Now().Add(expire)
	}
	return true, nil
}

// SetNX sets the value only if the key does not exist.
func (db *DB) SetNX(key, value string) bool {
	ok, _ := db.Set(key, value, SetOptions{NX: true})
	return ok
}

// SetEX sets the value with a relative expiry.
func (db *DB) SetEX(key string, expire time.Duration, value string) error {
	_, err := db.Set(key, value, SetOptions{EX: expire})
	return err
}

// PSetEX sets the value with a millisecond-granularity relative expiry.
func (db *DB) PSetEX(key string, expire time.Duration, value string) error {
	_, err := db.Set(key, value, SetOptions{PX: expire})
	return err
}

// GetSet writes the new value and returns the previous one, if any.
func (db *DB) GetSet(key, value string) (string, bool, error) {
	old, existed, err := db.Get(key)
	if err != nil {
		return "", false, err
	}
	if _, err := db.Set(key, value, SetOptions{}); err != nil {
		return "", false, err
	}
	return old, existed, nil
}

// MGet returns the values for each key; misses yield ok == false at the
// matching position. A key of another type fails the whole read, the same as
// a single Get.
func (db *DB) MGet(keys ...string) ([]MaybeString, error) {
	out := make([]MaybeString, len(keys))
	for i, key := range keys {
		val, ok, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		if ok {
			out[i] = MaybeString{Value: val, Valid: true}
		}
	}
	return out, nil
}

// MaybeString is a string that may be absent, for multi-key reads.
type MaybeString struct {
	Value string
	Valid bool
}

// MSet performs a plain Set for every pair.
func (db *DB) MSet(pairs map[string]string) {
	for key, value := range pairs {
		db.Set(key, value, SetOptions{}) //nolint:errcheck
	}
}

// MSetNX sets all pairs only if none of the keys already exist.
func (db *DB) MSetNX(pairs map[string]string) bool {
	for key := range pairs {
		if _, ok := db.data[key]; ok {
			return false
		}
	}
	db.MSet(pairs)
	return true
}

// IncrBy adds delta to the integer stored under key, creating it at zero
// when absent. The adjustment does not touch the key's expiry entry.
func (db *DB) IncrBy(key string, delta int64) (int64, error) {
	ent, err := db.entity(key, TypeString, false, "INCRBY")
	if err != nil {
		return 0, err
	}

	var prev int64
	if ent != nil {
		prev, err = strconv.ParseInt(ent.Str, 10, 64)
		if err != nil {
			return 0, errors.Wrap(ErrInvalidArgument, "value is not an integer")
		}
	}

	next := prev + delta
	if ent == nil {
		ent = &Entity{Type: TypeString}
		db.data[key] = ent
	}
	ent.Str = strconv.FormatInt(next, 10)
	return next, nil
}

// Incr adds one.
func (db *DB) Incr(key string) (int64, error) {
	return db.IncrBy(key, 1)
}

// DecrBy subtracts delta.
func (db *DB) DecrBy(key string, delta int64) (int64, error) {
	return db.IncrBy(key, -delta)
}

// Decr subtracts one.
func (db *DB) Decr(key string) (int64, error) {
	return db.IncrBy(key, -1)
}
