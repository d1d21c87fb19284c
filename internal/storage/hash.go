package storage

import (
	"strconv"

	"github.com/pkg/errors"
)

// HSet stores field under the hash at key, creating the hash when absent.
// Returns 1 when the field is new, 0 when it was overwritten.
func (db *DB) HSet(key, field, value string) (int, error) {
	ent, err := db.entity(key, TypeHash, true, "HSET")
	if err != nil {
		return 0, err
	}
	_, existed := ent.Hash[field]
	ent.Hash[field] = value
	if existed {
		return 0, nil
	}
	return 1, nil
}

// HSetNX stores the field only if it is not already present.
func (db *DB) HSetNX(key, field, value string) (int, error) {
	ent, err := db.entity(key, TypeHash, true, "HSETNX")
	if err != nil {
		return 0, err
	}
	if _, ok := ent.Hash[field]; ok {
		return 0, nil
	}
	ent.Hash[field] = value
	return 1, nil
}

// HGet returns the value of a single field.
func (db *DB) HGet(key, field string) (string, bool, error) {
	ent, err := db.entity(key, TypeHash, false, "HGET")
	if err != nil || ent == nil {
		return "", false, err
	}
	value, ok := ent.Hash[field]
	return value, ok, nil
}

// HExists reports whether the field is present.
func (db *DB) HExists(key, field string) (bool, error) {
	ent, err := db.entity(key, TypeHash, false, "HEXISTS")
	if err != nil || ent == nil {
		return false, err
	}
	_, ok := ent.Hash[field]
	return ok, nil
}

// HDel removes fields, returning how many existed. Removing the last field
// deletes the key.
func (db *DB) HDel(key string, fields ...string) (int, error) {
	ent, err := db.entity(key, TypeHash, false, "HDEL")
	if err != nil || ent == nil {
		return 0, err
	}

	count := 0
	for _, field := range fields {
		if _, ok := ent.Hash[field]; ok {
			count++
			delete(ent.Hash, field)
		}
	}
	if ent.empty() {
		db.dropKey(key)
	}
	return count, nil
}

// HGetAll returns a copy of all field/value pairs.
func (db *DB) HGetAll(key string) (map[string]string, error) {
	ent, err := db.entity(key, TypeHash, false, "HGETALL")
	if err != nil {
		return nil, err
	}
	out := make(map[string]string)
	if ent != nil {
		for field, value := range ent.Hash {
			out[field] = value
		}
	}
	return out, nil
}

// HLen returns the number of fields; 0 when absent.
func (db *DB) HLen(key string) (int, error) {
	ent, err := db.entity(key, TypeHash, false, "HLEN")
	if err != nil || ent == nil {
		return 0, err
	}
	return len(ent.Hash), nil
}

// HKeys returns the field names.
func (db *DB) HKeys(key string) ([]string, error) {
	ent, err := db.entity(key, TypeHash, false, "HKEYS")
	if err != nil || ent == nil {
		return nil, err
	}
	out := make([]string, 0, len(ent.Hash))
	for field := range ent.Hash {
		out = append(out, field)
	}
	return out, nil
}

// HVals returns the field values.
func (db *DB) HVals(key string) ([]string, error) {
	ent, err := db.entity(key, TypeHash, false, "HVALS")
	if err != nil || ent == nil {
		return nil, err
	}
	out := make([]string, 0, len(ent.Hash))
	for _, value := range ent.Hash {
		out = append(out, value)
	}
	return out, nil
}

// HMGet returns the values for each requested field; misses yield absent
// entries in the matching positions.
func (db *DB) HMGet(key string, fields ...string) ([]MaybeString, error) {
	ent, err := db.entity(key, TypeHash, false, "HMGET")
	if err != nil {
		return nil, err
	}
	out := make([]MaybeString, len(fields))
	if ent == nil {
		return out, nil
	}
	for i, field := range fields {
		if value, ok := ent.Hash[field]; ok {
			out[i] = MaybeString{Value: value, Valid: true}
		}
	}
	return out, nil
}

// HMSet stores every pair, creating the hash when absent.
func (db *DB) HMSet(key string, pairs map[string]string) error {
	ent, err := db.entity(key, TypeHash, true, "HMSET")
	if err != nil {
		return err
	}
	for field, value := range pairs {
		ent.Hash[field] = value
	}
	return nil
}

// HIncrBy adds delta to the integer stored at field, creating it at zero.
func (db *DB) HIncrBy(key, field string, delta int64) (int64, error) {
	ent, err := db.entity(key, TypeHash, true, "HINCRBY")
	if err != nil {
		return 0, err
	}

	var prev int64
	if raw, ok := ent.Hash[field]; ok {
		prev, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, errors.Wrap(ErrInvalidArgument, "hash value is not an integer")
		}
	}
	next := prev + delta
	ent.Hash[field] = strconv.FormatInt(next, 10)
	return next, nil
}

// HIncrByFloat adds a float delta to the value stored at field.
func (db *DB) HIncrByFloat(key, field string, delta float64) (float64, error) {
	ent, err := db.entity(key, TypeHash, true, "HINCRBYFLOAT")
	if err != nil {
		return 0, err
	}

	var prev float64
	if raw, ok := ent.Hash[field]; ok {
		prev, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, errors.Wrap(ErrInvalidArgument, "hash value is not a float")
		}
	}
	next := prev + delta
	ent.Hash[field] = strconv.FormatFloat(next, 'f', -1, 64)
	return next, nil
}
