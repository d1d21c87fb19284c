package storage

import "github.com/pkg/errors"

// LPush prepends values to the list at key, creating it when absent. The
// resulting length is returned.
func (db *DB) LPush(key string, values ...string) (int, error) {
	ent, err := db.entity(key, TypeList, true, "LPUSH")
	if err != nil {
		return 0, err
	}

	prepended := make([]string, 0, len(values)+len(ent.List))
	for i := len(values) - 1; i >= 0; i-- {
		prepended = append(prepended, values[i])
	}
	ent.List = append(prepended, ent.List...)
	return len(ent.List), nil
}

// RPush appends values to the list at key, creating it when absent.
func (db *DB) RPush(key string, values ...string) (int, error) {
	ent, err := db.entity(key, TypeList, true, "RPUSH")
	if err != nil {
		return 0, err
	}
	ent.List = append(ent.List, values...)
	return len(ent.List), nil
}

// LPop removes and returns the head of the list. Popping the last element
// deletes the key.
func (db *DB) LPop(key string) (string, bool, error) {
	return db.pop(key, "LPOP", false)
}

// RPop removes and returns the tail of the list.
func (db *DB) RPop(key string) (string, bool, error) {
	return db.pop(key, "RPOP", true)
}

func (db *DB) pop(key, op string, fromTail bool) (string, bool, error) {
	ent, err := db.entity(key, TypeList, false, op)
	if err != nil {
		return "", false, err
	}
	if ent == nil || len(ent.List) == 0 {
		return "", false, nil
	}

	var value string
	if fromTail {
		value = ent.List[len(ent.List)-1]
		ent.List = ent.List[:len(ent.List)-1]
	} else {
		value = ent.List[0]
		ent.List = ent.List[1:]
	}

	if ent.empty() {
		db.dropKey(key)
	}
	return value, true, nil
}

// LLen returns the list length; 0 when the key is absent.
func (db *DB) LLen(key string) (int, error) {
	ent, err := db.entity(key, TypeList, false, "LLEN")
	if err != nil || ent == nil {
		return 0, err
	}
	return len(ent.List), nil
}

// LRange returns the inclusive index interval [start, stop] after range
// translation.
func (db *DB) LRange(key string, start, stop int) ([]string, error) {
	ent, err := db.entity(key, TypeList, false, "LRANGE")
	if err != nil {
		return nil, err
	}
	if ent == nil {
		return nil, nil
	}

	start, stop = translateRange(len(ent.List), start, stop)
	if start > stop {
		return nil, nil
	}

	out := make([]string, stop-start+1)
	copy(out, ent.List[start:stop+1])
	return out, nil
}

// LIndex returns the element at index, negative indices counting from the
// end. Out-of-bounds indices yield ok == false.
func (db *DB) LIndex(key string, index int) (string, bool, error) {
	ent, err := db.entity(key, TypeList, false, "LINDEX")
	if err != nil {
		return "", false, err
	}
	if ent == nil {
		return "", false, nil
	}

	if index < 0 {
		index += len(ent.List)
	}
	if index < 0 || index >= len(ent.List) {
		return "", false, nil
	}
	return ent.List[index], true, nil
}

// LSet overwrites the element at index. An absent key and an out-of-bounds
// index are distinct errors.
func (db *DB) LSet(key string, index int, value string) error {
	ent, err := db.entity(key, TypeList, false, "LSET")
	if err != nil {
		return err
	}
	if ent == nil {
		return errors.Wrapf(ErrNoSuchKey, "LSET %s", key)
	}

	if index < 0 {
		index += len(ent.List)
	}
	if index < 0 || index >= len(ent.List) {
		return errors.Wrapf(ErrIndexOutOfRange, "LSET %s %d", key, index)
	}
	ent.List[index] = value
	return nil
}

// LRem removes occurrences of value: all of them when count is 0, the first
// count from the head when positive, the last -count from the tail when
// negative. Returns the number removed; an emptied list deletes the key.
func (db *DB) LRem(key, value string, count int) (int, error) {
	ent, err := db.entity(key, TypeList, false, "LREM")
	if err != nil {
		return 0, err
	}
	if ent == nil {
		return 0, nil
	}

	removed := 0
	switch {
	case count >= 0:
		budget := count
		kept := ent.List[:0]
		for _, v := range ent.List {
			if v == value && (count == 0 || budget > 0) {
				removed++
				budget--
				continue
			}
			kept = append(kept, v)
		}
		ent.List = kept
	default:
		budget := -count
		kept := make([]string, 0, len(ent.List))
		for i := len(ent.List) - 1; i >= 0; i-- {
			v := ent.List[i]
			if v == value && budget > 0 {
				removed++
				budget--
				continue
			}
			kept = append(kept, v)
		}
		for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
			kept[i], kept[j] = kept[j], kept[i]
		}
		ent.List = kept
	}

	if removed > 0 && ent.empty() {
		db.dropKey(key)
	}
	return removed, nil
}

// LTrim keeps only the inclusive index interval [start, stop]. Trimming
// everything away deletes the key.
func (db *DB) LTrim(key string, start, stop int) error {
	ent, err := db.entity(key, TypeList, false, "LTRIM")
	if err != nil || ent == nil {
		return err
	}

	start, stop = translateRange(len(ent.List), start, stop)
	if start > stop {
		ent.List = nil
	} else {
		ent.List = append([]string(nil), ent.List[start:stop+1]...)
	}

	if ent.empty() {
		db.dropKey(key)
	}
	return nil
}

// RPopLPush pops the tail of source and pushes it onto the head of
// destination, returning the transferred element.
func (db *DB) RPopLPush(source, destination string) (string, bool, error) {
	value, ok, err := db.RPop(source)
	if err != nil || !ok {
		return "", false, err
	}
	if _, err := db.LPush(destination, value); err != nil {
		return "", false, err
	}
	return value, true, nil
}
