package storage

import (
	"math/rand"
	"sort"
)

// SAdd adds members to the set at key, creating it when absent. Returns the
// number of members that were not already present.
func (db *DB) SAdd(key string, members ...string) (int, error) {
	ent, err := db.entity(key, TypeSet, true, "SADD")
	if err != nil {
		return 0, err
	}

	before := len(ent.Set)
	for _, member := range members {
		ent.Set[member] = struct{}{}
	}
	return len(ent.Set) - before, nil
}

// SRem removes members, returning how many were present. An emptied set
// deletes the key.
func (db *DB) SRem(key string, members ...string) (int, error) {
	ent, err := db.entity(key, TypeSet, false, "SREM")
	if err != nil || ent == nil {
		return 0, err
	}

	before := len(ent.Set)
	for _, member := range members {
		delete(ent.Set, member)
	}
	removed := before - len(ent.Set)
	if removed > 0 && ent.empty() {
		db.dropKey(key)
	}
	return removed, nil
}

// SCard returns the set cardinality; 0 when absent.
func (db *DB) SCard(key string) (int, error) {
	ent, err := db.entity(key, TypeSet, false, "SCARD")
	if err != nil || ent == nil {
		return 0, err
	}
	return len(ent.Set), nil
}

// SIsMember reports membership.
func (db *DB) SIsMember(key, member string) (bool, error) {
	ent, err := db.entity(key, TypeSet, false, "SISMEMBER")
	if err != nil || ent == nil {
		return false, err
	}
	_, ok := ent.Set[member]
	return ok, nil
}

// SMembers returns all members, sorted for deterministic output.
func (db *DB) SMembers(key string) ([]string, error) {
	ent, err := db.entity(key, TypeSet, false, "SMEMBERS")
	if err != nil || ent == nil {
		return nil, err
	}

	out := make([]string, 0, len(ent.Set))
	for member := range ent.Set {
		out = append(out, member)
	}
	sort.Strings(out)
	return out, nil
}

// SPop removes and returns an arbitrary member. Popping the last member
// deletes the key.
func (db *DB) SPop(key string) (string, bool, error) {
	ent, err := db.entity(key, TypeSet, false, "SPOP")
	if err != nil || ent == nil {
		return "", false, err
	}

	member := pickMember(ent.Set)
	delete(ent.Set, member)
	if ent.empty() {
		db.dropKey(key)
	}
	return member, true, nil
}

// SRandMember returns count arbitrary members without removing them. A
// positive count yields distinct members capped at the cardinality; a
// negative count allows repetition and always yields -count members.
func (db *DB) SRandMember(key string, count int) ([]string, error) {
	ent, err := db.entity(key, TypeSet, false, "SRANDMEMBER")
	if err != nil || ent == nil {
		return nil, err
	}

	members := make([]string, 0, len(ent.Set))
	for member := range ent.Set {
		members = append(members, member)
	}

	if count >= 0 {
		if count > len(members) {
			count = len(members)
		}
		rand.Shuffle(len(members), func(i, j int) {
			members[i], members[j] = members[j], members[i]
		})
		return members[:count], nil
	}

	out := make([]string, 0, -count)
	for i := 0; i < -count; i++ {
		out = append(out, members[rand.Intn(len(members))])
	}
	return out, nil
}

// SMove transfers a member between two sets. Returns false when the member
// is not in the source.
func (db *DB) SMove(source, destination, member string) (bool, error) {
	src, err := db.entity(source, TypeSet, false, "SMOVE")
	if err != nil {
		return false, err
	}
	if src == nil {
		return false, nil
	}
	if _, ok := src.Set[member]; !ok {
		return false, nil
	}

	dst, err := db.entity(destination, TypeSet, true, "SMOVE")
	if err != nil {
		return false, err
	}

	delete(src.Set, member)
	dst.Set[member] = struct{}{}
	if src.empty() {
		db.dropKey(source)
	}
	return true, nil
}

// SDiff returns the members of the first set absent from all the others.
func (db *DB) SDiff(keys ...string) ([]string, error) {
	return db.applyToSets("SDIFF", keys, func(left, right map[string]struct{}) {
		for member := range right {
			delete(left, member)
		}
	})
}

// SInter returns the members present in every set.
func (db *DB) SInter(keys ...string) ([]string, error) {
	return db.applyToSets("SINTER", keys, func(left, right map[string]struct{}) {
		for member := range left {
			if _, ok := right[member]; !ok {
				delete(left, member)
			}
		}
	})
}

// SUnion returns the members present in any set.
func (db *DB) SUnion(keys ...string) ([]string, error) {
	return db.applyToSets("SUNION", keys, func(left, right map[string]struct{}) {
		for member := range right {
			left[member] = struct{}{}
		}
	})
}

// SDiffStore writes the difference to destination, returning its size.
func (db *DB) SDiffStore(destination string, keys ...string) (int, error) {
	members, err := db.SDiff(keys...)
	if err != nil {
		return 0, err
	}
	return db.storeSet(destination, members), nil
}

// SInterStore writes the intersection to destination.
func (db *DB) SInterStore(destination string, keys ...string) (int, error) {
	members, err := db.SInter(keys...)
	if err != nil {
		return 0, err
	}
	return db.storeSet(destination, members), nil
}

// SUnionStore writes the union to destination.
func (db *DB) SUnionStore(destination string, keys ...string) (int, error) {
	members, err := db.SUnion(keys...)
	if err != nil {
		return 0, err
	}
	return db.storeSet(destination, members), nil
}

// storeSet unconditionally overwrites destination with the given members.
// An empty result leaves the destination absent: empty sets are never
// stored.
func (db *DB) storeSet(destination string, members []string) int {
	db.dropKey(destination)
	if len(members) == 0 {
		return 0
	}

	ent := newEntity(TypeSet)
	for _, member := range members {
		ent.Set[member] = struct{}{}
	}
	db.data[destination] = ent
	return len(ent.Set)
}

func (db *DB) applyToSets(op string, keys []string, combine func(left, right map[string]struct{})) ([]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	left := make(map[string]struct{})
	first, err := db.entity(keys[0], TypeSet, false, op)
	if err != nil {
		return nil, err
	}
	if first != nil {
		for member := range first.Set {
			left[member] = struct{}{}
		}
	}

	for _, key := range keys[1:] {
		ent, err := db.entity(key, TypeSet, false, op)
		if err != nil {
			return nil, err
		}
		right := map[string]struct{}{}
		if ent != nil {
			right = ent.Set
		}
		combine(left, right)
	}

	out := make([]string, 0, len(left))
	for member := range left {
		out = append(out, member)
	}
	sort.Strings(out)
	return out, nil
}

func pickMember(set map[string]struct{}) string {
	i := rand.Intn(len(set))
	for member := range set {
		if i == 0 {
			return member
		}
		i--
	}
	return ""
}
