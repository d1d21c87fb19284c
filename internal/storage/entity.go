package storage

import "github.com/eternalApril/mirage/internal/zset"

// DataType tags the kind of value stored under a key. A key holds exactly
// one type at a time; it must be deleted (or overwritten by a plain string
// write) before it can hold another.
type DataType byte

const (
	TypeNone DataType = iota
	TypeString
	TypeList
	TypeSet
	TypeHash
	TypeZSet
)

// String returns the type name as reported by the TYPE command.
func (t DataType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeList:
		return "list"
	case TypeSet:
		return "set"
	case TypeHash:
		return "hash"
	case TypeZSet:
		return "zset"
	default:
		return "none"
	}
}

// Entity is the tagged variant stored under a key. Exactly one payload field
// is populated, selected by Type; every typed operation switches on the tag
// rather than inspecting the payload.
type Entity struct {
	Type DataType
	Str  string
	List []string
	Set  map[string]struct{}
	Hash map[string]string
	ZSet *zset.SortedSet
}

// newEntity creates an empty entity of the given type.
func newEntity(t DataType) *Entity {
	e := &Entity{Type: t}
	switch t {
	case TypeString:
	case TypeList:
		e.List = []string{}
	case TypeSet:
		e.Set = make(map[string]struct{})
	case TypeHash:
		e.Hash = make(map[string]string)
	case TypeZSet:
		e.ZSet = zset.New()
	}
	return e
}

// empty reports whether a collection entity has lost its last element.
// Empty collections are never kept in the keyspace.
func (e *Entity) empty() bool {
	switch e.Type {
	case TypeList:
		return len(e.List) == 0
	case TypeSet:
		return len(e.Set) == 0
	case TypeHash:
		return len(e.Hash) == 0
	case TypeZSet:
		return e.ZSet.Len() == 0
	default:
		return false
	}
}
