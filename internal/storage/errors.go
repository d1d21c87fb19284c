package storage

import "github.com/pkg/errors"

// Sentinel errors returned by the typed operations. Call sites wrap them
// with the operation name and offending argument; match with errors.Is.
var (
	// ErrWrongType means the operation's required shape conflicts with the
	// type already stored under the key.
	ErrWrongType = errors.New("operation against a key holding the wrong kind of value")

	// ErrInvalidArgument covers malformed ranges, non-positive page sizes,
	// malformed timeouts and odd-length score/member argument lists.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedAggregate is returned for an unknown aggregate name in
	// ZUnionStore/ZInterStore.
	ErrUnsupportedAggregate = errors.New("unsupported aggregate")

	// ErrNoSuchKey is returned by LSet when the key is absent.
	ErrNoSuchKey = errors.New("no such key")

	// ErrIndexOutOfRange is returned by LSet for an invalid index.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrUnimplemented marks operations that are deliberately not emulated.
	ErrUnimplemented = errors.New("not implemented")
)
