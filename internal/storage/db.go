package storage

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/eternalApril/mirage/internal/clock"
)

// Defaults applied by New when the corresponding option is zero.
const (
	DefaultBlockingTimeout = 1000 * time.Second
	DefaultPollInterval    = 10 * time.Millisecond
	DefaultScanCount       = 10
)

// Options configures a DB instance.
type Options struct {
	Clock           clock.Clock   // time source; system clock when nil
	Logger          *zap.Logger   // no-op logger when nil
	BlockingTimeout time.Duration // default for blocking pops with timeout 0
	PollInterval    time.Duration // sleep between blocking pop passes
	ScanCount       int           // default page size for scan commands
}

// DB is a single in-memory key namespace with the observable command
// semantics of a key-value store: typed values, manual TTL bookkeeping, a
// sorted-set index, cursor pagination and blocking pops.
//
// Every operation runs to completion synchronously; the structures carry no
// internal locking. Callers that share a DB across goroutines must serialize
// access themselves.
type DB struct {
	data     map[string]*Entity
	timeouts map[string]time.Time
	channels map[string][]string

	clock  clock.Clock
	logger *zap.Logger

	blockingTimeout time.Duration
	pollInterval    time.Duration
	scanCount       int
}

// New creates an empty DB. Zero-valued options fall back to defaults.
func New(opts Options) *DB {
	if opts.Clock == nil {
		opts.Clock = clock.NewSystem()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.BlockingTimeout <= 0 {
		opts.BlockingTimeout = DefaultBlockingTimeout
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.ScanCount <= 0 {
		opts.ScanCount = DefaultScanCount
	}

	return &DB{
		data:            make(map[string]*Entity),
		timeouts:        make(map[string]time.Time),
		channels:        make(map[string][]string),
		clock:           opts.Clock,
		logger:          opts.Logger,
		blockingTimeout: opts.BlockingTimeout,
		pollInterval:    opts.PollInterval,
		scanCount:       opts.ScanCount,
	}
}

// entity returns the entity stored under key if it is absent or already of
// the requested type. When absent and create is set, an empty entity of that
// type is stored and returned; when absent otherwise, nil is returned. A key
// of a different type fails with ErrWrongType. Every collection command is
// this primitive followed by a type-specific mutation.
func (db *DB) entity(key string, typ DataType, create bool, op string) (*Entity, error) {
	ent, ok := db.data[key]
	if !ok {
		if !create {
			return nil, nil
		}
		ent = newEntity(typ)
		db.data[key] = ent
		return ent, nil
	}

	if ent.Type != typ {
		return nil, errors.Wrapf(ErrWrongType, "%s requires a %s", op, typ)
	}
	return ent, nil
}

// dropKey removes the key's value and its expiry entry together. Callers use
// it both for explicit deletes and for the implicit delete when a collection
// loses its last element.
func (db *DB) dropKey(key string) {
	delete(db.data, key)
	delete(db.timeouts, key)
}

// Type returns the type name stored under key, or "none" if absent.
func (db *DB) Type(key string) string {
	ent, ok := db.data[key]
	if !ok {
		return TypeNone.String()
	}
	return ent.Type.String()
}

// Exists reports whether the key is present.
func (db *DB) Exists(key string) bool {
	_, ok := db.data[key]
	return ok
}

// Delete removes the given keys, returning how many existed. Value and
// expiry entry go together; no partial state is observable.
func (db *DB) Delete(keys ...string) int {
	count := 0
	for _, key := range keys {
		if _, ok := db.data[key]; ok {
			count++
		}
		db.dropKey(key)
	}
	return count
}

// Keys returns all key names matching the glob-style pattern, sorted for
// deterministic output.
func (db *DB) Keys(pattern string) []string {
	re := globRegexp(pattern)

	result := make([]string, 0, len(db.data))
	for key := range db.data {
		if re.MatchString(key) {
			result = append(result, key)
		}
	}
	sort.Strings(result)
	return result
}

// FlushDB clears the key namespace, the expiry registry and the pub/sub log.
func (db *DB) FlushDB() {
	db.data = make(map[string]*Entity)
	db.timeouts = make(map[string]time.Time)
	db.channels = make(map[string][]string)
	db.logger.Debug("flushed database")
}

// globRegexp compiles a glob pattern where '*' matches any substring. All
// other characters match literally.
func globRegexp(pattern string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(pattern)
	return regexp.MustCompile("^" + strings.ReplaceAll(quoted, `\*`, ".*") + "$")
}
