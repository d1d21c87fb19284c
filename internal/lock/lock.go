package lock

import (
	"time"

	"go.uber.org/zap"

	"github.com/eternalApril/mirage/internal/storage"
)

// Options configures a named lock.
type Options struct {
	// TTL is applied to the marker key on acquisition, so an abandoned lock
	// eventually becomes acquirable again after a sweep. Zero means no TTL.
	TTL time.Duration
	// AcquireTimeout bounds how long Acquire polls. Zero makes Acquire a
	// single non-blocking attempt.
	AcquireTimeout time.Duration
	// PollInterval is the sleep between attempts.
	PollInterval time.Duration
	Logger       *zap.Logger
}

// Lock is an advisory marker keyed by name, emulated with a conditional
// write on the key namespace. Nothing enforces it: cooperating callers must
// all go through Acquire/Release.
type Lock struct {
	db   *storage.DB
	name string
	opts Options
}

// New creates a lock over the marker key name.
func New(db *storage.DB, name string, opts Options) *Lock {
	if opts.PollInterval <= 0 {
		opts.PollInterval = storage.DefaultPollInterval
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Lock{db: db, name: name, opts: opts}
}

// Acquire attempts a conditional write of the marker key, polling until it
// succeeds or the acquire timeout elapses. Returns whether the lock was
// obtained.
func (l *Lock) Acquire() bool {
	start := time.Now()
	for {
		if l.db.SetNX(l.name, "1") {
			if l.opts.TTL > 0 {
				l.db.Expire(l.name, l.opts.TTL)
			}
			l.opts.Logger.Debug("lock acquired", zap.String("name", l.name))
			return true
		}

		if time.Since(start) >= l.opts.AcquireTimeout {
			return false
		}
		time.Sleep(l.opts.PollInterval)
	}
}

// Release drops the marker key. Releasing a lock that is not held is a
// harmless no-op.
func (l *Lock) Release() {
	l.db.Delete(l.name)
	l.opts.Logger.Debug("lock released", zap.String("name", l.name))
}
