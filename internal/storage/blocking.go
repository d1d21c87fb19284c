package storage

import (
	"time"

	"github.com/pkg/errors"
)

// blockingPop retries a non-blocking pop across the candidate keys until one
// yields a value or the timeout elapses. Each pass tries the keys in order;
// between passes the driver sleeps for the configured poll interval. This is
// a spin/poll emulation of a blocking command: nothing signals the driver
// when a value arrives, and the only cancellation is the timeout itself.
func (db *DB) blockingPop(pop func(key string) (string, bool, error), keys []string, timeout time.Duration) (string, string, bool, error) {
	if timeout < 0 {
		return "", "", false, errors.Wrapf(ErrInvalidArgument, "negative timeout %s", timeout)
	}
	if timeout == 0 {
		timeout = db.blockingTimeout
	}

	start := time.Now()
	for {
		for _, key := range keys {
			value, ok, err := pop(key)
			if err != nil {
				return "", "", false, err
			}
			if ok {
				return key, value, true, nil
			}
		}

		if time.Since(start) >= timeout {
			return "", "", false, nil
		}
		time.Sleep(db.pollInterval)
	}
}

// BLPop pops from the head of the first non-empty list among keys, polling
// until the timeout. A zero timeout means the configured default.
func (db *DB) BLPop(keys []string, timeout time.Duration) (string, string, bool, error) {
	return db.blockingPop(db.LPop, keys, timeout)
}

// BRPop pops from the tail of the first non-empty list among keys.
func (db *DB) BRPop(keys []string, timeout time.Duration) (string, string, bool, error) {
	return db.blockingPop(db.RPop, keys, timeout)
}

// BRPopLPush is BRPop on source followed by an LPush of the popped value
// onto destination.
func (db *DB) BRPopLPush(source, destination string, timeout time.Duration) (string, bool, error) {
	_, value, ok, err := db.BRPop([]string{source}, timeout)
	if err != nil || !ok {
		return "", false, err
	}
	if _, err := db.LPush(destination, value); err != nil {
		return "", false, err
	}
	return value, true, nil
}
