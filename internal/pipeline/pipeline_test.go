package pipeline

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eternalApril/mirage/internal/clock"
	"github.com/eternalApril/mirage/internal/engine"
	"github.com/eternalApril/mirage/internal/storage"
)

func newPipeline(t *testing.T) *Pipeline {
	t.Helper()
	c := clock.NewManual(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	db := storage.New(storage.Options{Clock: c})
	return New(engine.New(db, engine.Options{}))
}

func TestExecReturnsResultsInOrder(t *testing.T) {
	p := newPipeline(t)

	results := p.
		Call("set", "k", "v").
		Call("get", "k").
		Call("incr", "counter").
		Exec()

	require.Len(t, results, 3)
	assert.Equal(t, "OK", results[0].Value)
	assert.Equal(t, "v", results[1].Value)
	assert.Equal(t, int64(1), results[2].Value)
	for _, r := range results {
		assert.NoError(t, r.Err)
	}
}

func TestCommandsExecuteImmediately(t *testing.T) {
	p := newPipeline(t)

	// No buffering: the write lands before Exec is ever called.
	p.Call("set", "k", "v")

	got, err := p.engine.Call("get", "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestErrorsAreRecordedPerCommand(t *testing.T) {
	p := newPipeline(t)

	results := p.
		Call("set", "k", "v").
		Call("lpush", "k", "a").
		Call("get", "k").
		Exec()

	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.True(t, errors.Is(results[1].Err, storage.ErrWrongType))
	assert.NoError(t, results[2].Err)
	assert.Equal(t, "v", results[2].Value)
}

func TestExecResets(t *testing.T) {
	p := newPipeline(t)

	p.Call("set", "a", "1")
	assert.Len(t, p.Exec(), 1)
	assert.Empty(t, p.Exec())
}

func TestDiscardClearsResultsNotEffects(t *testing.T) {
	p := newPipeline(t)

	p.Call("set", "k", "v")
	p.Discard()
	assert.Empty(t, p.Exec())

	// The command already ran; Discard only drops the bookkeeping.
	results := p.Call("get", "k").Exec()
	require.Len(t, results, 1)
	assert.Equal(t, "v", results[0].Value)
}

func TestWatchMultiAreNoops(t *testing.T) {
	p := newPipeline(t)

	p.Watch("k")
	p.Multi()
	p.Unwatch()

	results := p.Call("set", "k", "v").Exec()
	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
}
