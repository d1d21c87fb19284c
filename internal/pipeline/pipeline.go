package pipeline

import "github.com/eternalApril/mirage/internal/engine"

// Result is the outcome of one queued command.
type Result struct {
	Value any
	Err   error
}

// Pipeline is a transaction facade over the dispatcher. The emulation has no
// command buffering: every queued command executes immediately and Exec only
// hands back the accumulated results. Watch, Unwatch and Multi exist so
// pipeline-shaped callers run unchanged; they do nothing.
type Pipeline struct {
	engine  *engine.Engine
	results []Result
}

func New(e *engine.Engine) *Pipeline {
	return &Pipeline{engine: e}
}

// Call executes the command immediately and records its result.
func (p *Pipeline) Call(name string, args ...string) *Pipeline {
	value, err := p.engine.Call(name, args...)
	p.results = append(p.results, Result{Value: value, Err: err})
	return p
}

// Watch is a no-op: there is no command buffering to guard.
func (p *Pipeline) Watch(_ ...string) {}

// Unwatch is a no-op.
func (p *Pipeline) Unwatch() {}

// Multi is a no-op.
func (p *Pipeline) Multi() {}

// Exec returns the results accumulated since the last Exec and resets the
// pipeline. The commands have already run; nothing is applied here.
func (p *Pipeline) Exec() []Result {
	out := p.results
	p.results = nil
	return out
}

// Discard drops the recorded results. The commands themselves cannot be
// undone; this only clears the bookkeeping.
func (p *Pipeline) Discard() {
	p.results = nil
}
