package script

import (
	"crypto/sha1"
	"encoding/hex"

	"github.com/pkg/errors"

	"github.com/eternalApril/mirage/internal/storage"
)

// Caller is the entry point handed to script handlers: it invokes named
// commands through the dispatcher, including its argument and response
// normalization.
type Caller interface {
	Call(name string, args ...string) (any, error)
}

// Handler is the executable body bound to a script's digest. Scripts are
// opaque to the engine; a handler is a Go function standing in for whatever
// the source would do, receiving the command entry point plus the keys and
// arguments split the way eval splits them.
type Handler func(c Caller, keys, args []string) (any, error)

// Registry holds loaded script sources keyed by their SHA-1 digest, along
// with the handlers bound to them.
type Registry struct {
	sources  map[string]string
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{
		sources:  make(map[string]string),
		handlers: make(map[string]Handler),
	}
}

// Load registers the script source and returns its hex SHA-1 digest.
func (r *Registry) Load(source string) string {
	sum := sha1.Sum([]byte(source))
	sha := hex.EncodeToString(sum[:])
	r.sources[sha] = source
	return sha
}

// Bind attaches a handler to an already-loaded digest.
func (r *Registry) Bind(sha string, h Handler) {
	r.handlers[sha] = h
}

// Exists reports, per digest, whether the script has been loaded.
func (r *Registry) Exists(shas ...string) []bool {
	out := make([]bool, len(shas))
	for i, sha := range shas {
		_, out[i] = r.sources[sha]
	}
	return out
}

// Flush forgets every loaded script and binding.
func (r *Registry) Flush() {
	r.sources = make(map[string]string)
	r.handlers = make(map[string]Handler)
}

// Kill is part of the emulated surface but has nothing to interrupt: every
// script runs to completion synchronously.
func (r *Registry) Kill() error {
	return errors.Wrap(storage.ErrUnimplemented, "SCRIPT KILL")
}

// Eval loads the source and executes it by digest.
func (r *Registry) Eval(c Caller, source string, numKeys int, keysAndArgs ...string) (any, error) {
	return r.EvalSha(c, r.Load(source), numKeys, keysAndArgs...)
}

// EvalSha executes the handler bound to the digest, splitting keysAndArgs
// into numKeys keys followed by arguments. A digest that was never loaded is
// an error; a loaded digest without a bound handler cannot be executed.
func (r *Registry) EvalSha(c Caller, sha string, numKeys int, keysAndArgs ...string) (any, error) {
	if _, ok := r.sources[sha]; !ok {
		return nil, errors.Errorf("sha %q not registered", sha)
	}
	h, ok := r.handlers[sha]
	if !ok {
		return nil, errors.Wrapf(storage.ErrUnimplemented, "no handler bound for sha %q", sha)
	}

	if numKeys < 0 {
		numKeys = 0
	}
	if numKeys > len(keysAndArgs) {
		numKeys = len(keysAndArgs)
	}
	return h(c, keysAndArgs[:numKeys], keysAndArgs[numKeys:])
}
