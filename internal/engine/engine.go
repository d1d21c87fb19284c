package engine

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/eternalApril/mirage/internal/storage"
)

// ErrUnknownCommand is returned by Call for names absent from the registry.
var ErrUnknownCommand = errors.New("unknown command")

// Options configures the dispatcher.
type Options struct {
	// Legacy selects the legacy argument convention: ZADD pairs arrive as
	// (member, score) and SETEX as (key, value, seconds). The strict
	// convention (the default) matches the wire ordering.
	Legacy bool
	Logger *zap.Logger
}

// Engine is the dispatch-by-name entry point used by script collaborators
// and other generic callers. Each command is an explicit registry entry
// carrying an optional argument normalizer, the handler, and an optional
// response normalizer; the registry is resolved at construction and fails
// closed for unknown names.
type Engine struct {
	db       *storage.DB
	commands map[string]commandEntry
	legacy   bool
	logger   *zap.Logger
}

type handlerFunc func(e *Engine, args []string) (any, error)

type commandEntry struct {
	// arity counts the command name itself; negative means "at least".
	arity     int
	normalize func(e *Engine, args []string) ([]string, error)
	handler   handlerFunc
	respond   func(any) any
}

// New builds an engine over db and registers every command.
func New(db *storage.DB, opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	e := &Engine{
		db:       db,
		commands: make(map[string]commandEntry),
		legacy:   opts.Legacy,
		logger:   opts.Logger,
	}
	e.registerCommands()
	return e
}

// DB exposes the underlying store for callers that mix generic dispatch with
// the typed API.
func (e *Engine) DB() *storage.DB {
	return e.db
}

func (e *Engine) register(name string, entry commandEntry) {
	e.commands[strings.ToLower(name)] = entry
}

// Call executes the named command with the given flat argument list,
// routing through the argument normalizer before the handler and through
// the response normalizer after it.
func (e *Engine) Call(name string, args ...string) (any, error) {
	name = normalizeName(name)

	cmd, ok := e.commands[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownCommand, "%q", name)
	}

	if !arityMatches(cmd.arity, len(args)+1) {
		return nil, errors.Wrapf(storage.ErrInvalidArgument,
			"wrong number of arguments for %q command", name)
	}

	if e.logger.Core().Enabled(zap.DebugLevel) {
		e.logger.Debug("dispatching command",
			zap.String("cmd", name),
			zap.Int("args_count", len(args)),
		)
	}

	if cmd.normalize != nil {
		var err error
		args, err = cmd.normalize(e, args)
		if err != nil {
			return nil, err
		}
	}

	result, err := cmd.handler(e, args)
	if err != nil {
		return nil, err
	}
	if cmd.respond != nil {
		result = cmd.respond(result)
	}
	return result, nil
}

// normalizeName maps a caller-supplied command name onto its registry key.
func normalizeName(name string) string {
	name = strings.ToLower(name)
	if name == "del" {
		return "delete"
	}
	return name
}

func arityMatches(arity, argc int) bool {
	if arity < 0 {
		return argc >= -arity
	}
	return argc == arity
}
