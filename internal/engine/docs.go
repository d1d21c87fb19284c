package engine

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/eternalApril/mirage/internal/storage"
)

// commandDoc stores a description for a command, surfaced through the
// COMMAND command.
type commandDoc struct {
	summary string
	group   string
}

var commandDocsRegistry = map[string]commandDoc{
	"ping":    {"Ping the engine.", "connection"},
	"echo":    {"Echo the given string.", "connection"},
	"get":     {"Get the value of a key.", "string"},
	"set":     {"Set the string value of a key.", "string"},
	"setex":   {"Set the value and expiration of a key.", "string"},
	"getset":  {"Set a new value and return the old one.", "string"},
	"incr":    {"Increment the integer value of a key by one.", "string"},
	"delete":  {"Delete one or more keys.", "generic"},
	"exists":  {"Determine if a key exists.", "generic"},
	"type":    {"Determine the type stored at a key.", "generic"},
	"keys":    {"Find all keys matching a pattern.", "generic"},
	"expire":  {"Set a key's time to live in seconds.", "generic"},
	"ttl":     {"Get the time to live for a key in seconds.", "generic"},
	"persist": {"Remove the expiration from a key.", "generic"},
	"scan":    {"Incrementally iterate the key namespace.", "generic"},
	"hset":    {"Set the value of a hash field.", "hash"},
	"hgetall": {"Get all fields and values in a hash.", "hash"},
	"lpush":   {"Prepend one or more values to a list.", "list"},
	"blpop":   {"Pop from the first non-empty list, polling until timeout.", "list"},
	"sort":    {"Sort the elements of a list.", "list"},
	"sadd":    {"Add one or more members to a set.", "set"},
	"zadd":    {"Add members to a sorted set, or update their scores.", "sorted-set"},
	"zrange":  {"Return a range of sorted-set members by rank.", "sorted-set"},
	"zscan":   {"Incrementally iterate members and scores of a sorted set.", "sorted-set"},
	"publish": {"Append a message to a channel's log.", "pubsub"},
}

// registerIntrospection wires the COMMAND command: with no arguments it
// lists every registered command name, with "docs <name>" it returns the
// recorded summary.
func (e *Engine) registerIntrospection() {
	e.register("command", commandEntry{arity: -1, handler: commandInfo})
}

func commandInfo(e *Engine, args []string) (any, error) {
	if len(args) == 0 {
		names := make([]string, 0, len(e.commands))
		for name := range e.commands {
			names = append(names, name)
		}
		sort.Strings(names)
		return names, nil
	}

	if strings.EqualFold(args[0], "docs") && len(args) == 2 {
		doc, ok := commandDocsRegistry[normalizeName(args[1])]
		if !ok {
			return nil, nil
		}
		return doc.summary, nil
	}
	return nil, errors.Wrapf(storage.ErrInvalidArgument, "unknown COMMAND subcommand %q", args[0])
}
