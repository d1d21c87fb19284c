package engine

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/eternalApril/mirage/internal/storage"
	"github.com/eternalApril/mirage/internal/zset"
)

// registerCommands fills the registry. Arity counts the command name itself,
// the way the metadata table does; negative means "at least".
func (e *Engine) registerCommands() {
	// connection
	e.register("echo", commandEntry{arity: 2, handler: echo})
	e.register("ping", commandEntry{arity: -1, handler: ping})

	// strings
	e.register("get", commandEntry{arity: 2, handler: get})
	e.register("set", commandEntry{arity: -3, handler: set})
	e.register("setnx", commandEntry{arity: 3, handler: setNX})
	e.register("setex", commandEntry{arity: 4, normalize: normalizeSetEX, handler: setEX})
	e.register("psetex", commandEntry{arity: 4, handler: pSetEX})
	e.register("getset", commandEntry{arity: 3, handler: getSet})
	e.register("mget", commandEntry{arity: -2, handler: mGet})
	e.register("mset", commandEntry{arity: -3, handler: mSet})
	e.register("msetnx", commandEntry{arity: -3, handler: mSetNX})
	e.register("incr", commandEntry{arity: 2, handler: incrBy(1, false)})
	e.register("incrby", commandEntry{arity: 3, handler: incrBy(1, true)})
	e.register("decr", commandEntry{arity: 2, handler: incrBy(-1, false)})
	e.register("decrby", commandEntry{arity: 3, handler: incrBy(-1, true)})

	// keyspace
	e.register("delete", commandEntry{arity: -2, handler: del})
	e.register("exists", commandEntry{arity: 2, handler: exists})
	e.register("type", commandEntry{arity: 2, handler: typeOf})
	e.register("keys", commandEntry{arity: -1, handler: keys})
	e.register("expire", commandEntry{arity: 3, handler: expire(time.Second)})
	e.register("pexpire", commandEntry{arity: 3, handler: expire(time.Millisecond)})
	e.register("expireat", commandEntry{arity: 3, handler: expireAt})
	e.register("ttl", commandEntry{arity: 2, handler: ttl})
	e.register("pttl", commandEntry{arity: 2, handler: pttl})
	e.register("persist", commandEntry{arity: 2, handler: persist})
	e.register("flushdb", commandEntry{arity: 1, handler: flushDB})
	e.register("scan", commandEntry{arity: -2, handler: scanKeys})

	// hashes
	e.register("hget", commandEntry{arity: 3, handler: hGet})
	e.register("hset", commandEntry{arity: 4, handler: hSet})
	e.register("hsetnx", commandEntry{arity: 4, handler: hSetNX})
	e.register("hdel", commandEntry{arity: -3, handler: hDel})
	e.register("hgetall", commandEntry{arity: 2, handler: hGetAll})
	e.register("hexists", commandEntry{arity: 3, handler: hExists})
	e.register("hlen", commandEntry{arity: 2, handler: hLen})
	e.register("hkeys", commandEntry{arity: 2, handler: hKeys})
	e.register("hvals", commandEntry{arity: 2, handler: hVals})
	e.register("hmget", commandEntry{arity: -3, handler: hMGet})
	e.register("hmset", commandEntry{arity: -4, handler: hMSet})
	e.register("hincrby", commandEntry{arity: 4, handler: hIncrBy})
	e.register("hincrbyfloat", commandEntry{arity: 4, handler: hIncrByFloat})
	e.register("hscan", commandEntry{arity: -3, handler: hScan})

	// lists
	e.register("lpush", commandEntry{arity: -3, handler: push(false)})
	e.register("rpush", commandEntry{arity: -3, handler: push(true)})
	e.register("lpop", commandEntry{arity: 2, handler: pop(false)})
	e.register("rpop", commandEntry{arity: 2, handler: pop(true)})
	e.register("llen", commandEntry{arity: 2, handler: lLen})
	e.register("lrange", commandEntry{arity: 4, handler: lRange})
	e.register("lindex", commandEntry{arity: 3, handler: lIndex})
	e.register("lrem", commandEntry{arity: 4, handler: lRem})
	e.register("ltrim", commandEntry{arity: 4, handler: lTrim})
	e.register("lset", commandEntry{arity: 4, handler: lSet})
	e.register("rpoplpush", commandEntry{arity: 3, handler: rPopLPush})
	e.register("blpop", commandEntry{arity: -3, handler: blockingPop(false)})
	e.register("brpop", commandEntry{arity: -3, handler: blockingPop(true)})
	e.register("brpoplpush", commandEntry{arity: 4, handler: bRPopLPush})
	e.register("sort", commandEntry{arity: -2, handler: sortCmd})

	// sets
	e.register("sadd", commandEntry{arity: -3, handler: sAdd})
	e.register("srem", commandEntry{arity: -3, handler: sRem})
	e.register("scard", commandEntry{arity: 2, handler: sCard})
	e.register("sismember", commandEntry{arity: 3, handler: sIsMember})
	e.register("smembers", commandEntry{arity: 2, handler: sMembers})
	e.register("spop", commandEntry{arity: 2, handler: sPop})
	e.register("srandmember", commandEntry{arity: -2, handler: sRandMember})
	e.register("smove", commandEntry{arity: 4, handler: sMove})
	e.register("sinter", commandEntry{arity: -2, handler: setAlgebra(e.db.SInter)})
	e.register("sunion", commandEntry{arity: -2, handler: setAlgebra(e.db.SUnion)})
	e.register("sdiff", commandEntry{arity: -2, handler: setAlgebra(e.db.SDiff)})
	e.register("sinterstore", commandEntry{arity: -3, handler: setAlgebraStore(e.db.SInterStore)})
	e.register("sunionstore", commandEntry{arity: -3, handler: setAlgebraStore(e.db.SUnionStore)})
	e.register("sdiffstore", commandEntry{arity: -3, handler: setAlgebraStore(e.db.SDiffStore)})
	e.register("sscan", commandEntry{arity: -3, handler: sScan})

	// sorted sets
	e.register("zadd", commandEntry{arity: -4, normalize: normalizeZAdd, handler: zAdd})
	e.register("zcard", commandEntry{arity: 2, handler: zCard})
	e.register("zscore", commandEntry{arity: 3, handler: zScore})
	e.register("zrank", commandEntry{arity: 3, handler: zRank})
	e.register("zrevrank", commandEntry{arity: 3, handler: zRevRank})
	e.register("zrem", commandEntry{arity: -3, handler: zRem})
	e.register("zincrby", commandEntry{arity: 4, handler: zIncrBy})
	e.register("zcount", commandEntry{arity: 4, handler: zCount})
	e.register("zrange", commandEntry{arity: -4, handler: zRange(false), respond: flattenPairs})
	e.register("zrevrange", commandEntry{arity: -4, handler: zRange(true), respond: flattenPairs})
	e.register("zrangebyscore", commandEntry{arity: -4, normalize: normalizeScoreRange,
		handler: zRangeByScore(false), respond: flattenPairs})
	e.register("zrevrangebyscore", commandEntry{arity: -4, normalize: normalizeScoreRange,
		handler: zRangeByScore(true), respond: flattenPairs})
	e.register("zremrangebyrank", commandEntry{arity: 4, handler: zRemRangeByRank})
	e.register("zremrangebyscore", commandEntry{arity: 4, handler: zRemRangeByScore})
	e.register("zunionstore", commandEntry{arity: -4, handler: zStore(true)})
	e.register("zinterstore", commandEntry{arity: -4, handler: zStore(false)})
	e.register("zscan", commandEntry{arity: -3, handler: zScan})

	// pubsub
	e.register("publish", commandEntry{arity: 3, handler: publish})

	e.registerIntrospection()
}

func parseInt(s, what string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(storage.ErrInvalidArgument, "%s is not an integer: %q", what, s)
	}
	return n, nil
}

func parseFloat(s, what string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(storage.ErrInvalidArgument, "%s is not a valid float: %q", what, s)
	}
	return f, nil
}

func echo(_ *Engine, args []string) (any, error) {
	return args[0], nil
}

func ping(_ *Engine, args []string) (any, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	return "PONG", nil
}

func get(e *Engine, args []string) (any, error) {
	value, ok, err := e.db.Get(args[0])
	if err != nil || !ok {
		return nil, err
	}
	return value, nil
}

func set(e *Engine, args []string) (any, error) {
	opts := storage.SetOptions{}
	for i := 2; i < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "nx":
			opts.NX = true
		case "xx":
			opts.XX = true
		case "ex", "px":
			if i+1 >= len(args) {
				return nil, errors.Wrap(storage.ErrInvalidArgument, "expire option requires a value")
			}
			n, err := parseInt(args[i+1], "expire")
			if err != nil {
				return nil, err
			}
			if strings.ToLower(args[i]) == "ex" {
				opts.EX = time.Duration(n) * time.Second
			} else {
				opts.PX = time.Duration(n) * time.Millisecond
			}
			i++
		default:
			return nil, errors.Wrapf(storage.ErrInvalidArgument, "unknown SET option %q", args[i])
		}
	}

	ok, err := e.db.Set(args[0], args[1], opts)
	if err != nil || !ok {
		return nil, err
	}
	return "OK", nil
}

func setNX(e *Engine, args []string) (any, error) {
	return e.db.SetNX(args[0], args[1]), nil
}

func setEX(e *Engine, args []string) (any, error) {
	secs, err := parseInt(args[1], "seconds")
	if err != nil {
		return nil, err
	}
	if err := e.db.SetEX(args[0], time.Duration(secs)*time.Second, args[2]); err != nil {
		return nil, err
	}
	return "OK", nil
}

func pSetEX(e *Engine, args []string) (any, error) {
	ms, err := parseInt(args[1], "milliseconds")
	if err != nil {
		return nil, err
	}
	if err := e.db.PSetEX(args[0], time.Duration(ms)*time.Millisecond, args[2]); err != nil {
		return nil, err
	}
	return "OK", nil
}

func getSet(e *Engine, args []string) (any, error) {
	old, existed, err := e.db.GetSet(args[0], args[1])
	if err != nil || !existed {
		return nil, err
	}
	return old, nil
}

func mGet(e *Engine, args []string) (any, error) {
	values, err := e.db.MGet(args...)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(values))
	for i, v := range values {
		if v.Valid {
			out[i] = v.Value
		}
	}
	return out, nil
}

func pairsFromArgs(args []string, what string) (map[string]string, error) {
	if len(args)%2 != 0 {
		return nil, errors.Wrapf(storage.ErrInvalidArgument, "%s requires key/value pairs", what)
	}
	pairs := make(map[string]string, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		pairs[args[i]] = args[i+1]
	}
	return pairs, nil
}

func mSet(e *Engine, args []string) (any, error) {
	pairs, err := pairsFromArgs(args, "MSET")
	if err != nil {
		return nil, err
	}
	e.db.MSet(pairs)
	return "OK", nil
}

func mSetNX(e *Engine, args []string) (any, error) {
	pairs, err := pairsFromArgs(args, "MSETNX")
	if err != nil {
		return nil, err
	}
	return e.db.MSetNX(pairs), nil
}

func incrBy(sign int64, explicit bool) handlerFunc {
	return func(e *Engine, args []string) (any, error) {
		delta := int64(1)
		if explicit {
			n, err := parseInt(args[1], "increment")
			if err != nil {
				return nil, err
			}
			delta = int64(n)
		}
		return e.db.IncrBy(args[0], sign*delta)
	}
}

func del(e *Engine, args []string) (any, error) {
	return e.db.Delete(args...), nil
}

func exists(e *Engine, args []string) (any, error) {
	return e.db.Exists(args[0]), nil
}

func typeOf(e *Engine, args []string) (any, error) {
	return e.db.Type(args[0]), nil
}

func keys(e *Engine, args []string) (any, error) {
	pattern := "*"
	if len(args) == 1 {
		pattern = args[0]
	}
	return e.db.Keys(pattern), nil
}

func expire(unit time.Duration) handlerFunc {
	return func(e *Engine, args []string) (any, error) {
		n, err := parseInt(args[1], "expire")
		if err != nil {
			return nil, err
		}
		return e.db.Expire(args[0], time.Duration(n)*unit), nil
	}
}

func expireAt(e *Engine, args []string) (any, error) {
	when, err := parseInt(args[1], "timestamp")
	if err != nil {
		return nil, err
	}
	return e.db.ExpireAt(args[0], time.Unix(int64(when), 0)), nil
}

// ttl mirrors the emulated client: -2 for a missing key, nil for a key
// without a timeout, else the clamped remaining seconds.
func ttl(e *Engine, args []string) (any, error) {
	return ttlResult(e.db.TTL(args[0]))
}

func pttl(e *Engine, args []string) (any, error) {
	return ttlResult(e.db.PTTL(args[0]))
}

func ttlResult(count int64, status storage.TTLStatus) (any, error) {
	switch status {
	case storage.StatusNotFound:
		return int64(-2), nil
	case storage.StatusNoTimeout:
		return nil, nil
	default:
		return count, nil
	}
}

func persist(e *Engine, args []string) (any, error) {
	if e.db.Persist(args[0]) {
		return 1, nil
	}
	return 0, nil
}

func flushDB(e *Engine, _ []string) (any, error) {
	e.db.FlushDB()
	return "OK", nil
}

// scanArgs parses the optional MATCH/COUNT keyword tail of scan commands.
func scanArgs(args []string) (match string, count int, err error) {
	for i := 0; i < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "match":
			if i+1 >= len(args) {
				return "", 0, errors.Wrap(storage.ErrInvalidArgument, "MATCH requires a pattern")
			}
			match = args[i+1]
			i++
		case "count":
			if i+1 >= len(args) {
				return "", 0, errors.Wrap(storage.ErrInvalidArgument, "COUNT requires a value")
			}
			count, err = parseInt(args[i+1], "count")
			if err != nil {
				return "", 0, err
			}
			i++
		default:
			return "", 0, errors.Wrapf(storage.ErrInvalidArgument, "unknown scan option %q", args[i])
		}
	}
	return match, count, nil
}

func scanKeys(e *Engine, args []string) (any, error) {
	match, count, err := scanArgs(args[1:])
	if err != nil {
		return nil, err
	}
	cursor, page, err := e.db.Scan(args[0], match, count)
	if err != nil {
		return nil, err
	}
	return []any{cursor, page}, nil
}

func sScan(e *Engine, args []string) (any, error) {
	match, count, err := scanArgs(args[2:])
	if err != nil {
		return nil, err
	}
	cursor, page, err := e.db.SScan(args[0], args[1], match, count)
	if err != nil {
		return nil, err
	}
	return []any{cursor, page}, nil
}

func hScan(e *Engine, args []string) (any, error) {
	match, count, err := scanArgs(args[2:])
	if err != nil {
		return nil, err
	}
	cursor, page, err := e.db.HScan(args[0], args[1], match, count)
	if err != nil {
		return nil, err
	}
	entries := make(map[string]string, len(page))
	for _, fv := range page {
		entries[fv.Field] = fv.Value
	}
	return []any{cursor, entries}, nil
}

func zScan(e *Engine, args []string) (any, error) {
	match, count, err := scanArgs(args[2:])
	if err != nil {
		return nil, err
	}
	cursor, page, err := e.db.ZScan(args[0], args[1], match, count)
	if err != nil {
		return nil, err
	}
	return []any{cursor, flattenPairs(page)}, nil
}

func hGet(e *Engine, args []string) (any, error) {
	value, ok, err := e.db.HGet(args[0], args[1])
	if err != nil || !ok {
		return nil, err
	}
	return value, nil
}

func hSet(e *Engine, args []string) (any, error) {
	return e.db.HSet(args[0], args[1], args[2])
}

func hSetNX(e *Engine, args []string) (any, error) {
	return e.db.HSetNX(args[0], args[1], args[2])
}

func hDel(e *Engine, args []string) (any, error) {
	return e.db.HDel(args[0], args[1:]...)
}

func hGetAll(e *Engine, args []string) (any, error) {
	return e.db.HGetAll(args[0])
}

func hExists(e *Engine, args []string) (any, error) {
	return e.db.HExists(args[0], args[1])
}

func hLen(e *Engine, args []string) (any, error) {
	return e.db.HLen(args[0])
}

func hKeys(e *Engine, args []string) (any, error) {
	return e.db.HKeys(args[0])
}

func hVals(e *Engine, args []string) (any, error) {
	return e.db.HVals(args[0])
}

func hMGet(e *Engine, args []string) (any, error) {
	values, err := e.db.HMGet(args[0], args[1:]...)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(values))
	for i, v := range values {
		if v.Valid {
			out[i] = v.Value
		}
	}
	return out, nil
}

func hIncrBy(e *Engine, args []string) (any, error) {
	delta, err := parseInt(args[2], "increment")
	if err != nil {
		return nil, err
	}
	return e.db.HIncrBy(args[0], args[1], int64(delta))
}

func hIncrByFloat(e *Engine, args []string) (any, error) {
	delta, err := parseFloat(args[2], "increment")
	if err != nil {
		return nil, err
	}
	return e.db.HIncrByFloat(args[0], args[1], delta)
}

func hMSet(e *Engine, args []string) (any, error) {
	pairs, err := pairsFromArgs(args[1:], "HMSET")
	if err != nil {
		return nil, err
	}
	if err := e.db.HMSet(args[0], pairs); err != nil {
		return nil, err
	}
	return "OK", nil
}

func push(tail bool) handlerFunc {
	return func(e *Engine, args []string) (any, error) {
		if tail {
			return e.db.RPush(args[0], args[1:]...)
		}
		return e.db.LPush(args[0], args[1:]...)
	}
}

func pop(tail bool) handlerFunc {
	return func(e *Engine, args []string) (any, error) {
		var (
			value string
			ok    bool
			err   error
		)
		if tail {
			value, ok, err = e.db.RPop(args[0])
		} else {
			value, ok, err = e.db.LPop(args[0])
		}
		if err != nil || !ok {
			return nil, err
		}
		return value, nil
	}
}

func lLen(e *Engine, args []string) (any, error) {
	return e.db.LLen(args[0])
}

func lRange(e *Engine, args []string) (any, error) {
	start, err := parseInt(args[1], "start")
	if err != nil {
		return nil, err
	}
	stop, err := parseInt(args[2], "stop")
	if err != nil {
		return nil, err
	}
	return e.db.LRange(args[0], start, stop)
}

func lIndex(e *Engine, args []string) (any, error) {
	index, err := parseInt(args[1], "index")
	if err != nil {
		return nil, err
	}
	value, ok, err := e.db.LIndex(args[0], index)
	if err != nil || !ok {
		return nil, err
	}
	return value, nil
}

func lRem(e *Engine, args []string) (any, error) {
	count, err := parseInt(args[1], "count")
	if err != nil {
		return nil, err
	}
	return e.db.LRem(args[0], args[2], count)
}

func lTrim(e *Engine, args []string) (any, error) {
	start, err := parseInt(args[1], "start")
	if err != nil {
		return nil, err
	}
	stop, err := parseInt(args[2], "stop")
	if err != nil {
		return nil, err
	}
	if err := e.db.LTrim(args[0], start, stop); err != nil {
		return nil, err
	}
	return "OK", nil
}

func lSet(e *Engine, args []string) (any, error) {
	index, err := parseInt(args[1], "index")
	if err != nil {
		return nil, err
	}
	if err := e.db.LSet(args[0], index, args[2]); err != nil {
		return nil, err
	}
	return "OK", nil
}

func rPopLPush(e *Engine, args []string) (any, error) {
	value, ok, err := e.db.RPopLPush(args[0], args[1])
	if err != nil || !ok {
		return nil, err
	}
	return value, nil
}

func blockingPop(tail bool) handlerFunc {
	return func(e *Engine, args []string) (any, error) {
		secs, err := strconv.Atoi(args[len(args)-1])
		if err != nil || secs < 0 {
			return nil, errors.Wrap(storage.ErrInvalidArgument,
				"timeout is not an integer or out of range")
		}

		keys := args[:len(args)-1]
		timeout := time.Duration(secs) * time.Second

		var (
			key, value string
			ok         bool
		)
		if tail {
			key, value, ok, err = e.db.BRPop(keys, timeout)
		} else {
			key, value, ok, err = e.db.BLPop(keys, timeout)
		}
		if err != nil || !ok {
			return nil, err
		}
		return []string{key, value}, nil
	}
}

func bRPopLPush(e *Engine, args []string) (any, error) {
	secs, err := strconv.Atoi(args[2])
	if err != nil || secs < 0 {
		return nil, errors.Wrap(storage.ErrInvalidArgument,
			"timeout is not an integer or out of range")
	}

	value, ok, err := e.db.BRPopLPush(args[0], args[1], time.Duration(secs)*time.Second)
	if err != nil || !ok {
		return nil, err
	}
	return value, nil
}

// sortCmd parses the keyword tail of SORT:
// [BY pattern] [LIMIT offset count] [GET pattern ...] [ASC|DESC] [ALPHA] [STORE dest].
func sortCmd(e *Engine, args []string) (any, error) {
	opts := storage.SortOptions{}
	for i := 1; i < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "by":
			if i+1 >= len(args) {
				return nil, errors.Wrap(storage.ErrInvalidArgument, "BY requires a pattern")
			}
			opts.By = args[i+1]
			i++
		case "limit":
			if i+2 >= len(args) {
				return nil, errors.Wrap(storage.ErrInvalidArgument, "LIMIT requires offset and count")
			}
			start, err := parseInt(args[i+1], "offset")
			if err != nil {
				return nil, err
			}
			num, err := parseInt(args[i+2], "count")
			if err != nil {
				return nil, err
			}
			opts.Limit = &storage.Limit{Start: start, Num: num}
			i += 2
		case "get":
			if i+1 >= len(args) {
				return nil, errors.Wrap(storage.ErrInvalidArgument, "GET requires a pattern")
			}
			opts.Get = append(opts.Get, args[i+1])
			i++
		case "asc":
		case "desc":
			opts.Desc = true
		case "alpha":
			opts.Alpha = true
		case "store":
			if i+1 >= len(args) {
				return nil, errors.Wrap(storage.ErrInvalidArgument, "STORE requires a destination")
			}
			opts.Store = args[i+1]
			i++
		default:
			return nil, errors.Wrapf(storage.ErrInvalidArgument, "unknown SORT option %q", args[i])
		}
	}
	return e.db.Sort(args[0], opts)
}

func sAdd(e *Engine, args []string) (any, error) {
	return e.db.SAdd(args[0], args[1:]...)
}

func sRem(e *Engine, args []string) (any, error) {
	return e.db.SRem(args[0], args[1:]...)
}

func sCard(e *Engine, args []string) (any, error) {
	return e.db.SCard(args[0])
}

func sIsMember(e *Engine, args []string) (any, error) {
	return e.db.SIsMember(args[0], args[1])
}

func sMembers(e *Engine, args []string) (any, error) {
	return e.db.SMembers(args[0])
}

func sPop(e *Engine, args []string) (any, error) {
	member, ok, err := e.db.SPop(args[0])
	if err != nil || !ok {
		return nil, err
	}
	return member, nil
}

func sRandMember(e *Engine, args []string) (any, error) {
	count := 1
	if len(args) == 2 {
		n, err := parseInt(args[1], "count")
		if err != nil {
			return nil, err
		}
		count = n
	}

	members, err := e.db.SRandMember(args[0], count)
	if err != nil {
		return nil, err
	}
	if len(args) == 1 {
		if len(members) == 0 {
			return nil, nil
		}
		return members[0], nil
	}
	return members, nil
}

func sMove(e *Engine, args []string) (any, error) {
	return e.db.SMove(args[0], args[1], args[2])
}

func setAlgebra(op func(keys ...string) ([]string, error)) handlerFunc {
	return func(_ *Engine, args []string) (any, error) {
		return op(args...)
	}
}

func setAlgebraStore(op func(destination string, keys ...string) (int, error)) handlerFunc {
	return func(_ *Engine, args []string) (any, error) {
		return op(args[0], args[1:]...)
	}
}

// zAdd consumes canonical (score, member) pairs; normalizeZAdd has already
// reordered legacy input.
func zAdd(e *Engine, args []string) (any, error) {
	if (len(args)-1)%2 != 0 {
		return nil, errors.Wrap(storage.ErrInvalidArgument,
			"ZADD requires an equal number of values and scores")
	}

	pairs := make([]zset.Pair, 0, (len(args)-1)/2)
	for i := 1; i < len(args); i += 2 {
		score, err := parseFloat(args[i], "score")
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, zset.Pair{Member: args[i+1], Score: score})
	}
	return e.db.ZAdd(args[0], pairs...)
}

func zCard(e *Engine, args []string) (any, error) {
	return e.db.ZCard(args[0])
}

func zScore(e *Engine, args []string) (any, error) {
	score, ok, err := e.db.ZScore(args[0], args[1])
	if err != nil || !ok {
		return nil, err
	}
	return score, nil
}

func zRank(e *Engine, args []string) (any, error) {
	rank, ok, err := e.db.ZRank(args[0], args[1])
	if err != nil || !ok {
		return nil, err
	}
	return rank, nil
}

func zRevRank(e *Engine, args []string) (any, error) {
	rank, ok, err := e.db.ZRevRank(args[0], args[1])
	if err != nil || !ok {
		return nil, err
	}
	return rank, nil
}

func zRem(e *Engine, args []string) (any, error) {
	return e.db.ZRem(args[0], args[1:]...)
}

func zIncrBy(e *Engine, args []string) (any, error) {
	delta, err := parseFloat(args[1], "increment")
	if err != nil {
		return nil, err
	}
	return e.db.ZIncrBy(args[0], args[2], delta)
}

func zCount(e *Engine, args []string) (any, error) {
	min, err := parseFloat(args[1], "min")
	if err != nil {
		return nil, err
	}
	max, err := parseFloat(args[2], "max")
	if err != nil {
		return nil, err
	}
	return e.db.ZCount(args[0], min, max)
}

// zRange returns pairs when WITHSCORES was passed, plain members otherwise;
// the response normalizer flattens the pair form.
func zRange(desc bool) handlerFunc {
	return func(e *Engine, args []string) (any, error) {
		start, err := parseInt(args[1], "start")
		if err != nil {
			return nil, err
		}
		stop, err := parseInt(args[2], "stop")
		if err != nil {
			return nil, err
		}

		withScores := len(args) > 3 && strings.EqualFold(args[3], "withscores")

		pairs, err := e.db.ZRange(args[0], start, stop, desc)
		if err != nil {
			return nil, err
		}
		if withScores {
			return pairs, nil
		}
		return members(pairs), nil
	}
}

// zRangeByScore consumes the fixed slots produced by normalizeScoreRange.
// For the descending variant the mandatory triple arrives as (key, max, min).
func zRangeByScore(desc bool) handlerFunc {
	return func(e *Engine, args []string) (any, error) {
		first, err := parseFloat(args[1], "score bound")
		if err != nil {
			return nil, err
		}
		second, err := parseFloat(args[2], "score bound")
		if err != nil {
			return nil, err
		}

		var limit *storage.Limit
		if args[slotStart] != "" {
			start, err := parseInt(args[slotStart], "offset")
			if err != nil {
				return nil, err
			}
			num, err := parseInt(args[slotNum], "count")
			if err != nil {
				return nil, err
			}
			limit = &storage.Limit{Start: start, Num: num}
		}

		var pairs []zset.Pair
		if desc {
			pairs, err = e.db.ZRevRangeByScore(args[0], first, second, limit)
		} else {
			pairs, err = e.db.ZRangeByScore(args[0], first, second, limit)
		}
		if err != nil {
			return nil, err
		}

		if args[slotWithScores] == "1" {
			return pairs, nil
		}
		return members(pairs), nil
	}
}

func zRemRangeByRank(e *Engine, args []string) (any, error) {
	start, err := parseInt(args[1], "start")
	if err != nil {
		return nil, err
	}
	stop, err := parseInt(args[2], "stop")
	if err != nil {
		return nil, err
	}
	return e.db.ZRemRangeByRank(args[0], start, stop)
}

func zRemRangeByScore(e *Engine, args []string) (any, error) {
	min, err := parseFloat(args[1], "min")
	if err != nil {
		return nil, err
	}
	max, err := parseFloat(args[2], "max")
	if err != nil {
		return nil, err
	}
	return e.db.ZRemRangeByScore(args[0], min, max)
}

// zStore parses "dest numkeys key [key ...] [AGGREGATE name]".
func zStore(union bool) handlerFunc {
	return func(e *Engine, args []string) (any, error) {
		numKeys, err := parseInt(args[1], "numkeys")
		if err != nil {
			return nil, err
		}
		if numKeys <= 0 || len(args) < 2+numKeys {
			return nil, errors.Wrap(storage.ErrInvalidArgument, "numkeys does not match key count")
		}

		keys := args[2 : 2+numKeys]
		aggregate := ""
		for i := 2 + numKeys; i < len(args); i++ {
			if strings.EqualFold(args[i], "aggregate") && i+1 < len(args) {
				aggregate = args[i+1]
				i++
				continue
			}
			return nil, errors.Wrapf(storage.ErrInvalidArgument, "unknown store option %q", args[i])
		}

		if union {
			return e.db.ZUnionStore(args[0], keys, aggregate)
		}
		return e.db.ZInterStore(args[0], keys, aggregate)
	}
}

func publish(e *Engine, args []string) (any, error) {
	return e.db.Publish(args[0], args[1]), nil
}

func members(pairs []zset.Pair) []string {
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = p.Member
	}
	return out
}
