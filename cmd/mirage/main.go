package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/eternalApril/mirage/internal/config"
	"github.com/eternalApril/mirage/internal/engine"
	"github.com/eternalApril/mirage/internal/logger"
	"github.com/eternalApril/mirage/internal/storage"
)

// repl reads one command per line, dispatches it by name and prints the
// result. The engine is single-threaded by design, so the loop is the only
// execution context touching it.
func repl(eng *engine.Engine, log *zap.Logger) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("mirage> ")
		if !scanner.Scan() {
			return
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		name := fields[0]
		if strings.EqualFold(name, "quit") || strings.EqualFold(name, "exit") {
			return
		}

		result, err := eng.Call(name, fields[1:]...)
		if err != nil {
			fmt.Printf("(error) %v\n", err)
			continue
		}
		fmt.Println(formatValue(result))

		if log.Core().Enabled(zap.DebugLevel) {
			log.Debug("command finished", zap.String("cmd", name))
		}
	}
}

// formatValue renders a dispatch result the way an interactive client would.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "(nil)"
	case string:
		return fmt.Sprintf("%q", val)
	case bool:
		if val {
			return "(integer) 1"
		}
		return "(integer) 0"
	case int:
		return fmt.Sprintf("(integer) %d", val)
	case int64:
		return fmt.Sprintf("(integer) %d", val)
	case float64:
		return fmt.Sprintf("%g", val)
	case []string:
		if len(val) == 0 {
			return "(empty list)"
		}
		lines := make([]string, len(val))
		for i, s := range val {
			lines[i] = fmt.Sprintf("%d) %q", i+1, s)
		}
		return strings.Join(lines, "\n")
	case []any:
		lines := make([]string, len(val))
		for i, item := range val {
			lines[i] = fmt.Sprintf("%d) %s", i+1, formatValue(item))
		}
		return strings.Join(lines, "\n")
	case map[string]string:
		fields := make([]string, 0, len(val))
		for field := range val {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		lines := make([]string, 0, len(val))
		for _, field := range fields {
			lines = append(lines, fmt.Sprintf("%q => %q", field, val[field]))
		}
		return strings.Join(lines, "\n")
	default:
		return fmt.Sprintf("%v", val)
	}
}

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync() //nolint:errcheck

	log.Info("Mirage starting",
		zap.Duration("blocking_timeout", cfg.Blocking.Timeout),
		zap.Bool("legacy_dispatch", cfg.Dispatch.Legacy),
	)

	db := storage.New(storage.Options{
		Logger:          log,
		BlockingTimeout: cfg.Blocking.Timeout,
		PollInterval:    cfg.Blocking.PollInterval,
		ScanCount:       cfg.Scan.DefaultCount,
	})

	eng := engine.New(db, engine.Options{
		Legacy: cfg.Dispatch.Legacy,
		Logger: log,
	})

	repl(eng, log)

	log.Info("Mirage stopped")
}
