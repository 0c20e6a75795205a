package logging

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

/*
Package logging wraps charmbracelet/log behind a process-wide facade.
The facade is initialized once at startup; scoped overrides form a LIFO
stack so tests can inject a logger and restore the previous one. Logging
never sits on a critical path and never blocks ordering.
*/

/*
Config describes a logger: minimum level, structured metadata attached to
every record, and the output the records are written to.
*/
type Config struct {
	Level    log.Level
	Metadata map[string]any
	Output   io.Writer
}

type scope struct {
	logger *log.Logger
}

var (
	mu    sync.Mutex
	base  *log.Logger
	stack []*scope
)

func build(cfg Config) *log.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           cfg.Level,
		ReportTimestamp: true,
	})

	for key, value := range cfg.Metadata {
		logger = logger.With(key, value)
	}

	return logger
}

/*
Init installs the process-wide logger. Calling it again replaces the base
logger but leaves any active scopes in place.
*/
func Init(cfg Config) {
	mu.Lock()
	defer mu.Unlock()

	base = build(cfg)
}

/*
Logger returns the currently active logger: the innermost scope if any,
else the base logger, else the library default.
*/
func Logger() *log.Logger {
	mu.Lock()
	defer mu.Unlock()

	return activeLocked()
}

func activeLocked() *log.Logger {
	if len(stack) > 0 {
		return stack[len(stack)-1].logger
	}

	if base != nil {
		return base
	}

	return log.Default()
}

/*
Scope pushes a scoped logger override and returns a restore function. The
restore functions must be called in LIFO order; an out-of-order pop is
diagnosed on the base logger but not fatal, the scope is removed wherever
it sits in the stack.
*/
func Scope(cfg Config) (restore func()) {
	mu.Lock()
	defer mu.Unlock()

	sc := &scope{logger: build(cfg)}
	stack = append(stack, sc)

	return func() {
		mu.Lock()
		defer mu.Unlock()

		for i := len(stack) - 1; i >= 0; i-- {
			if stack[i] != sc {
				continue
			}

			if i != len(stack)-1 {
				activeLocked().Warn("logging scope popped out of order", "depth", i, "stack", len(stack))
			}

			stack = append(stack[:i], stack[i+1:]...)
			return
		}
	}
}

func Debug(msg any, kv ...any) { Logger().Debug(msg, kv...) }
func Info(msg any, kv ...any)  { Logger().Info(msg, kv...) }
func Warn(msg any, kv ...any)  { Logger().Warn(msg, kv...) }
func Error(msg any, kv ...any) { Logger().Error(msg, kv...) }
