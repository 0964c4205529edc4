package cauce

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Logger is the logging contract shared by every package of the module.
// Hosts pass their own implementation through the WithLogger options.
type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

var levelNames = [...]string{
	levelDebug: "DEBUG",
	levelInfo:  "INFO",
	levelWarn:  "WARN",
	levelError: "ERROR",
}

// DefaultLogger writes debug and info lines to one stream and warnings and
// errors to another, each line tagged with the host prefix.
type DefaultLogger struct {
	mu     sync.Mutex
	debug  bool
	prefix string
	out    *log.Logger
	err    *log.Logger
}

// NewDefaultLogger logs to stdout and stderr.
func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return newLogger(os.Stdout, os.Stderr, prefix, debug)
}

func newLogger(out, errOut io.Writer, prefix string, debug bool) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	return &DefaultLogger{
		debug:  debug,
		prefix: prefix,
		out:    log.New(out, "", flags),
		err:    log.New(errOut, "", flags),
	}
}

func (l *DefaultLogger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	l.mu.Lock()
	l.debug = enabled
	l.mu.Unlock()
}

func (l *DefaultLogger) print(lv level, format string, args ...any) {
	dst := l.out
	if lv >= levelWarn {
		dst = l.err
	}
	msg := fmt.Sprintf(format, args...)
	if l.prefix == "" {
		dst.Printf("%s: %s", levelNames[lv], msg)
		return
	}
	dst.Printf("[%s] %s: %s", l.prefix, levelNames[lv], msg)
}

func (l *DefaultLogger) Debugf(format string, args ...any) {
	if l.DebugEnabled() {
		l.print(levelDebug, format, args...)
	}
}

func (l *DefaultLogger) Infof(format string, args ...any)  { l.print(levelInfo, format, args...) }
func (l *DefaultLogger) Warnf(format string, args ...any)  { l.print(levelWarn, format, args...) }
func (l *DefaultLogger) Errorf(format string, args ...any) { l.print(levelError, format, args...) }

// Scoped returns a logger that tags every message with the component that
// produced it, as in "assets: loaded pyramid.ply". The debug switch stays
// the parent's. A nil parent gives a no-op logger.
func Scoped(l Logger, scope string) Logger {
	l = OrNop(l)
	if _, ok := l.(nopLogger); ok {
		return l
	}
	return scopedLogger{parent: l, scope: scope}
}

type scopedLogger struct {
	parent Logger
	scope  string
}

func (s scopedLogger) DebugEnabled() bool    { return s.parent.DebugEnabled() }
func (s scopedLogger) SetDebug(enabled bool) { s.parent.SetDebug(enabled) }

func (s scopedLogger) Debugf(format string, args ...any) { s.parent.Debugf("%s: %s", s.scope, fmt.Sprintf(format, args...)) }
func (s scopedLogger) Infof(format string, args ...any)  { s.parent.Infof("%s: %s", s.scope, fmt.Sprintf(format, args...)) }
func (s scopedLogger) Warnf(format string, args ...any)  { s.parent.Warnf("%s: %s", s.scope, fmt.Sprintf(format, args...)) }
func (s scopedLogger) Errorf(format string, args ...any) { s.parent.Errorf("%s: %s", s.scope, fmt.Sprintf(format, args...)) }

type nopLogger struct{}

func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) DebugEnabled() bool                { return false }
func (nopLogger) SetDebug(enabled bool)             {}
func (nopLogger) Debugf(format string, args ...any) {}
func (nopLogger) Infof(format string, args ...any)  {}
func (nopLogger) Warnf(format string, args ...any)  {}
func (nopLogger) Errorf(format string, args ...any) {}

// OrNop returns l, or a no-op logger when l is nil. Never returns nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return NewNopLogger()
	}
	return l
}
