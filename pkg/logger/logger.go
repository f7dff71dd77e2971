package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Minimal leveled logger shared by the client packages and the dev server.
// - zero external deps
// - provides Debug/Info/Warn/Error/Fatal variants and Init(level)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var (
	mu    sync.RWMutex
	out   *log.Logger = log.New(os.Stdout, "", 0)
	level Level       = LevelInfo
)

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Call early during startup. Default level is Info.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		level = LevelDebug
	case "warn", "warning":
		level = LevelWarn
	case "error":
		level = LevelError
	case "fatal":
		level = LevelFatal
	default:
		level = LevelInfo
	}
}

// SetOutput redirects log output; used by tests to capture lines.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	mu.Lock()
	defer mu.Unlock()
	out = log.New(w, "", 0)
}

func header(lvl string) string {
	return fmt.Sprintf("%s [%s] ", time.Now().Format(time.RFC3339), strings.ToUpper(lvl))
}

func shouldLog(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l >= level
}

func printf(lvl string, format string, v ...interface{}) {
	mu.RLock()
	l := out
	mu.RUnlock()
	l.Printf(header(lvl)+format, v...)
}

func Debugf(format string, v ...interface{}) {
	if shouldLog(LevelDebug) {
		printf("debug", format, v...)
	}
}

func Infof(format string, v ...interface{}) {
	if shouldLog(LevelInfo) {
		printf("info", format, v...)
	}
}

func Warnf(format string, v ...interface{}) {
	if shouldLog(LevelWarn) {
		printf("warn", format, v...)
	}
}

func Errorf(format string, v ...interface{}) {
	if shouldLog(LevelError) {
		printf("error", format, v...)
	}
}

func Fatalf(format string, v ...interface{}) {
	printf("fatal", format, v...)
	os.Exit(1)
}

// Debug/Info/Warn/Error helpers that accept a single string
func Debug(v string) { Debugf("%s", v) }
func Info(v string)  { Infof("%s", v) }
func Warn(v string)  { Warnf("%s", v) }
func Error(v string) { Errorf("%s", v) }

// LevelString returns the current level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	switch level {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	}
	return "info"
}
