package logger

import (
	"fmt"
	stdlog "log"
	"os"
	"sync"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	mu       sync.Mutex
	out      = stdlog.New(os.Stderr, "", stdlog.LstdFlags|stdlog.Lmicroseconds)
	minLevel = LevelInfo
)

func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = l
}

// SetOutput replaces the underlying logger, mainly for tests.
func SetOutput(l *stdlog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	out = l
}

func Debug(msg string, kv ...any) { write(LevelDebug, "DEBUG", msg, kv...) }
func Info(msg string, kv ...any)  { write(LevelInfo, "INFO", msg, kv...) }
func Warn(msg string, kv ...any)  { write(LevelWarn, "WARN", msg, kv...) }
func Error(msg string, kv ...any) { write(LevelError, "ERROR", msg, kv...) }

func write(level Level, tag, msg string, kv ...any) {
	mu.Lock()
	defer mu.Unlock()
	if level < minLevel {
		return
	}
	out.Println("[" + tag + "] " + msg + formatKVs(kv...))
}

// formatKVs renders key/value pairs as " key=value". A leading bare error or
// a dangling last value is rendered under the "error" key, so both
// Error("msg", err) and Error("msg", "error", err) come out readable.
func formatKVs(kv ...any) string {
	var line string
	if len(kv) > 0 {
		if err, ok := kv[0].(error); ok {
			line += " error=" + fmt.Sprint(err)
			kv = kv[1:]
		}
	}
	if len(kv)%2 != 0 {
		kv = append(kv[:len(kv):len(kv)], "")
	}
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		line += " " + key + "=" + fmt.Sprint(kv[i+1])
	}
	return line
}
