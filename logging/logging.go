package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Level controls which messages are written.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ParseLevel maps a config string to a level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

var (
	mu     sync.RWMutex
	level  = LevelInfo
	writer io.Writer = os.Stdout
)

// Setup configures the process-wide log level and, when file is non-empty, a
// rotating log file written alongside stdout. Loggers created before Setup
// pick up the new configuration on their next write.
func Setup(levelStr, file string) {
	mu.Lock()
	defer mu.Unlock()
	level = ParseLevel(levelStr)
	if file != "" {
		writer = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	} else {
		writer = os.Stdout
	}
}

// Logger is a named log channel. All loggers share the writer and level
// configured by Setup.
type Logger struct {
	name string
}

// Named returns the logger for the given channel, e.g. "validation".
func Named(name string) *Logger {
	return &Logger{name: name}
}

// Default returns the root logger.
func Default() *Logger {
	return &Logger{}
}

func (l *Logger) log(lv Level, msg string, args ...any) {
	mu.RLock()
	out := writer
	min := level
	mu.RUnlock()
	if lv < min {
		return
	}

	prefix := fmt.Sprintf("[%s] %-5s", time.Now().Format("2006-01-02 15:04:05"), lv)
	if l.name != "" {
		prefix = fmt.Sprintf("%s [%s]", prefix, l.name)
	}
	fmt.Fprintf(out, "%s %s\n", prefix, fmt.Sprintf(msg, args...))
}

func (l *Logger) Debug(msg string, args ...any) { l.log(LevelDebug, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log(LevelInfo, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(LevelWarn, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log(LevelError, msg, args...) }
