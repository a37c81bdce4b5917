package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	once      sync.Once
	singleton *log.Logger
)

func get() *log.Logger {
	once.Do(func() {
		singleton = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.TimeOnly,
			Prefix:          "flappy-fish",
		})
	})
	return singleton
}

// SetLevel accepts "debug", "info", "warn", "error"; unknown names keep the current level.
func SetLevel(level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		get().Warnf("unknown log level %q", level)
		return
	}
	get().SetLevel(lvl)
}

// SetOutput redirects log output, mostly for tests.
func SetOutput(w io.Writer) {
	get().SetOutput(w)
}

// With returns a child logger carrying the given key/value pairs.
func With(keyvals ...interface{}) *log.Logger {
	return get().With(keyvals...)
}

func Debug(msg string, args ...interface{}) {
	get().Debugf(msg, args...)
}

func Info(msg string, args ...interface{}) {
	get().Infof(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	get().Warnf(msg, args...)
}

func Error(msg string, args ...interface{}) {
	get().Errorf(msg, args...)
}
