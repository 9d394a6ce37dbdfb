package conlog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
)

var (
	logger    atomic.Pointer[slog.Logger]
	developer atomic.Bool
)

func init() {
	logger.Store(slog.Default())
}

func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	logger.Store(l)
}

// SetDeveloper enables DPrintf output.
func SetDeveloper(on bool) {
	developer.Store(on)
}

func msg(format string, v ...interface{}) string {
	return strings.TrimRight(fmt.Sprintf(format, v...), "\n")
}

func Printf(format string, v ...interface{}) {
	logger.Load().Info(msg(format, v...))
}

// DPrintf only prints in developer mode.
func DPrintf(format string, v ...interface{}) {
	if !developer.Load() {
		return
	}
	l := logger.Load()
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	l.Debug(msg(format, v...))
}

func Warnf(format string, v ...interface{}) {
	logger.Load().Warn(msg(format, v...))
}

func Errorf(format string, v ...interface{}) {
	logger.Load().Error(msg(format, v...))
}
