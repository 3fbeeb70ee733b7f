// SPDX-License-Identifier: GPL-2.0-or-later

package conlog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

var (
	logger atomic.Pointer[slog.Logger]
	level  = new(slog.LevelVar)
)

func init() {
	SetOutput(os.Stderr)
}

// SetOutput installs a text handler writing to w.
func SetOutput(w io.Writer) {
	SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

func SetVerbose(v bool) {
	if v {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
}

func Logger() *slog.Logger {
	return logger.Load()
}

func Debugf(format string, v ...interface{}) {
	Logger().Debug(fmt.Sprintf(format, v...))
}

func Printf(format string, v ...interface{}) {
	Logger().Info(fmt.Sprintf(format, v...))
}

func Warnf(format string, v ...interface{}) {
	Logger().Warn(fmt.Sprintf(format, v...))
}
