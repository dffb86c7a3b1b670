/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package logger provides the CLI's configurable logger.
// Library packages take a *zap.Logger; commands pass L().
package logger

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu sync.RWMutex
	// Default logs to stderr. Set to io.Discard for silent mode.
	output io.Writer = os.Stderr
	level            = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	base   *zap.Logger
)

func init() {
	base = build(output)
}

func build(w io.Writer) *zap.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	enc.CallerKey = ""
	enc.EncodeLevel = zapcore.LowercaseLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core)
}

// SetOutput configures the logger output destination.
// Use io.Discard to silence all logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	base = build(output)
}

// SetVerbose enables debug messages.
func SetVerbose(verbose bool) {
	if verbose {
		level.SetLevel(zapcore.DebugLevel)
		return
	}
	level.SetLevel(zapcore.InfoLevel)
}

// L returns the structured logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	L().Sugar().Warnf(format, args...)
}

// Info logs an informational message.
func Info(format string, args ...any) {
	L().Sugar().Infof(format, args...)
}

// Debug logs a debug message, shown with SetVerbose(true).
func Debug(format string, args ...any) {
	L().Sugar().Debugf(format, args...)
}
