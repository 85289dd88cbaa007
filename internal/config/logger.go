package config

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// NewLogger returns the console logger used by all commands. Info and debug
// messages go to stdout, warnings and errors to stderr. When stdout carries a
// protocol (the MCP stdio server), pass stderrOnly to keep it clean.
func NewLogger(level LogLevel, stderrOnly bool) *zap.Logger {
	if level == LogNone {
		return zap.NewNop()
	}

	low := zapcore.InfoLevel
	if level == LogDebug {
		low = zapcore.DebugLevel
	}

	lowOut := zapcore.Lock(os.Stdout)
	if stderrOnly {
		lowOut = zapcore.Lock(os.Stderr)
	}

	lowCore := zapcore.NewCore(consoleEncoder(os.Stdout), lowOut,
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return low <= lvl && lvl < zapcore.WarnLevel
		}))
	highCore := zapcore.NewCore(consoleEncoder(os.Stderr), zapcore.Lock(os.Stderr),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= zapcore.WarnLevel
		}))

	return zap.New(zapcore.NewTee(lowCore, highCore))
}

func consoleEncoder(f *os.File) zapcore.Encoder {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if term.IsTerminal(int(f.Fd())) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return zapcore.NewConsoleEncoder(ec)
}
