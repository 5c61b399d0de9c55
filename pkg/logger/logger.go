package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Log *zap.SugaredLogger

func init() {
	// Usable before Init (tests, tools); replaced at startup.
	Log = zap.NewNop().Sugar()
}

// Init builds the process logger. format is "json" or "console".
func Init(level, format string) error {
	lvl := zapcore.InfoLevel
	switch strings.ToLower(level) {
	case "debug":
		lvl = zapcore.DebugLevel
	case "warn":
		lvl = zapcore.WarnLevel
	case "error":
		lvl = zapcore.ErrorLevel
	}

	var cfg zap.Config
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build(zap.AddCaller())
	if err != nil {
		return err
	}
	Log = l.Sugar()
	return nil
}

// Set replaces the global logger, mainly for tests.
func Set(l *zap.Logger) {
	Log = l.Sugar()
}

func Sync() {
	_ = Log.Sync()
}
