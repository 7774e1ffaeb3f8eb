package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It is a no-op logger until Init runs so
// packages can log from tests without setup.
var Log = zap.NewNop()

var once sync.Once

// Init builds the development logger. Calling it more than once is harmless.
func Init() {
	once.Do(func() {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.DisableStacktrace = true
		l, err := cfg.Build()
		if err != nil {
			// Fall back to the stock development logger
			l, _ = zap.NewDevelopment()
		}
		Log = l
	})
}

// SetLevel changes the minimum level for a logger created through Init.
// Used by the -verbose flag.
func SetLevel(debug bool) {
	if !debug {
		Log = Log.WithOptions(zap.IncreaseLevel(zapcore.InfoLevel))
	}
}

// Sync flushes buffered entries. Errors from syncing stderr are ignored.
func Sync() {
	_ = Log.Sync()
}
