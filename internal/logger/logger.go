package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log *zap.Logger
	mu  sync.Mutex
)

// Init builds the global logger for env. "production" logs JSON to stdout,
// anything else uses the colored development console encoder.
func Init(env string) {
	var cfg zap.Config

	if env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "json"
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.MessageKey = "message"
		cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{"stdout"}
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	built, err := cfg.Build(zap.AddCaller())
	if err != nil {
		panic(err)
	}

	mu.Lock()
	log = built
	mu.Unlock()
}

// L returns the global logger, initialising it from APP_ENV on first use.
func L() *zap.Logger {
	mu.Lock()
	current := log
	mu.Unlock()

	if current == nil {
		Init(os.Getenv("APP_ENV"))
		return L()
	}
	return current
}

// Replace swaps the global logger and returns a func restoring the previous one.
func Replace(l *zap.Logger) func() {
	mu.Lock()
	prev := log
	log = l
	mu.Unlock()

	return func() {
		mu.Lock()
		log = prev
		mu.Unlock()
	}
}

func Sync() {
	mu.Lock()
	defer mu.Unlock()
	if log != nil {
		_ = log.Sync()
	}
}
