package utils

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// InitLogger builds the global logger. APP_ENV=production selects the JSON
// production config; anything else gets the console development config.
func InitLogger() {
	loggerOnce.Do(func() {
		var err error
		if os.Getenv("APP_ENV") == "production" {
			logger, err = zap.NewProduction()
		} else {
			logger, err = zap.NewDevelopment()
		}
		if err != nil {
			panic(err)
		}
	})
}

func log() *zap.Logger {
	if logger == nil {
		InitLogger()
	}
	return logger
}

func Debug(msg string, fields ...zap.Field) { log().Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { log().Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { log().Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { log().Error(msg, fields...) }
func Fatal(msg string, fields ...zap.Field) { log().Fatal(msg, fields...) }

// SyncLogger flushes buffered entries. Call on shutdown.
func SyncLogger() {
	if logger != nil {
		_ = logger.Sync()
	}
}
