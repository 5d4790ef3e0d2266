package configslog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log structured logger, SLog sugared logger. Both are no-ops until InitLogger runs.
var (
	Log  = zap.NewNop()
	SLog = Log.Sugar()
)

// InitLogger builds the global loggers. APP_ENV=production selects the JSON encoder.
func InitLogger() {
	var cfg zap.Config
	if os.Getenv("APP_ENV") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build(zap.AddCaller())
	if err != nil {
		// fall back to the stock production logger
		logger = zap.Must(zap.NewProduction())
		logger.Warn("Logger config could not be built, falling back to default", zap.Error(err))
	}
	Log = logger
	SLog = logger.Sugar()
}

// SyncLogger flushes buffered entries. Call it with defer from main.
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
