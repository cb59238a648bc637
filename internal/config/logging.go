package config

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns a console logger in debug mode and a JSON production
// logger otherwise.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.DebugMode {
		return zap.NewDevelopment()
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.EncoderConfig.TimeKey = "time"
	zapCfg.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	return zapCfg.Build()
}
