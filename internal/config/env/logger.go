package env

import (
	"os"

	"prize_wheel/internal/config"
)

const (
	logLevelEnvName = "LOG_LEVEL"

	defaultLogLevel = "info"
)

type loggerConfig struct {
	level string
}

func NewLoggerConfig() (config.LoggerConfig, error) {
	level := os.Getenv(logLevelEnvName)
	if len(level) == 0 {
		level = defaultLogLevel
	}
	return &loggerConfig{level: level}, nil
}

func (cfg *loggerConfig) Level() string {
	return cfg.level
}
