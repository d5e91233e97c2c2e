package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger создает консольный логгер. Если задан LOG_FILE, пишет и в файл.
func NewLogger() *zap.Logger {
	outputs := []string{"stdout"}
	if path := os.Getenv("LOG_FILE"); path != "" {
		outputs = append(outputs, path)
	}

	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if parsed, err := zapcore.ParseLevel(raw); err == nil {
			level = zap.NewAtomicLevelAt(parsed)
		}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	dualConfig := zap.Config{
		Encoding:         "console",
		Level:            level,
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    encoderConfig,
	}

	dualLogger, err := dualConfig.Build()
	if err != nil {
		panic(err)
	}

	return dualLogger
}
