package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLog returns a JSON logger writing to dir/name (rotated) and stdout at
// info level.
func NewLog(dir, name string) *zap.Logger {
	return NewLogAt(dir, name, zapcore.InfoLevel)
}

// NewLogAt is NewLog with an explicit minimum level.
func NewLogAt(dir, name string, level zapcore.Level) *zap.Logger {
	return zap.New(newTee(dir, name, os.Stdout, level))
}

func newTee(dir, name string, console zapcore.WriteSyncer, level zapcore.Level) zapcore.Core {
	if dir == "" {
		dir = "log"
	}
	_ = os.MkdirAll(dir, 0o755)

	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder

	w := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(dir, name),
		MaxSize:    50, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
	})

	return zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(cfg), w, level),
		zapcore.NewCore(zapcore.NewJSONEncoder(cfg), zapcore.Lock(console), level),
	)
}
