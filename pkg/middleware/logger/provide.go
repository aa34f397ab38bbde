package logger

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Dir is supplied to the fx graph to choose where log files go.
type Dir string

// Level is the minimum level of both loggers. The zero value is info.
type Level zapcore.Level

// Loggers carries the two process loggers.
type Loggers struct {
	fx.Out
	System *zap.Logger
	Access *zap.Logger `name:"access"`
}

func ProvideLoggers(dir Dir, level Level) Loggers {
	return Loggers{
		System: NewLogAt(string(dir), "system.log", zapcore.Level(level)),
		Access: NewLogAt(string(dir), "http-access.log", zapcore.Level(level)),
	}
}

type middlewareIn struct {
	fx.In
	Access *zap.Logger `name:"access"`
}

func ProvideLoggerMiddleware(in middlewareIn) *Middleware { return NewMiddleware(in.Access) }
