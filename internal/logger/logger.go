package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugar *zap.SugaredLogger

func Init() {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true

	log, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}

	sugar = log.Sugar()
}

// Info logs a message with optional key-value pairs.
func Info(msg string, keysAndValues ...interface{}) {
	sugar.Infow(msg, keysAndValues...)
}

func Infof(format string, v ...interface{}) {
	sugar.Infof(format, v...)
}

func Error(msg string, keysAndValues ...interface{}) {
	sugar.Errorw(msg, keysAndValues...)
}

func Errorf(format string, v ...interface{}) {
	sugar.Errorf(format, v...)
}

func Debug(msg string, keysAndValues ...interface{}) {
	sugar.Debugw(msg, keysAndValues...)
}

func Debugf(format string, v ...interface{}) {
	sugar.Debugf(format, v...)
}

func Fatal(msg string, keysAndValues ...interface{}) {
	sugar.Fatalw(msg, keysAndValues...)
}

func Fatalf(format string, v ...interface{}) {
	sugar.Fatalf(format, v...)
}

// Sync flushes buffered log entries. Call on shutdown.
func Sync() {
	_ = sugar.Sync()
}
