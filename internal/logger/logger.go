package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a thin leveled façade over zap so the rest of the code doesn't
// depend on a particular logging library.
type Logger struct {
	sugar *zap.SugaredLogger
}

// New builds a console logger for local development.
func New() *Logger {
	return build("development", "")
}

// NewWithConfig builds a logger for the given environment. In production the
// output is JSON; when logFile is set a size-rotated file is written in
// addition to stdout.
func NewWithConfig(env, logFile string) *Logger {
	return build(env, logFile)
}

func build(env, logFile string) *Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		MessageKey:     "message",
		CallerKey:      "caller",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	level := zapcore.InfoLevel
	if env == "development" {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
		level = zapcore.DebugLevel
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	sink := zapcore.AddSync(os.Stdout)
	if logFile != "" {
		rotated := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    100, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		sink = zapcore.NewMultiWriteSyncer(zapcore.AddSync(rotated), zapcore.AddSync(os.Stdout))
	}

	core := zapcore.NewCore(encoder, sink, level)
	return &Logger{sugar: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()}
}

func (l *Logger) Debug(v ...interface{}) {
	l.sugar.Debug(v...)
}

func (l *Logger) Debugf(format string, v ...interface{}) {
	l.sugar.Debugf(format, v...)
}

func (l *Logger) Info(v ...interface{}) {
	l.sugar.Info(v...)
}

func (l *Logger) Infof(format string, v ...interface{}) {
	l.sugar.Infof(format, v...)
}

func (l *Logger) Warn(v ...interface{}) {
	l.sugar.Warn(v...)
}

func (l *Logger) Warnf(format string, v ...interface{}) {
	l.sugar.Warnf(format, v...)
}

func (l *Logger) Error(v ...interface{}) {
	l.sugar.Error(v...)
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	l.sugar.Errorf(format, v...)
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() {
	_ = l.sugar.Sync()
}
