package logger

import (
	"os"

	"hospital-service/internal/app/config"
	"hospital-service/internal/pkg/constvars"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

func NewZapLogger(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) *zap.Logger {
	var logLevel zapcore.Level
	switch driverConfig.Logger.Level {
	case "debug":
		logLevel = zap.DebugLevel
	case "info":
		logLevel = zap.InfoLevel
	case "warn":
		logLevel = zap.WarnLevel
	case "error":
		logLevel = zap.ErrorLevel
	default:
		logLevel = zap.InfoLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	encoder := zapcore.NewJSONEncoder(encoderConfig)
	level := zap.NewAtomicLevelAt(logLevel)

	var core zapcore.Core
	switch internalConfig.App.Env {
	case constvars.AppEnvironmentProduction:
		// Everything goes to the rotated output file, errors are also kept in their
		// own file and mirrored to stderr.
		output := zapcore.AddSync(rotatingFile(driverConfig, driverConfig.Logger.OutputFileName))
		errorOutput := zapcore.NewMultiWriteSyncer(
			zapcore.AddSync(rotatingFile(driverConfig, driverConfig.Logger.OutputErrorFileName)),
			zapcore.Lock(os.Stderr),
		)
		core = zapcore.NewTee(
			zapcore.NewCore(encoder, output, level),
			zapcore.NewCore(encoder, errorOutput, zap.ErrorLevel),
		)
	default:
		core = zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level)
	}

	options := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)}
	if internalConfig.App.Env == constvars.AppEnvironmentDevelopment {
		options = append(options, zap.Development())
	}

	return zap.New(core, options...)
}

func rotatingFile(driverConfig *config.DriverConfig, fileName string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    driverConfig.Logger.MaxSizeInMegabyte,
		MaxBackups: driverConfig.Logger.MaxBackups,
		MaxAge:     driverConfig.Logger.MaxAgeInDays,
		Compress:   true,
	}
}
