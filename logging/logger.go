// Package logging builds the file logger shared by the client and server
// binaries. The client draws to the screen, so logs go to a rotating file
// rather than stdout.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a SugaredLogger writing to path with size-based rotation:
// 10MB per file, 3 backups, kept for a week.
func New(path string) *zap.SugaredLogger {
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(lj),
		zapcore.DebugLevel,
	)
	return zap.New(core, zap.AddCaller()).Sugar()
}
