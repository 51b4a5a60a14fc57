// Package logger builds the zap logger used by the command line front end.
package logger

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvProduction selects JSON output.
const EnvProduction = "production"

// New returns a zap.Logger writing to w. Production environments get JSON
// output; anything else gets the console encoder with coloured levels.
// verbose lowers the level from info to debug.
func New(env string, verbose bool, w io.Writer) *zap.Logger {
	var encCfg zapcore.EncoderConfig
	var enc zapcore.Encoder
	if env == EnvProduction {
		encCfg = zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg = zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	return zap.New(core)
}
