package main

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/swl/eval"
	"github.com/wippyai/swl/linker"
)

// setupLogging builds the process logger and installs it in the packages
// that log. Without verbose only warnings and errors reach stderr.
func setupLogging(verbose bool) (*zap.Logger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.DisableStacktrace = true
	}
	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	linker.SetLogger(log)
	eval.SetLogger(log)
	return log, nil
}
