// Package logging configures the process-wide zap logger for the CLI.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds a console-encoded sugared logger. Verbose mode uses the
// development config at debug level; otherwise production config at warn
// level keeps rule output clean.
func NewLogger(verbose bool) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.Sugar(), nil
}
