// Package logger builds the application logger.
package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New returns a zap logger for the given mode ("production" or anything
// else for development output).
func New(mode string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}
