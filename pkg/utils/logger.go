package utils

import "go.uber.org/zap"

// NewLogger returns a zap logger. Debug selects the development config
// (human-readable console output at debug level); otherwise the production
// config is used (JSON at info level).
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
