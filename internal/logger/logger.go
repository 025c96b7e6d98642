package logger

import (
	"go.uber.org/zap"
)

// New builds the process-wide structured logger. Development gets the
// human-readable console encoder, everything else JSON.
func New(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
