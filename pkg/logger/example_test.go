package logger_test

import (
	"errors"

	"github.com/wonny/skinadvisor/backend/pkg/config"
	"github.com/wonny/skinadvisor/backend/pkg/logger"
)

// Example_basic demonstrates basic logger usage
func Example_basic() {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "info",
		LogFormat: "console",
	}

	log := logger.New(cfg)

	log.Info("Application started")
	log.WithField("products", 120).Info("Catalog loaded")
}

// Example_structured demonstrates component and field logging
func Example_structured() {
	log := logger.New(&config.Config{Env: "development", LogLevel: "debug"})

	log.WithComponent("catalog").WithFields(map[string]interface{}{
		"version":  "20260101T040000-120",
		"products": 120,
	}).Info("Catalog snapshot published")

	log.WithError(errors.New("timeout")).Warn("Weather lookup failed, continuing without modulation")
}
