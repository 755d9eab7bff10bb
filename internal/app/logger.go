// Package app provides logger initialization.
package app

import (
	"github.com/guttosm/fba-quote-service/config"
	"github.com/guttosm/fba-quote-service/internal/logger"
)

// InitializeLogger initializes the global logger from the server configuration.
func InitializeLogger(cfg config.ServerConfig) {
	logger.Init(cfg.LogLevel, cfg.LogPretty)
}
