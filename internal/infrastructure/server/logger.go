package server

import (
	"github.com/sirupsen/logrus"

	"github.com/hifzhub/murajaah/internal/infrastructure/config"
)

// NewLogger builds the process-wide logrus logger from configuration.
func NewLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	lvl, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	if cfg.Log.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}
