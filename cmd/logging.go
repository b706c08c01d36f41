package cmd

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/they4kman/swept/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// setupLogging points logrus at the configured file. The terminal is drawn
// on by the game, so nothing is ever logged to stdout or stderr.
func setupLogging(cfg config.LogConfig) (io.Closer, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
		DisableColors: true,
	})

	if cfg.File == "" {
		log.SetOutput(io.Discard)
		return nopCloser{}, nil
	}

	file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("unable to open log file: %w", err)
	}
	log.SetOutput(file)
	return file, nil
}
