// Package logging builds the logrus logger shared by the pipeline and the
// command line tool.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/styler3/mtg-rss/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a logger configured from cfg. A File of "-" (or empty) logs
// to stderr; any other value is a path to a size-rotated log file.
func New(cfg config.LogConfig) (*logrus.Logger, error) {
	logger := logrus.New()

	var writer io.Writer
	if cfg.File == "" || cfg.File == "-" {
		writer = os.Stderr
	} else {
		writer = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    20,
			MaxBackups: 5,
			MaxAge:     28,
		}
	}
	logger.SetOutput(writer)

	switch cfg.Formatter {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log formatter %q", cfg.Formatter)
	}

	level := logrus.InfoLevel
	if cfg.Level != "" {
		var err error
		level, err = logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
	}
	logger.SetLevel(level)

	return logger, nil
}
