// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger builds the logrus logger shared by the CLI and the HTTP server.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logger at the named level writing to stderr, and also to
// file when file is non-empty. An unknown level falls back to info.
func New(level, file string) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	writers := []io.Writer{os.Stderr}
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file %s: %w", file, err)
		}
		writers = append(writers, f)
	}
	log.SetOutput(io.MultiWriter(writers...))

	return log, nil
}

// Discard returns a logger that drops everything. Components use it when
// the caller supplies no logger.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// OrDiscard returns l, or a discarding logger when l is nil or holds a
// nil *logrus.Logger or *logrus.Entry.
func OrDiscard(l logrus.FieldLogger) logrus.FieldLogger {
	switch v := l.(type) {
	case nil:
		return Discard()
	case *logrus.Logger:
		if v == nil {
			return Discard()
		}
	case *logrus.Entry:
		if v == nil {
			return Discard()
		}
	}
	return l
}
