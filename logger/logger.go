//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

// Package logger provides the configurable logger shared by the
// csimp components. The root logger uses github.com/rs/zerolog with a
// console writer and is silenced under `go test`.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	logger = zerolog.New(output).With().Timestamp().Logger()

	if strings.HasSuffix(os.Args[0], ".test") {
		logger = zerolog.Nop()
	}
}

// SetOutput changes the output of the root logger.
func SetOutput(w io.Writer) {
	logger = logger.Output(w)
}

// Set overrides the root logger.
func Set(l zerolog.Logger) {
	logger = l
}

// Disable disables logging.
func Disable() {
	logger = zerolog.Nop()
}

// Logger returns the root logger.
func Logger() zerolog.Logger {
	return logger
}
