// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logx configures the process-wide zerolog logger. Stage
// progress intended for the user still goes to stdout; zerolog carries
// diagnostics on stderr.
package logx

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init sets up the console logger. Verbose enables debug-level output.
func Init(verbose bool) {
	log.Logger = zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger()

	if verbose {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}
}
