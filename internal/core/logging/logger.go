// Package logging provides component loggers and context enrichment on top
// of the global zerolog logger.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component derives a logger from the global one tagged with name.
func Component(name string) zerolog.Logger {
	return log.With().Str(FieldComponent, name).Logger()
}

// Scoped is Component with the data file attached, for loggers that live as
// long as one data view.
func Scoped(name, dataFile string) zerolog.Logger {
	return log.With().
		Str(FieldComponent, name).
		Str(FieldDataFile, dataFile).
		Logger()
}
