package dcmstream

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// init configures the package-wide zerolog logger the same way
// cmd/opendcm-util/main.go configures its own: a colourised console writer
// when stdout is a terminal, plain text otherwise.
func init() {
	if isPipe(os.Stdout) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, NoColor: true})
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
}

// isPipe returns whether the given file is not attached to a terminal.
func isPipe(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return true
	}
	return (fi.Mode() & os.ModeCharDevice) == 0
}

// Debug logs a debug-level message, matching the `Debug(...)` call sites
// the teacher's dicom.go makes while parsing.
func Debug(msg string) {
	log.Debug().Msg(msg)
}

// Debugf logs a formatted debug-level message.
func Debugf(format string, v ...interface{}) {
	log.Debug().Msgf(format, v...)
}

// Warn logs a warning, matching onPixelData's "Has fragmented data." /
// "No fragmented data." call sites.
func Warn(msg string) {
	log.Warn().Msg(msg)
}

// Warnf logs a formatted warning.
func Warnf(format string, v ...interface{}) {
	log.Warn().Msgf(format, v...)
}

// Errorf logs a formatted error-level message without returning an error,
// matching the teacher's diagnostic (non-propagating) use of Errorf inside
// onPixelData/readPixelData.
func Errorf(format string, v ...interface{}) {
	log.Error().Msgf(format, v...)
}
