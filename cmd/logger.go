package cmd

import (
	"github.com/go-errors/errors"
	"github.com/rs/zerolog"
	"io"
)

// newLogger logs to w, keeping stdout free for the claim output.
func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		With().Timestamp().Str("app", "hc1dump").Logger()

	if level == "" {
		return logger, nil
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return logger, errors.WrapPrefix(err, "Could not parse log level", 0)
	}

	return logger.Level(lvl), nil
}
