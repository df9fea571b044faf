// Copyright 2022 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cometbft/cometbft/libs/log"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"gitlab.com/accumulatenetwork/vmstate/pkg/errors"
)

const (
	LogFormatPlain = "plain"
	LogFormatText  = "text"
	LogFormatJSON  = "json"
)

// ZeroLogger is a key/value logger that passes messages to a Zerolog logger.
type ZeroLogger struct {
	Zerolog zerolog.Logger
	Trace   bool
}

var _ log.Logger = (*ZeroLogger)(nil)

// NewLogger returns a logger that writes to w in the given format. The level
// is either a plain level or a list of module levels such as
// "error;repository=debug".
func NewLogger(w io.Writer, format, level string, trace bool) (log.Logger, error) {
	switch strings.ToLower(format) {
	case LogFormatPlain, LogFormatText:
		w = newConsoleWriter(w)
	case LogFormatJSON:
	default:
		return nil, errors.BadRequest.WithFormat("unsupported log format %q", format)
	}

	level, w, err := ParseLogLevel(level, w)
	if err != nil {
		return nil, errors.BadRequest.WithFormat("parse log level: %w", err)
	}

	return NewZeroLogger(zerolog.New(w), level, trace)
}

// NewZeroLogger wraps a Zerolog logger, filtering messages below the level.
func NewZeroLogger(zl zerolog.Logger, level string, trace bool) (log.Logger, error) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, errors.BadRequest.WithFormat("failed to parse log level: %w", err)
	}

	zl = zl.Level(logLevel).With().Timestamp().Logger()
	return &ZeroLogger{zl, trace}, nil
}

func (l *ZeroLogger) Info(msg string, keyVals ...interface{}) {
	l.Zerolog.Info().Fields(getLogFields(keyVals...)).Msg(msg)
}

func (l *ZeroLogger) Error(msg string, keyVals ...interface{}) {
	e := l.Zerolog.Error()
	if l.Trace {
		e = e.Stack()
	}

	e.Fields(getLogFields(keyVals...)).Msg(msg)
}

func (l *ZeroLogger) Debug(msg string, keyVals ...interface{}) {
	l.Zerolog.Debug().Fields(getLogFields(keyVals...)).Msg(msg)
}

func (l *ZeroLogger) With(keyVals ...interface{}) log.Logger {
	return &ZeroLogger{
		Zerolog: l.Zerolog.With().Fields(getLogFields(keyVals...)).Logger(),
		Trace:   l.Trace,
	}
}

func getLogFields(keyVals ...interface{}) map[string]interface{} {
	if len(keyVals)%2 != 0 {
		return nil
	}

	fields := make(map[string]interface{}, len(keyVals)/2)
	for i := 0; i < len(keyVals); i += 2 {
		v := keyVals[i+1]
		if s, ok := v.(fmt.Stringer); ok {
			v = s.String()
		}
		fields[fmt.Sprint(keyVals[i])] = v
	}

	return fields
}

func newConsoleWriter(w io.Writer) io.Writer {
	return zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    color.NoColor || w != os.Stderr && w != os.Stdout,
		TimeFormat: "15:04:05.000",
	}
}
