// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package logging

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/accumulatenetwork/vmstate/pkg/errors"
)

// moduleLevels is the minimum level for each module. Events from modules
// without an entry are held to the fallback level.
type moduleLevels struct {
	fallback zerolog.Level
	modules  map[string]zerolog.Level
}

// parseModuleLevels parses "level;module=level;...". A bare level or "*=level"
// sets the fallback.
func parseModuleLevels(s string) (*moduleLevels, error) {
	m := &moduleLevels{fallback: zerolog.Disabled, modules: map[string]zerolog.Level{}}
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		module, level, ok := strings.Cut(part, "=")
		if !ok {
			module, level = "*", part
		}
		module = strings.TrimSpace(module)
		if module == "" {
			return nil, errors.BadRequest.WithFormat("%q: missing module name", part)
		}

		l, err := zerolog.ParseLevel(strings.TrimSpace(level))
		if err != nil {
			return nil, errors.BadRequest.WithFormat("%q: %w", part, err)
		}
		if module == "*" {
			m.fallback = l
		} else {
			m.modules[module] = l
		}
	}
	return m, nil
}

// lowest returns the most verbose level any module allows.
func (m *moduleLevels) lowest() zerolog.Level {
	lowest := m.fallback
	for _, l := range m.modules {
		if l < lowest {
			lowest = l
		}
	}
	return lowest
}

func (m *moduleLevels) allows(module string, level zerolog.Level) bool {
	want, ok := m.modules[module]
	if !ok {
		want = m.fallback
	}
	return level >= want
}

// ParseLogLevel parses a list of module levels such as
// "error;repository=debug;badger=info". If s has no module levels it is
// returned as is. Otherwise ParseLogLevel returns the lowest level and wraps w
// with a writer that drops events below their module's level.
func ParseLogLevel(s string, w io.Writer) (string, io.Writer, error) {
	if !strings.Contains(s, "=") {
		return s, w, nil
	}

	levels, err := parseModuleLevels(s)
	if err != nil {
		return "", nil, err
	}
	return levels.lowest().String(), &moduleFilter{out: w, levels: levels}, nil
}

// moduleFilter drops JSON events that their module's level does not allow. It
// must see events before they are formatted for the console.
type moduleFilter struct {
	out    io.Writer
	levels *moduleLevels
}

var _ zerolog.LevelWriter = (*moduleFilter)(nil)

func (f *moduleFilter) Write(p []byte) (int, error) {
	return f.WriteLevel(zerolog.NoLevel, p)
}

func (f *moduleFilter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	var event struct {
		Module any    `json:"module"`
		Level  string `json:"level"`
	}
	err := json.Unmarshal(p, &event)
	if err != nil {
		return 0, errors.EncodingError.WithFormat("decode log event: %w", err)
	}

	if level == zerolog.NoLevel && event.Level != "" {
		level, _ = zerolog.ParseLevel(event.Level)
	}
	module, _ := event.Module.(string)
	if !f.levels.allows(module, level) {
		return len(p), nil
	}
	return f.out.Write(p)
}
