// Copyright 2022 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cometbft/cometbft/libs/log"
	"github.com/pelletier/go-toml"
	"github.com/spf13/viper"
	"gitlab.com/accumulatenetwork/vmstate/internal/logging"
	"gitlab.com/accumulatenetwork/vmstate/pkg/database/keyvalue"
	"gitlab.com/accumulatenetwork/vmstate/pkg/database/keyvalue/badger"
	"gitlab.com/accumulatenetwork/vmstate/pkg/database/keyvalue/bolt"
	"gitlab.com/accumulatenetwork/vmstate/pkg/database/keyvalue/leveldb"
	"gitlab.com/accumulatenetwork/vmstate/pkg/database/keyvalue/memory"
	"gitlab.com/accumulatenetwork/vmstate/pkg/errors"
	"gitlab.com/accumulatenetwork/vmstate/pkg/vm/repository"
)

type StorageType string

const (
	MemoryStorage  StorageType = "memory"
	BadgerStorage  StorageType = "badger"
	BoltStorage    StorageType = "bolt"
	LevelDBStorage StorageType = "leveldb"
)

// LogLevel defines the default and per-module log level.
type LogLevel struct {
	Default string
	Modules [][2]string
}

// Parse parses a string such as "error;repository=info" into a LogLevel.
func (l LogLevel) Parse(s string) LogLevel {
	for _, s := range strings.Split(s, ";") {
		s := strings.SplitN(s, "=", 2)
		if len(s) == 1 {
			l.Default = s[0]
		} else {
			l.Modules = append(l.Modules, *(*[2]string)(s))
		}
	}
	return l
}

// SetDefault sets the default log level.
func (l LogLevel) SetDefault(level string) LogLevel {
	l.Default = level
	return l
}

// SetModule sets the log level for a module.
func (l LogLevel) SetModule(module, level string) LogLevel {
	l.Modules = append(l.Modules, [2]string{module, level})
	return l
}

// String converts the log level into a string, for example
// "error;repository=debug".
func (l LogLevel) String() string {
	s := new(strings.Builder)
	s.WriteString(l.Default)
	for _, m := range l.Modules {
		fmt.Fprintf(s, ";%s=%s", m[0], m[1])
	}
	return s.String()
}

var DefaultLogLevels = LogLevel{}.
	SetDefault("error").
	SetModule("repository", "info").
	// SetModule("badger", "info").
	String()

type Config struct {
	LogLevel   string     `toml:"log-level" mapstructure:"log-level"`
	LogFormat  string     `toml:"log-format" mapstructure:"log-format"`
	Repository Repository `toml:"repository" mapstructure:"repository"`
	Storage    Storage    `toml:"storage" mapstructure:"storage"`
}

type Repository struct {
	// LegacyMultiSign is set until the multisign proposal has been approved.
	// Empty entries are tagged unknown while it is set.
	LegacyMultiSign bool `toml:"legacy-multisign" mapstructure:"legacy-multisign"`
}

type Storage struct {
	Type StorageType `toml:"type" mapstructure:"type"`
	Path string      `toml:"path" mapstructure:"path"`
}

func Default() *Config {
	c := new(Config)
	c.LogLevel = DefaultLogLevels
	c.LogFormat = logging.LogFormatPlain
	c.Repository.LegacyMultiSign = true
	c.Storage.Type = BadgerStorage
	c.Storage.Path = filepath.Join("data", "state")
	return c
}

// Factory returns an entry factory for the repository settings.
func (c *Config) Factory() repository.Factory {
	return repository.Factory{LegacyMultiSign: c.Repository.LegacyMultiSign}
}

// NewLogger returns a logger for the configured format and level.
func (c *Config) NewLogger(w io.Writer) (log.Logger, error) {
	return logging.NewLogger(w, c.LogFormat, c.LogLevel, false)
}

// OpenStore opens the configured key-value store. A relative path is resolved
// against root.
func (c *Config) OpenStore(root string, logger log.Logger) (keyvalue.Beginner, io.Closer, error) {
	path := MakeAbsolute(root, c.Storage.Path)
	switch c.Storage.Type {
	case MemoryStorage:
		db := memory.New()
		return db, db, nil

	case BadgerStorage:
		db, err := badger.New(path, badger.WithLogger(logger))
		if err != nil {
			return nil, nil, errors.UnknownError.Wrap(err)
		}
		return db, db, nil

	case BoltStorage:
		db, err := bolt.Open(path)
		if err != nil {
			return nil, nil, errors.UnknownError.Wrap(err)
		}
		return db, db, nil

	case LevelDBStorage:
		db, err := leveldb.OpenFile(path)
		if err != nil {
			return nil, nil, errors.UnknownError.Wrap(err)
		}
		return db, db, nil
	}
	return nil, nil, errors.BadRequest.WithFormat("unknown storage type %q", c.Storage.Type)
}

func MakeAbsolute(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// Load reads a configuration file, filling in defaults for missing values.
func Load(file string) (*Config, error) {
	c := Default()
	err := load(file, c)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Store writes the configuration to a file.
func Store(c *Config, file string) error {
	err := os.MkdirAll(filepath.Dir(file), 0700)
	if err != nil {
		return errors.UnknownError.WithFormat("create %q: %w", filepath.Dir(file), err)
	}

	f, err := os.Create(file)
	if err != nil {
		return errors.UnknownError.WithFormat("create %q: %w", file, err)
	}
	defer f.Close()

	err = toml.NewEncoder(f).Encode(c)
	if err != nil {
		return errors.EncodingError.WithFormat("encode %q: %w", file, err)
	}
	return nil
}

func load(file string, c interface{}) error {
	v := viper.New()
	v.SetConfigFile(file)
	v.SetEnvPrefix("VMSTATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	err := v.ReadInConfig()
	if err != nil {
		return errors.UnknownError.WithFormat("read: %w", err)
	}

	err = v.Unmarshal(c)
	if err != nil {
		return errors.EncodingError.WithFormat("unmarshal: %w", err)
	}

	return nil
}
