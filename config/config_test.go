// Copyright 2022 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/vmstate/internal/logging"
	"gitlab.com/accumulatenetwork/vmstate/pkg/errors"
)

func TestPersistence(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config", "vmstate.toml")

	// Create
	cfg := Default()
	cfg.Repository.LegacyMultiSign = false
	cfg.Storage.Type = BoltStorage
	cfg.Storage.Path = "state.db"

	// Store
	require.NoError(t, Store(cfg, file))

	// Load
	lcfg, err := Load(file)
	require.NoError(t, err)

	// Should be equal
	require.Equal(t, cfg, lcfg)
	require.False(t, lcfg.Factory().LegacyMultiSign)
}

func TestLoadFillsDefaults(t *testing.T) {
	file := filepath.Join(t.TempDir(), "vmstate.toml")
	require.NoError(t, os.WriteFile(file, []byte("[storage]\ntype = \"memory\"\n"), 0600))

	cfg, err := Load(file)
	require.NoError(t, err)
	require.Equal(t, MemoryStorage, cfg.Storage.Type)
	require.True(t, cfg.Repository.LegacyMultiSign)
	require.Equal(t, DefaultLogLevels, cfg.LogLevel)
}

func TestLogLevel(t *testing.T) {
	l := LogLevel{}.Parse("error;repository=debug")
	require.Equal(t, "error", l.Default)
	require.Equal(t, [][2]string{{"repository", "debug"}}, l.Modules)
	require.Equal(t, "error;repository=debug", l.String())
}

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()
	for _, typ := range []StorageType{MemoryStorage, BadgerStorage, BoltStorage, LevelDBStorage} {
		t.Run(string(typ), func(t *testing.T) {
			cfg := Default()
			cfg.Storage.Type = typ
			cfg.Storage.Path = string(typ)

			db, closer, err := cfg.OpenStore(dir, logging.NullLogger{})
			require.NoError(t, err)
			defer func() { require.NoError(t, closer.Close()) }()

			batch := db.Begin(true)
			require.NoError(t, batch.Put([]byte("key"), []byte("value")))
			require.NoError(t, batch.Commit())

			batch = db.Begin(false)
			defer batch.Discard()
			v, err := batch.Get([]byte("key"))
			require.NoError(t, err)
			require.Equal(t, []byte("value"), v)
		})
	}

	cfg := Default()
	cfg.Storage.Type = "etcd"
	_, _, err := cfg.OpenStore(dir, nil)
	require.ErrorIs(t, err, errors.BadRequest)
}
