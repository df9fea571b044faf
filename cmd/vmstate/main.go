// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mr-tron/base58"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gitlab.com/accumulatenetwork/vmstate/config"
	"gitlab.com/accumulatenetwork/vmstate/pkg/database/keyvalue"
	"gitlab.com/accumulatenetwork/vmstate/pkg/errors"
	"gitlab.com/accumulatenetwork/vmstate/pkg/vm/repository"
)

var cmd = &cobra.Command{
	Use:   "vmstate",
	Short: "Inspect and modify cached VM state",
}

var flag = struct {
	Config    string
	Root      string
	KeyFormat string
	Output    string
}{}

func init() {
	setupFlags(cmd.PersistentFlags())
}

func setupFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&flag.Config, "config", "c", "", "Configuration file (defaults are used if unset)")
	fs.StringVar(&flag.Root, "root", ".", "Directory relative storage paths are resolved against")
	fs.StringVarP(&flag.KeyFormat, "key-format", "k", "text", "Key format: text, hex, or base58 (for account addresses)")
	fs.StringVarP(&flag.Output, "output", "o", "spew", "Format of decoded entries: spew or yaml")
}

func main() {
	_ = cmd.Execute()
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func check(err error) {
	if err != nil {
		fatalf("%s", describe(errors.UnknownError.Skip(1).Wrap(err)))
	}
}

func checkf(err error, format string, otherArgs ...interface{}) {
	if err != nil {
		err = errors.UnknownError.Skip(1).Wrap(err)
		fatalf(format+": %s", append(otherArgs, describe(err))...)
	}
}

// describe omits the call stack for errors caused by bad input.
func describe(err error) string {
	if errors.Code(err).IsClientError() {
		return err.Error()
	}
	return fmt.Sprintf("%+v", err)
}

func loadConfig() *config.Config {
	if flag.Config == "" {
		return config.Default()
	}
	cfg, err := config.Load(flag.Config)
	checkf(err, "load %s", flag.Config)
	return cfg
}

func parseKey(s string) []byte {
	var b []byte
	var err error
	switch flag.KeyFormat {
	case "text":
		return []byte(s)
	case "hex":
		b, err = hex.DecodeString(s)
	case "base58":
		b, err = base58.Decode(s)
	default:
		fatalf("unknown key format %q", flag.KeyFormat)
	}
	checkf(err, "invalid key %q", s)
	return b
}

func formatKey(key []byte) string {
	switch flag.KeyFormat {
	case "hex":
		return hex.EncodeToString(key)
	case "base58":
		return base58.Encode(key)
	default:
		return string(key)
	}
}

// openCache opens the configured store and returns a cache over it. The
// caller must close the returned closer.
func openCache(cfg *config.Config) (*repository.Cache, keyvalue.Beginner, io.Closer) {
	logger, err := cfg.NewLogger(os.Stderr)
	check(err)

	root, err := filepath.Abs(flag.Root)
	check(err)

	db, closer, err := cfg.OpenStore(root, logger)
	check(err)

	return repository.NewCache(db, cfg.Factory(), logger), db, closer
}
