// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"gitlab.com/accumulatenetwork/vmstate/config"
	"gitlab.com/accumulatenetwork/vmstate/pkg/database/keyvalue"
	"gitlab.com/accumulatenetwork/vmstate/pkg/errors"
	"gitlab.com/accumulatenetwork/vmstate/pkg/vm/repository"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print every stored entry",
	Args:  cobra.NoArgs,
	Run:   dump,
}

var initCmd = &cobra.Command{
	Use:   "init <file>",
	Short: "Write the default configuration to a file",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		checkf(config.Store(config.Default(), args[0]), "write %s", args[0])
	},
}

var dumpFlag = struct {
	Shape string
}{}

func init() {
	cmd.AddCommand(dumpCmd, initCmd)
	dumpCmd.Flags().StringVarP(&dumpFlag.Shape, "shape", "s", "", "Decode each entry as the given shape")
}

func dump(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	_, db, closer := openCache(cfg)
	defer closer.Close()

	walker, ok := db.(keyvalue.Walker)
	if !ok {
		fatalf("%v storage cannot be iterated", cfg.Storage.Type)
	}

	factory := cfg.Factory()
	err := walker.ForEach(func(key, value []byte) error {
		printEntry(os.Stdout, formatKey(key), factory.Bytes(value), repository.Shape(dumpFlag.Shape))
		return nil
	})
	check(errors.UnknownError.Wrap(err))
}
