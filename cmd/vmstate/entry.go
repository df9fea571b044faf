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

	"github.com/davecgh/go-spew/spew"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gitlab.com/accumulatenetwork/vmstate/pkg/errors"
	"gitlab.com/accumulatenetwork/vmstate/pkg/types/chain"
	"gitlab.com/accumulatenetwork/vmstate/pkg/vm/repository"
	"gopkg.in/yaml.v3"
)

var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print an entry",
	Args:  cobra.ExactArgs(1),
	Run:   getEntry,
}

var putCmd = &cobra.Command{
	Use:   "put <key> <hex data>",
	Short: "Write an entry",
	Args:  cobra.ExactArgs(2),
	Run:   putEntry,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete an entry",
	Args:  cobra.ExactArgs(1),
	Run:   deleteEntry,
}

var getFlag = struct {
	Shape string
}{}

func init() {
	cmd.AddCommand(getCmd, putCmd, deleteCmd)
	getCmd.Flags().StringVarP(&getFlag.Shape, "shape", "s", "", "Decode the entry as the given shape (account, transaction, block, ...)")
}

func getEntry(_ *cobra.Command, args []string) {
	cache, _, closer := openCache(loadConfig())
	defer closer.Close()

	e, err := cache.Get(parseKey(args[0]))
	check(err)
	printEntry(os.Stdout, args[0], e, repository.Shape(getFlag.Shape))
}

func putEntry(_ *cobra.Command, args []string) {
	data, err := hex.DecodeString(args[1])
	checkf(err, "invalid data")

	cache, _, closer := openCache(loadConfig())
	defer closer.Close()

	key := parseKey(args[0])
	check(cache.PutBytes(key, data))
	e, err := cache.Get(key)
	check(err)
	check(cache.Commit())

	fmt.Printf("%s %s (%v)\n", color.GreenString("✔"), args[0], e.Tag())
}

func deleteEntry(_ *cobra.Command, args []string) {
	cache, _, closer := openCache(loadConfig())
	defer closer.Close()

	key := parseKey(args[0])
	e, err := cache.Get(key)
	check(err)
	if e.IsEmpty() {
		fmt.Printf("%s %s does not exist\n", color.YellowString("!"), args[0])
		return
	}

	check(cache.Delete(key))
	check(cache.Commit())
	fmt.Printf("%s %s deleted\n", color.GreenString("✔"), args[0])
}

func printEntry(w io.Writer, key string, e *repository.Entry, shape repository.Shape) {
	status := color.GreenString(e.Tag().String())
	if e.IsEmpty() {
		status = color.YellowString("empty")
	}
	fmt.Fprintf(w, "%s [%s] %s\n", key, status, humanize.Bytes(uint64(len(e.Any()))))

	if shape == "" {
		return
	}

	v, err := repository.DecodeShape(e, shape)
	switch {
	case err == nil:
		printValue(w, v)
	case errors.Is(err, errors.NotFound):
		// Nothing to show
	default:
		fmt.Fprintf(w, "%s cannot decode as %s: %v\n", color.RedString("🗴"), shape, err)
	}
}

func printValue(w io.Writer, v any) {
	// The contract view hides its metadata
	if c, ok := v.(*chain.Contract); ok {
		v = c.Instance()
	}

	switch flag.Output {
	case "yaml":
		b, err := yaml.Marshal(v)
		check(err)
		_, _ = w.Write(b)
	default:
		spew.Fdump(w, v)
	}
}
