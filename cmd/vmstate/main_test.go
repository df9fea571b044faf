// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/vmstate/pkg/errors"
	"gitlab.com/accumulatenetwork/vmstate/pkg/types/chain"
	"gitlab.com/accumulatenetwork/vmstate/pkg/vm/repository"
)

func withFlags(t *testing.T, keyFormat, output string) {
	old := flag
	flag.KeyFormat, flag.Output = keyFormat, output
	t.Cleanup(func() { flag = old })
}

func TestKeyFormats(t *testing.T) {
	key := []byte{0x41, 0x01, 0x02, 0xff}
	for _, format := range []string{"text", "hex", "base58"} {
		t.Run(format, func(t *testing.T) {
			withFlags(t, format, "spew")
			require.Equal(t, key, parseKey(formatKey(key)))
		})
	}
}

func TestPrintEntry(t *testing.T) {
	color.NoColor = true
	withFlags(t, "text", "yaml")

	acct := &chain.Account{Name: "alice", Balance: 42}
	b, err := acct.MarshalBinary()
	require.NoError(t, err)

	buf := new(bytes.Buffer)
	printEntry(buf, "alice", repository.Factory{}.Bytes(b), repository.ShapeAccount)
	require.Contains(t, buf.String(), "alice [normal]")
	require.Contains(t, buf.String(), "balance: 42")

	buf.Reset()
	printEntry(buf, "nothing", repository.Factory{}.Bytes(nil), repository.ShapeAccount)
	require.Equal(t, "nothing [empty] 0 B\n", buf.String())

	buf.Reset()
	printEntry(buf, "garbage", repository.Factory{}.Bytes([]byte("garbage")), repository.ShapeTransaction)
	require.Contains(t, buf.String(), "cannot decode as transaction")
}

func TestDescribe(t *testing.T) {
	errors.EnableLocationTracking()
	defer errors.DisableLocationTracking()

	err := errors.BadRequest.With("unknown shape")
	require.Equal(t, "unknown shape", describe(err))

	err = errors.InternalError.With("disk on fire")
	require.Contains(t, describe(err), "main_test.go")
}
