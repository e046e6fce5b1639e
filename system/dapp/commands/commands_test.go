// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/33cn/lottery/blockchain"
	coinsexec "github.com/33cn/lottery/system/dapp/coins/executor"
	cty "github.com/33cn/lottery/system/dapp/coins/types"
	"github.com/33cn/lottery/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = common.HexToAddress("0xa000000000000000000000000000000000000001")
	bob   = common.HexToAddress("0xb000000000000000000000000000000000000002")
)

func init() {
	coinsexec.Init(cty.CoinsX)
}

func TestParseAmount(t *testing.T) {
	v, err := ParseAmount("10")
	require.Nil(t, err)
	assert.Equal(t, "10000000000000000000", v.ToBig().String())

	v, err = ParseAmount("0.000000000000000001")
	require.Nil(t, err)
	assert.Equal(t, uint64(1), v.Uint64())

	v, err = ParseAmount("0")
	require.Nil(t, err)
	assert.True(t, v.IsZero())

	for _, bad := range []string{"-1", "abc", "0.0000000000000000001", "1e100"} {
		_, err = ParseAmount(bad)
		assert.Equal(t, types.ErrAmount, errors.Cause(err), bad)
	}
}

func TestFormatAmount(t *testing.T) {
	v, err := uint256.FromDecimal("10500000000000000000")
	require.Nil(t, err)
	assert.Equal(t, "10.5", FormatAmount(v))
	assert.Equal(t, "0", FormatAmount(new(uint256.Int)))

	acc := &types.Account{Addr: alice.Hex()}
	acc.SetBalance(v)
	res := DecodeAccount(acc)
	assert.Equal(t, "10.5", res.Balance)
	assert.Equal(t, "10500000000000000000", res.Wei)
}

func writeConf(t *testing.T) string {
	dir, err := ioutil.TempDir("", "lottery-cli")
	require.Nil(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	conf := fmt.Sprintf(`
[store]
driver = "leveldb"
dbPath = "%s"

[[genesis]]
addr = "%s"
amount = "2000000000000000000"
`, filepath.Join(dir, "datadir"), alice.Hex())
	path := filepath.Join(dir, "lottery.toml")
	require.Nil(t, ioutil.WriteFile(path, []byte(conf), 0644))
	return path
}

func runCtx(t *testing.T, conf string, call func(chain *blockchain.BlockChain) (interface{}, error), cb Callback) []byte {
	var buf bytes.Buffer
	ctx := &ChainCtx{ConfPath: conf, Out: &buf, call: call}
	if cb != nil {
		ctx.SetResultCb(cb)
	}
	require.Nil(t, ctx.run())
	return buf.Bytes()
}

func TestChainCtxPersistent(t *testing.T) {
	conf := writeConf(t)
	out := runCtx(t, conf, func(chain *blockchain.BlockChain) (interface{}, error) {
		value, err := ParseAmount("0.5")
		if err != nil {
			return nil, err
		}
		return SendTx(chain, cty.NewTransferTx(&types.Transaction{From: alice, To: bob, Value: value}, ""))
	}, nil)
	var res TxResult
	require.Nil(t, json.Unmarshal(out, &res))
	assert.True(t, res.Ok)
	assert.Equal(t, int64(1), res.Height)
	assert.Equal(t, "Transfer", res.Action)
	assert.Equal(t, []string{types.NameLogTransfer, types.NameLogTransfer}, res.Logs)

	//重新打开后状态还在
	out = runCtx(t, conf, func(chain *blockchain.BlockChain) (interface{}, error) {
		return chain.Query(cty.CoinsX, "GetBalance", &types.ReqAddr{Addr: bob.Hex()})
	}, func(res interface{}) (interface{}, error) {
		return DecodeAccount(res.(*types.Account)), nil
	})
	var acc AccountResult
	require.Nil(t, json.Unmarshal(out, &acc))
	assert.Equal(t, "0.5", acc.Balance)
}

func TestChainCtxError(t *testing.T) {
	conf := writeConf(t)
	ctx := &ChainCtx{ConfPath: conf, Out: ioutil.Discard, call: func(chain *blockchain.BlockChain) (interface{}, error) {
		return SendTx(chain, cty.NewTransferTx(&types.Transaction{From: bob, To: alice, Value: uint256.NewInt(1)}, ""))
	}}
	assert.Equal(t, types.ErrNoBalance, errors.Cause(ctx.run()))

	_, err := LoadConfig(filepath.Join(filepath.Dir(conf), "missing.toml"))
	assert.NotNil(t, err)
	cfg, err := LoadConfig("")
	require.Nil(t, err)
	assert.Equal(t, "memdb", cfg.Store.Driver)
}
