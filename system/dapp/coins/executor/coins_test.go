// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"testing"

	"github.com/33cn/lottery/blockchain"
	dbm "github.com/33cn/lottery/common/db"
	cty "github.com/33cn/lottery/system/dapp/coins/types"
	"github.com/33cn/lottery/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = common.HexToAddress("0xa000000000000000000000000000000000000001")
	bob   = common.HexToAddress("0xb000000000000000000000000000000000000002")
)

func init() {
	Init(driverName)
}

func newTestChain(t *testing.T) *blockchain.BlockChain {
	db, err := dbm.NewDB("test", dbm.MemDBBackendStr, "", 0)
	require.Nil(t, err)
	chain, err := blockchain.NewWithDB(db, []*types.GenesisAlloc{{Addr: alice.Hex(), Amount: "1000"}})
	require.Nil(t, err)
	return chain
}

func TestCoinsTransfer(t *testing.T) {
	chain := newTestChain(t)
	tx := cty.NewTransferTx(&types.Transaction{From: alice, To: bob, Value: uint256.NewInt(100)}, "")
	receipt, height, err := chain.SendTx(tx)
	require.Nil(t, err)
	assert.Equal(t, int64(1), height)
	assert.Equal(t, int32(types.ExecOk), receipt.Ty)

	assert.Equal(t, uint64(900), chain.GetBalance(alice).GetBalance().Uint64())
	assert.Equal(t, uint64(100), chain.GetBalance(bob).GetBalance().Uint64())

	reply, err := chain.Query(cty.CoinsX, "GetBalance", &types.ReqAddr{Addr: bob.Hex()})
	require.Nil(t, err)
	assert.Equal(t, uint64(100), reply.(*types.Account).GetBalance().Uint64())

	records, err := chain.CommitLog().Query(&blockchain.Filter{Name: types.NameLogTransfer, ToBlock: blockchain.LatestBlock})
	require.Nil(t, err)
	assert.Len(t, records, 2)
}

func TestCoinsTransferNoBalance(t *testing.T) {
	chain := newTestChain(t)
	tx := cty.NewTransferTx(&types.Transaction{From: bob, To: alice, Value: uint256.NewInt(1)}, "")
	receipt, _, err := chain.SendTx(tx)
	assert.Equal(t, types.ErrNoBalance, err)
	assert.Equal(t, int32(types.ExecErr), receipt.Ty)

	_, err = chain.Query(cty.CoinsX, "GetBalance", &types.ReqAddr{Addr: "bad"})
	assert.Equal(t, types.ErrInvalidAddress, err)
}
