// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"testing"

	"github.com/33cn/lottery/blockchain"
	dbm "github.com/33cn/lottery/common/db"
	"github.com/33cn/lottery/common/hashchain"
	lotteryexec "github.com/33cn/lottery/plugin/dapp/lottery/executor"
	pty "github.com/33cn/lottery/plugin/dapp/lottery/types"
	coinsexec "github.com/33cn/lottery/system/dapp/coins/executor"
	cty "github.com/33cn/lottery/system/dapp/coins/types"
	"github.com/33cn/lottery/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var owner = common.HexToAddress("0xa000000000000000000000000000000000000001")

func init() {
	coinsexec.Init(cty.CoinsX)
	lotteryexec.Init(pty.LotteryX)
}

func newTestChain(t *testing.T) *blockchain.BlockChain {
	db, err := dbm.NewDB("test", dbm.MemDBBackendStr, "", 0)
	require.Nil(t, err)
	chain, err := blockchain.NewWithDB(db, []*types.GenesisAlloc{{Addr: owner.Hex(), Amount: "100000000000000000000"}})
	require.Nil(t, err)
	return chain
}

func TestParseSecret(t *testing.T) {
	secret, err := ParseSecret("secret")
	require.Nil(t, err)
	assert.Equal(t, crypto.Keccak256Hash([]byte("secret")), secret)

	secret2, err := ParseSecret(secret.Hex())
	require.Nil(t, err)
	assert.Equal(t, secret, secret2)

	_, err = ParseSecret("0x1234")
	assert.Equal(t, types.ErrInvalidParam, errors.Cause(err))
}

func TestCommit(t *testing.T) {
	res, err := commit("secret", 12)
	require.Nil(t, err)
	secret := crypto.Keccak256Hash([]byte("secret"))
	c, err := hashchain.NewCommitment(secret, 12)
	require.Nil(t, err)
	assert.Equal(t, c.SaltHash.Hex(), res.SaltHash)
	assert.Equal(t, c.SaltNHash.Hex(), res.SaltNHash)

	_, err = commit("secret", 0)
	assert.Equal(t, hashchain.ErrZeroIterations, err)
}

func TestLotteryCommands(t *testing.T) {
	chain := newTestChain(t)
	d, err := deploy(chain, owner.Hex(), "0.1.2")
	require.Nil(t, err)
	assert.True(t, d.Ok)

	c, err := commit("secret", 12)
	require.Nil(t, err)
	cr, err := create(chain, &CreateParam{
		From:      owner.Hex(),
		Factory:   d.Factory,
		SaltHash:  c.SaltHash,
		SaltNHash: c.SaltNHash,
		Picks:     "0x0102",
		Amount:    "10",
	})
	require.Nil(t, err)
	assert.True(t, cr.Ok)

	round, err := showRound(chain, cr.Round)
	require.Nil(t, err)
	assert.Equal(t, "10", round.Balance)
	assert.Equal(t, c.SaltHash, round.SaltHash)
	assert.Equal(t, "0x0102", round.Picks)
	assert.Equal(t, "started", round.Status)
	assert.Equal(t, round.CreationBlock+pty.RoundLength, round.ClosingBlock)

	ok, err := verify(chain, cr.Round, "secret", 12)
	require.Nil(t, err)
	assert.True(t, ok)
	ok, err = verify(chain, cr.Round, "secret", 11)
	require.Nil(t, err)
	assert.False(t, ok)

	rounds, err := listRounds(chain, &pty.ReqFactoryRounds{Addr: d.Factory, Direction: pty.ListASC})
	require.Nil(t, err)
	assert.Equal(t, []string{cr.Round}, rounds.Rounds)
	assert.Equal(t, owner.Hex(), rounds.Owner)

	logs, err := queryLogs(chain, &LogFilter{Name: pty.NameLogRoundStarted, ToBlock: blockchain.LatestBlock})
	require.Nil(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, c.SaltHash, logs[0].Log.(map[string]interface{})["saltHash"])

	logs, err = queryLogs(chain, &LogFilter{Name: types.NameLogExecTransfer, FromBlock: cr.Height, ToBlock: cr.Height})
	require.Nil(t, err)
	require.Len(t, logs, 4)
	assert.Equal(t, "10", logs[3].Log.(map[string]interface{})["cur"])
	assert.Equal(t, cr.Round, logs[3].Log.(map[string]interface{})["addr"])

	logs, err = queryLogs(chain, &LogFilter{Emitter: d.Factory, ToBlock: blockchain.LatestBlock})
	require.Nil(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, pty.NameLogFactoryDeployed, logs[0].Name)
	assert.Equal(t, pty.NameLogRoundCreated, logs[1].Name)

	_, err = create(chain, &CreateParam{From: owner.Hex(), Factory: d.Factory, SaltHash: "0x01", SaltNHash: c.SaltNHash, Amount: "0"})
	assert.Equal(t, types.ErrInvalidParam, errors.Cause(err))
}
