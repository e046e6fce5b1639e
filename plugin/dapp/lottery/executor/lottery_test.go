// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"testing"

	"github.com/33cn/lottery/blockchain"
	"github.com/33cn/lottery/common/address"
	dbm "github.com/33cn/lottery/common/db"
	"github.com/33cn/lottery/common/hashchain"
	pty "github.com/33cn/lottery/plugin/dapp/lottery/types"
	coinsexec "github.com/33cn/lottery/system/dapp/coins/executor"
	cty "github.com/33cn/lottery/system/dapp/coins/types"
	"github.com/33cn/lottery/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	owner    = common.HexToAddress("0xa000000000000000000000000000000000000001")
	stranger = common.HexToAddress("0xb000000000000000000000000000000000000002")

	saltHash  = crypto.Keccak256Hash([]byte("salt"))
	saltNHash = crypto.Keccak256Hash([]byte("saltN"))
)

func init() {
	coinsexec.Init(cty.CoinsX)
	Init(driverName)
}

func newTestChain(t *testing.T) *blockchain.BlockChain {
	db, err := dbm.NewDB("test", dbm.MemDBBackendStr, "", 0)
	require.Nil(t, err)
	chain, err := blockchain.NewWithDB(db, []*types.GenesisAlloc{
		{Addr: owner.Hex(), Amount: "100000000000000000000"},
		{Addr: stranger.Hex(), Amount: "5"},
	})
	require.Nil(t, err)
	return chain
}

func deployFactory(t *testing.T, chain *blockchain.BlockChain, from common.Address) common.Address {
	tx, err := pty.CreateRawDeployFactoryTx(&pty.DeployFactoryTx{From: from, Version: "0.1.2"})
	require.Nil(t, err)
	receipt, _, err := chain.SendTx(tx)
	require.Nil(t, err)
	require.Equal(t, int32(types.ExecOk), receipt.Ty)
	v, err := types.DecodeLog(pty.LotteryX, receipt.Logs[0].Ty, receipt.Logs[0].Log)
	require.Nil(t, err)
	return common.HexToAddress(v.(*pty.ReceiptFactoryDeployed).Factory)
}

func createRoundTx(t *testing.T, from, factory common.Address, value *uint256.Int) *types.Transaction {
	tx, err := pty.CreateRawCreateRoundTx(&pty.CreateRoundTx{
		From:      from,
		Factory:   factory,
		SaltHash:  saltHash,
		SaltNHash: saltNHash,
		Value:     value,
	})
	require.Nil(t, err)
	return tx
}

func queryRound(t *testing.T, chain *blockchain.BlockChain, addr common.Address) *pty.LotteryRound {
	reply, err := chain.Query(pty.LotteryX, "GetRound", &pty.ReqRound{Addr: addr.Hex()})
	require.Nil(t, err)
	return reply.(*pty.LotteryRound)
}

func queryFactory(t *testing.T, chain *blockchain.BlockChain, addr common.Address) *pty.LotteryFactory {
	reply, err := chain.Query(pty.LotteryX, "GetFactory", &pty.ReqFactory{Addr: addr.Hex()})
	require.Nil(t, err)
	return reply.(*pty.LotteryFactory)
}

func roundBalance(t *testing.T, chain *blockchain.BlockChain, addr common.Address) *uint256.Int {
	reply, err := chain.Query(pty.LotteryX, "GetBalance", &pty.ReqRound{Addr: addr.Hex()})
	require.Nil(t, err)
	return reply.(*types.Account).GetBalance()
}

func lotteryRecords(t *testing.T, chain *blockchain.BlockChain, name string) []*types.Record {
	records, err := chain.CommitLog().Query(&blockchain.Filter{Name: name, ToBlock: blockchain.LatestBlock})
	require.Nil(t, err)
	return records
}

func TestDeployFactory(t *testing.T) {
	chain := newTestChain(t)
	factory := deployFactory(t, chain, owner)
	assert.Equal(t, address.ContractAddress(owner, 0), factory)

	f := queryFactory(t, chain, factory)
	assert.Equal(t, owner.Hex(), f.Owner)
	assert.Equal(t, "0.1.2", f.Version)
	assert.Equal(t, int64(0), f.RoundCount)

	records := lotteryRecords(t, chain, pty.NameLogFactoryDeployed)
	require.Len(t, records, 1)
	assert.Equal(t, factory.Bytes(), records[0].Emitter)

	//同一个 owner 第二次部署得到新的地址
	factory2 := deployFactory(t, chain, owner)
	assert.Equal(t, address.ContractAddress(owner, 1), factory2)
	assert.NotEqual(t, factory, factory2)
}

func TestDeployFactoryInvalid(t *testing.T) {
	chain := newTestChain(t)
	tx, err := pty.CreateRawDeployFactoryTx(&pty.DeployFactoryTx{From: owner})
	require.Nil(t, err)
	receipt, _, err := chain.SendTx(tx)
	assert.Equal(t, types.ErrInvalidParam, errors.Cause(err))
	assert.Equal(t, int32(types.ExecErr), receipt.Ty)

	tx, err = pty.CreateRawDeployFactoryTx(&pty.DeployFactoryTx{From: owner, Version: "0.1.2"})
	require.Nil(t, err)
	tx.Value = uint256.NewInt(1)
	_, _, err = chain.SendTx(tx)
	assert.Equal(t, types.ErrInvalidParam, errors.Cause(err))
	assert.Empty(t, lotteryRecords(t, chain, pty.NameLogFactoryDeployed))
}

func TestCreateRoundZeroValue(t *testing.T) {
	chain := newTestChain(t)
	factory := deployFactory(t, chain, owner)

	receipt, height, err := chain.SendTx(createRoundTx(t, owner, factory, nil))
	require.Nil(t, err)
	require.Equal(t, int32(types.ExecOk), receipt.Ty)
	roundAddr := address.ContractAddress(factory, 1)

	assert.True(t, roundBalance(t, chain, roundAddr).IsZero())

	created := lotteryRecords(t, chain, pty.NameLogRoundCreated)
	started := lotteryRecords(t, chain, pty.NameLogRoundStarted)
	require.Len(t, created, 1)
	require.Len(t, started, 1)
	assert.Equal(t, height, created[0].Height)
	assert.Equal(t, height, started[0].Height)
	assert.Equal(t, factory.Bytes(), created[0].Emitter)
	assert.Equal(t, roundAddr.Bytes(), started[0].Emitter)

	v, err := created[0].Decode()
	require.Nil(t, err)
	assert.Equal(t, "0.1.2", v.(*pty.ReceiptRoundCreated).Version)
	assert.Equal(t, roundAddr.Hex(), v.(*pty.ReceiptRoundCreated).NewRound)

	v, err = started[0].Decode()
	require.Nil(t, err)
	start := v.(*pty.ReceiptRoundStarted)
	assert.Equal(t, saltHash.Bytes(), start.SaltHash)
	assert.Equal(t, saltNHash.Bytes(), start.SaltNHash)
	assert.Equal(t, height+pty.RoundLength, start.ClosingBlock)
	assert.Equal(t, "0.1.2", start.Version)

	round := queryRound(t, chain, roundAddr)
	assert.Equal(t, height, round.CreationBlock)
	assert.Equal(t, round.CreationBlock+pty.RoundLength, round.ClosingBlock)
	assert.Equal(t, int32(pty.RoundStarted), round.Status)
	assert.Equal(t, factory.Hex(), round.Factory)
	assert.Equal(t, int64(1), queryFactory(t, chain, factory).RoundCount)
}

func TestCreateRoundWithValue(t *testing.T) {
	chain := newTestChain(t)
	factory := deployFactory(t, chain, owner)
	before := chain.GetBalance(owner).GetBalance()

	value, err := uint256.FromDecimal("10000000000000000000")
	require.Nil(t, err)
	_, _, err = chain.SendTx(createRoundTx(t, owner, factory, value))
	require.Nil(t, err)
	roundAddr := address.ContractAddress(factory, 1)

	assert.Equal(t, value, roundBalance(t, chain, roundAddr))
	assert.True(t, chain.GetBalance(factory).GetBalance().IsZero())
	assert.Equal(t, new(uint256.Int).Sub(before, value), chain.GetBalance(owner).GetBalance())

	//小额
	_, _, err = chain.SendTx(createRoundTx(t, owner, factory, uint256.NewInt(10)))
	require.Nil(t, err)
	assert.Equal(t, uint64(10), roundBalance(t, chain, address.ContractAddress(factory, 2)).Uint64())
	assert.Len(t, lotteryRecords(t, chain, pty.NameLogRoundCreated), 2)
	assert.Len(t, lotteryRecords(t, chain, pty.NameLogRoundStarted), 2)
}

func TestRoundBalanceIgnoresCoinsTransfer(t *testing.T) {
	chain := newTestChain(t)
	factory := deployFactory(t, chain, owner)
	roundAddr := address.ContractAddress(factory, 1)

	//轮次地址可以预先算出，创建之前往这个地址转账
	_, _, err := chain.SendTx(cty.NewTransferTx(&types.Transaction{From: stranger, To: roundAddr, Value: uint256.NewInt(3)}, ""))
	require.Nil(t, err)
	assert.Equal(t, uint64(3), chain.GetBalance(roundAddr).GetBalance().Uint64())

	_, _, err = chain.SendTx(createRoundTx(t, owner, factory, uint256.NewInt(10)))
	require.Nil(t, err)
	assert.Equal(t, uint64(10), roundBalance(t, chain, roundAddr).Uint64())

	//创建之后的普通转账也不改变一轮的余额
	_, _, err = chain.SendTx(cty.NewTransferTx(&types.Transaction{From: owner, To: roundAddr, Value: uint256.NewInt(100)}, ""))
	require.Nil(t, err)
	assert.Equal(t, uint64(10), roundBalance(t, chain, roundAddr).Uint64())
	assert.Equal(t, uint64(103), chain.GetBalance(roundAddr).GetBalance().Uint64())

	//金额由 lottery 执行器地址持有
	assert.Equal(t, uint64(10), chain.GetBalance(address.ExecAddress(pty.LotteryX)).GetBalance().Uint64())
}

func TestCreateRoundUnauthorized(t *testing.T) {
	chain := newTestChain(t)
	factory := deployFactory(t, chain, owner)

	receipt, _, err := chain.SendTx(createRoundTx(t, stranger, factory, uint256.NewInt(2)))
	assert.Equal(t, types.ErrUnauthorized, errors.Cause(err))
	assert.Equal(t, int32(types.ExecErr), receipt.Ty)

	assert.Equal(t, int64(0), queryFactory(t, chain, factory).RoundCount)
	assert.Equal(t, uint64(5), chain.GetBalance(stranger).GetBalance().Uint64())
	assert.Empty(t, lotteryRecords(t, chain, pty.NameLogRoundCreated))
	assert.Empty(t, lotteryRecords(t, chain, pty.NameLogRoundStarted))

	_, err = chain.Query(pty.LotteryX, "GetRound", &pty.ReqRound{Addr: address.ContractAddress(factory, 1).Hex()})
	assert.Equal(t, types.ErrNotFound, errors.Cause(err))
}

func TestCreateRoundOutOfResources(t *testing.T) {
	chain := newTestChain(t)
	factory := deployFactory(t, chain, owner)
	balance := chain.GetBalance(owner).GetBalance()

	value := new(uint256.Int).AddUint64(balance, 1)
	_, _, err := chain.SendTx(createRoundTx(t, owner, factory, value))
	assert.Equal(t, types.ErrOutOfResources, errors.Cause(err))

	assert.Equal(t, balance, chain.GetBalance(owner).GetBalance())
	assert.Equal(t, int64(0), queryFactory(t, chain, factory).RoundCount)
	assert.Empty(t, lotteryRecords(t, chain, pty.NameLogRoundStarted))
	assert.Empty(t, lotteryRecords(t, chain, types.NameLogTransfer))
}

func TestCreateRoundInvalid(t *testing.T) {
	chain := newTestChain(t)
	factory := deployFactory(t, chain, owner)

	tx := createRoundTx(t, owner, factory, nil)
	tx.Payload = types.Encode(&pty.LotteryAction{
		Ty:          pty.LotteryActionCreateRound,
		CreateRound: &pty.RoundCreate{SaltHash: []byte{1}, SaltNHash: saltNHash.Bytes()},
	})
	_, _, err := chain.SendTx(tx)
	assert.Equal(t, types.ErrInvalidParam, errors.Cause(err))

	//目标地址不是工厂
	_, _, err = chain.SendTx(createRoundTx(t, owner, stranger, nil))
	assert.Equal(t, types.ErrNotFound, errors.Cause(err))
	assert.Empty(t, lotteryRecords(t, chain, pty.NameLogRoundCreated))
}

func TestRoundCommitmentRoundTrip(t *testing.T) {
	chain := newTestChain(t)
	factory := deployFactory(t, chain, owner)

	secret := crypto.Keccak256Hash([]byte("secret"))
	c, err := hashchain.NewCommitment(secret, 12)
	require.Nil(t, err)
	tx, err := pty.CreateRawCreateRoundTx(&pty.CreateRoundTx{
		From:      owner,
		Factory:   factory,
		SaltHash:  c.SaltHash,
		SaltNHash: c.SaltNHash,
		Picks:     []byte("opaque picks"),
	})
	require.Nil(t, err)
	_, _, err = chain.SendTx(tx)
	require.Nil(t, err)
	roundAddr := address.ContractAddress(factory, 1)

	for i := 0; i < 3; i++ {
		reply, err := chain.Query(pty.LotteryX, "GetSaltHash", &pty.ReqRound{Addr: roundAddr.Hex()})
		require.Nil(t, err)
		assert.Equal(t, c.SaltHash.Bytes(), reply.(*types.ReplyHash).Hash)
		reply, err = chain.Query(pty.LotteryX, "GetSaltNHash", &pty.ReqRound{Addr: roundAddr.Hex()})
		require.Nil(t, err)
		assert.Equal(t, c.SaltNHash.Bytes(), reply.(*types.ReplyHash).Hash)
		//其他区块不改变承诺
		_, _, err = chain.SendTx(cty.NewTransferTx(&types.Transaction{From: owner, To: stranger, Value: uint256.NewInt(1)}, ""))
		require.Nil(t, err)
	}
	round := queryRound(t, chain, roundAddr)
	assert.Equal(t, []byte("opaque picks"), round.Picks)
	ok, err := hashchain.Verify(secret, 12, common.BytesToHash(round.SaltHash), common.BytesToHash(round.SaltNHash))
	require.Nil(t, err)
	assert.True(t, ok)
}

func TestFactoryRounds(t *testing.T) {
	chain := newTestChain(t)
	factory := deployFactory(t, chain, owner)
	for i := 0; i < 3; i++ {
		_, _, err := chain.SendTx(createRoundTx(t, owner, factory, nil))
		require.Nil(t, err)
	}
	rounds := func(req *pty.ReqFactoryRounds) []string {
		req.Addr = factory.Hex()
		reply, err := chain.Query(pty.LotteryX, "GetFactoryRounds", req)
		require.Nil(t, err)
		return reply.(*pty.ReplyFactoryRounds).Rounds
	}
	r1 := address.ContractAddress(factory, 1).Hex()
	r2 := address.ContractAddress(factory, 2).Hex()
	r3 := address.ContractAddress(factory, 3).Hex()
	assert.Equal(t, []string{r1, r2, r3}, rounds(&pty.ReqFactoryRounds{Direction: pty.ListASC}))
	assert.Equal(t, []string{r3, r2, r1}, rounds(&pty.ReqFactoryRounds{Direction: pty.ListDESC}))
	assert.Equal(t, []string{r2, r3}, rounds(&pty.ReqFactoryRounds{Start: 2, Direction: pty.ListASC}))
	assert.Equal(t, []string{r2}, rounds(&pty.ReqFactoryRounds{Start: 2, Count: 1, Direction: pty.ListDESC}))
	assert.Empty(t, rounds(&pty.ReqFactoryRounds{Start: 4, Direction: pty.ListASC}))

	_, err := chain.Query(pty.LotteryX, "GetFactoryRounds", &pty.ReqFactoryRounds{Addr: factory.Hex(), Direction: 7})
	assert.Equal(t, types.ErrInvalidParam, errors.Cause(err))
	_, err = chain.Query(pty.LotteryX, "GetFactoryRounds", &pty.ReqFactoryRounds{Addr: "bad"})
	assert.Equal(t, types.ErrInvalidAddress, err)
}

func TestCheckTransition(t *testing.T) {
	assert.Nil(t, checkTransition(pty.RoundCreated, pty.RoundStarted))
	assert.Equal(t, types.ErrInvalidTransition, errors.Cause(checkTransition(pty.RoundStarted, pty.RoundStarted)))
	assert.Equal(t, types.ErrInvalidTransition, errors.Cause(checkTransition(pty.RoundStarted, pty.RoundCreated)))

	round := NewRoundDB(stranger, owner, &pty.RoundCreate{SaltHash: saltHash.Bytes(), SaltNHash: saltNHash.Bytes()}, "0.1.2", 7)
	l, err := round.Start()
	require.Nil(t, err)
	assert.Equal(t, int32(pty.TyLogLotteryRoundStarted), l.Ty)
	assert.Equal(t, int64(7+pty.RoundLength), round.ClosingBlock)
	_, err = round.Start()
	assert.Equal(t, types.ErrInvalidTransition, errors.Cause(err))
}
