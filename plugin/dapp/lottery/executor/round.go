// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/lottery/common"
	dbm "github.com/33cn/lottery/common/db"
	pty "github.com/33cn/lottery/plugin/dapp/lottery/types"
	"github.com/33cn/lottery/types"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// 允许的状态迁移，开奖等后续阶段在这里扩展
var transitions = map[int32][]int32{
	pty.RoundCreated: {pty.RoundStarted},
}

func checkTransition(from, to int32) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return errors.Wrapf(types.ErrInvalidTransition, "round status %d -> %d", from, to)
}

// RoundDB 一轮的状态
type RoundDB struct {
	pty.LotteryRound
}

// NewRoundDB 新建一轮，状态为 Created
func NewRoundDB(addr, factory ethcommon.Address, create *pty.RoundCreate, version string, height int64) *RoundDB {
	round := &RoundDB{}
	round.Address = addr.Hex()
	round.Factory = factory.Hex()
	round.SaltHash = common.CopyBytes(create.SaltHash)
	round.SaltNHash = common.CopyBytes(create.SaltNHash)
	round.Picks = common.CopyBytes(create.Picks)
	round.Version = version
	round.CreationBlock = height
	round.Status = pty.RoundCreated
	return round
}

// Start 固定截止高度并进入 Started，返回由这一轮发出的 RoundStarted 日志
func (round *RoundDB) Start() (*types.ReceiptLog, error) {
	if err := checkTransition(round.Status, pty.RoundStarted); err != nil {
		return nil, err
	}
	round.ClosingBlock = round.CreationBlock + pty.RoundLength
	round.Status = pty.RoundStarted
	l := &pty.ReceiptRoundStarted{
		SaltHash:     round.SaltHash,
		SaltNHash:    round.SaltNHash,
		ClosingBlock: round.ClosingBlock,
		Version:      round.Version,
		Picks:        round.Picks,
	}
	return &types.ReceiptLog{
		Ty:      pty.TyLogLotteryRoundStarted,
		Emitter: round.address().Bytes(),
		Log:     types.Encode(l),
	}, nil
}

func (round *RoundDB) address() ethcommon.Address {
	return ethcommon.HexToAddress(round.Address)
}

// GetKVSet 状态数据库中的kv
func (round *RoundDB) GetKVSet() (kvset []*types.KeyValue) {
	value := types.Encode(&round.LotteryRound)
	kvset = append(kvset, &types.KeyValue{Key: calcRoundKey(round.address()), Value: value})
	return kvset
}

func findRound(db dbm.KV, addr ethcommon.Address) (*RoundDB, error) {
	data, err := db.Get(calcRoundKey(addr))
	if err != nil {
		if err == types.ErrNotFound {
			return nil, errors.Wrapf(err, "%s %s", pty.ErrRoundNotFound, addr.Hex())
		}
		llog.Error("findRound", "addr", addr.Hex(), "err", err)
		return nil, err
	}
	round := &RoundDB{}
	if err := types.Decode(data, &round.LotteryRound); err != nil {
		llog.Error("findRound decode", "addr", addr.Hex(), "err", err)
		return nil, err
	}
	return round, nil
}
