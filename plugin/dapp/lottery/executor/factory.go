// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"strconv"

	"github.com/33cn/lottery/common/address"
	dbm "github.com/33cn/lottery/common/db"
	pty "github.com/33cn/lottery/plugin/dapp/lottery/types"
	"github.com/33cn/lottery/types"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// FactoryDB 工厂的状态
type FactoryDB struct {
	pty.LotteryFactory
}

// NewFactoryDB new
func NewFactoryDB(addr, owner ethcommon.Address, version string) *FactoryDB {
	factory := &FactoryDB{}
	factory.Address = addr.Hex()
	factory.Owner = owner.Hex()
	factory.Version = version
	return factory
}

func (factory *FactoryDB) address() ethcommon.Address {
	return ethcommon.HexToAddress(factory.Address)
}

// IsOwner 只有 owner 可以创建新的一轮
func (factory *FactoryDB) IsOwner(caller ethcommon.Address) bool {
	return factory.Owner == caller.Hex()
}

// NextRoundAddress 下一轮的地址，由工厂地址和序号决定
func (factory *FactoryDB) NextRoundAddress() ethcommon.Address {
	return address.ContractAddress(factory.address(), uint64(factory.RoundCount+1))
}

//轮次列表只追加，序号从1开始
func (factory *FactoryDB) appendRound(round ethcommon.Address) *types.KeyValue {
	factory.RoundCount++
	return &types.KeyValue{
		Key:   calcFactoryRoundKey(factory.address(), factory.RoundCount),
		Value: []byte(round.Hex()),
	}
}

// GetKVSet 状态数据库中的kv
func (factory *FactoryDB) GetKVSet() (kvset []*types.KeyValue) {
	value := types.Encode(&factory.LotteryFactory)
	kvset = append(kvset, &types.KeyValue{Key: calcFactoryKey(factory.address()), Value: value})
	return kvset
}

func findFactory(db dbm.KV, addr ethcommon.Address) (*FactoryDB, error) {
	data, err := db.Get(calcFactoryKey(addr))
	if err != nil {
		if err == types.ErrNotFound {
			return nil, errors.Wrapf(err, "%s %s", pty.ErrFactoryNotFound, addr.Hex())
		}
		llog.Error("findFactory", "addr", addr.Hex(), "err", err)
		return nil, err
	}
	factory := &FactoryDB{}
	if err := types.Decode(data, &factory.LotteryFactory); err != nil {
		llog.Error("findFactory decode", "addr", addr.Hex(), "err", err)
		return nil, err
	}
	return factory, nil
}

func getFactoryRound(db dbm.KV, addr ethcommon.Address, index int64) (string, error) {
	data, err := db.Get(calcFactoryRoundKey(addr, index))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ListFactoryRounds 按序号分页列出工厂创建的轮次
func ListFactoryRounds(db dbm.KV, req *pty.ReqFactoryRounds) (*pty.ReplyFactoryRounds, error) {
	addr, err := address.NewAddrFromString(req.Addr)
	if err != nil {
		return nil, err
	}
	factory, err := findFactory(db, addr)
	if err != nil {
		return nil, err
	}
	count := req.Count
	if count <= 0 {
		count = pty.DefultCount
	}
	if count > pty.MaxCount {
		count = pty.MaxCount
	}
	var next func(int64) int64
	start := req.Start
	switch req.Direction {
	case pty.ListASC:
		if start <= 0 {
			start = 1
		}
		next = func(i int64) int64 { return i + 1 }
	case pty.ListDESC:
		if start <= 0 || start > factory.RoundCount {
			start = factory.RoundCount
		}
		next = func(i int64) int64 { return i - 1 }
	default:
		return nil, errors.Wrapf(types.ErrInvalidParam, "direction %d", req.Direction)
	}
	reply := &pty.ReplyFactoryRounds{}
	for i := start; i >= 1 && i <= factory.RoundCount && int32(len(reply.Rounds)) < count; i = next(i) {
		round, err := getFactoryRound(db, addr, i)
		if err != nil {
			llog.Error("ListFactoryRounds", "factory", req.Addr, "index", i, "err", err)
			return nil, err
		}
		reply.Rounds = append(reply.Rounds, round)
	}
	return reply, nil
}

func loadDeployNonce(db dbm.KV, owner ethcommon.Address) (uint64, error) {
	data, err := db.Get(calcDeployNonceKey(owner))
	if err == types.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	nonce, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "parse deploy nonce")
	}
	return nonce, nil
}
