// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/lottery/common/address"
	pty "github.com/33cn/lottery/plugin/dapp/lottery/types"
	"github.com/33cn/lottery/types"
)

func (l *Lottery) findRound(addr string) (*RoundDB, error) {
	a, err := address.NewAddrFromString(addr)
	if err != nil {
		return nil, err
	}
	return findRound(l.GetStateDB(), a)
}

// Query_GetRound 一轮的完整状态
func (l *Lottery) Query_GetRound(param *pty.ReqRound) (types.Message, error) {
	round, err := l.findRound(param.Addr)
	if err != nil {
		return nil, err
	}
	return &round.LotteryRound, nil
}

// Query_GetSaltHash 哈希链承诺
func (l *Lottery) Query_GetSaltHash(param *pty.ReqRound) (types.Message, error) {
	round, err := l.findRound(param.Addr)
	if err != nil {
		return nil, err
	}
	return &types.ReplyHash{Hash: round.SaltHash}, nil
}

// Query_GetSaltNHash 绑定承诺
func (l *Lottery) Query_GetSaltNHash(param *pty.ReqRound) (types.Message, error) {
	round, err := l.findRound(param.Addr)
	if err != nil {
		return nil, err
	}
	return &types.ReplyHash{Hash: round.SaltNHash}, nil
}

// Query_GetBalance 一轮当前的余额，即托管在 lottery 执行器下的账户
func (l *Lottery) Query_GetBalance(param *pty.ReqRound) (types.Message, error) {
	round, err := l.findRound(param.Addr)
	if err != nil {
		return nil, err
	}
	return l.GetCoinsAccount().LoadExecAccount(round.address(), address.ExecAddress(l.GetName())), nil
}

// Query_GetFactory 工厂状态
func (l *Lottery) Query_GetFactory(param *pty.ReqFactory) (types.Message, error) {
	addr, err := address.NewAddrFromString(param.Addr)
	if err != nil {
		return nil, err
	}
	factory, err := findFactory(l.GetStateDB(), addr)
	if err != nil {
		return nil, err
	}
	return &factory.LotteryFactory, nil
}

// Query_GetFactoryRounds 工厂创建的轮次列表
func (l *Lottery) Query_GetFactoryRounds(param *pty.ReqFactoryRounds) (types.Message, error) {
	return ListFactoryRounds(l.GetStateDB(), param)
}
