// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	pty "github.com/33cn/lottery/plugin/dapp/lottery/types"
	"github.com/33cn/lottery/types"
)

// Exec_DeployFactory 部署工厂
func (l *Lottery) Exec_DeployFactory(payload *pty.FactoryDeploy, tx *types.Transaction, index int) (*types.Receipt, error) {
	actiondb := NewLotteryAction(l, tx, index)
	return actiondb.DeployFactory(payload)
}

// Exec_CreateRound 工厂创建新的一轮
func (l *Lottery) Exec_CreateRound(payload *pty.RoundCreate, tx *types.Transaction, index int) (*types.Receipt, error) {
	actiondb := NewLotteryAction(l, tx, index)
	return actiondb.CreateRound(payload)
}
