// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types coins 执行器的 action 定义
package types

import (
	"github.com/33cn/lottery/types"
)

// action 类型
const (
	CoinsActionTransfer = 1
)

var (
	// CoinsX 执行器名称
	CoinsX = types.CoinsX
	// ExecerCoins 执行器名称
	ExecerCoins = []byte(CoinsX)
	actionName  = map[string]int32{
		"Transfer": CoinsActionTransfer,
	}
)

func init() {
	types.RegistorExecutor(CoinsX, NewType())
}

// CoinsAction coins 的交易 payload
type CoinsAction struct {
	Ty       int32
	Transfer *CoinsTransfer
}

// CoinsTransfer 转账，金额为交易的 Value，收款方为交易的 To
type CoinsTransfer struct {
	Note string
}

// CoinsType coins 执行器类型
type CoinsType struct {
	types.ExecTypeBase
}

// NewType new
func NewType() *CoinsType {
	c := &CoinsType{}
	c.SetChild(c)
	return c
}

// GetName 执行器名称
func (coins *CoinsType) GetName() string {
	return CoinsX
}

// GetPayload payload
func (coins *CoinsType) GetPayload() types.Message {
	return &CoinsAction{}
}

// GetLogMap 转账日志都是系统日志
func (coins *CoinsType) GetLogMap() map[int32]*types.LogInfo {
	return nil
}

// GetTypeMap action 名称到类型
func (coins *CoinsType) GetTypeMap() map[string]int32 {
	return actionName
}

// NewTransferTx 构造转账交易
func NewTransferTx(tx *types.Transaction, note string) *types.Transaction {
	tx.Execer = ExecerCoins
	tx.Payload = types.Encode(&CoinsAction{Ty: CoinsActionTransfer, Transfer: &CoinsTransfer{Note: note}})
	return tx
}
