// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Transaction 一次状态修改调用
// From 是调用者身份，签名校验不在本模块范围内
type Transaction struct {
	Execer  []byte
	Payload []byte
	From    common.Address
	To      common.Address
	Value   *uint256.Int
}

// GetValue 附带的转账金额，nil 当作 0
func (tx *Transaction) GetValue() *uint256.Int {
	if tx == nil || tx.Value == nil {
		return new(uint256.Int)
	}
	return tx.Value
}

// Size payload 长度
func (tx *Transaction) Size() int {
	return len(tx.Payload)
}

// ActionName 返回交易的action名称
func (tx *Transaction) ActionName() string {
	ety := LoadExecutorType(string(tx.Execer))
	if ety == nil {
		return "unknown"
	}
	return ety.ActionName(tx)
}

// Copy 浅拷贝，金额重新分配
func (tx *Transaction) Copy() *Transaction {
	copytx := *tx
	if tx.Value != nil {
		copytx.Value = new(uint256.Int).Set(tx.Value)
	}
	return &copytx
}
