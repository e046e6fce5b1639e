// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "github.com/holiman/uint256"

// Account 账户余额，Balance 为 32 字节大端编码的 uint256
type Account struct {
	Addr    string
	Balance []byte
}

// GetBalance 余额
func (acc *Account) GetBalance() *uint256.Int {
	if acc == nil {
		return new(uint256.Int)
	}
	return new(uint256.Int).SetBytes(acc.Balance)
}

// SetBalance 设置余额
func (acc *Account) SetBalance(v *uint256.Int) {
	b := v.Bytes32()
	acc.Balance = b[:]
}

// ReceiptAccountTransfer 转账前后的账户状态
type ReceiptAccountTransfer struct {
	Prev    *Account
	Current *Account
}

// ReceiptExecAccountTransfer 执行器托管账户变化前后的状态
type ReceiptExecAccountTransfer struct {
	ExecAddr string
	Prev     *Account
	Current  *Account
}
