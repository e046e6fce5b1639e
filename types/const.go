// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// 交易执行结果
const (
	ExecErr  = 0
	ExecPack = 1
	ExecOk   = 2
)

// 系统日志类型
const (
	TyLogErr      = 1
	TyLogTransfer = 3
	TyLogGenesis  = 4

	TyLogExecTransfer = 5
	TyLogExecDeposit  = 7
)

// 日志名称
const (
	NameLogErr      = "LogErr"
	NameLogTransfer = "LogTransfer"
	NameLogGenesis  = "LogGenesis"

	NameLogExecTransfer = "LogExecTransfer"
	NameLogExecDeposit  = "LogExecDeposit"
)

const (
	// MaxTxSize 交易payload最大长度 100K
	MaxTxSize = 100000
	// EtherDecimals 1 ether = 1e18 wei
	EtherDecimals = 18
)

// 系统执行器名称
var (
	CoinsX = "coins"
)
