// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

//Lottery op
const (
	LotteryActionDeployFactory = 1 + iota
	LotteryActionCreateRound

	//log for lottery
	TyLogLotteryFactoryDeployed = 801
	TyLogLotteryRoundCreated    = 802
	TyLogLotteryRoundStarted    = 803
)

// 日志名称，CommitLog 按名称过滤
const (
	NameLogFactoryDeployed = "FactoryDeployed"
	NameLogRoundCreated    = "RoundCreated"
	NameLogRoundStarted    = "RoundStarted"
)

const (
	// LotteryX 执行器名称
	LotteryX = "lottery"
	// RoundLength 一轮从创建到截止的区块数
	RoundLength = 43200
	// HashLength 承诺的长度
	HashLength = 32
)

//Round status
const (
	RoundCreated = 1 + iota
	RoundStarted
)

// 列表查询
const (
	ListDESC    = int32(0)
	ListASC     = int32(1)
	DefultCount = int32(20)  //默认一次取多少条记录
	MaxCount    = int32(100) //最多取100条
)

// LotteryAction 交易 payload, Ty 决定哪个字段有效
type LotteryAction struct {
	Ty            int32
	DeployFactory *FactoryDeploy
	CreateRound   *RoundCreate
}

// FactoryDeploy 部署工厂，调用者成为 owner
type FactoryDeploy struct {
	Version string
}

// RoundCreate 创建新的一轮，交易的 To 是工厂地址，Value 是初始余额
type RoundCreate struct {
	SaltHash  []byte
	SaltNHash []byte
	Picks     []byte
}

// LotteryFactory 工厂状态
type LotteryFactory struct {
	Address    string
	Owner      string
	Version    string
	RoundCount int64
}

// LotteryRound 一轮的状态，创建后承诺不再改变
type LotteryRound struct {
	Address       string
	Factory       string
	SaltHash      []byte
	SaltNHash     []byte
	Picks         []byte
	Version       string
	CreationBlock int64
	ClosingBlock  int64
	Status        int32
}

// ReceiptFactoryDeployed 工厂部署日志
type ReceiptFactoryDeployed struct {
	Owner   string
	Factory string
	Version string
}

// ReceiptRoundCreated 由工厂发出，指向新的一轮
type ReceiptRoundCreated struct {
	Version  string
	NewRound string
}

// ReceiptRoundStarted 由新的一轮发出
type ReceiptRoundStarted struct {
	SaltHash     []byte
	SaltNHash    []byte
	ClosingBlock int64
	Version      string
	Picks        []byte
}

// ReqRound 按地址查询一轮
type ReqRound struct {
	Addr string
}

// ReqFactory 按地址查询工厂
type ReqFactory struct {
	Addr string
}

// ReqFactoryRounds 分页查询工厂创建的轮次, Start 为序号(从1开始)，0 表示从头或者从尾开始
type ReqFactoryRounds struct {
	Addr      string
	Start     int64
	Count     int32
	Direction int32
}

// ReplyFactoryRounds 轮次地址列表
type ReplyFactoryRounds struct {
	Rounds []string
}
