// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package executor 彩票工厂以及每一轮的执行器
//
// 工厂由 owner 部署，只有 owner 可以创建新的一轮。每一轮在创建时固定承诺、初始余额以及截止高度。
package executor

import (
	"github.com/33cn/lottery/common/log"
	pty "github.com/33cn/lottery/plugin/dapp/lottery/types"
	drivers "github.com/33cn/lottery/system/dapp"
	"github.com/33cn/lottery/types"
)

var llog = log.New("module", "execs.lottery")

var driverName = pty.LotteryX

//初始化过程比较重量级，有很多reflact, 所以弄成全局的
func init() {
	ety := types.LoadExecutorType(driverName)
	ety.InitFuncList(types.ListMethod(&Lottery{}))
}

// Init 注册执行器
func Init(name string) {
	if name != driverName {
		panic("system dapp can't be rename")
	}
	drivers.Register(driverName, newLottery, 0)
}

// GetName 执行器名称
func GetName() string {
	return newLottery().GetName()
}

// Lottery 执行器
type Lottery struct {
	drivers.DriverBase
}

func newLottery() drivers.Driver {
	l := &Lottery{}
	l.SetChild(l)
	l.SetExecutorType(types.LoadExecutorType(driverName))
	return l
}

// GetDriverName 驱动名称
func (l *Lottery) GetDriverName() string {
	return pty.LotteryX
}
