// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dapp

import (
	"sync"

	"github.com/33cn/lottery/common/address"
	"github.com/33cn/lottery/common/log"
	"github.com/33cn/lottery/types"
	"github.com/ethereum/go-ethereum/common"
)

var elog = log.New("module", "execs")

// DriverCreate defines a drivercreate function
type DriverCreate func() Driver

type driverWithHeight struct {
	create DriverCreate
	height int64
}

var (
	driverMu           sync.RWMutex
	execDrivers        = make(map[common.Address]*driverWithHeight)
	registedExecDriver = make(map[string]*driverWithHeight)
)

// Register 注册驱动，height 之后才能使用
func Register(name string, create DriverCreate, height int64) {
	if create == nil {
		panic("Execute: Register driver is nil")
	}
	driverMu.Lock()
	defer driverMu.Unlock()
	if _, dup := registedExecDriver[name]; dup {
		panic("Execute: Register called twice for driver " + name)
	}
	driverHeight := &driverWithHeight{
		create: create,
		height: height,
	}
	registedExecDriver[name] = driverHeight
	execDrivers[ExecAddress(name)] = driverHeight
}

// LoadDriver load driver
func LoadDriver(name string, height int64) (driver Driver, err error) {
	driverMu.RLock()
	c, ok := registedExecDriver[name]
	driverMu.RUnlock()
	if !ok {
		elog.Debug("LoadDriver", "driver", name)
		return nil, types.ErrUnRegistedDriver
	}
	if height >= c.height || height == -1 {
		return c.create(), nil
	}
	return nil, types.ErrUnRegistedDriver
}

// LoadDriverAllow 加载交易对应的驱动并检查是否允许执行
func LoadDriverAllow(tx *types.Transaction, index int, height int64) (Driver, error) {
	exec, err := LoadDriver(string(tx.Execer), height)
	if err != nil {
		return nil, err
	}
	exec.SetEnv(height)
	if err := exec.Allow(tx, index); err != nil {
		return nil, err
	}
	exec.SetName(string(tx.Execer))
	return exec, nil
}

// IsDriverAddress whether or not execdrivers by address
func IsDriverAddress(addr common.Address, height int64) bool {
	driverMu.RLock()
	c, ok := execDrivers[addr]
	driverMu.RUnlock()
	if !ok {
		return false
	}
	return height >= c.height || height == -1
}

// ExecAddress return exec address
func ExecAddress(name string) common.Address {
	return address.ExecAddress(name)
}
