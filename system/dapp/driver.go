// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dapp 执行器驱动的公共部分
//
// 具体的执行器嵌入 DriverBase，按照命名约定实现 Exec_<Action> 和 Query_<Func>，
// DriverBase 通过反射把交易和查询分发到这些方法上。
package dapp

import (
	"bytes"
	"reflect"

	"github.com/33cn/lottery/account"
	"github.com/33cn/lottery/common/address"
	dbm "github.com/33cn/lottery/common/db"
	"github.com/33cn/lottery/common/log"
	"github.com/33cn/lottery/types"
	"github.com/pkg/errors"
)

var blog = log.New("module", "execs.base")

// Driver 执行器驱动接口
type Driver interface {
	SetStateDB(dbm.KV)
	GetStateDB() dbm.KV
	GetCoinsAccount() *account.DB
	//驱动的名字，这个名称是固定的
	GetDriverName() string
	GetName() string
	SetName(string)
	Allow(tx *types.Transaction, index int) error
	IsAllowKey(key []byte) bool
	GetActionName(tx *types.Transaction) string
	SetEnv(height int64)
	CheckTx(tx *types.Transaction, index int) error
	Exec(tx *types.Transaction, index int) (*types.Receipt, error)
	Query(funcName string, params []byte) (types.Message, error)
	GetPayloadValue() types.Message
	GetFuncMap() map[string]reflect.Method
	GetExecutorType() types.ExecutorType
}

// DriverBase 执行器驱动的公共实现
type DriverBase struct {
	statedb      dbm.KV
	coinsaccount *account.DB
	height       int64
	name         string
	child        Driver
	childValue   reflect.Value
	ety          types.ExecutorType
}

// GetPayloadValue 新建一个 action 结构体
func (d *DriverBase) GetPayloadValue() types.Message {
	if d.ety == nil {
		return nil
	}
	return d.ety.GetPayload()
}

// GetExecutorType 执行器类型
func (d *DriverBase) GetExecutorType() types.ExecutorType {
	return d.ety
}

// GetFuncMap 执行器的函数列表
func (d *DriverBase) GetFuncMap() map[string]reflect.Method {
	if d.ety == nil {
		return nil
	}
	return d.ety.GetExecFuncMap()
}

// SetEnv 设置当前区块高度
func (d *DriverBase) SetEnv(height int64) {
	d.height = height
}

// SetExecutorType set
func (d *DriverBase) SetExecutorType(e types.ExecutorType) {
	d.ety = e
}

// SetChild 设置具体的驱动，反射调用时使用
func (d *DriverBase) SetChild(e Driver) {
	d.child = e
	d.childValue = reflect.ValueOf(e)
}

// Exec 按 action 名称调用子类的 Exec_<Action>
func (d *DriverBase) Exec(tx *types.Transaction, index int) (receipt *types.Receipt, err error) {
	if d.ety == nil {
		return nil, nil
	}
	defer func() {
		if r := recover(); r != nil {
			blog.Error("call exec error", "tx.exec", string(tx.Execer), "info", r)
			err = types.ErrActionNotSupport
			receipt = nil
		}
	}()
	name, value, err := d.ety.DecodePayloadValue(tx)
	if err != nil {
		return nil, err
	}
	funcmap := d.child.GetFuncMap()
	funcname := "Exec_" + name
	if _, ok := funcmap[funcname]; !ok {
		return nil, types.ErrActionNotSupport
	}
	valueret := funcmap[funcname].Func.Call([]reflect.Value{d.childValue, value, reflect.ValueOf(tx), reflect.ValueOf(index)})
	if !types.IsOK(valueret, 2) {
		return nil, types.ErrMethodReturnType
	}
	//参数1
	r1 := valueret[0].Interface()
	if r1 != nil {
		if r, ok := r1.(*types.Receipt); ok {
			receipt = r
		} else {
			return nil, types.ErrMethodReturnType
		}
	}
	//参数2
	r2 := valueret[1].Interface()
	err = nil
	if r2 != nil {
		if r, ok := r2.(error); ok {
			err = r
		} else {
			return nil, types.ErrMethodReturnType
		}
	}
	return receipt, err
}

// CheckTx 默认检查 payload 大小，超出时资源不足
func (d *DriverBase) CheckTx(tx *types.Transaction, index int) error {
	if tx.Size() > types.MaxTxSize {
		return errors.Wrapf(types.ErrOutOfResources, "%s: size %d", types.ErrTxSize, tx.Size())
	}
	return nil
}

// IsAllowKey 只允许写自己的 mavl-<name>- 前缀、主币账户以及自己托管的账户
func (d *DriverBase) IsAllowKey(key []byte) bool {
	execPrefix := []byte(account.SymbolExecPrefix(types.CoinsX))
	if bytes.HasPrefix(key, execPrefix) {
		own := address.ExecAddress(d.GetName()).Hex() + ":"
		return bytes.HasPrefix(key[len(execPrefix):], []byte(own))
	}
	if bytes.HasPrefix(key, []byte(account.SymbolPrefix(types.CoinsX))) {
		return true
	}
	return bytes.HasPrefix(key, []byte(account.SymbolPrefix(d.GetName())))
}

// SetStateDB 设置状态数据库，主币账户共用同一个数据库
func (d *DriverBase) SetStateDB(db dbm.KV) {
	if d.coinsaccount == nil {
		d.coinsaccount = account.NewCoinsAccount(db)
	}
	d.statedb = db
	d.coinsaccount.SetDB(db)
}

// GetStateDB get
func (d *DriverBase) GetStateDB() dbm.KV {
	return d.statedb
}

// GetHeight 当前区块高度
func (d *DriverBase) GetHeight() int64 {
	return d.height
}

// GetName 执行器名称，默认为驱动名称
func (d *DriverBase) GetName() string {
	if d.name == "" {
		return d.child.GetDriverName()
	}
	return d.name
}

// SetName set
func (d *DriverBase) SetName(name string) {
	d.name = name
}

// GetActionName action 名称
func (d *DriverBase) GetActionName(tx *types.Transaction) string {
	return tx.ActionName()
}

// GetCoinsAccount 主币账户
func (d *DriverBase) GetCoinsAccount() *account.DB {
	if d.coinsaccount == nil {
		d.coinsaccount = account.NewCoinsAccount(d.statedb)
	}
	return d.coinsaccount
}
