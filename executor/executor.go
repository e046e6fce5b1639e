// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package executor 按顺序执行交易，每笔交易要么全部生效要么没有任何影响
package executor

import (
	"time"

	dbm "github.com/33cn/lottery/common/db"
	"github.com/33cn/lottery/common/log"
	"github.com/33cn/lottery/metrics"
	drivers "github.com/33cn/lottery/system/dapp"
	"github.com/33cn/lottery/types"
	"github.com/pkg/errors"
)

var elog = log.New("module", "execs")

// Executor 一个区块的执行环境
type Executor struct {
	stateDB *StateDB
	height  int64
}

// New 在 stateDB 上执行高度为 height 的区块
func New(stateDB *StateDB, height int64) *Executor {
	return &Executor{stateDB: stateDB, height: height}
}

// GetHeight 区块高度
func (e *Executor) GetHeight() int64 {
	return e.height
}

// ExecTxs 按顺序执行所有交易
func (e *Executor) ExecTxs(txs []*types.Transaction) []*types.ReceiptData {
	receipts := make([]*types.ReceiptData, len(txs))
	for i, tx := range txs {
		receipts[i], _ = e.ExecTx(tx, i)
	}
	return receipts
}

// ExecTx 执行一笔交易，失败时状态回滚，返回的 ReceiptData 只带错误日志
func (e *Executor) ExecTx(tx *types.Transaction, index int) (*types.ReceiptData, error) {
	defer metrics.Timer(metrics.TxExecTime).UpdateSince(time.Now())
	receipt, err := e.execTx(tx, index)
	if err != nil {
		metrics.Counter(metrics.TxFailed).Inc(1)
		elog.Error("exec tx error", "err", err, "exec", string(tx.Execer), "action", tx.ActionName(), "height", e.height, "index", index)
		errlog := &types.ReceiptLog{Ty: types.TyLogErr, Emitter: tx.To.Bytes(), Log: []byte(err.Error())}
		return &types.ReceiptData{Ty: types.ExecErr, Logs: []*types.ReceiptLog{errlog}, Err: err.Error()}, err
	}
	return &types.ReceiptData{Ty: receipt.Ty, Logs: receipt.Logs}, nil
}

func (e *Executor) execTx(tx *types.Transaction, index int) (*types.Receipt, error) {
	driver, err := drivers.LoadDriverAllow(tx, index, e.height)
	if err != nil {
		return nil, errors.Wrapf(err, "load driver %s", string(tx.Execer))
	}
	driver.SetStateDB(e.stateDB)
	if err := driver.CheckTx(tx, index); err != nil {
		return nil, err
	}
	e.begin()
	receipt, err := driver.Exec(tx, index)
	if err != nil {
		e.rollback()
		return nil, err
	}
	if receipt == nil {
		e.rollback()
		return nil, types.ErrActionNotSupport
	}
	//需要检查两个东西:
	//1. statedb 中 Set的 key 必须是 在 receipt.GetKV() 这个集合中
	//2. receipt.GetKV() 中的 key, 必须符合权限控制要求
	if err := e.checkKV(e.stateDB.GetSetKeys(), receipt.GetKV()); err != nil {
		e.rollback()
		return nil, err
	}
	if err := e.checkKeyAllow(driver, receipt.GetKV()); err != nil {
		e.rollback()
		return nil, err
	}
	if err := e.commit(); err != nil {
		return nil, err
	}
	return receipt, nil
}

func (e *Executor) checkKV(memset []string, kvs []*types.KeyValue) error {
	keys := make(map[string]bool)
	for _, kv := range kvs {
		k := kv.GetKey()
		keys[string(k)] = true
	}
	for _, key := range memset {
		if _, ok := keys[key]; !ok {
			elog.Error("err memset key", "key", key)
			//非法的receipt，交易执行失败
			return types.ErrNotAllowMemSetKey
		}
	}
	return nil
}

func (e *Executor) checkKeyAllow(driver drivers.Driver, kvs []*types.KeyValue) error {
	for _, kv := range kvs {
		if !driver.IsAllowKey(kv.GetKey()) {
			elog.Error("err key not allow", "exec", driver.GetName(), "key", string(kv.GetKey()))
			return types.ErrNotAllowKey
		}
	}
	return nil
}

func (e *Executor) begin() {
	e.stateDB.Begin()
}

func (e *Executor) commit() error {
	return e.stateDB.Commit()
}

func (e *Executor) rollback() {
	e.stateDB.Rollback()
}

// Query 在给定的状态上调用执行器的查询函数
func Query(state dbm.KV, height int64, execer, funcname string, params []byte) (types.Message, error) {
	driver, err := drivers.LoadDriver(execer, height)
	if err != nil {
		return nil, err
	}
	driver.SetStateDB(state)
	driver.SetEnv(height)
	return driver.Query(funcname, params)
}
