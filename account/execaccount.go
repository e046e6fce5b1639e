// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package account

import (
	"github.com/33cn/lottery/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// LoadExecAccount 读取 addr 在执行器 execaddr 下托管的账户
func (acc *DB) LoadExecAccount(addr, execaddr common.Address) *types.Account {
	value, err := acc.db.Get(acc.execAccountKey(addr, execaddr))
	if err != nil {
		return &types.Account{Addr: addr.Hex()}
	}
	var acc1 types.Account
	err = types.Decode(value, &acc1)
	if err != nil {
		panic(err) //数据库已经损坏
	}
	return &acc1
}

// SaveExecAccount save exec account data to db
func (acc *DB) SaveExecAccount(execaddr common.Address, acc1 *types.Account) {
	set := acc.GetExecKVSet(execaddr, acc1)
	for i := 0; i < len(set); i++ {
		err := acc.db.Set(set[i].GetKey(), set[i].Value)
		if err != nil {
			panic(err)
		}
	}
}

// GetExecKVSet 将执行账户数据转为数据库存储kv
func (acc *DB) GetExecKVSet(execaddr common.Address, acc1 *types.Account) (kvset []*types.KeyValue) {
	value := types.Encode(acc1)
	kvset = append(kvset, &types.KeyValue{
		Key:   acc.execAccountKey(common.HexToAddress(acc1.Addr), execaddr),
		Value: value,
	})
	return kvset
}

func (acc *DB) execAccountKey(addr, execaddr common.Address) (key []byte) {
	a, e := addr.Hex(), execaddr.Hex()
	key = make([]byte, 0, len(acc.execAccountKeyPerfix)+len(e)+len(a)+1)
	key = append(key, acc.execAccountKeyPerfix...)
	key = append(key, []byte(e)...)
	key = append(key, ':')
	key = append(key, []byte(a)...)
	return key
}

// TransferToExec 把 from 的主币转给执行器，并记入 from 在该执行器下的托管账户
func (acc *DB) TransferToExec(from, execaddr common.Address, amount *uint256.Int) (*types.Receipt, error) {
	receipt, err := acc.Transfer(from, execaddr, amount)
	if err != nil {
		return nil, err
	}
	receipt2, err := acc.ExecDeposit(from, execaddr, amount)
	if err != nil {
		//存款不应该出任何问题
		panic(err)
	}
	receipt.Append(receipt2)
	return receipt, nil
}

// ExecDeposit 增加托管余额，只在主币已经转入执行器地址之后调用
func (acc *DB) ExecDeposit(addr, execaddr common.Address, amount *uint256.Int) (*types.Receipt, error) {
	if addr == execaddr {
		return nil, types.ErrSendSameToRecv
	}
	if amount == nil || amount.IsZero() {
		return nil, types.ErrAmount
	}
	acc1 := acc.LoadExecAccount(addr, execaddr)
	copyacc := *acc1
	balance, overflow := new(uint256.Int).AddOverflow(acc1.GetBalance(), amount)
	if overflow {
		return nil, types.ErrAmount
	}
	acc1.SetBalance(balance)
	receiptBalance := &types.ReceiptExecAccountTransfer{
		ExecAddr: execaddr.Hex(),
		Prev:     &copyacc,
		Current:  acc1,
	}
	acc.SaveExecAccount(execaddr, acc1)
	return acc.execReceipt(types.TyLogExecDeposit, execaddr, acc1, receiptBalance), nil
}

// ExecTransfer 同一个执行器下托管账户之间转账
func (acc *DB) ExecTransfer(from, to, execaddr common.Address, amount *uint256.Int) (*types.Receipt, error) {
	if from == to {
		return nil, types.ErrSendSameToRecv
	}
	if amount == nil || amount.IsZero() {
		return nil, types.ErrAmount
	}
	accFrom := acc.LoadExecAccount(from, execaddr)
	accTo := acc.LoadExecAccount(to, execaddr)
	if accFrom.GetBalance().Lt(amount) {
		return nil, types.ErrNoBalance
	}
	copyaccFrom := *accFrom
	copyaccTo := *accTo

	toBalance, overflow := new(uint256.Int).AddOverflow(accTo.GetBalance(), amount)
	if overflow {
		return nil, types.ErrAmount
	}
	accFrom.SetBalance(new(uint256.Int).Sub(accFrom.GetBalance(), amount))
	accTo.SetBalance(toBalance)

	receiptBalanceFrom := &types.ReceiptExecAccountTransfer{
		ExecAddr: execaddr.Hex(),
		Prev:     &copyaccFrom,
		Current:  accFrom,
	}
	receiptBalanceTo := &types.ReceiptExecAccountTransfer{
		ExecAddr: execaddr.Hex(),
		Prev:     &copyaccTo,
		Current:  accTo,
	}

	acc.SaveExecAccount(execaddr, accFrom)
	acc.SaveExecAccount(execaddr, accTo)
	receipt := acc.execReceipt(types.TyLogExecTransfer, execaddr, accFrom, receiptBalanceFrom)
	receipt.Append(acc.execReceipt(types.TyLogExecTransfer, execaddr, accTo, receiptBalanceTo))
	return receipt, nil
}

func (acc *DB) execReceipt(ty int32, execaddr common.Address, acc1 *types.Account, r *types.ReceiptExecAccountTransfer) *types.Receipt {
	log1 := &types.ReceiptLog{
		Ty:      ty,
		Emitter: acc.emitter,
		Log:     types.Encode(r),
	}
	return &types.Receipt{
		Ty:   types.ExecOk,
		KV:   acc.GetExecKVSet(execaddr, acc1),
		Logs: []*types.ReceiptLog{log1},
	}
}
