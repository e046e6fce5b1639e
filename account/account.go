// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package account 实现余额账户的读写以及转账

1. load from db
2. save to db
3. KVSet
4. Transfer
5. Genesis
*/
package account

import (
	"fmt"

	"github.com/33cn/lottery/common/address"
	dbm "github.com/33cn/lottery/common/db"
	"github.com/33cn/lottery/common/log"
	"github.com/33cn/lottery/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

var alog = log.New("module", "account")

// DB for account
type DB struct {
	db                   dbm.KV
	accountKeyPerfix     []byte
	execAccountKeyPerfix []byte
	emitter              []byte
}

// NewCoinsAccount 主币账户
func NewCoinsAccount(db dbm.KV) *DB {
	acc := &DB{
		accountKeyPerfix:     []byte(SymbolPrefix(types.CoinsX)),
		execAccountKeyPerfix: []byte(SymbolExecPrefix(types.CoinsX)),
		emitter:              address.ExecAddress(types.CoinsX).Bytes(),
	}
	acc.SetDB(db)
	return acc
}

// SetDB 设置状态数据库
func (acc *DB) SetDB(db dbm.KV) *DB {
	acc.db = db
	return acc
}

// LoadAccount 读取账户，不存在时返回余额为0的账户
func (acc *DB) LoadAccount(addr common.Address) *types.Account {
	value, err := acc.db.Get(acc.AccountKey(addr))
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

// LoadAccounts 批量读取
func (acc *DB) LoadAccounts(addrs []common.Address) []*types.Account {
	accs := make([]*types.Account, 0, len(addrs))
	for _, addr := range addrs {
		accs = append(accs, acc.LoadAccount(addr))
	}
	return accs
}

// CheckTransfer 检查余额是否足够
func (acc *DB) CheckTransfer(from, to common.Address, amount *uint256.Int) error {
	if amount == nil || amount.IsZero() {
		return types.ErrAmount
	}
	if from == to {
		return types.ErrSendSameToRecv
	}
	if acc.LoadAccount(from).GetBalance().Lt(amount) {
		return types.ErrNoBalance
	}
	return nil
}

// Transfer 从 from 转 amount 到 to
func (acc *DB) Transfer(from, to common.Address, amount *uint256.Int) (*types.Receipt, error) {
	if err := acc.CheckTransfer(from, to, amount); err != nil {
		return nil, err
	}
	accFrom := acc.LoadAccount(from)
	accTo := acc.LoadAccount(to)
	copyfrom := *accFrom
	copyto := *accTo

	fromBalance := new(uint256.Int).Sub(accFrom.GetBalance(), amount)
	toBalance, overflow := new(uint256.Int).AddOverflow(accTo.GetBalance(), amount)
	if overflow {
		return nil, types.ErrAmount
	}
	accFrom.SetBalance(fromBalance)
	accTo.SetBalance(toBalance)

	receiptBalanceFrom := &types.ReceiptAccountTransfer{
		Prev:    &copyfrom,
		Current: accFrom,
	}
	receiptBalanceTo := &types.ReceiptAccountTransfer{
		Prev:    &copyto,
		Current: accTo,
	}

	acc.SaveAccount(accFrom)
	acc.SaveAccount(accTo)
	alog.Debug("Transfer", "from", accFrom.Addr, "to", accTo.Addr, "amount", amount)
	return acc.transferReceipt(accFrom, accTo, receiptBalanceFrom, receiptBalanceTo), nil
}

// GenesisInit 创世分配，直接增加余额
func (acc *DB) GenesisInit(addr common.Address, amount *uint256.Int) (*types.Receipt, error) {
	if amount == nil || amount.IsZero() {
		return nil, types.ErrAmount
	}
	accTo := acc.LoadAccount(addr)
	copyto := *accTo
	balance, overflow := new(uint256.Int).AddOverflow(accTo.GetBalance(), amount)
	if overflow {
		return nil, types.ErrAmount
	}
	accTo.SetBalance(balance)
	receiptBalanceTo := &types.ReceiptAccountTransfer{
		Prev:    &copyto,
		Current: accTo,
	}
	acc.SaveAccount(accTo)
	return &types.Receipt{
		Ty: types.ExecOk,
		KV: acc.GetKVSet(accTo),
		Logs: []*types.ReceiptLog{
			{Ty: types.TyLogGenesis, Emitter: acc.emitter, Log: types.Encode(receiptBalanceTo)},
		},
	}, nil
}

func (acc *DB) transferReceipt(accFrom, accTo *types.Account, receiptFrom, receiptTo types.Message) *types.Receipt {
	ty := int32(types.TyLogTransfer)
	log1 := &types.ReceiptLog{
		Ty:      ty,
		Emitter: acc.emitter,
		Log:     types.Encode(receiptFrom),
	}
	log2 := &types.ReceiptLog{
		Ty:      ty,
		Emitter: acc.emitter,
		Log:     types.Encode(receiptTo),
	}
	kv := acc.GetKVSet(accFrom)
	kv = append(kv, acc.GetKVSet(accTo)...)
	return &types.Receipt{
		Ty:   types.ExecOk,
		KV:   kv,
		Logs: []*types.ReceiptLog{log1, log2},
	}
}

// SaveAccount 写入状态数据库
func (acc *DB) SaveAccount(acc1 *types.Account) {
	set := acc.GetKVSet(acc1)
	for i := 0; i < len(set); i++ {
		err := acc.db.Set(set[i].GetKey(), set[i].Value)
		if err != nil {
			alog.Error("SaveAccount", "addr", acc1.Addr, "err", err)
		}
	}
}

// GetKVSet 账户对应的kv
func (acc *DB) GetKVSet(acc1 *types.Account) (kvset []*types.KeyValue) {
	value := types.Encode(acc1)
	kvset = append(kvset, &types.KeyValue{
		Key:   acc.AccountKey(common.HexToAddress(acc1.Addr)),
		Value: value,
	})
	return kvset
}

// AccountKey return the key of address in DB
func (acc *DB) AccountKey(addr common.Address) (key []byte) {
	key = append(key, acc.accountKeyPerfix...)
	key = append(key, []byte(addr.Hex())...)
	return key
}

// SymbolPrefix 账户key的前缀
func SymbolPrefix(execer string) string {
	return fmt.Sprintf("mavl-%s-", execer)
}

// SymbolExecPrefix 执行器托管账户key的前缀
func SymbolExecPrefix(execer string) string {
	return fmt.Sprintf("mavl-%s-exec-", execer)
}
