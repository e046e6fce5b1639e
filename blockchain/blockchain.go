// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package blockchain 区块高度时钟以及区块的执行和存储
//
// 每个区块的交易按序执行，状态修改和执行成功的交易的记录在同一个 batch 中写入数据库。
package blockchain

import (
	"strconv"
	"sync"

	"github.com/33cn/lottery/account"
	dbm "github.com/33cn/lottery/common/db"
	"github.com/33cn/lottery/common/log"
	"github.com/33cn/lottery/executor"
	"github.com/33cn/lottery/metrics"
	"github.com/33cn/lottery/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

var chainlog = log.New("module", "blockchain")

var blockLastHeight = []byte("blockLastHeight")

// BlockChain 区块链
type BlockChain struct {
	mu        sync.RWMutex
	db        dbm.DB
	height    int64
	commitLog *CommitLog
	ownDB     bool
}

// New 根据配置打开数据库，新数据库会执行创世区块
func New(cfg *types.Config) (*BlockChain, error) {
	store := cfg.Store
	db, err := dbm.NewDB("blockchain", store.Driver, store.DbPath, int(store.DbCache))
	if err != nil {
		return nil, errors.Wrapf(err, "open store %s", store.Driver)
	}
	chain, err := NewWithDB(db, cfg.Genesis)
	if err != nil {
		db.Close()
		return nil, err
	}
	chain.ownDB = true
	return chain, nil
}

// NewWithDB 在已经打开的数据库上创建区块链
func NewWithDB(db dbm.DB, genesis []*types.GenesisAlloc) (*BlockChain, error) {
	height, err := LoadBlockStoreHeight(db)
	if err != nil && err != types.ErrNotFound {
		return nil, err
	}
	chain := &BlockChain{db: db, height: -1}
	chain.commitLog = NewCommitLog(db, defaultRecordCacheSize, height)
	if err == nil {
		chain.height = height
		chainlog.Info("load blockchain", "height", height)
		return chain, nil
	}
	if err := chain.execGenesis(genesis); err != nil {
		return nil, err
	}
	return chain, nil
}

// LoadBlockStoreHeight 读取最新高度
func LoadBlockStoreHeight(db dbm.KVDB) (int64, error) {
	value, err := db.Get(blockLastHeight)
	if err != nil {
		if err == dbm.ErrNotFoundInDb {
			return -1, types.ErrNotFound
		}
		return -1, err
	}
	height, err := strconv.ParseInt(string(value), 10, 64)
	if err != nil {
		return -1, errors.Wrap(err, "parse blockLastHeight")
	}
	return height, nil
}

//创世区块高度为0，只写入初始余额
func (chain *BlockChain) execGenesis(genesis []*types.GenesisAlloc) error {
	chain.mu.Lock()
	defer chain.mu.Unlock()
	state := executor.NewStateDB(chain.db)
	receipt, err := account.NewCoinsAccount(state).GenesisAllocs(genesis)
	if err != nil {
		return err
	}
	txs := []*types.Transaction{{Execer: []byte(types.CoinsX)}}
	receipts := []*types.ReceiptData{{Ty: types.ExecOk, Logs: receipt.Logs}}
	detail := &types.BlockDetail{Height: 0, Receipts: receipts}
	if err := chain.writeBlock(state, detail, NewRecords(0, txs, receipts)); err != nil {
		return err
	}
	chainlog.Info("exec genesis", "allocs", len(genesis))
	return nil
}

// Height 当前最新区块高度
func (chain *BlockChain) Height() int64 {
	chain.mu.RLock()
	defer chain.mu.RUnlock()
	return chain.height
}

// CommitLog 记录存储
func (chain *BlockChain) CommitLog() *CommitLog {
	return chain.commitLog
}

// ExecBlock 在下一个高度执行一组交易
func (chain *BlockChain) ExecBlock(txs []*types.Transaction) (*types.BlockDetail, error) {
	detail, _, err := chain.execBlock(txs)
	return detail, err
}

// SendTx 单独打包一笔交易，返回执行结果以及交易执行的错误
func (chain *BlockChain) SendTx(tx *types.Transaction) (*types.ReceiptData, int64, error) {
	detail, errs, err := chain.execBlock([]*types.Transaction{tx})
	if err != nil {
		return nil, 0, err
	}
	return detail.Receipts[0], detail.Height, errs[0]
}

func (chain *BlockChain) execBlock(txs []*types.Transaction) (*types.BlockDetail, []error, error) {
	chain.mu.Lock()
	defer chain.mu.Unlock()
	height := chain.height + 1
	state := executor.NewStateDB(chain.db)
	exec := executor.New(state, height)
	receipts := make([]*types.ReceiptData, len(txs))
	errs := make([]error, len(txs))
	for i, tx := range txs {
		receipts[i], errs[i] = exec.ExecTx(tx, i)
	}
	detail := &types.BlockDetail{Height: height, Receipts: receipts}
	if err := chain.writeBlock(state, detail, NewRecords(height, txs, receipts)); err != nil {
		return nil, nil, err
	}
	metrics.Counter(metrics.BlocksExecuted).Inc(1)
	chainlog.Debug("execBlock", "height", height, "txs", len(txs))
	return detail, errs, nil
}

//状态、记录、高度在同一个 batch 中写入
func (chain *BlockChain) writeBlock(state *executor.StateDB, detail *types.BlockDetail, records []*types.Record) error {
	batch := chain.db.NewBatch(true)
	state.Sync(batch)
	if err := chain.commitLog.appendBatch(batch, detail.Height, records); err != nil {
		return err
	}
	batch.Set(blockLastHeight, []byte(strconv.FormatInt(detail.Height, 10)))
	if err := batch.Write(); err != nil {
		chainlog.Error("writeBlock", "height", detail.Height, "err", err)
		return errors.Wrapf(err, "write block %d", detail.Height)
	}
	chain.commitLog.commit(detail.Height, records)
	chain.height = detail.Height
	return nil
}

// Query 在最新状态上调用执行器的查询
func (chain *BlockChain) Query(execer, funcname string, param types.Message) (types.Message, error) {
	chain.mu.RLock()
	defer chain.mu.RUnlock()
	state := executor.NewStateDB(chain.db)
	return executor.Query(state, chain.height, execer, funcname, types.Encode(param))
}

// GetBalance 地址余额
func (chain *BlockChain) GetBalance(addr common.Address) *types.Account {
	chain.mu.RLock()
	defer chain.mu.RUnlock()
	return account.NewCoinsAccount(executor.NewStateDB(chain.db)).LoadAccount(addr)
}

// Close 关闭自己打开的数据库
func (chain *BlockChain) Close() {
	if chain.ownDB {
		chain.db.Close()
	}
}
