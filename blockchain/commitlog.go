// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockchain

import (
	"bytes"
	"fmt"
	"sync"

	dbm "github.com/33cn/lottery/common/db"
	"github.com/33cn/lottery/metrics"
	"github.com/33cn/lottery/types"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

const defaultRecordCacheSize = 128

var clogPrefix = []byte("clog-")

//CommitLog 中一条记录的key: 高度、交易序号、日志序号
func calcRecordKey(height int64, txIndex, index int32) []byte {
	return []byte(fmt.Sprintf("clog-%020d-%010d-%010d", height, txIndex, index))
}

//一个区块所有记录的前缀
func calcRecordHeightPrefix(height int64) []byte {
	return []byte(fmt.Sprintf("clog-%020d-", height))
}

// LatestBlock 作为 ToBlock 时表示到最新高度
const LatestBlock int64 = -1

// Filter 记录查询条件，空字段不过滤，区块范围 [FromBlock, ToBlock] 包含两端
type Filter struct {
	Emitter   []byte
	Name      string
	FromBlock int64
	ToBlock   int64
}

func (f *Filter) match(r *types.Record) bool {
	if len(f.Emitter) > 0 && !bytes.Equal(f.Emitter, r.Emitter) {
		return false
	}
	if f.Name != "" && f.Name != r.Name {
		return false
	}
	return true
}

// CommitLog 只能追加的记录存储，按区块高度索引
// 只有执行成功的交易产生的记录才会写入
type CommitLog struct {
	db    dbm.DB
	cache *lru.Cache
	mu    sync.RWMutex
	tip   int64
}

// NewCommitLog new
func NewCommitLog(db dbm.DB, cacheSize int, tip int64) *CommitLog {
	if cacheSize <= 0 {
		cacheSize = defaultRecordCacheSize
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		panic(err)
	}
	return &CommitLog{db: db, cache: cache, tip: tip}
}

// Tip 最后写入的区块高度，-1 表示还没有写入
func (c *CommitLog) Tip() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tip
}

// Append 写入一个区块的记录
func (c *CommitLog) Append(height int64, records []*types.Record) error {
	batch := c.db.NewBatch(true)
	if err := c.appendBatch(batch, height, records); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return errors.Wrapf(err, "commitlog append height %d", height)
	}
	c.commit(height, records)
	return nil
}

//写入 batch，和状态数据在同一个 batch 中提交
func (c *CommitLog) appendBatch(batch dbm.Batch, height int64, records []*types.Record) error {
	if height <= c.Tip() {
		return errors.Wrapf(types.ErrBlockHeightNotAllowed, "height %d tip %d", height, c.Tip())
	}
	for _, r := range records {
		if r.Height != height {
			return errors.Wrapf(types.ErrBlockHeightNotAllowed, "record height %d block %d", r.Height, height)
		}
		batch.Set(calcRecordKey(r.Height, r.TxIndex, r.Index), types.Encode(r))
	}
	return nil
}

//batch 写入成功之后更新 tip 和 cache
func (c *CommitLog) commit(height int64, records []*types.Record) {
	c.mu.Lock()
	c.tip = height
	c.mu.Unlock()
	c.cache.Add(height, records)
	metrics.Counter(metrics.RecordsAppended).Inc(int64(len(records)))
}

// GetBlockRecords 读取一个区块的所有记录
func (c *CommitLog) GetBlockRecords(height int64) ([]*types.Record, error) {
	if height < 0 || height > c.Tip() {
		return nil, errors.Wrapf(types.ErrBlockHeightNotAllowed, "height %d tip %d", height, c.Tip())
	}
	if v, ok := c.cache.Get(height); ok {
		return v.([]*types.Record), nil
	}
	it := c.db.Iterator(calcRecordHeightPrefix(height), nil)
	defer it.Close()
	var records []*types.Record
	for it.Next() {
		var r types.Record
		if err := types.Decode(it.Value(), &r); err != nil {
			return nil, errors.Wrapf(err, "decode record %s", string(it.Key()))
		}
		records = append(records, &r)
	}
	if err := it.Error(); err != nil {
		return nil, err
	}
	c.cache.Add(height, records)
	return records, nil
}

// Query 按条件查询，结果按高度、交易序号、日志序号排列
func (c *CommitLog) Query(filter *Filter) ([]*types.Record, error) {
	metrics.Counter(metrics.CommitLogQueries).Inc(1)
	if filter == nil {
		filter = &Filter{ToBlock: LatestBlock}
	}
	tip := c.Tip()
	from, to := filter.FromBlock, filter.ToBlock
	if from < 0 {
		from = 0
	}
	if to < 0 || to > tip {
		to = tip
	}
	var result []*types.Record
	for h := from; h <= to; h++ {
		records, err := c.GetBlockRecords(h)
		if err != nil {
			return nil, err
		}
		for _, r := range records {
			if filter.match(r) {
				result = append(result, r)
			}
		}
	}
	return result, nil
}

// NewRecords 把一个区块中执行成功的交易日志转换成记录
func NewRecords(height int64, txs []*types.Transaction, receipts []*types.ReceiptData) []*types.Record {
	var records []*types.Record
	for i, receipt := range receipts {
		if receipt == nil || receipt.Ty != types.ExecOk {
			continue
		}
		execer := string(txs[i].Execer)
		for j, l := range receipt.Logs {
			records = append(records, newRecord(height, int32(i), int32(j), execer, l))
		}
	}
	return records
}

func newRecord(height int64, txIndex, index int32, execer string, l *types.ReceiptLog) *types.Record {
	return &types.Record{
		Height:  height,
		TxIndex: txIndex,
		Index:   index,
		Execer:  execer,
		Emitter: l.Emitter,
		Ty:      l.Ty,
		Name:    types.GetLogName(execer, l.Ty),
		Log:     l.Log,
	}
}
