// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"sort"

	"github.com/33cn/lottery/common/db"
	"github.com/33cn/lottery/types"
)

// StateDB 区块执行期间的状态数据库
// cache 保存本区块已经提交的交易的修改，txcache 保存当前交易的修改
type StateDB struct {
	cache   map[string][]byte
	txcache map[string][]byte
	keys    []string
	intx    bool
	db      db.KVDB
}

// NewStateDB new state db
func NewStateDB(kvdb db.KVDB) *StateDB {
	return &StateDB{
		cache: make(map[string][]byte),
		db:    kvdb,
	}
}

// Begin 开启内存事务处理
func (s *StateDB) Begin() {
	s.intx = true
	s.keys = nil
	s.txcache = nil
}

// Rollback reset tx
func (s *StateDB) Rollback() {
	s.resetTx()
}

// Commit 把当前交易的修改合并到区块的 cache
func (s *StateDB) Commit() error {
	for k, v := range s.txcache {
		s.cache[k] = v
	}
	s.resetTx()
	return nil
}

func (s *StateDB) resetTx() {
	s.intx = false
	s.txcache = nil
	s.keys = nil
}

// Get get value from state db
func (s *StateDB) Get(key []byte) ([]byte, error) {
	skey := string(key)
	if s.intx && s.txcache != nil {
		if value, ok := s.txcache[skey]; ok {
			return value, nil
		}
	}
	if value, ok := s.cache[skey]; ok {
		return value, nil
	}
	value, err := s.db.Get(key)
	if err != nil {
		if err == db.ErrNotFoundInDb {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

// Set set key value to state db
func (s *StateDB) Set(key []byte, value []byte) error {
	if value == nil {
		return types.ErrInvalidParam
	}
	skey := string(key)
	if s.intx {
		if s.txcache == nil {
			s.txcache = make(map[string][]byte)
		}
		s.keys = append(s.keys, skey)
		s.txcache[skey] = value
	} else {
		s.cache[skey] = value
	}
	return nil
}

// GetSetKeys 当前交易修改过的 key
func (s *StateDB) GetSetKeys() (keys []string) {
	return s.keys
}

// KVList 本区块所有已提交的修改，按 key 排序
func (s *StateDB) KVList() []*types.KeyValue {
	keys := make([]string, 0, len(s.cache))
	for k := range s.cache {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	kvs := make([]*types.KeyValue, 0, len(keys))
	for _, k := range keys {
		kvs = append(kvs, &types.KeyValue{Key: []byte(k), Value: s.cache[k]})
	}
	return kvs
}

// Sync 把已提交的修改写入 batch 并清空 cache，由调用者 Write
func (s *StateDB) Sync(batch db.Batch) {
	for _, kv := range s.KVList() {
		batch.Set(kv.Key, kv.Value)
	}
	s.cache = make(map[string][]byte)
}
