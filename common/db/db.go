// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db 数据库接口以及 goleveldb 实现
package db

import (
	"errors"

	"github.com/33cn/lottery/common/log"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var dlog = log.New("module", "db")

// ErrNotFoundInDb key 不存在
var ErrNotFoundInDb = errors.New("ErrNotFoundInDb")

// ErrUnknownBackend 未注册的数据库类型
var ErrUnknownBackend = errors.New("ErrUnknownBackend")

// KV 执行器使用的状态数据库接口，支持内存事务
type KV interface {
	Get(key []byte) ([]byte, error)
	Set(key []byte, value []byte) error
	Begin()
	Rollback()
	Commit() error
}

// KVDB 最简单的 kv 接口
type KVDB interface {
	Get(key []byte) ([]byte, error)
	Set(key []byte, value []byte) error
}

// DB 底层存储接口
type DB interface {
	KVDB
	Delete(key []byte) error
	NewBatch(sync bool) Batch
	// Iterator 遍历 [start, end)，end 为 nil 时遍历 start 前缀
	Iterator(start []byte, end []byte) Iterator
	Close()
}

// Batch 批量写入，Write 之前的修改不可见
type Batch interface {
	Set(key, value []byte)
	Delete(key []byte)
	Write() error
	ValueSize() int
	Reset()
}

// Iterator 迭代器
type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Error() error
	Close()
}

// 数据库类型
const (
	LevelDBBackendStr   = "leveldb" // legacy, defaults to goleveldb.
	GoLevelDBBackendStr = "goleveldb"
	MemDBBackendStr     = "memdb"
)

type dbCreator func(name string, dir string, cache int) (DB, error)

var backends = map[string]dbCreator{}

func registerDBCreator(backend string, creator dbCreator, force bool) {
	_, ok := backends[backend]
	if !force && ok {
		return
	}
	backends[backend] = creator
}

// NewDB 根据类型创建数据库
func NewDB(name string, backend string, dir string, cache int) (DB, error) {
	creator, ok := backends[backend]
	if !ok {
		dlog.Error("NewDB", "backend", backend)
		return nil, ErrUnknownBackend
	}
	return creator(name, dir, cache)
}

// BytesPrefix 返回前缀的范围上限
func BytesPrefix(prefix []byte) []byte {
	return util.BytesPrefix(prefix).Limit
}

// CloneByte 拷贝
func CloneByte(v []byte) []byte {
	if v == nil {
		return nil
	}
	value := make([]byte, len(v))
	copy(value, v)
	return value
}

type levelIt struct {
	iterator.Iterator
}

func (it *levelIt) Close() {
	it.Release()
}

func newRange(start, end []byte) *util.Range {
	if end == nil {
		return util.BytesPrefix(start)
	}
	return &util.Range{Start: start, Limit: end}
}
