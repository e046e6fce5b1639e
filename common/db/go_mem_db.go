// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"github.com/33cn/lottery/common/log"
	"github.com/syndtr/goleveldb/leveldb/comparer"
	"github.com/syndtr/goleveldb/leveldb/memdb"
)

var mlog = log.New("module", "db.memdb")

// memdb 应该无需区分同步与异步操作

func init() {
	dbCreator := func(name string, dir string, cache int) (DB, error) {
		return NewGoMemDB(name, dir, cache)
	}
	registerDBCreator(MemDBBackendStr, dbCreator, false)
}

//GoMemDB db
type GoMemDB struct {
	db *memdb.DB
}

//NewGoMemDB new
func NewGoMemDB(name string, dir string, cache int) (*GoMemDB, error) {
	return &GoMemDB{
		db: memdb.New(comparer.DefaultComparer, 0),
	}, nil
}

//Get get
func (db *GoMemDB) Get(key []byte) ([]byte, error) {
	v, err := db.db.Get(key)
	if err != nil {
		return nil, ErrNotFoundInDb
	}
	return CloneByte(v), nil
}

//Set set
func (db *GoMemDB) Set(key []byte, value []byte) error {
	err := db.db.Put(key, value)
	if err != nil {
		mlog.Error("Set", "error", err)
		return err
	}
	return nil
}

//Delete 删除
func (db *GoMemDB) Delete(key []byte) error {
	err := db.db.Delete(key)
	if err != nil && err != memdb.ErrNotFound {
		mlog.Error("Delete", "error", err)
		return err
	}
	return nil
}

//Close 关闭
func (db *GoMemDB) Close() {
	db.db.Reset()
}

//Iterator 迭代器
func (db *GoMemDB) Iterator(start []byte, end []byte) Iterator {
	return &levelIt{Iterator: db.db.NewIterator(newRange(start, end))}
}

type kv struct{ k, v []byte }

type memBatch struct {
	db     *GoMemDB
	writes []kv
	size   int
}

//NewBatch new
func (db *GoMemDB) NewBatch(sync bool) Batch {
	return &memBatch{db: db}
}

func (b *memBatch) Set(key, value []byte) {
	b.writes = append(b.writes, kv{CloneByte(key), CloneByte(value)})
	b.size += len(value)
	b.size += len(key)
}

func (b *memBatch) Delete(key []byte) {
	b.writes = append(b.writes, kv{CloneByte(key), nil})
	b.size += len(key)
}

func (b *memBatch) Write() error {
	for _, kv := range b.writes {
		var err error
		if kv.v == nil {
			err = b.db.Delete(kv.k)
		} else {
			err = b.db.Set(kv.k, kv.v)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (b *memBatch) ValueSize() int {
	return b.size
}

func (b *memBatch) Reset() {
	//重置batch自己的buf，不能调用db reset，将直接清空db历史数据
	b.writes = b.writes[:0]
	b.size = 0
}
