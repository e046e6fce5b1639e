// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dapp

import (
	"fmt"

	"github.com/33cn/lottery/common/db"
	"github.com/33cn/lottery/types"
)

// HeightIndexStr height and index format string
func HeightIndexStr(height, index int64) string {
	return fmt.Sprintf("%020d", height) + fmt.Sprintf("%010d", index)
}

//KVCreator 创建KV的辅助工具
type KVCreator struct {
	kvs  []*types.KeyValue
	kvdb db.KV
}

//NewKVCreator 创建创建者
func NewKVCreator(kv db.KV) *KVCreator {
	return &KVCreator{kvdb: kv}
}

func (c *KVCreator) add(key, value []byte, set bool) error {
	c.kvs = append(c.kvs, &types.KeyValue{Key: key, Value: value})
	if set {
		return c.kvdb.Set(key, value)
	}
	return nil
}

//Add add and set to kvdb
func (c *KVCreator) Add(key, value []byte) error {
	return c.add(key, value, true)
}

//AddKVOnly only add KV
func (c *KVCreator) AddKVOnly(key, value []byte) {
	c.kvs = append(c.kvs, &types.KeyValue{Key: key, Value: value})
}

//AddList 加入一组kv并写入数据库
func (c *KVCreator) AddList(list []*types.KeyValue) error {
	for _, kv := range list {
		if err := c.Add(kv.Key, kv.Value); err != nil {
			return err
		}
	}
	return nil
}

//KVList 读取所有的kv列表
func (c *KVCreator) KVList() []*types.KeyValue {
	return c.kvs
}
