// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types 实现了基础结构体、接口、常量等的定义
package types

import (
	log "github.com/inconshreveable/log15"
	"go.dedis.ch/protobuf"
)

var tlog = log.New("module", "types")

// Message 可以被编码的结构体指针
type Message interface{}

// Encode  编码
func Encode(data Message) []byte {
	b, err := protobuf.Encode(data)
	if err != nil {
		panic(err)
	}
	return b
}

// Decode  解码
func Decode(data []byte, msg Message) error {
	return protobuf.Decode(data, msg)
}

// Size 消息大小
func Size(data Message) int {
	return len(Encode(data))
}

// KeyValue 状态数据库中的一条kv
type KeyValue struct {
	Key   []byte
	Value []byte
}

// GetKey get key
func (kv *KeyValue) GetKey() []byte {
	if kv == nil {
		return nil
	}
	return kv.Key
}

// GetValue get value
func (kv *KeyValue) GetValue() []byte {
	if kv == nil {
		return nil
	}
	return kv.Value
}

// ReceiptLog 执行过程中由某个地址发出的一条日志
type ReceiptLog struct {
	Ty      int32
	Emitter []byte
	Log     []byte
}

// Receipt 执行器返回的结果，KV 写入状态数据库，Logs 写入 CommitLog
type Receipt struct {
	Ty   int32
	KV   []*KeyValue
	Logs []*ReceiptLog
}

// GetKV get kv
func (r *Receipt) GetKV() []*KeyValue {
	if r == nil {
		return nil
	}
	return r.KV
}

// GetLogs get logs
func (r *Receipt) GetLogs() []*ReceiptLog {
	if r == nil {
		return nil
	}
	return r.Logs
}

// Append 合并另外一个receipt
func (r *Receipt) Append(other *Receipt) {
	if other == nil {
		return
	}
	r.KV = append(r.KV, other.KV...)
	r.Logs = append(r.Logs, other.Logs...)
}

// ReceiptData 区块中一笔交易的执行结果
type ReceiptData struct {
	Ty   int32
	Logs []*ReceiptLog
	Err  string
}

// Record CommitLog 中的一条记录，写入后不可修改
type Record struct {
	Height  int64
	TxIndex int32
	Index   int32
	Execer  string
	Emitter []byte
	Ty      int32
	Name    string
	Log     []byte
}

// Decode 按执行器注册的日志类型解码记录内容
func (r *Record) Decode() (interface{}, error) {
	return DecodeLog(r.Execer, r.Ty, r.Log)
}

// BlockDetail 执行完成的区块
type BlockDetail struct {
	Height   int64
	Receipts []*ReceiptData
}

// ReqAddr 按地址查询
type ReqAddr struct {
	Addr string
}

// ReplyHash 返回一个hash
type ReplyHash struct {
	Hash []byte
}

// ReplyBalance 返回余额
type ReplyBalance struct {
	Addr    string
	Balance []byte
}
