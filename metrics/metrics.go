// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics 运行统计，基于 go-metrics 的默认 registry
package metrics

import (
	"io"

	"github.com/33cn/lottery/common/log"
	"github.com/33cn/lottery/types"
	go_metrics "github.com/rcrowley/go-metrics"
)

var mlog = log.New("module", "metrics")

var enabled bool

// 统计项名称
const (
	RoundsCreated    = "lottery.rounds.created"
	RoundsRejected   = "lottery.rounds.rejected"
	FactoryDeployed  = "lottery.factory.deployed"
	RecordsAppended  = "blockchain.records.appended"
	BlocksExecuted   = "blockchain.blocks.executed"
	CommitLogQueries = "blockchain.commitlog.queries"
	TxFailed         = "executor.tx.failed"
	TxExecTime       = "executor.tx.time"
)

//StartMetrics 根据配置决定是否输出统计
func StartMetrics(cfg *types.Metrics) {
	if cfg == nil || !cfg.EnableMetrics {
		mlog.Info("Metrics data is not enabled to emit")
		enabled = false
		return
	}
	enabled = true
}

// Enabled 是否打开统计输出
func Enabled() bool {
	return enabled
}

// Counter 获取或注册一个计数器
func Counter(name string) go_metrics.Counter {
	return go_metrics.GetOrRegisterCounter(name, go_metrics.DefaultRegistry)
}

// Timer 获取或注册一个计时器
func Timer(name string) go_metrics.Timer {
	return go_metrics.GetOrRegisterTimer(name, go_metrics.DefaultRegistry)
}

// WriteOnce 把当前所有统计写入 w, 未打开时不输出
func WriteOnce(w io.Writer) {
	if !enabled {
		return
	}
	go_metrics.WriteOnce(go_metrics.DefaultRegistry, w)
}
