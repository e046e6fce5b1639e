// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coins 主币转账插件
package coins

import (
	"github.com/33cn/lottery/pluginmgr"
	"github.com/33cn/lottery/system/dapp/coins/executor"
)

func init() {
	pluginmgr.Register(&pluginmgr.PluginBase{
		Name:     "coins",
		ExecName: executor.GetName(),
		Exec:     executor.Init,
		Cmd:      nil,
	})
}
