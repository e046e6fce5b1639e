// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pluginmgr

import (
	"sort"
	"sync"

	"github.com/spf13/cobra"
)

var (
	pluginMu    sync.Mutex
	pluginItems = make(map[string]Plugin)
	once        = &sync.Once{}
)

// InitExec 初始化所有插件的执行器，只执行一次
func InitExec() {
	once.Do(func() {
		for _, item := range sortedItems() {
			item.InitExec()
		}
	})
}

// HasExec 是否存在执行器
func HasExec(name string) bool {
	pluginMu.Lock()
	defer pluginMu.Unlock()
	for _, item := range pluginItems {
		if item.GetExecutorName() == name {
			return true
		}
	}
	return false
}

// Register 注册插件
func Register(p Plugin) {
	if p == nil {
		panic("plugin param is nil")
	}
	packageName := p.GetName()
	if len(packageName) == 0 {
		panic("plugin package name is empty")
	}
	pluginMu.Lock()
	defer pluginMu.Unlock()
	if _, ok := pluginItems[packageName]; ok {
		panic("execute plugin item is existed. name = " + packageName)
	}
	pluginItems[packageName] = p
}

// AddCmd 添加所有插件的命令行
func AddCmd(rootCmd *cobra.Command) {
	for _, item := range sortedItems() {
		item.AddCmd(rootCmd)
	}
}

func sortedItems() []Plugin {
	pluginMu.Lock()
	defer pluginMu.Unlock()
	names := make([]string, 0, len(pluginItems))
	for name := range pluginItems {
		names = append(names, name)
	}
	sort.Strings(names)
	items := make([]Plugin, 0, len(names))
	for _, name := range names {
		items = append(items, pluginItems[name])
	}
	return items
}
