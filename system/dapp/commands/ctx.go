// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands 命令行的公共部分，命令直接在本地数据目录上执行交易和查询
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/33cn/lottery/blockchain"
	"github.com/33cn/lottery/types"
	"github.com/spf13/cobra"
)

// ChainCtx 打开本地链，执行一个操作并输出结果
type ChainCtx struct {
	ConfPath string
	Out      io.Writer

	call func(chain *blockchain.BlockChain) (interface{}, error)
	cb   Callback
}

// Callback 对结果做格式化
type Callback func(res interface{}) (interface{}, error)

// NewChainCtx 从命令的 conf 参数得到配置文件路径
func NewChainCtx(cmd *cobra.Command, call func(chain *blockchain.BlockChain) (interface{}, error)) *ChainCtx {
	conf, _ := cmd.Flags().GetString("conf")
	return &ChainCtx{ConfPath: conf, Out: os.Stdout, call: call}
}

// SetResultCb 设置结果格式化函数
func (c *ChainCtx) SetResultCb(cb Callback) {
	c.cb = cb
}

// Run 执行并以 json 格式输出，错误输出到 stderr
func (c *ChainCtx) Run() {
	if err := c.run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

func (c *ChainCtx) run() error {
	cfg, err := LoadConfig(c.ConfPath)
	if err != nil {
		return err
	}
	chain, err := blockchain.New(cfg)
	if err != nil {
		return err
	}
	defer chain.Close()

	res, err := c.call(chain)
	if err != nil {
		return err
	}
	if c.cb != nil {
		res, err = c.cb(res)
		if err != nil {
			return err
		}
	}
	return printJSON(c.Out, res)
}

// PrintResult 不需要打开链的命令直接输出结果
func PrintResult(res interface{}, err error) {
	if err == nil {
		err = printJSON(os.Stdout, res)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

func printJSON(w io.Writer, res interface{}) error {
	data, err := json.MarshalIndent(res, "", "    ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// LoadConfig 配置文件路径为空时使用默认配置
func LoadConfig(path string) (*types.Config, error) {
	if path == "" {
		return types.InitCfgString(types.GetDefaultCfgstring())
	}
	return types.InitCfg(path)
}
