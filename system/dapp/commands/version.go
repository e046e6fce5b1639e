// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"github.com/33cn/lottery/blockchain"
	"github.com/spf13/cobra"
)

// VersionInfo 本地链的版本以及高度
type VersionInfo struct {
	Title   string `json:"title"`
	Lottery string `json:"lottery"`
	Height  int64  `json:"height"`
}

// VersionCmd version command
func VersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Get local chain version and height",
		Run:   version,
	}
	return cmd
}

func version(cmd *cobra.Command, args []string) {
	conf, _ := cmd.Flags().GetString("conf")
	ctx := NewChainCtx(cmd, func(chain *blockchain.BlockChain) (interface{}, error) {
		cfg, err := LoadConfig(conf)
		if err != nil {
			return nil, err
		}
		return &VersionInfo{Title: cfg.Title, Lottery: cfg.Lottery.Version, Height: chain.Height()}, nil
	})
	ctx.Run()
}
