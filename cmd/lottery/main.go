// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/33cn/lottery/common/log"
	"github.com/33cn/lottery/metrics"
	_ "github.com/33cn/lottery/plugin"
	"github.com/33cn/lottery/pluginmgr"
	_ "github.com/33cn/lottery/system"
	"github.com/33cn/lottery/system/dapp/commands"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:               "lottery",
	Short:             "lottery round factory tools",
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().String("conf", "lottery.toml", "config file, empty for the in-memory default")

	rootCmd.AddCommand(
		commands.BalanceCmd(),
		commands.TransferCmd(),
		commands.VersionCmd(),
	)
}

//根据配置初始化日志以及统计
func setup(cmd *cobra.Command, args []string) error {
	conf, _ := cmd.Flags().GetString("conf")
	cfg, err := commands.LoadConfig(conf)
	if err != nil {
		return err
	}
	log.SetFileLog(cfg.Log)
	metrics.StartMetrics(cfg.Metrics)
	return nil
}

func main() {
	pluginmgr.InitExec()
	pluginmgr.AddCmd(rootCmd)
	err := rootCmd.Execute()
	metrics.WriteOnce(os.Stderr)
	log.Close()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
