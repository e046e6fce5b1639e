// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"github.com/33cn/lottery/blockchain"
	"github.com/33cn/lottery/common"
	"github.com/33cn/lottery/common/address"
	pty "github.com/33cn/lottery/plugin/dapp/lottery/types"
	cmdtypes "github.com/33cn/lottery/system/dapp/commands"
	"github.com/33cn/lottery/types"
	"github.com/spf13/cobra"
)

var statusName = map[int32]string{
	pty.RoundCreated: "created",
	pty.RoundStarted: "started",
}

// RoundResult 一轮的输出格式
type RoundResult struct {
	Address       string `json:"address"`
	Factory       string `json:"factory"`
	SaltHash      string `json:"saltHash"`
	SaltNHash     string `json:"saltNHash"`
	Picks         string `json:"picks"`
	Version       string `json:"version"`
	CreationBlock int64  `json:"creationBlock"`
	ClosingBlock  int64  `json:"closingBlock"`
	Status        string `json:"status"`
	Balance       string `json:"balance"`
}

func getRound(chain *blockchain.BlockChain, addr string) (*pty.LotteryRound, error) {
	reply, err := chain.Query(pty.LotteryX, "GetRound", &pty.ReqRound{Addr: addr})
	if err != nil {
		return nil, err
	}
	return reply.(*pty.LotteryRound), nil
}

// 查询一轮
func LotteryRoundCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "round",
		Short: "Show a round",
		Run:   lotteryRound,
	}
	cmd.Flags().StringP("addr", "a", "", "round address")
	cmd.MarkFlagRequired("addr")
	return cmd
}

func lotteryRound(cmd *cobra.Command, args []string) {
	addr, _ := cmd.Flags().GetString("addr")
	ctx := cmdtypes.NewChainCtx(cmd, func(chain *blockchain.BlockChain) (interface{}, error) {
		return showRound(chain, addr)
	})
	ctx.Run()
}

func showRound(chain *blockchain.BlockChain, addr string) (*RoundResult, error) {
	round, err := getRound(chain, addr)
	if err != nil {
		return nil, err
	}
	reply, err := chain.Query(pty.LotteryX, "GetBalance", &pty.ReqRound{Addr: addr})
	if err != nil {
		return nil, err
	}
	return &RoundResult{
		Address:       round.Address,
		Factory:       round.Factory,
		SaltHash:      common.ToHex(round.SaltHash),
		SaltNHash:     common.ToHex(round.SaltNHash),
		Picks:         common.ToHex(round.Picks),
		Version:       round.Version,
		CreationBlock: round.CreationBlock,
		ClosingBlock:  round.ClosingBlock,
		Status:        statusName[round.Status],
		Balance:       cmdtypes.FormatAmount(reply.(*types.Account).GetBalance()),
	}, nil
}

// 查询工厂创建的轮次
func LotteryRoundsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rounds",
		Short: "List rounds created by a factory",
		Run:   lotteryRounds,
	}
	cmd.Flags().StringP("factory", "t", "", "factory address")
	cmd.MarkFlagRequired("factory")
	cmd.Flags().Int64P("start", "s", 0, "start index, 0 for the first or the last")
	cmd.Flags().Int32P("count", "c", pty.DefultCount, "max rounds to list")
	cmd.Flags().Int32P("direction", "d", pty.ListASC, "0: desc, 1: asc")
	return cmd
}

// RoundsResult 工厂以及轮次列表
type RoundsResult struct {
	Factory    string   `json:"factory"`
	Owner      string   `json:"owner"`
	Version    string   `json:"version"`
	RoundCount int64    `json:"roundCount"`
	Rounds     []string `json:"rounds"`
}

func lotteryRounds(cmd *cobra.Command, args []string) {
	var req pty.ReqFactoryRounds
	req.Addr, _ = cmd.Flags().GetString("factory")
	req.Start, _ = cmd.Flags().GetInt64("start")
	req.Count, _ = cmd.Flags().GetInt32("count")
	req.Direction, _ = cmd.Flags().GetInt32("direction")
	ctx := cmdtypes.NewChainCtx(cmd, func(chain *blockchain.BlockChain) (interface{}, error) {
		return listRounds(chain, &req)
	})
	ctx.Run()
}

func listRounds(chain *blockchain.BlockChain, req *pty.ReqFactoryRounds) (*RoundsResult, error) {
	reply, err := chain.Query(pty.LotteryX, "GetFactory", &pty.ReqFactory{Addr: req.Addr})
	if err != nil {
		return nil, err
	}
	factory := reply.(*pty.LotteryFactory)
	reply, err = chain.Query(pty.LotteryX, "GetFactoryRounds", req)
	if err != nil {
		return nil, err
	}
	return &RoundsResult{
		Factory:    factory.Address,
		Owner:      factory.Owner,
		Version:    factory.Version,
		RoundCount: factory.RoundCount,
		Rounds:     reply.(*pty.ReplyFactoryRounds).Rounds,
	}, nil
}

// 查询记录
func LotteryLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Query committed records",
		Run:   lotteryLogs,
	}
	cmd.Flags().StringP("emitter", "e", "", "emitter address")
	cmd.Flags().StringP("name", "m", "", "record name, e.g. RoundCreated")
	cmd.Flags().Int64P("from_block", "b", 0, "first block")
	cmd.Flags().Int64P("to_block", "x", blockchain.LatestBlock, "last block, -1 for the tip")
	return cmd
}

// RecordResult 记录的输出格式
type RecordResult struct {
	Height  int64       `json:"height"`
	TxIndex int32       `json:"txIndex"`
	Index   int32       `json:"index"`
	Emitter string      `json:"emitter"`
	Name    string      `json:"name"`
	Log     interface{} `json:"log"`
}

// LogFilter logs 命令的参数
type LogFilter struct {
	Emitter   string
	Name      string
	FromBlock int64
	ToBlock   int64
}

func lotteryLogs(cmd *cobra.Command, args []string) {
	var f LogFilter
	f.Emitter, _ = cmd.Flags().GetString("emitter")
	f.Name, _ = cmd.Flags().GetString("name")
	f.FromBlock, _ = cmd.Flags().GetInt64("from_block")
	f.ToBlock, _ = cmd.Flags().GetInt64("to_block")
	ctx := cmdtypes.NewChainCtx(cmd, func(chain *blockchain.BlockChain) (interface{}, error) {
		return queryLogs(chain, &f)
	})
	ctx.Run()
}

func queryLogs(chain *blockchain.BlockChain, f *LogFilter) ([]*RecordResult, error) {
	filter := &blockchain.Filter{Name: f.Name, FromBlock: f.FromBlock, ToBlock: f.ToBlock}
	if f.Emitter != "" {
		addr, err := address.NewAddrFromString(f.Emitter)
		if err != nil {
			return nil, err
		}
		filter.Emitter = addr.Bytes()
	}
	records, err := chain.CommitLog().Query(filter)
	if err != nil {
		return nil, err
	}
	results := make([]*RecordResult, 0, len(records))
	for _, r := range records {
		v, err := r.Decode()
		if err != nil {
			return nil, err
		}
		results = append(results, &RecordResult{
			Height:  r.Height,
			TxIndex: r.TxIndex,
			Index:   r.Index,
			Emitter: common.ToHex(r.Emitter),
			Name:    r.Name,
			Log:     decodeLog(v),
		})
	}
	return results, nil
}

//字节字段转成 hex 输出
func decodeLog(v interface{}) interface{} {
	switch l := v.(type) {
	case *pty.ReceiptRoundStarted:
		return map[string]interface{}{
			"saltHash":     common.ToHex(l.SaltHash),
			"saltNHash":    common.ToHex(l.SaltNHash),
			"closingBlock": l.ClosingBlock,
			"version":      l.Version,
			"picks":        common.ToHex(l.Picks),
		}
	case *types.ReceiptExecAccountTransfer:
		return map[string]interface{}{
			"execAddr": l.ExecAddr,
			"addr":     l.Current.Addr,
			"prev":     cmdtypes.FormatAmount(l.Prev.GetBalance()),
			"cur":      cmdtypes.FormatAmount(l.Current.GetBalance()),
		}
	case *types.ReceiptAccountTransfer:
		return map[string]interface{}{
			"addr": l.Current.Addr,
			"prev": cmdtypes.FormatAmount(l.Prev.GetBalance()),
			"cur":  cmdtypes.FormatAmount(l.Current.GetBalance()),
		}
	}
	return v
}
