// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"github.com/33cn/lottery/blockchain"
	"github.com/33cn/lottery/common/address"
	cty "github.com/33cn/lottery/system/dapp/coins/types"
	"github.com/33cn/lottery/types"
	"github.com/spf13/cobra"
)

// BalanceCmd 查询地址余额
func BalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Get balance of an address",
		Run:   balance,
	}
	cmd.Flags().StringP("addr", "a", "", "account address")
	cmd.MarkFlagRequired("addr")
	return cmd
}

func balance(cmd *cobra.Command, args []string) {
	addr, _ := cmd.Flags().GetString("addr")
	ctx := NewChainCtx(cmd, func(chain *blockchain.BlockChain) (interface{}, error) {
		return chain.Query(cty.CoinsX, "GetBalance", &types.ReqAddr{Addr: addr})
	})
	ctx.SetResultCb(func(res interface{}) (interface{}, error) {
		return DecodeAccount(res.(*types.Account)), nil
	})
	ctx.Run()
}

// TransferCmd 转账，单独打包成一个区块
func TransferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer coins and pack it into a new block",
		Run:   transfer,
	}
	cmd.Flags().StringP("from", "f", "", "sender address")
	cmd.MarkFlagRequired("from")
	cmd.Flags().StringP("to", "t", "", "receiver address")
	cmd.MarkFlagRequired("to")
	cmd.Flags().StringP("amount", "a", "0", "amount in ether")
	cmd.MarkFlagRequired("amount")
	cmd.Flags().StringP("note", "n", "", "transaction note")
	return cmd
}

func transfer(cmd *cobra.Command, args []string) {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	amount, _ := cmd.Flags().GetString("amount")
	note, _ := cmd.Flags().GetString("note")

	ctx := NewChainCtx(cmd, func(chain *blockchain.BlockChain) (interface{}, error) {
		fromAddr, err := address.NewAddrFromString(from)
		if err != nil {
			return nil, err
		}
		toAddr, err := address.NewAddrFromString(to)
		if err != nil {
			return nil, err
		}
		value, err := ParseAmount(amount)
		if err != nil {
			return nil, err
		}
		tx := cty.NewTransferTx(&types.Transaction{From: fromAddr, To: toAddr, Value: value}, note)
		return SendTx(chain, tx)
	})
	ctx.Run()
}

// TxResult 交易执行结果的输出格式
type TxResult struct {
	Height int64    `json:"height"`
	Action string   `json:"action"`
	Ok     bool     `json:"ok"`
	Err    string   `json:"err,omitempty"`
	Logs   []string `json:"logs"`
}

// SendTx 打包交易，执行失败时返回错误
func SendTx(chain *blockchain.BlockChain, tx *types.Transaction) (*TxResult, error) {
	receipt, height, err := chain.SendTx(tx)
	if receipt == nil {
		return nil, err
	}
	result := &TxResult{Height: height, Action: tx.ActionName(), Ok: receipt.Ty == types.ExecOk, Err: receipt.Err}
	for _, l := range receipt.Logs {
		result.Logs = append(result.Logs, types.GetLogName(string(tx.Execer), l.Ty))
	}
	return result, err
}
