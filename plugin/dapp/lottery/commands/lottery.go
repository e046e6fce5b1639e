// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands lottery 命令行
package commands

import (
	"github.com/33cn/lottery/blockchain"
	"github.com/33cn/lottery/common"
	"github.com/33cn/lottery/common/address"
	"github.com/33cn/lottery/common/hashchain"
	pty "github.com/33cn/lottery/plugin/dapp/lottery/types"
	cmdtypes "github.com/33cn/lottery/system/dapp/commands"
	"github.com/33cn/lottery/types"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// LotteryCmd lottery 命令
func LotteryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lottery",
		Short: "Lottery round factory operation",
		Args:  cobra.MinimumNArgs(1),
	}

	cmd.AddCommand(
		LotteryCommitCmd(),
		LotteryVerifyCmd(),
		LotteryDeployCmd(),
		LotteryCreateCmd(),
		LotteryRoundCmd(),
		LotteryRoundsCmd(),
		LotteryLogsCmd(),
	)

	return cmd
}

// 计算承诺
func LotteryCommitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Compute salt hash and salt N hash of a secret",
		Run:   lotteryCommit,
	}
	addSecretFlags(cmd)
	return cmd
}

func addSecretFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("secret", "s", "", "32 bytes hex secret, other text is hashed into a secret")
	cmd.MarkFlagRequired("secret")
	cmd.Flags().Uint64P("iterations", "n", 0, "hash chain length, must be positive")
	cmd.MarkFlagRequired("iterations")
}

// ParseSecret 0x 开头的32字节 hex 直接作为 secret，否则取 keccak256(text)
func ParseSecret(s string) (ethcommon.Hash, error) {
	if common.HasHexPrefix(s) {
		b, err := common.FromHex(s)
		if err != nil || len(b) != pty.HashLength {
			return ethcommon.Hash{}, errors.Wrapf(types.ErrInvalidParam, "secret %s", s)
		}
		return ethcommon.BytesToHash(b), nil
	}
	return ethcommon.BytesToHash(common.ShaKeccak256([]byte(s))), nil
}

// CommitResult 承诺的输出格式
type CommitResult struct {
	Secret    string `json:"secret"`
	N         uint64 `json:"n"`
	SaltHash  string `json:"saltHash"`
	SaltNHash string `json:"saltNHash"`
}

func lotteryCommit(cmd *cobra.Command, args []string) {
	secretStr, _ := cmd.Flags().GetString("secret")
	n, _ := cmd.Flags().GetUint64("iterations")
	res, err := commit(secretStr, n)
	cmdtypes.PrintResult(res, err)
}

func commit(secretStr string, n uint64) (*CommitResult, error) {
	secret, err := ParseSecret(secretStr)
	if err != nil {
		return nil, err
	}
	c, err := hashchain.NewCommitment(secret, n)
	if err != nil {
		return nil, err
	}
	return &CommitResult{
		Secret:    secret.Hex(),
		N:         n,
		SaltHash:  c.SaltHash.Hex(),
		SaltNHash: c.SaltNHash.Hex(),
	}, nil
}

// 校验承诺
func LotteryVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a revealed secret against a round's commitments",
		Run:   lotteryVerify,
	}
	addSecretFlags(cmd)
	cmd.Flags().StringP("round", "r", "", "round address")
	cmd.MarkFlagRequired("round")
	return cmd
}

func lotteryVerify(cmd *cobra.Command, args []string) {
	secretStr, _ := cmd.Flags().GetString("secret")
	n, _ := cmd.Flags().GetUint64("iterations")
	round, _ := cmd.Flags().GetString("round")
	ctx := cmdtypes.NewChainCtx(cmd, func(chain *blockchain.BlockChain) (interface{}, error) {
		return verify(chain, round, secretStr, n)
	})
	ctx.Run()
}

func verify(chain *blockchain.BlockChain, round string, secretStr string, n uint64) (bool, error) {
	secret, err := ParseSecret(secretStr)
	if err != nil {
		return false, err
	}
	r, err := getRound(chain, round)
	if err != nil {
		return false, err
	}
	return hashchain.Verify(secret, n, ethcommon.BytesToHash(r.SaltHash), ethcommon.BytesToHash(r.SaltNHash))
}

// 部署工厂
func LotteryDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy a round factory owned by the sender",
		Run:   lotteryDeploy,
	}
	cmd.Flags().StringP("from", "f", "", "owner address")
	cmd.MarkFlagRequired("from")
	cmd.Flags().StringP("version", "v", "", "factory version, default from config")
	return cmd
}

func lotteryDeploy(cmd *cobra.Command, args []string) {
	from, _ := cmd.Flags().GetString("from")
	version, _ := cmd.Flags().GetString("version")
	conf, _ := cmd.Flags().GetString("conf")
	ctx := cmdtypes.NewChainCtx(cmd, func(chain *blockchain.BlockChain) (interface{}, error) {
		if version == "" {
			cfg, err := cmdtypes.LoadConfig(conf)
			if err != nil {
				return nil, err
			}
			version = cfg.Lottery.Version
		}
		return deploy(chain, from, version)
	})
	ctx.Run()
}

// DeployResult 部署结果
type DeployResult struct {
	*cmdtypes.TxResult
	Factory string `json:"factory"`
}

func deploy(chain *blockchain.BlockChain, from, version string) (*DeployResult, error) {
	owner, err := address.NewAddrFromString(from)
	if err != nil {
		return nil, err
	}
	tx, err := pty.CreateRawDeployFactoryTx(&pty.DeployFactoryTx{From: owner, Version: version})
	if err != nil {
		return nil, err
	}
	res, err := cmdtypes.SendTx(chain, tx)
	if err != nil {
		return nil, err
	}
	records, err := chain.CommitLog().Query(&blockchain.Filter{Name: pty.NameLogFactoryDeployed, FromBlock: res.Height, ToBlock: res.Height})
	if err != nil {
		return nil, err
	}
	if len(records) != 1 {
		return nil, errors.Wrapf(types.ErrNotFound, "FactoryDeployed record at %d", res.Height)
	}
	v, err := records[0].Decode()
	if err != nil {
		return nil, err
	}
	return &DeployResult{TxResult: res, Factory: v.(*pty.ReceiptFactoryDeployed).Factory}, nil
}

// 创建新的一轮
func LotteryCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new round through a factory",
		Run:   lotteryCreate,
	}
	cmd.Flags().StringP("from", "f", "", "factory owner address")
	cmd.MarkFlagRequired("from")
	cmd.Flags().StringP("factory", "t", "", "factory address")
	cmd.MarkFlagRequired("factory")
	cmd.Flags().StringP("salt_hash", "s", "", "hash chain commitment, 0x hex")
	cmd.MarkFlagRequired("salt_hash")
	cmd.Flags().StringP("salt_n_hash", "n", "", "binding commitment, 0x hex")
	cmd.MarkFlagRequired("salt_n_hash")
	cmd.Flags().StringP("picks", "p", "", "opaque picks, 0x hex")
	cmd.Flags().StringP("amount", "a", "0", "opening balance in ether")
	return cmd
}

// CreateParam 创建一轮的命令行参数
type CreateParam struct {
	From      string
	Factory   string
	SaltHash  string
	SaltNHash string
	Picks     string
	Amount    string
}

func lotteryCreate(cmd *cobra.Command, args []string) {
	var parm CreateParam
	parm.From, _ = cmd.Flags().GetString("from")
	parm.Factory, _ = cmd.Flags().GetString("factory")
	parm.SaltHash, _ = cmd.Flags().GetString("salt_hash")
	parm.SaltNHash, _ = cmd.Flags().GetString("salt_n_hash")
	parm.Picks, _ = cmd.Flags().GetString("picks")
	parm.Amount, _ = cmd.Flags().GetString("amount")
	ctx := cmdtypes.NewChainCtx(cmd, func(chain *blockchain.BlockChain) (interface{}, error) {
		return create(chain, &parm)
	})
	ctx.Run()
}

// CreateResult 创建结果
type CreateResult struct {
	*cmdtypes.TxResult
	Round string `json:"round"`
}

func create(chain *blockchain.BlockChain, parm *CreateParam) (*CreateResult, error) {
	from, err := address.NewAddrFromString(parm.From)
	if err != nil {
		return nil, err
	}
	factory, err := address.NewAddrFromString(parm.Factory)
	if err != nil {
		return nil, err
	}
	saltHash, err := parseHash(parm.SaltHash)
	if err != nil {
		return nil, err
	}
	saltNHash, err := parseHash(parm.SaltNHash)
	if err != nil {
		return nil, err
	}
	var picks []byte
	if parm.Picks != "" {
		picks, err = common.FromHex(parm.Picks)
		if err != nil {
			return nil, errors.Wrapf(types.ErrInvalidParam, "picks %s", parm.Picks)
		}
	}
	value, err := cmdtypes.ParseAmount(parm.Amount)
	if err != nil {
		return nil, err
	}
	tx, err := pty.CreateRawCreateRoundTx(&pty.CreateRoundTx{
		From:      from,
		Factory:   factory,
		SaltHash:  saltHash,
		SaltNHash: saltNHash,
		Picks:     picks,
		Value:     value,
	})
	if err != nil {
		return nil, err
	}
	res, err := cmdtypes.SendTx(chain, tx)
	if err != nil {
		return nil, err
	}
	records, err := chain.CommitLog().Query(&blockchain.Filter{
		Emitter:   factory.Bytes(),
		Name:      pty.NameLogRoundCreated,
		FromBlock: res.Height,
		ToBlock:   res.Height,
	})
	if err != nil {
		return nil, err
	}
	if len(records) != 1 {
		return nil, errors.Wrapf(types.ErrNotFound, "RoundCreated record at %d", res.Height)
	}
	v, err := records[0].Decode()
	if err != nil {
		return nil, err
	}
	return &CreateResult{TxResult: res, Round: v.(*pty.ReceiptRoundCreated).NewRound}, nil
}

func parseHash(s string) (ethcommon.Hash, error) {
	b, err := common.FromHex(s)
	if err != nil || len(b) != pty.HashLength {
		return ethcommon.Hash{}, errors.Wrapf(types.ErrInvalidParam, "%s: %s", pty.ErrLotteryCommitment, s)
	}
	return ethcommon.BytesToHash(b), nil
}
