// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"strconv"

	"github.com/33cn/lottery/account"
	"github.com/33cn/lottery/common/address"
	dbm "github.com/33cn/lottery/common/db"
	"github.com/33cn/lottery/metrics"
	pty "github.com/33cn/lottery/plugin/dapp/lottery/types"
	drivers "github.com/33cn/lottery/system/dapp"
	"github.com/33cn/lottery/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Action 一笔交易的执行上下文: 调用者、目标地址、附带金额以及当前高度
type Action struct {
	coinsAccount *account.DB
	db           dbm.KV
	fromaddr     common.Address
	toaddr       common.Address
	execaddr     common.Address
	value        *uint256.Int
	height       int64
	index        int
}

// NewLotteryAction new
func NewLotteryAction(l *Lottery, tx *types.Transaction, index int) *Action {
	return &Action{
		coinsAccount: l.GetCoinsAccount(),
		db:           l.GetStateDB(),
		fromaddr:     tx.From,
		toaddr:       tx.To,
		execaddr:     address.ExecAddress(l.GetName()),
		value:        tx.GetValue(),
		height:       l.GetHeight(),
		index:        index,
	}
}

// DeployFactory 部署工厂，调用者为 owner，版本号之后不能修改
func (action *Action) DeployFactory(deploy *pty.FactoryDeploy) (*types.Receipt, error) {
	if deploy.Version == "" {
		return nil, errors.Wrap(types.ErrInvalidParam, pty.ErrLotteryVersion.Error())
	}
	if !action.value.IsZero() {
		return nil, errors.Wrap(types.ErrInvalidParam, pty.ErrDeployValue.Error())
	}
	nonce, err := loadDeployNonce(action.db, action.fromaddr)
	if err != nil {
		return nil, err
	}
	factoryAddr := address.ContractAddress(action.fromaddr, nonce)
	factory := NewFactoryDB(factoryAddr, action.fromaddr, deploy.Version)

	kvc := drivers.NewKVCreator(action.db)
	if err := kvc.AddList(factory.GetKVSet()); err != nil {
		return nil, err
	}
	if err := kvc.Add(calcDeployNonceKey(action.fromaddr), []byte(strconv.FormatUint(nonce+1, 10))); err != nil {
		return nil, err
	}
	l := &pty.ReceiptFactoryDeployed{
		Owner:   factory.Owner,
		Factory: factory.Address,
		Version: factory.Version,
	}
	logs := []*types.ReceiptLog{{Ty: pty.TyLogLotteryFactoryDeployed, Emitter: factoryAddr.Bytes(), Log: types.Encode(l)}}

	metrics.Counter(metrics.FactoryDeployed).Inc(1)
	llog.Debug("DeployFactory", "owner", factory.Owner, "factory", factory.Address, "version", factory.Version)
	return &types.Receipt{Ty: types.ExecOk, KV: kvc.KVList(), Logs: logs}, nil
}

// CreateRound 工厂创建新的一轮
// 附带的金额从调用者经过工厂转给新的一轮，成为它的初始余额
func (action *Action) CreateRound(create *pty.RoundCreate) (*types.Receipt, error) {
	factory, err := findFactory(action.db, action.toaddr)
	if err != nil {
		return nil, err
	}
	if !factory.IsOwner(action.fromaddr) {
		metrics.Counter(metrics.RoundsRejected).Inc(1)
		llog.Error("CreateRound", "factory", factory.Address, "owner", factory.Owner, "caller", action.fromaddr.Hex())
		return nil, errors.Wrapf(types.ErrUnauthorized, "caller %s is not the owner of %s", action.fromaddr.Hex(), factory.Address)
	}
	if err := checkCommitment(create.SaltHash); err != nil {
		return nil, err
	}
	if err := checkCommitment(create.SaltNHash); err != nil {
		return nil, err
	}

	roundAddr := factory.NextRoundAddress()
	receipt := &types.Receipt{Ty: types.ExecOk}
	transfer, err := action.forwardValue(factory.address(), roundAddr)
	if err != nil {
		return nil, err
	}
	receipt.Append(transfer)

	round := NewRoundDB(roundAddr, factory.address(), create, factory.Version, action.height)
	startLog, err := round.Start()
	if err != nil {
		return nil, err
	}

	kvc := drivers.NewKVCreator(action.db)
	if err := kvc.AddList(round.GetKVSet()); err != nil {
		return nil, err
	}
	item := factory.appendRound(roundAddr)
	if err := kvc.Add(item.Key, item.Value); err != nil {
		return nil, err
	}
	if err := kvc.AddList(factory.GetKVSet()); err != nil {
		return nil, err
	}
	receipt.KV = append(receipt.KV, kvc.KVList()...)
	receipt.Logs = append(receipt.Logs, startLog, action.roundCreatedLog(factory, roundAddr))

	metrics.Counter(metrics.RoundsCreated).Inc(1)
	llog.Debug("CreateRound", "factory", factory.Address, "round", round.Address, "closing", round.ClosingBlock, "index", action.index)
	return receipt, nil
}

func (action *Action) roundCreatedLog(factory *FactoryDB, round common.Address) *types.ReceiptLog {
	l := &pty.ReceiptRoundCreated{
		Version:  factory.Version,
		NewRound: round.Hex(),
	}
	return &types.ReceiptLog{
		Ty:      pty.TyLogLotteryRoundCreated,
		Emitter: factory.address().Bytes(),
		Log:     types.Encode(l),
	}
}

//调用者 -> 工厂 -> 新的一轮，金额为 0 时不转账
//资金托管在 lottery 执行器地址下，普通的 coins 转账不能改变一轮的余额
func (action *Action) forwardValue(factory, round common.Address) (*types.Receipt, error) {
	if !action.coinsAccount.LoadExecAccount(round, action.execaddr).GetBalance().IsZero() {
		return nil, errors.Wrapf(types.ErrInvalidParam, "round %s already holds a balance", round.Hex())
	}
	if action.value.IsZero() {
		return nil, nil
	}
	receipt, err := action.coinsAccount.TransferToExec(action.fromaddr, action.execaddr, action.value)
	if err != nil {
		return nil, action.transferErr(err)
	}
	receipt2, err := action.coinsAccount.ExecTransfer(action.fromaddr, factory, action.execaddr, action.value)
	if err != nil {
		return nil, action.transferErr(err)
	}
	receipt.Append(receipt2)
	receipt3, err := action.coinsAccount.ExecTransfer(factory, round, action.execaddr, action.value)
	if err != nil {
		return nil, action.transferErr(err)
	}
	receipt.Append(receipt3)
	return receipt, nil
}

func (action *Action) transferErr(err error) error {
	if err == types.ErrNoBalance {
		return errors.Wrapf(types.ErrOutOfResources, "%s: value %s", err, action.value.ToBig().String())
	}
	return err
}

func checkCommitment(hash []byte) error {
	if len(hash) != pty.HashLength {
		return errors.Wrapf(types.ErrInvalidParam, "%s: length %d", pty.ErrLotteryCommitment, len(hash))
	}
	return nil
}
