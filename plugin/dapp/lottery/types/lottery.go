// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"reflect"

	"github.com/33cn/lottery/common/address"
	"github.com/33cn/lottery/common/log"
	"github.com/33cn/lottery/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

var (
	llog = log.New("module", "exectype."+LotteryX)

	actionTypeMap = map[string]int32{
		"DeployFactory": LotteryActionDeployFactory,
		"CreateRound":   LotteryActionCreateRound,
	}

	logMap = map[int32]*types.LogInfo{
		TyLogLotteryFactoryDeployed: {Ty: reflect.TypeOf(ReceiptFactoryDeployed{}), Name: NameLogFactoryDeployed},
		TyLogLotteryRoundCreated:    {Ty: reflect.TypeOf(ReceiptRoundCreated{}), Name: NameLogRoundCreated},
		TyLogLotteryRoundStarted:    {Ty: reflect.TypeOf(ReceiptRoundStarted{}), Name: NameLogRoundStarted},
	}
)

func init() {
	// init executor type
	types.RegistorExecutor(LotteryX, NewType())
}

// LotteryType 执行器类型
type LotteryType struct {
	types.ExecTypeBase
}

// NewType new
func NewType() *LotteryType {
	c := &LotteryType{}
	c.SetChild(c)
	return c
}

// GetName 执行器名称
func (lott *LotteryType) GetName() string {
	return LotteryX
}

// GetPayload payload
func (lott *LotteryType) GetPayload() types.Message {
	return &LotteryAction{}
}

// GetTypeMap action 名称到类型
func (lott *LotteryType) GetTypeMap() map[string]int32 {
	return actionTypeMap
}

// GetLogMap 日志类型
func (lott *LotteryType) GetLogMap() map[int32]*types.LogInfo {
	return logMap
}

// DeployFactoryTx 部署工厂的参数
type DeployFactoryTx struct {
	From    common.Address
	Version string
}

// CreateRoundTx 创建一轮的参数
type CreateRoundTx struct {
	From      common.Address
	Factory   common.Address
	SaltHash  common.Hash
	SaltNHash common.Hash
	Picks     []byte
	Value     *uint256.Int
}

// CreateRawDeployFactoryTx 构造部署工厂的交易
func CreateRawDeployFactoryTx(parm *DeployFactoryTx) (*types.Transaction, error) {
	if parm == nil {
		llog.Error("CreateRawDeployFactoryTx", "parm", parm)
		return nil, types.ErrInvalidParam
	}
	deploy := &LotteryAction{
		Ty:            LotteryActionDeployFactory,
		DeployFactory: &FactoryDeploy{Version: parm.Version},
	}
	tx := &types.Transaction{
		Execer:  []byte(LotteryX),
		Payload: types.Encode(deploy),
		From:    parm.From,
		To:      address.ExecAddress(LotteryX),
	}
	return tx, nil
}

// CreateRawCreateRoundTx 构造创建一轮的交易
func CreateRawCreateRoundTx(parm *CreateRoundTx) (*types.Transaction, error) {
	if parm == nil {
		llog.Error("CreateRawCreateRoundTx", "parm", parm)
		return nil, types.ErrInvalidParam
	}
	v := &RoundCreate{
		SaltHash:  common.CopyBytes(parm.SaltHash[:]),
		SaltNHash: common.CopyBytes(parm.SaltNHash[:]),
		Picks:     common.CopyBytes(parm.Picks),
	}
	create := &LotteryAction{
		Ty:          LotteryActionCreateRound,
		CreateRound: v,
	}
	tx := &types.Transaction{
		Execer:  []byte(LotteryX),
		Payload: types.Encode(create),
		From:    parm.From,
		To:      parm.Factory,
		Value:   parm.Value,
	}
	return tx, nil
}
