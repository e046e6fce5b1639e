// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"testing"

	"github.com/33cn/lottery/common/address"
	"github.com/33cn/lottery/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLotteryType(t *testing.T) {
	ty := types.LoadExecutorType(LotteryX)
	require.NotNil(t, ty)
	assert.Equal(t, LotteryX, ty.GetName())
	assert.Equal(t, &LotteryAction{}, ty.GetPayload())
	assert.Len(t, ty.GetTypeMap(), 2)
	assert.Equal(t, NameLogRoundStarted, types.GetLogName(LotteryX, TyLogLotteryRoundStarted))
	assert.Equal(t, "LogReserved", types.GetLogName(LotteryX, 899))
}

func TestCreateRawDeployFactoryTx(t *testing.T) {
	_, err := CreateRawDeployFactoryTx(nil)
	assert.Equal(t, types.ErrInvalidParam, err)

	owner := common.HexToAddress("0x01")
	tx, err := CreateRawDeployFactoryTx(&DeployFactoryTx{From: owner, Version: "0.1.2"})
	require.Nil(t, err)
	assert.Equal(t, owner, tx.From)
	assert.Equal(t, address.ExecAddress(LotteryX), tx.To)
	assert.Equal(t, "DeployFactory", tx.ActionName())

	name, val, err := types.LoadExecutorType(LotteryX).DecodePayloadValue(tx)
	require.Nil(t, err)
	assert.Equal(t, "DeployFactory", name)
	assert.Equal(t, "0.1.2", val.Interface().(*FactoryDeploy).Version)
}

func TestCreateRawCreateRoundTx(t *testing.T) {
	parm := &CreateRoundTx{
		From:      common.HexToAddress("0x01"),
		Factory:   common.HexToAddress("0x02"),
		SaltHash:  common.HexToHash("0xaa"),
		SaltNHash: common.HexToHash("0xbb"),
		Picks:     []byte{1, 2, 3},
		Value:     uint256.NewInt(10),
	}
	tx, err := CreateRawCreateRoundTx(parm)
	require.Nil(t, err)
	assert.Equal(t, parm.Factory, tx.To)
	assert.Equal(t, uint64(10), tx.GetValue().Uint64())

	var action LotteryAction
	require.Nil(t, types.Decode(tx.Payload, &action))
	assert.Equal(t, int32(LotteryActionCreateRound), action.Ty)
	assert.Nil(t, action.DeployFactory)
	assert.Equal(t, parm.SaltHash.Bytes(), action.CreateRound.SaltHash)
	assert.Equal(t, parm.SaltNHash.Bytes(), action.CreateRound.SaltNHash)
	assert.Equal(t, []byte{1, 2, 3}, action.CreateRound.Picks)
	assert.Equal(t, "CreateRound", tx.ActionName())
}

func TestDecodeRoundStartedLog(t *testing.T) {
	l := &ReceiptRoundStarted{
		SaltHash:     common.HexToHash("0xaa").Bytes(),
		SaltNHash:    common.HexToHash("0xbb").Bytes(),
		ClosingBlock: 43201,
		Version:      "0.1.2",
	}
	v, err := types.DecodeLog(LotteryX, TyLogLotteryRoundStarted, types.Encode(l))
	require.Nil(t, err)
	got := v.(*ReceiptRoundStarted)
	assert.Equal(t, l.SaltHash, got.SaltHash)
	assert.Equal(t, l.ClosingBlock, got.ClosingBlock)
	assert.Equal(t, l.Version, got.Version)
}
