// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"github.com/33cn/lottery/types"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var weiPerEther = decimal.New(1, types.EtherDecimals)

// ParseAmount 把 ether 单位的金额转成 wei，最多18位小数
func ParseAmount(s string) (*uint256.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, errors.Wrapf(types.ErrAmount, "parse %s: %v", s, err)
	}
	if d.IsNegative() {
		return nil, errors.Wrapf(types.ErrAmount, "negative amount %s", s)
	}
	wei := d.Mul(weiPerEther)
	if !wei.Equal(wei.Truncate(0)) {
		return nil, errors.Wrapf(types.ErrAmount, "too many decimals %s", s)
	}
	v, overflow := uint256.FromBig(wei.BigInt())
	if overflow {
		return nil, errors.Wrapf(types.ErrAmount, "amount overflow %s", s)
	}
	return v, nil
}

// FormatAmount wei 转成 ether 单位的字符串
func FormatAmount(v *uint256.Int) string {
	return decimal.NewFromBigInt(v.ToBig(), -types.EtherDecimals).String()
}

// AccountResult 账户余额的输出格式
type AccountResult struct {
	Addr    string `json:"addr"`
	Balance string `json:"balance"`
	Wei     string `json:"wei"`
}

// DecodeAccount 把账户转成输出格式
func DecodeAccount(acc *types.Account) *AccountResult {
	return &AccountResult{
		Addr:    acc.Addr,
		Balance: FormatAmount(acc.GetBalance()),
		Wei:     acc.GetBalance().ToBig().String(),
	}
}
