// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/lottery/common/address"
	"github.com/33cn/lottery/types"
)

// Query_GetBalance 查询地址余额
func (c *Coins) Query_GetBalance(in *types.ReqAddr) (types.Message, error) {
	addr, err := address.NewAddrFromString(in.Addr)
	if err != nil {
		return nil, err
	}
	return c.GetCoinsAccount().LoadAccount(addr), nil
}
