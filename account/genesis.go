// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package account

import (
	"github.com/33cn/lottery/common/address"
	"github.com/33cn/lottery/types"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// GenesisAllocs 按配置生成创世余额，Amount 为十进制 wei
func (acc *DB) GenesisAllocs(allocs []*types.GenesisAlloc) (*types.Receipt, error) {
	receipt := &types.Receipt{Ty: types.ExecOk}
	for _, alloc := range allocs {
		addr, err := address.NewAddrFromString(alloc.Addr)
		if err != nil {
			return nil, errors.Wrapf(err, "genesis addr %s", alloc.Addr)
		}
		amount, err := uint256.FromDecimal(alloc.Amount)
		if err != nil {
			return nil, errors.Wrapf(types.ErrAmount, "genesis amount %s: %v", alloc.Amount, err)
		}
		r, err := acc.GenesisInit(addr, amount)
		if err != nil {
			return nil, errors.Wrapf(err, "genesis addr %s", alloc.Addr)
		}
		receipt.Append(r)
	}
	return receipt, nil
}
