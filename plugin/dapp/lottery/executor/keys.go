// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

//状态数据库中的 key 都在 mavl-lottery- 前缀下
var (
	roundPrefix   = "mavl-lottery-round-"
	factoryPrefix = "mavl-lottery-factory-"
	noncePrefix   = "mavl-lottery-nonce-"
)

func calcRoundKey(addr common.Address) []byte {
	return []byte(roundPrefix + addr.Hex())
}

func calcFactoryKey(addr common.Address) []byte {
	return []byte(factoryPrefix + addr.Hex())
}

func calcFactoryRoundKey(addr common.Address, index int64) []byte {
	key := fmt.Sprintf("%s%s-round-%020d", factoryPrefix, addr.Hex(), index)
	return []byte(key)
}

func calcDeployNonceKey(owner common.Address) []byte {
	return []byte(noncePrefix + owner.Hex())
}
