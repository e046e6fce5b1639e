// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package address 地址的计算以及校验
package address

import (
	"github.com/33cn/lottery/common"
	"github.com/33cn/lottery/types"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	lru "github.com/hashicorp/golang-lru"
)

var addrSeed = []byte("address seed bytes for public key")
var addressCache *lru.Cache
var checkAddressCache *lru.Cache

//MaxExecNameLength 执行器名最大长度
const MaxExecNameLength = 100

func init() {
	addressCache, _ = lru.New(10240)
	checkAddressCache, _ = lru.New(10240)
}

//ExecAddress 执行器的地址，计算量有点大，做一次cache
func ExecAddress(name string) ethcommon.Address {
	if value, ok := addressCache.Get(name); ok {
		return value.(ethcommon.Address)
	}
	if len(name) > MaxExecNameLength {
		panic("name too long")
	}
	var bname [200]byte
	buf := append(bname[:0], addrSeed...)
	buf = append(buf, []byte(name)...)
	addr := ethcommon.BytesToAddress(common.ShaKeccak256(buf)[12:])
	addressCache.Add(name, addr)
	return addr
}

//ContractAddress 合约地址由创建者地址和创建序号决定
func ContractAddress(creator ethcommon.Address, nonce uint64) ethcommon.Address {
	return crypto.CreateAddress(creator, nonce)
}

//CheckAddress 检查地址格式: 0x 开头的 20 字节 hex
func CheckAddress(addr string) error {
	_, err := NewAddrFromString(addr)
	return err
}

//NewAddrFromString 从字符串解析地址
func NewAddrFromString(hs string) (ethcommon.Address, error) {
	if value, ok := checkAddressCache.Get(hs); ok {
		return value.(ethcommon.Address), nil
	}
	if !common.HasHexPrefix(hs) {
		return ethcommon.Address{}, types.ErrInvalidAddress
	}
	b, err := common.FromHex(hs)
	if err != nil || len(b) != ethcommon.AddressLength {
		return ethcommon.Address{}, types.ErrInvalidAddress
	}
	addr := ethcommon.BytesToAddress(b)
	checkAddressCache.Add(hs, addr)
	return addr, nil
}
