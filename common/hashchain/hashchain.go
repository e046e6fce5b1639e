// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hashchain 开奖承诺的 hash 链计算
//
// 开奖方选择一个 32 字节的 secret 以及迭代次数 N，公布两个承诺:
//   saltHash  = keccak256^N(secret)
//   saltNHash = keccak256(secret ∥ uint64be(N) ∥ secret)
// 揭示时任何人都可以用 secret 和 N 重新计算并比较。
package hashchain

import (
	"encoding/binary"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

// ErrZeroIterations N 必须大于 0
var ErrZeroIterations = errors.New("ErrZeroIterations")

// UintWidth N 在 saltNHash 中的编码宽度
const UintWidth = 8

// Commitment 一对承诺
type Commitment struct {
	SaltHash  common.Hash
	SaltNHash common.Hash
}

// IterateHash 对 secret 连续做 n 次 keccak256
func IterateHash(secret common.Hash, n uint64) (common.Hash, error) {
	if n == 0 {
		return common.Hash{}, ErrZeroIterations
	}
	h := sha3.NewLegacyKeccak256()
	digest := secret
	for i := uint64(0); i < n; i++ {
		h.Reset()
		h.Write(digest[:])
		h.Sum(digest[:0])
	}
	return digest, nil
}

// BindCommitment secret 与 N 的绑定承诺
func BindCommitment(secret common.Hash, n uint64) common.Hash {
	h := sha3.NewLegacyKeccak256()
	h.Write(secret[:])
	h.Write(EncodeUint(n, UintWidth))
	h.Write(secret[:])
	var out common.Hash
	h.Sum(out[:0])
	return out
}

// EncodeUint 定长大端编码，width 超过 8 时高位补零
func EncodeUint(n uint64, width int) []byte {
	if width <= 0 {
		return nil
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], n)
	out := make([]byte, width)
	if width >= 8 {
		copy(out[width-8:], buf[:])
	} else {
		copy(out, buf[8-width:])
	}
	return out
}

// NewCommitment 计算一对承诺
func NewCommitment(secret common.Hash, n uint64) (*Commitment, error) {
	saltHash, err := IterateHash(secret, n)
	if err != nil {
		return nil, err
	}
	return &Commitment{SaltHash: saltHash, SaltNHash: BindCommitment(secret, n)}, nil
}

// Verify 检查 secret 和 n 是否与公布的承诺一致
func Verify(secret common.Hash, n uint64, saltHash, saltNHash common.Hash) (bool, error) {
	c, err := NewCommitment(secret, n)
	if err != nil {
		return false, err
	}
	return c.SaltHash == saltHash && c.SaltNHash == saltNHash, nil
}
