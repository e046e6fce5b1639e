// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package common 公用的编码以及hash函数
package common

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

//ToHex []byte -> hex
func ToHex(b []byte) string {
	hex := Bytes2Hex(b)
	if len(hex) == 0 {
		return ""
	}
	return "0x" + hex
}

//FromHex hex -> []byte
func FromHex(s string) ([]byte, error) {
	if len(s) > 1 {
		if s[0:2] == "0x" || s[0:2] == "0X" {
			s = s[2:]
		}
		if len(s)%2 == 1 {
			s = "0" + s
		}
		return Hex2Bytes(s)
	}
	return []byte{}, nil
}

// CopyBytes Returns an exact copy of the provided bytes
func CopyBytes(b []byte) (copiedBytes []byte) {
	if b == nil {
		return nil
	}
	copiedBytes = make([]byte, len(b))
	copy(copiedBytes, b)

	return
}

//HasHexPrefix 是否包含0x前缀
func HasHexPrefix(str string) bool {
	l := len(str)
	return l >= 2 && (str[0:2] == "0x" || str[0:2] == "0X")
}

//Bytes2Hex []byte -> hex
func Bytes2Hex(d []byte) string {
	return hex.EncodeToString(d)
}

//Hex2Bytes hex -> []byte
func Hex2Bytes(str string) ([]byte, error) {
	return hex.DecodeString(str)
}

//ShaKeccak256 legacy keccak256, 与 web3.sha3 结果一致
func ShaKeccak256(b ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, data := range b {
		h.Write(data)
	}
	return h.Sum(nil)
}
