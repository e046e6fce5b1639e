// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "errors"

var (
	ErrFactoryNotFound   = errors.New("ErrFactoryNotFound")
	ErrRoundNotFound     = errors.New("ErrRoundNotFound")
	ErrLotteryVersion    = errors.New("ErrLotteryVersion")
	ErrLotteryCommitment = errors.New("ErrLotteryCommitment")
	ErrDeployValue       = errors.New("ErrDeployValue")
)
