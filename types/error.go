// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "errors"

var (
	// ErrUnauthorized caller is not allowed to run the action
	ErrUnauthorized = errors.New("ErrUnauthorized")
	// ErrInvalidTransition state machine rejects the transition
	ErrInvalidTransition = errors.New("ErrInvalidTransition")
	// ErrOutOfResources not enough value or budget to finish the call
	ErrOutOfResources = errors.New("ErrOutOfResources")

	ErrNotFound              = errors.New("ErrNotFound")
	ErrInvalidParam          = errors.New("ErrInvalidParam")
	ErrNoBalance             = errors.New("ErrNoBalance")
	ErrAmount                = errors.New("ErrAmount")
	ErrSendSameToRecv        = errors.New("ErrSendSameToRecv")
	ErrInvalidAddress        = errors.New("ErrInvalidAddress")
	ErrActionNotSupport      = errors.New("ErrActionNotSupport")
	ErrQueryNotSupport       = errors.New("ErrQueryNotSupport")
	ErrMethodReturnType      = errors.New("ErrMethodReturnType")
	ErrNotAllowKey           = errors.New("ErrNotAllowKey")
	ErrNotAllowMemSetKey     = errors.New("ErrNotAllowMemSetKey")
	ErrUnRegistedDriver      = errors.New("ErrUnRegistedDriver")
	ErrExecNotFound          = errors.New("ErrExecNotFound")
	ErrTxSize                = errors.New("ErrTxSize")
	ErrLogNotFound           = errors.New("ErrLogNotFound")
	ErrBlockHeightNotAllowed = errors.New("ErrBlockHeightNotAllowed")
)
