// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dapp

import (
	"reflect"

	"github.com/33cn/lottery/types"
	"github.com/pkg/errors"
)

// Query 按名称调用子类的 Query_<Func>，params 为编码后的请求
func (d *DriverBase) Query(funcname string, params []byte) (msg types.Message, err error) {
	funcmap := d.child.GetFuncMap()
	funcname = "Query_" + funcname
	if _, ok := funcmap[funcname]; !ok {
		blog.Error(funcname+" funcname not find", "func", funcname)
		return nil, types.ErrQueryNotSupport
	}
	ty := funcmap[funcname].Type
	if ty.NumIn() != 2 {
		blog.Error(funcname+" err num in param", "num", ty.NumIn())
		return nil, types.ErrQueryNotSupport
	}
	paramin := ty.In(1)
	if paramin.Kind() != reflect.Ptr {
		blog.Error(funcname + "  param is not pointer")
		return nil, types.ErrQueryNotSupport
	}
	p := reflect.New(paramin.Elem())
	if err := types.Decode(params, p.Interface()); err != nil {
		return nil, errors.Wrapf(types.ErrInvalidParam, "decode %s param: %v", funcname, err)
	}
	return callQueryFunc(d.childValue, funcmap[funcname], p)
}

func callQueryFunc(this reflect.Value, f reflect.Method, in reflect.Value) (reply types.Message, err error) {
	valueret := f.Func.Call([]reflect.Value{this, in})
	if !types.IsOK(valueret, 2) {
		return nil, types.ErrMethodReturnType
	}
	r1 := valueret[0].Interface()
	if r1 != nil {
		reply = r1
	}
	r2 := valueret[1].Interface()
	if r2 != nil {
		if r, ok := r2.(error); ok {
			return nil, r
		}
		return nil, types.ErrMethodReturnType
	}
	if reply == nil {
		return nil, types.ErrMethodReturnType
	}
	return reply, nil
}
