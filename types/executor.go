// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"reflect"
	"sync"
	"unicode"
	"unicode/utf8"
)

// LogInfo 日志类型以及名称
type LogInfo struct {
	Ty   reflect.Type
	Name string
}

// ExecutorType 执行器类型接口, 负责payload的解码以及日志的解码
type ExecutorType interface {
	GetName() string
	GetPayload() Message
	DecodePayloadValue(tx *Transaction) (string, reflect.Value, error)
	ActionName(tx *Transaction) string
	GetLogMap() map[int32]*LogInfo
	GetTypeMap() map[string]int32
	InitFuncList(list map[string]reflect.Method)
	GetExecFuncMap() map[string]reflect.Method
}

var (
	executorMu   sync.RWMutex
	executorType = make(map[string]ExecutorType)

	systemLog = map[int32]*LogInfo{
		TyLogErr:      {Ty: nil, Name: NameLogErr},
		TyLogTransfer: {Ty: reflect.TypeOf(ReceiptAccountTransfer{}), Name: NameLogTransfer},
		TyLogGenesis:  {Ty: reflect.TypeOf(ReceiptAccountTransfer{}), Name: NameLogGenesis},

		TyLogExecTransfer: {Ty: reflect.TypeOf(ReceiptExecAccountTransfer{}), Name: NameLogExecTransfer},
		TyLogExecDeposit:  {Ty: reflect.TypeOf(ReceiptExecAccountTransfer{}), Name: NameLogExecDeposit},
	}
)

// RegistorExecutor 注册执行器类型
func RegistorExecutor(exec string, util ExecutorType) {
	executorMu.Lock()
	defer executorMu.Unlock()
	if _, exist := executorType[exec]; exist {
		panic("DupExecutorType")
	}
	executorType[exec] = util
}

// LoadExecutorType 加载执行器类型
func LoadExecutorType(exec string) ExecutorType {
	executorMu.RLock()
	defer executorMu.RUnlock()
	if exec, exist := executorType[exec]; exist {
		return exec
	}
	return nil
}

// GetLogInfo 根据执行器和日志类型查找日志信息, 系统日志优先
func GetLogInfo(execer string, ty int32) *LogInfo {
	if info, ok := systemLog[ty]; ok {
		return info
	}
	ety := LoadExecutorType(execer)
	if ety == nil {
		return nil
	}
	return ety.GetLogMap()[ty]
}

// GetLogName 日志名称，找不到返回 LogReserved
func GetLogName(execer string, ty int32) string {
	info := GetLogInfo(execer, ty)
	if info == nil {
		return "LogReserved"
	}
	return info.Name
}

// DecodeLog 把日志解码成执行器注册的结构体
func DecodeLog(execer string, ty int32, data []byte) (interface{}, error) {
	info := GetLogInfo(execer, ty)
	if info == nil {
		return nil, ErrLogNotFound
	}
	if info.Ty == nil {
		return string(data), nil
	}
	pdata := reflect.New(info.Ty)
	if err := Decode(data, pdata.Interface()); err != nil {
		tlog.Error("DecodeLog", "execer", execer, "ty", ty, "err", err)
		return nil, err
	}
	return pdata.Interface(), nil
}

// ExecTypeBase 执行器类型的公共部分
type ExecTypeBase struct {
	child       ExecutorType
	execFuncMap map[string]reflect.Method
}

// SetChild 设置具体的执行器类型
func (base *ExecTypeBase) SetChild(child ExecutorType) {
	base.child = child
}

// InitFuncList 初始化执行器的函数列表
func (base *ExecTypeBase) InitFuncList(list map[string]reflect.Method) {
	base.execFuncMap = list
}

// GetExecFuncMap 执行器的函数列表
func (base *ExecTypeBase) GetExecFuncMap() map[string]reflect.Method {
	return base.execFuncMap
}

// ActionName 通过payload解码获得action名称
func (base *ExecTypeBase) ActionName(tx *Transaction) string {
	name, _, err := base.child.DecodePayloadValue(tx)
	if err != nil {
		return "unknown"
	}
	return name
}

// DecodePayload 把 payload 解码成执行器的 action 结构体
func (base *ExecTypeBase) DecodePayload(tx *Transaction) (Message, error) {
	payload := base.child.GetPayload()
	if payload == nil {
		return nil, ErrActionNotSupport
	}
	if err := Decode(tx.Payload, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// DecodePayloadValue 解码 payload，返回 action 名称以及对应字段的值
// action 结构体必须有 Ty 字段，以及与 action 名称同名的指针字段
func (base *ExecTypeBase) DecodePayloadValue(tx *Transaction) (string, reflect.Value, error) {
	payload, err := base.DecodePayload(tx)
	if err != nil {
		return "", nilValue, err
	}
	return GetActionValue(payload, base.child.GetTypeMap())
}

var nilValue = reflect.ValueOf(nil)

// GetActionValue 根据 Ty 找到 action 的名称以及值
func GetActionValue(action Message, typemap map[string]int32) (string, reflect.Value, error) {
	v := reflect.ValueOf(action)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return "", nilValue, ErrActionNotSupport
	}
	v = v.Elem()
	tyField := v.FieldByName("Ty")
	if !tyField.IsValid() || tyField.Kind() != reflect.Int32 {
		return "", nilValue, ErrActionNotSupport
	}
	ty := int32(tyField.Int())
	for name, id := range typemap {
		if id != ty {
			continue
		}
		field := v.FieldByName(name)
		if !field.IsValid() || IsNilVal(field) {
			return "", nilValue, ErrActionNotSupport
		}
		return name, field, nil
	}
	return "", nilValue, ErrActionNotSupport
}

// ListMethod 列出所有导出的方法
func ListMethod(action interface{}) map[string]reflect.Method {
	typ := reflect.TypeOf(action)
	methods := make(map[string]reflect.Method)
	for m := 0; m < typ.NumMethod(); m++ {
		method := typ.Method(m)
		if method.PkgPath != "" || !isExported(method.Name) {
			continue
		}
		methods[method.Name] = method
	}
	return methods
}

func isExported(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

// IsOK 检查反射调用的返回值个数以及是否可以取值
func IsOK(list []reflect.Value, n int) bool {
	if len(list) != n {
		return false
	}
	for i := 0; i < len(list); i++ {
		if !IsNilVal(list[i]) && !list[i].CanInterface() {
			return false
		}
	}
	return true
}

// IsNilVal 判断反射值是否为空
func IsNilVal(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	}
	return false
}
