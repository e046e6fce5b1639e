// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package log 日志相关接口以及函数
//
// 所有模块通过 New("module", name) 得到 root logger 的子 logger，
// 命令行启动时根据配置文件的 [log] 段重新设置 root 的处理器。
package log

import (
	"io"
	"os"
	"sync"

	"github.com/33cn/lottery/types"
	log15 "github.com/inconshreveable/log15"
	"gopkg.in/natefinch/lumberjack.v2"
)

// 默认配置
const (
	DefaultLogFile     = "logs/lottery.log"
	DefaultMaxFileSize = 300
	DefaultMaxBackups  = 100
	DefaultMaxAge      = 28
)

var (
	mu sync.Mutex
	// 控制台输出，测试时可以替换
	consoleOut io.Writer = os.Stderr
	// 当前的滚动日志文件，重新设置时关闭
	rotateLogger *lumberjack.Logger
)

//SetConsoleOutput 设置控制台日志的输出位置
func SetConsoleOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	consoleOut = w
}

//SetLogLevel 只输出到控制台
func SetLogLevel(logLevel string) {
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	log15.Root().SetHandler(consoleHandler(logLevel))
}

//SetFileLog 设置文件日志和控制台日志，LogFile 为空时只输出到控制台
func SetFileLog(log *types.Log) {
	if log == nil {
		log = &types.Log{LogFile: DefaultLogFile}
	}
	fillDefaultValue(log)
	if log.LogFile == "" {
		SetLogLevel(log.LogConsoleLevel)
		return
	}
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	log15.Root().SetHandler(log15.MultiHandler(consoleHandler(log.LogConsoleLevel), fileHandler(log)))
}

// Close 关闭日志文件，之后只输出到控制台
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if rotateLogger == nil {
		return
	}
	closeFile()
	log15.Root().SetHandler(consoleHandler(log15.LvlError.String()))
}

func closeFile() {
	if rotateLogger != nil {
		rotateLogger.Close()
		rotateLogger = nil
	}
}

// 默认为error级别，防止打印太多日志
func fillDefaultValue(log *types.Log) {
	if log.Loglevel == "" {
		log.Loglevel = log15.LvlError.String()
	}
	if log.LogConsoleLevel == "" {
		log.LogConsoleLevel = log15.LvlError.String()
	}
	if log.MaxFileSize == 0 {
		log.MaxFileSize = DefaultMaxFileSize
	}
	if log.MaxBackups == 0 {
		log.MaxBackups = DefaultMaxBackups
	}
	if log.MaxAge == 0 {
		log.MaxAge = DefaultMaxAge
	}
}

func isWindows() bool {
	return os.PathSeparator == '\\' && os.PathListSeparator == ';'
}

func consoleHandler(logLevel string) log15.Handler {
	format := log15.TerminalFormat()
	if isWindows() {
		format = log15.LogfmtFormat()
	}
	return log15.LvlFilterHandler(getLevel(logLevel), log15.StreamHandler(consoleOut, format))
}

func fileHandler(log *types.Log) log15.Handler {
	rotateLogger = &lumberjack.Logger{
		Filename:   log.LogFile,
		MaxSize:    int(log.MaxFileSize),
		MaxBackups: int(log.MaxBackups),
		MaxAge:     int(log.MaxAge),
		LocalTime:  log.LocalTime,
		Compress:   log.Compress,
	}
	fileh := log15.LvlFilterHandler(
		getLevel(log.Loglevel),
		log15.StreamHandler(rotateLogger, log15.LogfmtFormat()),
	)
	// 增加打印调用源文件、方法和代码行的判断
	if log.CallerFile {
		fileh = log15.CallerFileHandler(fileh)
	}
	if log.CallerFunction {
		fileh = log15.CallerFuncHandler(fileh)
	}
	return fileh
}

func getLevel(lvlString string) log15.Lvl {
	lvl, err := log15.LvlFromString(lvlString)
	if err != nil {
		// 日志级别配置不正确时默认为error级别
		return log15.LvlError
	}
	return lvl
}

//New new
func New(ctx ...interface{}) log15.Logger {
	return log15.Root().New(ctx...)
}
