// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"io/ioutil"

	tml "github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config 配置文件结构
type Config struct {
	Title   string
	Log     *Log
	Store   *Store
	Lottery *Lottery
	Metrics *Metrics
	Genesis []*GenesisAlloc
}

// Log 日志配置
type Log struct {
	// 日志级别，支持debug(dbug)/info/warn/error(eror)/crit
	Loglevel        string
	LogConsoleLevel string
	// 日志文件名，可带目录，所有生成的日志文件都放到此目录下
	LogFile string
	// 单个日志文件的最大值（单位：兆）
	MaxFileSize uint32
	// 最多保存的历史日志文件个数
	MaxBackups uint32
	// 最多保存的历史日志消息（单位：天）
	MaxAge uint32
	// 日志文件名是否使用本地时间（否则使用UTC时间）
	LocalTime bool
	// 历史日志文件是否压缩（压缩格式为gz）
	Compress bool
	// 是否打印调用源文件和行号
	CallerFile bool
	// 是否打印调用方法
	CallerFunction bool
}

// Store 数据库配置
type Store struct {
	// memdb 或者 leveldb
	Driver  string
	DbPath  string
	DbCache int32
}

// Lottery 合约相关配置
type Lottery struct {
	// 部署工厂合约时的默认版本号
	Version string
}

// Metrics 统计配置
type Metrics struct {
	EnableMetrics bool
}

// GenesisAlloc 创世区块的初始余额，Amount 单位 wei
type GenesisAlloc struct {
	Addr   string
	Amount string
}

// GetDefaultCfgstring 默认配置
func GetDefaultCfgstring() string {
	return defaultCfg
}

var defaultCfg = `
Title="lottery-local"

[log]
loglevel = "info"
logConsoleLevel = "error"
logFile = ""
maxFileSize = 300
maxBackups = 100
maxAge = 28
localTime = true
compress = true
callerFile = false
callerFunction = false

[store]
driver = "memdb"
dbPath = "datadir"
dbCache = 64

[lottery]
version = "0.1.2"

[metrics]
enableMetrics = false
`

// InitCfg 从文件读取配置
func InitCfg(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	return InitCfgString(string(data))
}

// InitCfgString 解析配置字符串并补全默认值
func InitCfgString(cfgstring string) (*Config, error) {
	var cfg Config
	if _, err := tml.Decode(cfgstring, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode toml config")
	}
	fillDefault(&cfg)
	return &cfg, nil
}

// MustInitCfgString 解析失败直接panic, 用于测试
func MustInitCfgString(cfgstring string) *Config {
	cfg, err := InitCfgString(cfgstring)
	if err != nil {
		panic(err)
	}
	return cfg
}

func fillDefault(cfg *Config) {
	if cfg.Title == "" {
		cfg.Title = "lottery-local"
	}
	if cfg.Log == nil {
		cfg.Log = &Log{}
	}
	if cfg.Store == nil {
		cfg.Store = &Store{}
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "memdb"
	}
	if cfg.Store.DbPath == "" {
		cfg.Store.DbPath = "datadir"
	}
	if cfg.Lottery == nil {
		cfg.Lottery = &Lottery{}
	}
	if cfg.Lottery.Version == "" {
		cfg.Lottery.Version = "0.1.2"
	}
	if cfg.Metrics == nil {
		cfg.Metrics = &Metrics{}
	}
}
