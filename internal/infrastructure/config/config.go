package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// 存储驱动
const (
	DriverFile   = "file"   // JSON平面文件(默认)
	DriverSQLite = "sqlite" // SQLite单文件数据库
)

// Config 全局配置结构
// 设计说明:使用Viper管理配置,支持YAML文件、环境变量覆盖
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
}

type StorageConfig struct {
	Driver     string `mapstructure:"driver"`      // file | sqlite
	DataDir    string `mapstructure:"data_dir"`    // file驱动的数据目录
	SQLitePath string `mapstructure:"sqlite_path"` // sqlite驱动的数据库文件
}

// BooksPath file驱动的图书数据文件路径
func (s StorageConfig) BooksPath() string {
	return filepath.Join(s.DataDir, "books.json")
}

// LoansPath file驱动的借阅数据文件路径
func (s StorageConfig) LoansPath() string {
	return filepath.Join(s.DataDir, "loans.json")
}

// ReservationsPath file驱动的预约数据文件路径
func (s StorageConfig) ReservationsPath() string {
	return filepath.Join(s.DataDir, "reservations.json")
}

type LogConfig struct {
	Level        string `mapstructure:"level"`  // debug | info | warn | error
	Format       string `mapstructure:"format"` // console | json
	Output       string `mapstructure:"output"` // stdout | stderr | /path/to/file
	EnableCaller bool   `mapstructure:"enable_caller"`
}

// Load 加载配置文件
// 支持:
// 1. 默认加载config/config.yaml,找不到配置文件时使用内置默认值
// 2. 环境变量覆盖(如LIBRARY_STORAGE_DRIVER → storage.driver)
func Load() (*Config, error) {
	v := viper.New()

	// 内置默认值:开箱即用,不依赖配置文件存在
	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.data_dir", "data")
	v.SetDefault("storage.sqlite_path", "data/library.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stderr")

	// 设置配置文件路径
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	// 读取配置文件(不存在时静默使用默认值,其它错误照常上报)
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	// 环境变量绑定(自动转换,如LIBRARY_STORAGE_DRIVER → storage.driver)
	v.SetEnvPrefix("LIBRARY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 解析到结构体
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// 配置验证
	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate 配置校验
func validate(cfg *Config) error {
	switch cfg.Storage.Driver {
	case DriverFile:
		if cfg.Storage.DataDir == "" {
			return fmt.Errorf("file驱动必须配置storage.data_dir")
		}
	case DriverSQLite:
		if cfg.Storage.SQLitePath == "" {
			return fmt.Errorf("sqlite驱动必须配置storage.sqlite_path")
		}
	default:
		return fmt.Errorf("不支持的存储驱动: %s", cfg.Storage.Driver)
	}
	return nil
}
