package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/library/internal/infrastructure/config"
)

// NewDB 打开SQLite数据库
// 设计说明:
// 1. 使用GORM v2 + SQLite驱动,单文件数据库适合桌面单用户场景
// 2. 日志级别跟随全局日志配置(debug时打印SQL)
// 3. 自动迁移表结构:AutoMigrate只增不删,单机工具够用
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	path := cfg.Storage.SQLitePath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("创建数据目录失败: %w", err)
	}

	logLevel := logger.Silent
	if cfg.Log.Level == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败: %w", err)
	}

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}
	return db, nil
}

// autoMigrate 自动迁移表结构
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&BookModel{},
		&LoanModel{},
		&ReservationModel{},
	)
}

// BookModel GORM图书副本模型
// 设计说明:
// 1. 这是infrastructure层的数据模型,domain/book/entity.go不依赖GORM,
//    仓储负责两者之间的转换
// 2. 副本编号是业务主键(B001这类),数据库自增ID只做行号
// 3. 价格以"分"为单位存int64,避免浮点精度问题
type BookModel struct {
	ID        uint      `gorm:"primaryKey"`
	CopyID    string    `gorm:"uniqueIndex;size:32;not null;comment:副本编号"`
	ISBN      string    `gorm:"index;size:20;not null;comment:ISBN号"`
	Title     string    `gorm:"size:200;not null;comment:书名"`
	Author    string    `gorm:"size:100;not null;comment:作者"`
	Weight    float64   `gorm:"not null;comment:重量(千克)"`
	Price     int64     `gorm:"not null;comment:价格(分)"`
	Borrowed  bool      `gorm:"not null;default:false;comment:是否借出"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// LoanModel GORM借阅记录模型
type LoanModel struct {
	ID       uint      `gorm:"primaryKey"`
	LoanID   string    `gorm:"uniqueIndex;size:32;not null;comment:借阅单号"`
	UserID   string    `gorm:"index;size:64;not null;comment:借阅人"`
	ISBN     string    `gorm:"index;size:20;not null;comment:所借ISBN"`
	BookID   string    `gorm:"size:32;not null;comment:借出的副本编号"`
	LoanDate time.Time `gorm:"comment:借出时间"`
	Returned bool      `gorm:"not null;default:false;comment:是否已归还"`
}

// TableName 指定表名
func (LoanModel) TableName() string {
	return "loans"
}

// ReservationModel GORM预约记录模型
type ReservationModel struct {
	ID            uint       `gorm:"primaryKey"`
	ReservationID string     `gorm:"uniqueIndex;size:32;not null;comment:预约单号"`
	UserID        string     `gorm:"index;size:64;not null;comment:预约人"`
	ISBN          string     `gorm:"index;size:20;not null;comment:预约ISBN"`
	ReservedDate  time.Time  `gorm:"comment:预约时间"`
	Status        string     `gorm:"index;size:16;not null;comment:预约状态"`
	AssignedDate  *time.Time `gorm:"comment:分配时间"`
	Position      int        `gorm:"comment:排队位次"`
}

// TableName 指定表名
func (ReservationModel) TableName() string {
	return "reservations"
}
