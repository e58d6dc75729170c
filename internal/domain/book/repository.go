package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现(file/sqlite两种后端)
// 2. 引擎按"启动时全量加载,每次变更后全量写回"的方式使用存储,
//    所以接口只有Load/Save两个操作,不做逐条CRUD
// 3. Load必须跳过单条损坏的记录而不是整体失败
type Repository interface {
	// Load 加载全部副本记录
	Load(ctx context.Context) ([]*Book, error)

	// Save 全量写回副本记录
	Save(ctx context.Context, books []*Book) error
}
