package loan

import (
	"context"
)

// Repository 借阅仓储接口(依赖倒置原则)
// 与图书仓储同构:全量加载/全量写回,损坏记录在Load时跳过
type Repository interface {
	// Load 加载全部借阅记录
	Load(ctx context.Context) ([]*Loan, error)

	// Save 全量写回借阅记录
	Save(ctx context.Context, loans []*Loan) error
}
