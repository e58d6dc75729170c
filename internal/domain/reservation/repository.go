package reservation

import (
	"context"
)

// Repository 预约仓储接口(依赖倒置原则)
// 与图书仓储同构:全量加载/全量写回,损坏记录在Load时跳过
type Repository interface {
	// Load 加载全部预约记录
	Load(ctx context.Context) ([]*Reservation, error)

	// Save 全量写回预约记录
	Save(ctx context.Context, reservations []*Reservation) error
}
