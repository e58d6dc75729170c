package catalog

import (
	"context"
	"strings"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/inventory"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/reservation"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// DeleteCopyUseCase 出库(删除副本)用例
// 业务规则(删除卫兵):
// 1. 副本在借时不能删——书还在读者手上
// 2. 该ISBN仍有排队中的预约、且这是最后一本副本时不能删——
//    删掉等于把排队的人永远晾着
// 被阻塞时返回冲突错误,消息里点名全部阻塞单号,
// 管理员据此先归还/取消再删
type DeleteCopyUseCase struct {
	catalog      *book.Service
	index        *inventory.Index
	loans        *loan.Service
	reservations *reservation.Service
}

// NewDeleteCopyUseCase 创建出库用例
func NewDeleteCopyUseCase(
	catalog *book.Service,
	index *inventory.Index,
	loans *loan.Service,
	reservations *reservation.Service,
) *DeleteCopyUseCase {
	return &DeleteCopyUseCase{
		catalog:      catalog,
		index:        index,
		loans:        loans,
		reservations: reservations,
	}
}

// Execute 执行出库
func (uc *DeleteCopyUseCase) Execute(ctx context.Context, copyID string) error {
	b, err := uc.catalog.FindByID(copyID)
	if err != nil {
		return err
	}

	var blocking []string

	if active := uc.loans.FindActiveByCopy(copyID); active != nil {
		blocking = append(blocking, "借阅单"+active.ID)
	}

	// 最后一本副本带着排队预约时同样阻塞删除
	if g := uc.index.FindByISBN(b.ISBN); g != nil && len(g.Copies) == 1 {
		for _, r := range uc.reservations.ListPending(b.ISBN) {
			blocking = append(blocking, "预约单"+r.ID)
		}
	}

	if len(blocking) > 0 {
		return apperrors.Newf(apperrors.ErrCodeConflict,
			"副本%s被未完结的记录阻塞,不能删除: %s", copyID, strings.Join(blocking, ", "))
	}

	return uc.catalog.Delete(ctx, copyID)
}
