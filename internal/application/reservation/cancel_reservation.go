package reservation

import (
	"context"

	"github.com/xiebiao/library/internal/domain/reservation"
)

// CancelReservationUseCase 取消预约用例
type CancelReservationUseCase struct {
	reservations *reservation.Service
}

// NewCancelReservationUseCase 创建取消预约用例
func NewCancelReservationUseCase(reservations *reservation.Service) *CancelReservationUseCase {
	return &CancelReservationUseCase{reservations: reservations}
}

// Execute 执行取消
// 取消后同ISBN后续预约的位次自动前移
func (uc *CancelReservationUseCase) Execute(ctx context.Context, reservationID string) error {
	return uc.reservations.Cancel(ctx, reservationID)
}
