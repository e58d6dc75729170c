package reservation

import (
	"context"

	"github.com/xiebiao/library/internal/domain/reservation"
)

// UpdateReservationUseCase 修改预约用例(管理操作)
// 只允许改排队中预约的预约人,位次不变
type UpdateReservationUseCase struct {
	reservations *reservation.Service
}

// NewUpdateReservationUseCase 创建修改预约用例
func NewUpdateReservationUseCase(reservations *reservation.Service) *UpdateReservationUseCase {
	return &UpdateReservationUseCase{reservations: reservations}
}

// Execute 执行修改
func (uc *UpdateReservationUseCase) Execute(ctx context.Context, reservationID, userID string) error {
	return uc.reservations.Update(ctx, reservationID, userID)
}
