package reservation

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/reservation"
)

// CreateReservationUseCase 预约用例
// 准入规则(有库存不收/手里有书不收)在队列服务里,用例层只做DTO转换
type CreateReservationUseCase struct {
	reservations *reservation.Service
}

// NewCreateReservationUseCase 创建预约用例
func NewCreateReservationUseCase(reservations *reservation.Service) *CreateReservationUseCase {
	return &CreateReservationUseCase{reservations: reservations}
}

// CreateReservationRequest 预约请求DTO
type CreateReservationRequest struct {
	UserID string
	ISBN   string
}

// CreateReservationResponse 预约响应DTO
type CreateReservationResponse struct {
	ReservationID string    `json:"reservation_id"`
	UserID        string    `json:"user_id"`
	ISBN          string    `json:"isbn"`
	ReservedDate  time.Time `json:"reserved_date"`
	Position      int       `json:"position"` // 排队位次,1起算
}

// Execute 执行预约
func (uc *CreateReservationUseCase) Execute(ctx context.Context, req CreateReservationRequest) (*CreateReservationResponse, error) {
	r, err := uc.reservations.Create(ctx, req.UserID, req.ISBN)
	if err != nil {
		return nil, err
	}
	return &CreateReservationResponse{
		ReservationID: r.ID,
		UserID:        r.UserID,
		ISBN:          r.ISBN,
		ReservedDate:  r.ReservedAt,
		Position:      r.Position,
	}, nil
}
