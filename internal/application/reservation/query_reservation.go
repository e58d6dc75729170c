package reservation

import (
	"time"

	"github.com/xiebiao/library/internal/domain/reservation"
)

// QueryReservationUseCase 预约查询用例
type QueryReservationUseCase struct {
	reservations *reservation.Service
}

// NewQueryReservationUseCase 创建预约查询用例
func NewQueryReservationUseCase(reservations *reservation.Service) *QueryReservationUseCase {
	return &QueryReservationUseCase{reservations: reservations}
}

// ReservationView 预约记录DTO
type ReservationView struct {
	ReservationID string     `json:"reservation_id"`
	UserID        string     `json:"user_id"`
	ISBN          string     `json:"isbn"`
	ReservedDate  time.Time  `json:"reserved_date"`
	Status        string     `json:"status"`
	AssignedDate  *time.Time `json:"assigned_date,omitempty"`
	Position      int        `json:"position"`
}

// PendingByISBN 返回某ISBN的排队中预约(先到在前)
func (uc *QueryReservationUseCase) PendingByISBN(isbn string) []ReservationView {
	return toViews(uc.reservations.ListPending(isbn))
}

// ForUser 返回某用户的全部预约(含终态)
func (uc *QueryReservationUseCase) ForUser(userID string) []ReservationView {
	return toViews(uc.reservations.FindByUser(userID))
}

// All 返回全部预约记录(落账序)
func (uc *QueryReservationUseCase) All() []ReservationView {
	return toViews(uc.reservations.All())
}

// Position 查询预约的当前排队位次(1起算,非排队状态为0)
func (uc *QueryReservationUseCase) Position(reservationID string) (int, error) {
	return uc.reservations.QueuePosition(reservationID)
}

// PositionFor 按预约人+ISBN查询排队位次
func (uc *QueryReservationUseCase) PositionFor(userID, isbn string) (int, error) {
	return uc.reservations.QueuePositionFor(userID, isbn)
}

func toViews(reservations []*reservation.Reservation) []ReservationView {
	views := make([]ReservationView, len(reservations))
	for i, r := range reservations {
		views[i] = ReservationView{
			ReservationID: r.ID,
			UserID:        r.UserID,
			ISBN:          r.ISBN,
			ReservedDate:  r.ReservedAt,
			Status:        string(r.Status),
			AssignedDate:  r.AssignedAt,
			Position:      r.Position,
		}
	}
	return views
}
