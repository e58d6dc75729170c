package file

import (
	"context"
	"time"

	json "github.com/goccy/go-json"

	"github.com/xiebiao/library/internal/domain/reservation"
)

// reservationRecord 预约记录的落盘结构
// Position也落盘,便于直接查看数据文件时了解排队情况;
// 加载后队列服务会按当前队列重算,文件里的值只作参考
type reservationRecord struct {
	ReservationID string     `json:"reservation_id"`
	UserID        string     `json:"user_id"`
	ISBN          string     `json:"isbn"`
	ReservedDate  time.Time  `json:"reserved_date"`
	Status        string     `json:"status"`
	AssignedDate  *time.Time `json:"assigned_date,omitempty"`
	Position      int        `json:"position"`
}

// reservationStore 预约仓储实现(JSON文件)
type reservationStore struct {
	path string
}

// NewReservationStore 创建预约文件仓储
func NewReservationStore(path string) reservation.Repository {
	return &reservationStore{path: path}
}

// Load 加载全部预约记录,损坏或状态非法的记录跳过
func (s *reservationStore) Load(ctx context.Context) ([]*reservation.Reservation, error) {
	raws, err := loadRecords(s.path)
	if err != nil {
		return nil, err
	}

	var reservations []*reservation.Reservation
	for _, raw := range raws {
		var rec reservationRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		if rec.ReservationID == "" || rec.UserID == "" {
			continue
		}
		status := reservation.Status(rec.Status)
		switch status {
		case reservation.StatusPending, reservation.StatusAssigned, reservation.StatusCancelled:
		default:
			continue
		}
		reservations = append(reservations, &reservation.Reservation{
			ID:         rec.ReservationID,
			UserID:     rec.UserID,
			ISBN:       rec.ISBN,
			ReservedAt: rec.ReservedDate,
			Status:     status,
			AssignedAt: rec.AssignedDate,
			Position:   rec.Position,
		})
	}
	return reservations, nil
}

// Save 全量写回预约记录
func (s *reservationStore) Save(ctx context.Context, reservations []*reservation.Reservation) error {
	records := make([]*reservationRecord, len(reservations))
	for i, r := range reservations {
		records[i] = &reservationRecord{
			ReservationID: r.ID,
			UserID:        r.UserID,
			ISBN:          r.ISBN,
			ReservedDate:  r.ReservedAt,
			Status:        string(r.Status),
			AssignedDate:  r.AssignedAt,
			Position:      r.Position,
		}
	}
	return saveRecords(s.path, records)
}
