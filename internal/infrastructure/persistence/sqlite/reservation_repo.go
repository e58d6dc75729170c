package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/reservation"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// reservationRepository 预约仓储实现(SQLite)
type reservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository 创建预约仓储
func NewReservationRepository(db *gorm.DB) reservation.Repository {
	return &reservationRepository{db: db}
}

// Load 加载全部预约记录(按落账顺序),状态非法的行跳过
func (r *reservationRepository) Load(ctx context.Context) ([]*reservation.Reservation, error) {
	var models []ReservationModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询预约记录失败")
	}

	var reservations []*reservation.Reservation
	for i := range models {
		m := &models[i]
		if m.ReservationID == "" {
			continue
		}
		status := reservation.Status(m.Status)
		switch status {
		case reservation.StatusPending, reservation.StatusAssigned, reservation.StatusCancelled:
		default:
			continue
		}
		reservations = append(reservations, &reservation.Reservation{
			ID:         m.ReservationID,
			UserID:     m.UserID,
			ISBN:       m.ISBN,
			ReservedAt: m.ReservedDate,
			Status:     status,
			AssignedAt: m.AssignedDate,
			Position:   m.Position,
		})
	}
	return reservations, nil
}

// Save 全量写回预约记录
func (r *reservationRepository) Save(ctx context.Context, reservations []*reservation.Reservation) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&ReservationModel{}).Error; err != nil {
			return err
		}
		if len(reservations) == 0 {
			return nil
		}
		models := make([]*ReservationModel, len(reservations))
		for i, res := range reservations {
			models[i] = &ReservationModel{
				ReservationID: res.ID,
				UserID:        res.UserID,
				ISBN:          res.ISBN,
				ReservedDate:  res.ReservedAt,
				Status:        string(res.Status),
				AssignedDate:  res.AssignedAt,
				Position:      res.Position,
			}
		}
		return tx.Create(models).Error
	})
	if err != nil {
		return apperrors.Wrap(err, "写回预约记录失败")
	}
	return nil
}
