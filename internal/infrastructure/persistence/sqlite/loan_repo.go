package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/loan"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// loanRepository 借阅仓储实现(SQLite)
// 与图书仓储同构:全量Load/Save,Save走事务内清表重写
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository 创建借阅仓储
func NewLoanRepository(db *gorm.DB) loan.Repository {
	return &loanRepository{db: db}
}

// Load 加载全部借阅记录(按落账顺序)
func (r *loanRepository) Load(ctx context.Context) ([]*loan.Loan, error) {
	var models []LoanModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询借阅记录失败")
	}

	var loans []*loan.Loan
	for i := range models {
		m := &models[i]
		if m.LoanID == "" {
			continue
		}
		loans = append(loans, &loan.Loan{
			ID:       m.LoanID,
			UserID:   m.UserID,
			ISBN:     m.ISBN,
			BookID:   m.BookID,
			LoanDate: m.LoanDate,
			Returned: m.Returned,
		})
	}
	return loans, nil
}

// Save 全量写回借阅记录
func (r *loanRepository) Save(ctx context.Context, loans []*loan.Loan) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&LoanModel{}).Error; err != nil {
			return err
		}
		if len(loans) == 0 {
			return nil
		}
		models := make([]*LoanModel, len(loans))
		for i, l := range loans {
			models[i] = &LoanModel{
				LoanID:   l.ID,
				UserID:   l.UserID,
				ISBN:     l.ISBN,
				BookID:   l.BookID,
				LoanDate: l.LoanDate,
				Returned: l.Returned,
			}
		}
		return tx.Create(models).Error
	})
	if err != nil {
		return apperrors.Wrap(err, "写回借阅记录失败")
	}
	return nil
}
