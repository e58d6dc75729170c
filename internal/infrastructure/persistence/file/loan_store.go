package file

import (
	"context"
	"time"

	json "github.com/goccy/go-json"

	"github.com/xiebiao/library/internal/domain/loan"
)

// loanRecord 借阅记录的落盘结构
type loanRecord struct {
	LoanID   string    `json:"loan_id"`
	UserID   string    `json:"user_id"`
	ISBN     string    `json:"isbn"`
	BookID   string    `json:"book_id"`
	LoanDate time.Time `json:"loan_date"`
	Returned bool      `json:"returned"`
}

// loanStore 借阅仓储实现(JSON文件)
type loanStore struct {
	path string
}

// NewLoanStore 创建借阅文件仓储
func NewLoanStore(path string) loan.Repository {
	return &loanStore{path: path}
}

// Load 加载全部借阅记录,损坏记录跳过
func (s *loanStore) Load(ctx context.Context) ([]*loan.Loan, error) {
	raws, err := loadRecords(s.path)
	if err != nil {
		return nil, err
	}

	var loans []*loan.Loan
	for _, raw := range raws {
		var rec loanRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		if rec.LoanID == "" || rec.UserID == "" {
			continue
		}
		loans = append(loans, &loan.Loan{
			ID:       rec.LoanID,
			UserID:   rec.UserID,
			ISBN:     rec.ISBN,
			BookID:   rec.BookID,
			LoanDate: rec.LoanDate,
			Returned: rec.Returned,
		})
	}
	return loans, nil
}

// Save 全量写回借阅记录
func (s *loanStore) Save(ctx context.Context, loans []*loan.Loan) error {
	records := make([]*loanRecord, len(loans))
	for i, l := range loans {
		records[i] = &loanRecord{
			LoanID:   l.ID,
			UserID:   l.UserID,
			ISBN:     l.ISBN,
			BookID:   l.BookID,
			LoanDate: l.LoanDate,
			Returned: l.Returned,
		}
	}
	return saveRecords(s.path, records)
}
