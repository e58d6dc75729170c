package loan

import (
	"time"

	"github.com/xiebiao/library/internal/domain/loan"
)

// HistoryUseCase 借阅历史查询用例
type HistoryUseCase struct {
	loans *loan.Service
}

// NewHistoryUseCase 创建历史查询用例
func NewHistoryUseCase(loans *loan.Service) *HistoryUseCase {
	return &HistoryUseCase{loans: loans}
}

// LoanView 借阅记录DTO
type LoanView struct {
	LoanID   string    `json:"loan_id"`
	UserID   string    `json:"user_id"`
	ISBN     string    `json:"isbn"`
	BookID   string    `json:"book_id"`
	LoanDate time.Time `json:"loan_date"`
	Returned bool      `json:"returned"`
}

// ForUser 返回用户借阅历史,最近的在前
// limit<=0表示不限条数
func (uc *HistoryUseCase) ForUser(userID string, limit int) []LoanView {
	var history []*loan.Loan
	if limit > 0 {
		history = uc.loans.RecentLoans(userID, limit)
	} else {
		history = uc.loans.HistoryForUser(userID)
	}
	return toLoanViews(history)
}

// All 返回全部借阅记录(落账序)
func (uc *HistoryUseCase) All() []LoanView {
	return toLoanViews(uc.loans.All())
}

// ActiveByISBN 返回某ISBN的全部在借记录
func (uc *HistoryUseCase) ActiveByISBN(isbn string) []LoanView {
	return toLoanViews(uc.loans.FindActiveByISBN(isbn))
}

func toLoanViews(loans []*loan.Loan) []LoanView {
	views := make([]LoanView, len(loans))
	for i, l := range loans {
		views[i] = LoanView{
			LoanID:   l.ID,
			UserID:   l.UserID,
			ISBN:     l.ISBN,
			BookID:   l.BookID,
			LoanDate: l.LoanDate,
			Returned: l.Returned,
		}
	}
	return views
}
