package loan

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/loan"
)

// CreateLoanUseCase 借书用例
// 库存扣减和台账落账的原子性由台账服务保证,用例层只做DTO转换
type CreateLoanUseCase struct {
	loans *loan.Service
}

// NewCreateLoanUseCase 创建借书用例
func NewCreateLoanUseCase(loans *loan.Service) *CreateLoanUseCase {
	return &CreateLoanUseCase{loans: loans}
}

// CreateLoanRequest 借书请求DTO
type CreateLoanRequest struct {
	UserID string
	ISBN   string
}

// CreateLoanResponse 借书响应DTO
type CreateLoanResponse struct {
	LoanID   string    `json:"loan_id"`
	UserID   string    `json:"user_id"`
	ISBN     string    `json:"isbn"`
	BookID   string    `json:"book_id"`
	LoanDate time.Time `json:"loan_date"`
}

// Execute 执行借书
// 无可借副本时返回ErrOutOfStock,提示用户去预约
func (uc *CreateLoanUseCase) Execute(ctx context.Context, req CreateLoanRequest) (*CreateLoanResponse, error) {
	l, err := uc.loans.Create(ctx, req.UserID, req.ISBN)
	if err != nil {
		return nil, err
	}
	return &CreateLoanResponse{
		LoanID:   l.ID,
		UserID:   l.UserID,
		ISBN:     l.ISBN,
		BookID:   l.BookID,
		LoanDate: l.LoanDate,
	}, nil
}
