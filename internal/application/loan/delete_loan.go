package loan

import (
	"context"

	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/reservation"
)

// DeleteLoanUseCase 删除借阅记录用例(管理操作)
// 在借的单子不能绕过归还链路直接删:先走完整的还书编排
// (释放副本,有人排队则转交给队首),再从台账移除记录。
// 直接删台账会让副本凭空回架,排队中的预约被现场借书插队
type DeleteLoanUseCase struct {
	loans      *loan.Service
	returnLoan *ReturnLoanUseCase
}

// NewDeleteLoanUseCase 创建删除借阅用例
func NewDeleteLoanUseCase(loans *loan.Service, reservations *reservation.Service) *DeleteLoanUseCase {
	return &DeleteLoanUseCase{
		loans:      loans,
		returnLoan: NewReturnLoanUseCase(loans, reservations),
	}
}

// DeleteLoanResponse 删除借阅响应DTO
type DeleteLoanResponse struct {
	LoanID   string `json:"loan_id"`
	Returned bool   `json:"returned"` // 删除前是否补了一次归还

	// 补归还触发的预约转交结果(没有排队预约时为空)
	AssignedReservationID string `json:"assigned_reservation_id,omitempty"`
	AssignedUserID        string `json:"assigned_user_id,omitempty"`
	HandOffLoanID         string `json:"hand_off_loan_id,omitempty"`
}

// Execute 执行删除
// 在借的单子先经过ReturnLoanUseCase的完整归还转交,再删记录;
// 转交半途失败时不删记录,返回已完成部分+错误,管理员可重试
func (uc *DeleteLoanUseCase) Execute(ctx context.Context, loanID string) (*DeleteLoanResponse, error) {
	l, err := uc.loans.FindByID(loanID)
	if err != nil {
		return nil, err
	}

	resp := &DeleteLoanResponse{LoanID: loanID}
	if l.IsActive() {
		ret, err := uc.returnLoan.Execute(ctx, loanID)
		if ret != nil {
			resp.Returned = ret.Changed
			resp.AssignedReservationID = ret.AssignedReservationID
			resp.AssignedUserID = ret.AssignedUserID
			resp.HandOffLoanID = ret.HandOffLoanID
		}
		if err != nil {
			return resp, err
		}
	}

	if err := uc.loans.Delete(ctx, loanID); err != nil {
		return resp, err
	}
	return resp, nil
}
