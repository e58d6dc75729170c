package loan

import (
	"context"

	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/reservation"
)

// ReturnLoanUseCase 还书用例
// 这是跨聚合编排最重的用例,完整链路:
// 1. 台账归还(释放副本,库存可借数+1)
// 2. 查预约队列:该ISBN有排队中的预约则分配给队首
// 3. 分配成功后立即为中签用户建新借阅(刚还的这本直接转手,
//    不经过书架),库存可借数回到0
// 净效果:有人排队时,还一本书不增加在架数量,只是换了持有人
type ReturnLoanUseCase struct {
	loans        *loan.Service
	reservations *reservation.Service
}

// NewReturnLoanUseCase 创建还书用例
func NewReturnLoanUseCase(loans *loan.Service, reservations *reservation.Service) *ReturnLoanUseCase {
	return &ReturnLoanUseCase{
		loans:        loans,
		reservations: reservations,
	}
}

// ReturnLoanResponse 还书响应DTO
type ReturnLoanResponse struct {
	LoanID  string `json:"loan_id"`
	Changed bool   `json:"changed"` // false表示重复归还,本次无操作

	// 预约转交结果(没有排队预约时两者为空)
	AssignedReservationID string `json:"assigned_reservation_id,omitempty"`
	AssignedUserID        string `json:"assigned_user_id,omitempty"`
	HandOffLoanID         string `json:"hand_off_loan_id,omitempty"`
}

// Execute 执行还书
// 错误语义:归还本身失败时返回(nil, err);
// 归还已落账、后续转交失败时返回(已完成部分, err)——
// 归还不会因转交失败而回滚,调用方据resp非nil判断归还是否生效
func (uc *ReturnLoanUseCase) Execute(ctx context.Context, loanID string) (*ReturnLoanResponse, error) {
	l, changed, err := uc.loans.Return(ctx, loanID)
	if err != nil {
		return nil, err
	}

	resp := &ReturnLoanResponse{LoanID: loanID, Changed: changed}
	if !changed {
		return resp, nil
	}

	assigned, err := uc.reservations.AssignNext(ctx, l.ISBN)
	if err != nil {
		return resp, err
	}
	if assigned == nil {
		return resp, nil
	}
	resp.AssignedReservationID = assigned.ID
	resp.AssignedUserID = assigned.UserID

	handOff, err := uc.loans.Create(ctx, assigned.UserID, l.ISBN)
	if err != nil {
		return resp, err
	}
	resp.HandOffLoanID = handOff.ID
	return resp, nil
}
