package loan

import (
	"time"
)

// Loan 借阅记录实体(聚合根)
// 设计说明:
// 1. 状态机只有两个状态: 在借(Returned=false) → 已还(Returned=true,终态),
//    不存在"重新激活"——再次借出永远产生新的Loan记录
// 2. 只保存外键(UserID/ISBN/BookID),不直接引用副本或用户对象,
//    避免跨聚合的对象引用
// 3. BookID记录实际借出的那本物理副本,归还时精确释放同一本
type Loan struct {
	ID       string    // 借阅单号(业务主键,如L001)
	UserID   string    // 借阅人
	ISBN     string    // 所借图书的ISBN
	BookID   string    // 实际借出的副本编号
	LoanDate time.Time // 借出时间
	Returned bool      // 是否已归还
}

// NewLoan 创建借阅记录(工厂方法)
// 初始状态为在借,借出时间取当前时刻
func NewLoan(id, userID, isbn, bookID string) *Loan {
	return &Loan{
		ID:       id,
		UserID:   userID,
		ISBN:     isbn,
		BookID:   bookID,
		LoanDate: time.Now(),
		Returned: false,
	}
}

// IsActive 是否在借(未归还)
func (l *Loan) IsActive() bool {
	return !l.Returned
}

// MarkReturned 标记归还
// 返回是否发生了状态变化:对已归还的记录再次调用是幂等无操作
func (l *Loan) MarkReturned() bool {
	if l.Returned {
		return false
	}
	l.Returned = true
	return true
}
