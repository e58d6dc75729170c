package loan

import (
	"context"
	"sort"

	"github.com/xiebiao/library/internal/domain/book"
)

// Stock 库存接口
// 借阅台账只需要库存的两个能力:借出一本、归还一本
// (inventory.Index实现;接口定义在消费方,避免台账依赖库存包)
type Stock interface {
	// Borrow 借出ISBN下任意一本可借副本,返回副本编号
	Borrow(ctx context.Context, isbn string) (string, error)
	// ReturnCopy 归还指定副本
	ReturnCopy(ctx context.Context, copyID string) error
}

// Service 借阅台账服务(LoanLedger)
// 设计说明:
// 1. 创建借阅 = 库存扣减 + 台账落账,任何一步失败都不留半次状态:
//    扣减失败不建台账,落账失败回滚扣减
// 2. 归还是幂等操作:对已归还的单子再次归还是无操作
// 3. 归还后的预约转交由应用层的归还用例编排
//    (台账→库存→预约队列的调用链见application/loan/return_loan.go),
//    台账本身不持有预约队列——避免两个聚合互相引用
type Service struct {
	repo  Repository
	stock Stock
	loans []*Loan
	byID  map[string]*Loan
}

// NewService 创建借阅台账并加载历史记录
func NewService(ctx context.Context, repo Repository, stock Stock) (*Service, error) {
	loaded, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	s := &Service{
		repo:  repo,
		stock: stock,
		byID:  make(map[string]*Loan, len(loaded)),
	}
	for _, l := range loaded {
		if _, exists := s.byID[l.ID]; exists {
			continue
		}
		s.loans = append(s.loans, l)
		s.byID[l.ID] = l
	}
	return s, nil
}

// Create 创建借阅
// 流程:参数校验 → 库存借出一本副本 → 台账落账并持久化
// 库存无可借副本时返回ErrOutOfStock(由库存包定义),台账不产生任何记录
func (s *Service) Create(ctx context.Context, userID, isbn string) (*Loan, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	if !book.IsValidISBN(isbn) {
		return nil, ErrInvalidISBN
	}

	copyID, err := s.stock.Borrow(ctx, isbn)
	if err != nil {
		return nil, err
	}

	existing := make(map[string]struct{}, len(s.byID))
	for id := range s.byID {
		existing[id] = struct{}{}
	}
	l := NewLoan(NextLoanID(existing), userID, isbn, copyID)

	s.loans = append(s.loans, l)
	s.byID[l.ID] = l

	if err := s.repo.Save(ctx, s.loans); err != nil {
		// 落账失败:撤销台账内存变更,并把刚借出的副本还回去
		s.loans = s.loans[:len(s.loans)-1]
		delete(s.byID, l.ID)
		if rbErr := s.stock.ReturnCopy(ctx, copyID); rbErr != nil {
			return nil, rbErr
		}
		return nil, err
	}
	return l, nil
}

// Return 归还借阅
// 返回值: (借阅记录, 本次是否发生状态变化, 错误)
// - 单号不存在 → ErrLoanNotFound
// - 已归还 → 幂等无操作,changed=false
// - 正常归还 → 标记已还、释放副本、持久化,changed=true
// 持久化失败时回滚归还标记,台账与库存保持一致
func (s *Service) Return(ctx context.Context, loanID string) (*Loan, bool, error) {
	l, ok := s.byID[loanID]
	if !ok {
		return nil, false, ErrLoanNotFound
	}
	if !l.MarkReturned() {
		return l, false, nil
	}

	if err := s.stock.ReturnCopy(ctx, l.BookID); err != nil {
		l.Returned = false
		return nil, false, err
	}

	if err := s.repo.Save(ctx, s.loans); err != nil {
		// 台账写回失败:把副本重新标记为借出,回滚归还
		// (回滚借到的可能是同组另一本副本,计数语义不变)
		l.Returned = false
		if _, rbErr := s.stock.Borrow(ctx, l.ISBN); rbErr != nil {
			return nil, false, rbErr
		}
		return nil, false, err
	}
	return l, true, nil
}

// FindByID 按单号查找
func (s *Service) FindByID(loanID string) (*Loan, error) {
	l, ok := s.byID[loanID]
	if !ok {
		return nil, ErrLoanNotFound
	}
	return l, nil
}

// All 返回全部借阅记录(落账序,浅拷贝)
func (s *Service) All() []*Loan {
	out := make([]*Loan, len(s.loans))
	copy(out, s.loans)
	return out
}

// FindByUser 返回某用户的全部借阅(含已归还)
func (s *Service) FindByUser(userID string) []*Loan {
	var out []*Loan
	for _, l := range s.loans {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out
}

// FindActiveByISBN 返回某ISBN的全部在借记录
// 删除卫兵靠它枚举阻塞删除的借阅单号
func (s *Service) FindActiveByISBN(isbn string) []*Loan {
	var out []*Loan
	for _, l := range s.loans {
		if l.ISBN == isbn && l.IsActive() {
			out = append(out, l)
		}
	}
	return out
}

// FindActiveByCopy 返回持有指定副本的在借记录(没有则返回nil)
func (s *Service) FindActiveByCopy(copyID string) *Loan {
	for _, l := range s.loans {
		if l.BookID == copyID && l.IsActive() {
			return l
		}
	}
	return nil
}

// ActiveLoanID 查询用户是否持有某ISBN的未归还借阅
// 预约队列的准入检查靠它阻止"借着还约"(reservation.LoanChecker的实现)
func (s *Service) ActiveLoanID(userID, isbn string) (string, bool) {
	for _, l := range s.loans {
		if l.UserID == userID && l.ISBN == isbn && l.IsActive() {
			return l.ID, true
		}
	}
	return "", false
}

// HistoryForUser 返回用户借阅历史,最近的在前(LIFO视图)
// 这是台账按用户组织的派生视图,每次调用从台账现算,不单独持久化
func (s *Service) HistoryForUser(userID string) []*Loan {
	history := s.FindByUser(userID)
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].LoanDate.After(history[j].LoanDate)
	})
	return history
}

// RecentLoans 返回用户最近n笔借阅
func (s *Service) RecentLoans(userID string, n int) []*Loan {
	history := s.HistoryForUser(userID)
	if n < len(history) {
		history = history[:n]
	}
	return history
}

// Delete 删除借阅记录(管理操作,不会自动发生)
// 只接受已归还的单子:在借的单子直接删会让副本凭空回架,
// 排队中的预约被现场借书插队。在借删除走应用层的删除用例,
// 由它先完成整条归还转交链路(见application/loan/delete_loan.go)
func (s *Service) Delete(ctx context.Context, loanID string) error {
	l, ok := s.byID[loanID]
	if !ok {
		return ErrLoanNotFound
	}
	if l.IsActive() {
		return ErrLoanStillActive
	}

	idx := -1
	for i, cand := range s.loans {
		if cand.ID == loanID {
			idx = i
			break
		}
	}
	remaining := make([]*Loan, 0, len(s.loans)-1)
	remaining = append(remaining, s.loans[:idx]...)
	remaining = append(remaining, s.loans[idx+1:]...)

	if err := s.repo.Save(ctx, remaining); err != nil {
		return err
	}
	s.loans = remaining
	delete(s.byID, loanID)
	return nil
}
