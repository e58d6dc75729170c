package reservation

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// StockChecker 库存查询接口
// 预约准入只需要知道"这个ISBN现在有几本可借"
type StockChecker interface {
	AvailableCount(isbn string) (int, error)
}

// LoanChecker 借阅查询接口
// 预约准入靠它阻止"书还在手上又来排队"(loan.Service实现)
type LoanChecker interface {
	// ActiveLoanID 返回用户在该ISBN下的在借单号,没有则ok=false
	ActiveLoanID(userID, isbn string) (string, bool)
}

// Service 预约队列服务(ReservationQueue)
// 业务规则:
// 1. 准入:只有availableCount==0的ISBN才接受预约——有书直接借,
//    排队没有意义;用户手里还持着同一ISBN的在借记录时同样拒绝
// 2. 先到先得:到书时按预约时间顺序分配给队首的pending预约
// 3. 位次是派生数据:每次队列变动后对每个ISBN重算一遍,
//    保证任何时刻pending预约的Position都是连续的1..n
type Service struct {
	repo         Repository
	stock        StockChecker
	loans        LoanChecker
	reservations []*Reservation
	byID         map[string]*Reservation
}

// NewService 创建预约队列并加载历史记录
func NewService(ctx context.Context, repo Repository, stock StockChecker, loans LoanChecker) (*Service, error) {
	loaded, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	s := &Service{
		repo:  repo,
		stock: stock,
		loans: loans,
		byID:  make(map[string]*Reservation, len(loaded)),
	}
	for _, r := range loaded {
		if _, exists := s.byID[r.ID]; exists {
			continue
		}
		s.reservations = append(s.reservations, r)
		s.byID[r.ID] = r
	}
	s.recomputePositions()
	return s, nil
}

// Create 创建预约
// 准入检查失败时不产生任何记录:
// - 尚有库存 → ErrStockAvailable
// - 用户在该ISBN下有未归还借阅 → 业务错误,并在消息里点名阻塞的借阅单号
func (s *Service) Create(ctx context.Context, userID, isbn string) (*Reservation, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	if !book.IsValidISBN(isbn) {
		return nil, ErrInvalidISBN
	}

	available, err := s.stock.AvailableCount(isbn)
	if err != nil {
		return nil, err
	}
	if available > 0 {
		return nil, ErrStockAvailable
	}

	if loanID, ok := s.loans.ActiveLoanID(userID, isbn); ok {
		return nil, apperrors.Newf(apperrors.ErrCodeDuplicateActiveLoan,
			"该用户持有此书的在借记录(借阅单号%s),归还前不能预约", loanID)
	}

	r := NewReservation(s.nextID(), userID, isbn)
	s.reservations = append(s.reservations, r)
	s.byID[r.ID] = r
	s.recomputePositions()

	if err := s.repo.Save(ctx, s.reservations); err != nil {
		// 落账失败:撤销内存变更
		s.reservations = s.reservations[:len(s.reservations)-1]
		delete(s.byID, r.ID)
		s.recomputePositions()
		return nil, err
	}
	return r, nil
}

// AssignNext 把一本到书的副本分配给队首的pending预约
// 按预约先后顺序(落账序即时间序)取第一条pending记录标记为已分配
// 该ISBN没有排队中的预约时返回(nil, nil),调用方据此决定副本是否回架
func (s *Service) AssignNext(ctx context.Context, isbn string) (*Reservation, error) {
	var next *Reservation
	for _, r := range s.reservations {
		if r.ISBN == isbn && r.IsPending() {
			next = r
			break
		}
	}
	if next == nil {
		return nil, nil
	}

	prevAssignedAt := next.AssignedAt
	if err := next.Assign(); err != nil {
		return nil, err
	}
	s.recomputePositions()

	if err := s.repo.Save(ctx, s.reservations); err != nil {
		next.Status = StatusPending
		next.AssignedAt = prevAssignedAt
		s.recomputePositions()
		return nil, err
	}
	return next, nil
}

// Cancel 取消预约
// 只有pending状态的预约可以取消,后面的预约位次自动前移
func (s *Service) Cancel(ctx context.Context, reservationID string) error {
	r, ok := s.byID[reservationID]
	if !ok {
		return ErrReservationNotFound
	}

	prevPosition := r.Position
	if err := r.Cancel(); err != nil {
		return err
	}
	s.recomputePositions()

	if err := s.repo.Save(ctx, s.reservations); err != nil {
		r.Status = StatusPending
		r.Position = prevPosition
		s.recomputePositions()
		return err
	}
	return nil
}

// Update 修改预约的归属信息(管理操作)
// 只允许改pending预约的预约人,排队位次保持不变
func (s *Service) Update(ctx context.Context, reservationID, userID string) error {
	r, ok := s.byID[reservationID]
	if !ok {
		return ErrReservationNotFound
	}
	if !r.IsPending() {
		return ErrInvalidStatusTransition
	}
	if userID == "" {
		return ErrEmptyUserID
	}

	prevUserID := r.UserID
	r.UserID = userID
	if err := s.repo.Save(ctx, s.reservations); err != nil {
		r.UserID = prevUserID
		return err
	}
	return nil
}

// Delete 删除预约记录(管理操作)
func (s *Service) Delete(ctx context.Context, reservationID string) error {
	idx := -1
	for i, r := range s.reservations {
		if r.ID == reservationID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrReservationNotFound
	}

	removed := s.reservations[idx]
	remaining := make([]*Reservation, 0, len(s.reservations)-1)
	remaining = append(remaining, s.reservations[:idx]...)
	remaining = append(remaining, s.reservations[idx+1:]...)

	if err := s.repo.Save(ctx, remaining); err != nil {
		return err
	}
	s.reservations = remaining
	delete(s.byID, removed.ID)
	s.recomputePositions()
	return nil
}

// FindByID 按预约单号查找
func (s *Service) FindByID(reservationID string) (*Reservation, error) {
	r, ok := s.byID[reservationID]
	if !ok {
		return nil, ErrReservationNotFound
	}
	return r, nil
}

// All 返回全部预约记录(落账序,浅拷贝)
func (s *Service) All() []*Reservation {
	out := make([]*Reservation, len(s.reservations))
	copy(out, s.reservations)
	return out
}

// FindByUser 返回某用户的全部预约(含终态)
func (s *Service) FindByUser(userID string) []*Reservation {
	var out []*Reservation
	for _, r := range s.reservations {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

// ListPending 返回某ISBN的排队中预约(先到在前)
// 删除卫兵靠它枚举阻塞删除的预约单号
func (s *Service) ListPending(isbn string) []*Reservation {
	var out []*Reservation
	for _, r := range s.reservations {
		if r.ISBN == isbn && r.IsPending() {
			out = append(out, r)
		}
	}
	return out
}

// QueuePosition 查询预约的当前排队位次(1起算)
// 非pending状态的预约没有位次,返回0
func (s *Service) QueuePosition(reservationID string) (int, error) {
	r, ok := s.byID[reservationID]
	if !ok {
		return 0, ErrReservationNotFound
	}
	return r.Position, nil
}

// QueuePositionFor 按预约人+ISBN查询排队位次(1起算)
// 同一用户对同一ISBN最多有一条pending预约,取最早的一条
func (s *Service) QueuePositionFor(userID, isbn string) (int, error) {
	for _, r := range s.reservations {
		if r.UserID == userID && r.ISBN == isbn && r.IsPending() {
			return r.Position, nil
		}
	}
	return 0, ErrReservationNotFound
}

// recomputePositions 重算每个ISBN下pending预约的排队位次
// 队列任何变动(新增/分配/取消/删除)之后调用,
// 保证pending位次永远是按预约先后排列的连续1..n
func (s *Service) recomputePositions() {
	counters := make(map[string]int)
	for _, r := range s.reservations {
		if !r.IsPending() {
			r.Position = 0
			continue
		}
		counters[r.ISBN]++
		r.Position = counters[r.ISBN]
	}
}

// nextID 生成下一个预约单号
// 格式为R + 三位零填充序号,与借阅单号同一套编号方案:
// 按现有最大序号递增,冲突时追加数字后缀消除歧义
func (s *Service) nextID() string {
	maxN := 0
	for id := range s.byID {
		if !strings.HasPrefix(id, "R") {
			continue
		}
		numPart := id[1:]
		if i := strings.IndexByte(numPart, '-'); i >= 0 {
			numPart = numPart[:i]
		}
		if n, err := strconv.Atoi(numPart); err == nil && n > maxN {
			maxN = n
		}
	}

	id := fmt.Sprintf("R%03d", maxN+1)
	for counter := 1; ; counter++ {
		if _, taken := s.byID[id]; !taken {
			return id
		}
		id = fmt.Sprintf("R%03d-%d", maxN+1, counter)
	}
}
