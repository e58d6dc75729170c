package reservation

import (
	"time"
)

// Status 预约状态
type Status string

const (
	StatusPending   Status = "pending"   // 排队中
	StatusAssigned  Status = "assigned"  // 已分配(到书)
	StatusCancelled Status = "cancelled" // 已取消
)

// 状态流转规则表
// pending是唯一的活跃状态,assigned和cancelled都是终态
var statusTransitions = map[Status][]Status{
	StatusPending:   {StatusAssigned, StatusCancelled},
	StatusAssigned:  {},
	StatusCancelled: {},
}

// Reservation 预约记录实体(聚合根)
// 设计说明:
// 1. 预约挂在ISBN上而不是具体副本上——到书时分配的是"该ISBN下
//    任意一本可借副本",由归还用例在转交时决定
// 2. Position是排队位次的派生字段(1起算,仅pending状态有意义),
//    队列每次变动后由Service统一重算,实体自身不维护
type Reservation struct {
	ID         string     // 预约单号(业务主键,如R001)
	UserID     string     // 预约人
	ISBN       string     // 预约的ISBN
	ReservedAt time.Time  // 预约时间
	Status     Status     // 预约状态
	AssignedAt *time.Time // 分配时间(仅assigned状态有值)
	Position   int        // 排队位次(1起算,非pending时为0)
}

// NewReservation 创建预约记录(工厂方法)
// 初始状态为排队中,预约时间取当前时刻
func NewReservation(id, userID, isbn string) *Reservation {
	return &Reservation{
		ID:         id,
		UserID:     userID,
		ISBN:       isbn,
		ReservedAt: time.Now(),
		Status:     StatusPending,
	}
}

// CanTransitionTo 检查是否可以流转到目标状态
func (r *Reservation) CanTransitionTo(target Status) bool {
	for _, allowed := range statusTransitions[r.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Assign 标记为已分配
func (r *Reservation) Assign() error {
	if !r.CanTransitionTo(StatusAssigned) {
		return ErrInvalidStatusTransition
	}
	now := time.Now()
	r.Status = StatusAssigned
	r.AssignedAt = &now
	r.Position = 0
	return nil
}

// Cancel 标记为已取消
func (r *Reservation) Cancel() error {
	if !r.CanTransitionTo(StatusCancelled) {
		return ErrInvalidStatusTransition
	}
	r.Status = StatusCancelled
	r.Position = 0
	return nil
}

// IsPending 是否排队中
func (r *Reservation) IsPending() bool {
	return r.Status == StatusPending
}
