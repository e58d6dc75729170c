package inventory

import (
	"github.com/xiebiao/library/internal/domain/book"
)

// Group ISBN库存分组(聚合根)
// 设计说明:
// 1. 同一ISBN的全部物理副本聚合为一个Group
// 2. AvailableCount是派生字段(Borrowed=false的副本数),
//    每次影响副本的变更之后都必须调用Recount重算,
//    不变量: AvailableCount + 已借出副本数 == len(Copies)
// 3. 副本数为0的组会被索引剪除;可借数为0但仍有副本的组必须保留,
//    因为待处理的预约仍然引用它
type Group struct {
	ISBN           string       // 分组键
	Copies         []*book.Book // 该ISBN下的全部副本(入组序)
	AvailableCount int          // 可借副本数(派生字段)
}

// NewGroup 创建空分组
func NewGroup(isbn string) *Group {
	return &Group{ISBN: isbn}
}

// Recount 重算可借副本数
// 统一口径:可借 = 未借出副本数(不是副本总数),所有入口都用这一个定义
func (g *Group) Recount() {
	n := 0
	for _, c := range g.Copies {
		if !c.Borrowed {
			n++
		}
	}
	g.AvailableCount = n
}

// FirstAvailable 返回任意一本未借出的副本,没有则返回nil
func (g *Group) FirstAvailable() *book.Book {
	for _, c := range g.Copies {
		if !c.Borrowed {
			return c
		}
	}
	return nil
}

// Representative 返回代表副本(用于展示书名/作者)
func (g *Group) Representative() *book.Book {
	if len(g.Copies) == 0 {
		return nil
	}
	return g.Copies[0]
}

// removeCopy 从组内移除副本,返回是否命中
func (g *Group) removeCopy(copyID string) bool {
	for i, c := range g.Copies {
		if c.ID == copyID {
			g.Copies = append(g.Copies[:i], g.Copies[i+1:]...)
			return true
		}
	}
	return false
}
