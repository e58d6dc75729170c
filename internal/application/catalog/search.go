package catalog

import (
	"github.com/xiebiao/library/internal/domain/inventory"
)

// SearchUseCase 检索用例
// 两种入口:
// - ISBN精确查(走排序镜像上的二分)
// - 书名/作者模糊查(走线性扫描,忽略大小写和变音符号)
type SearchUseCase struct {
	index *inventory.Index
}

// NewSearchUseCase 创建检索用例
func NewSearchUseCase(index *inventory.Index) *SearchUseCase {
	return &SearchUseCase{index: index}
}

// GroupView 检索结果DTO:一个ISBN分组的快照
type GroupView struct {
	ISBN           string     `json:"isbn"`
	Title          string     `json:"title"`
	Author         string     `json:"author"`
	TotalCopies    int        `json:"total_copies"`
	AvailableCount int        `json:"available_count"`
	Copies         []CopyView `json:"copies"`
}

// CopyView 单本副本的快照
type CopyView struct {
	ID       string  `json:"id"`
	Borrowed bool    `json:"borrowed"`
	Weight   float64 `json:"weight"`
	Price    int64   `json:"price"`
}

// ByISBN 按ISBN精确检索,没有命中返回nil
func (uc *SearchUseCase) ByISBN(isbn string) *GroupView {
	g := uc.index.FindByISBN(isbn)
	if g == nil {
		return nil
	}
	return toGroupView(g)
}

// ByTitleOrAuthor 按书名/作者模糊检索
func (uc *SearchUseCase) ByTitleOrAuthor(query string) []*GroupView {
	groups := uc.index.FindByTitleOrAuthor(query)
	views := make([]*GroupView, len(groups))
	for i, g := range groups {
		views[i] = toGroupView(g)
	}
	return views
}

// ListAll 列出全部馆藏(按ISBN升序)
func (uc *SearchUseCase) ListAll() []*GroupView {
	sorted := uc.index.Sorted()
	views := make([]*GroupView, len(sorted))
	for i, g := range sorted {
		views[i] = toGroupView(g)
	}
	return views
}

// Availability 查询某ISBN的可借数量
func (uc *SearchUseCase) Availability(isbn string) (int, error) {
	return uc.index.AvailableCount(isbn)
}

// toGroupView 领域分组 → DTO
func toGroupView(g *inventory.Group) *GroupView {
	view := &GroupView{
		ISBN:           g.ISBN,
		TotalCopies:    len(g.Copies),
		AvailableCount: g.AvailableCount,
	}
	if rep := g.Representative(); rep != nil {
		view.Title = rep.Title
		view.Author = rep.Author
	}
	for _, c := range g.Copies {
		view.Copies = append(view.Copies, CopyView{
			ID:       c.ID,
			Borrowed: c.Borrowed,
			Weight:   c.Weight,
			Price:    c.Price,
		})
	}
	return view
}
