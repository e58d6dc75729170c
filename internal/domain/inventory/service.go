package inventory

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// CopyStore 副本属主接口
// 库存索引不直接持久化副本:借出/归还标记的落盘由目录服务完成,
// 索引只负责维护分组视图与计数(所有权单向,避免循环持有)
type CopyStore interface {
	// MarkBorrowed 标记副本借出/归还并写回存储
	MarkBorrowed(ctx context.Context, copyID string, borrowed bool) error
}

// Index 库存索引(InventoryIndex)
// 设计说明:
// 1. 两个视图:groups按入组序(线性搜索用),sorted按ISBN升序(二分搜索用)
// 2. sorted是派生镜像,每次分组变更后由SortByISBN重建,
//    保证二分搜索的有序前置条件始终成立
// 3. 可借数量是唯一口径:组内Borrowed=false的副本数(见Group.Recount)
// 4. 组内副本与目录服务共享同一批*book.Book指针,目录改字段索引立即可见
type Index struct {
	store  CopyStore
	groups []*Group          // 入组序分组列表
	sorted []*Group          // ISBN升序镜像
	byISBN map[string]*Group // ISBN → 分组
	byCopy map[string]*Group // 副本编号 → 所在分组
}

// NewIndex 创建库存索引并从副本列表建立分组
func NewIndex(store CopyStore, copies []*book.Book) *Index {
	ix := &Index{
		store:  store,
		byISBN: make(map[string]*Group),
		byCopy: make(map[string]*Group),
	}
	for _, c := range copies {
		ix.addToGroup(c)
	}
	ix.refresh()
	return ix
}

// AddCopy 新副本入组(没有对应分组时创建)
func (ix *Index) AddCopy(b *book.Book) {
	ix.addToGroup(b)
	ix.refresh()
}

// RemoveCopy 副本出组
// 组内最后一个副本被移除时剪除整个组;
// 可借数为0但仍有副本的组保留(待处理预约还要查它)
func (ix *Index) RemoveCopy(copyID string) {
	g, ok := ix.byCopy[copyID]
	if !ok {
		return
	}
	g.removeCopy(copyID)
	delete(ix.byCopy, copyID)

	if len(g.Copies) == 0 {
		ix.pruneGroup(g)
	} else {
		g.Recount()
	}
	ix.refresh()
}

// UpdateCopy 副本字段变更后的索引同步
// ISBN没变只需要重算计数;ISBN变了要把副本搬到新组
func (ix *Index) UpdateCopy(b *book.Book) {
	g, ok := ix.byCopy[b.ID]
	if !ok {
		ix.AddCopy(b)
		return
	}
	if g.ISBN == b.ISBN {
		g.Recount()
		ix.refresh()
		return
	}

	// 换组:从旧组摘除,进新组
	g.removeCopy(b.ID)
	delete(ix.byCopy, b.ID)
	if len(g.Copies) == 0 {
		ix.pruneGroup(g)
	} else {
		g.Recount()
	}
	ix.addToGroup(b)
	ix.refresh()
}

// FindByISBN 按ISBN精确查找分组(走有序镜像上的二分搜索)
func (ix *Index) FindByISBN(isbn string) *Group {
	idx := BinarySearch(ix.sorted, isbn)
	if idx == NotFound {
		return nil
	}
	return ix.sorted[idx]
}

// FindByTitleOrAuthor 按书名/作者模糊查找(反复线性搜索收集全部命中)
// 大小写与音调不敏感,支持部分匹配,结果保持入组序
func (ix *Index) FindByTitleOrAuthor(query string) []*Group {
	var matches []*Group
	start := 0
	for {
		idx := LinearSearch(ix.groups, query, start)
		if idx == NotFound {
			return matches
		}
		matches = append(matches, ix.groups[idx])
		start = idx + 1
	}
}

// AvailableCount 返回ISBN的可借副本数
func (ix *Index) AvailableCount(isbn string) (int, error) {
	g := ix.FindByISBN(isbn)
	if g == nil {
		return 0, ErrISBNNotFound
	}
	return g.AvailableCount, nil
}

// Borrow 借出一本副本
// 从组内任选一本未借出的副本,标记借出并落盘,返回副本编号;
// 落盘失败时不改计数(MarkBorrowed内部已回滚标记),保证无半次状态
func (ix *Index) Borrow(ctx context.Context, isbn string) (string, error) {
	g := ix.FindByISBN(isbn)
	if g == nil {
		return "", ErrISBNNotFound
	}

	chosen := g.FirstAvailable()
	if chosen == nil {
		return "", ErrOutOfStock
	}

	if err := ix.store.MarkBorrowed(ctx, chosen.ID, true); err != nil {
		return "", err
	}
	g.Recount()
	return chosen.ID, nil
}

// ReturnCopy 归还一本副本
// 只负责把副本标记为未借出并重算计数;
// 是否把这本副本转交给排队的预约由借阅台账决定(职责分离)
func (ix *Index) ReturnCopy(ctx context.Context, copyID string) error {
	g, ok := ix.byCopy[copyID]
	if !ok {
		return ErrCopyNotFound
	}

	if err := ix.store.MarkBorrowed(ctx, copyID, false); err != nil {
		return err
	}
	g.Recount()
	return nil
}

// Groups 返回入组序分组列表(浅拷贝)
func (ix *Index) Groups() []*Group {
	out := make([]*Group, len(ix.groups))
	copy(out, ix.groups)
	return out
}

// Sorted 返回ISBN升序镜像(浅拷贝)
func (ix *Index) Sorted() []*Group {
	out := make([]*Group, len(ix.sorted))
	copy(out, ix.sorted)
	return out
}

// AllCopies 返回全部副本(按组序展开,报表用)
func (ix *Index) AllCopies() []*book.Book {
	var out []*book.Book
	for _, g := range ix.groups {
		out = append(out, g.Copies...)
	}
	return out
}

// addToGroup 把副本放进对应分组并重算计数
func (ix *Index) addToGroup(b *book.Book) {
	g, ok := ix.byISBN[b.ISBN]
	if !ok {
		g = NewGroup(b.ISBN)
		ix.groups = append(ix.groups, g)
		ix.byISBN[b.ISBN] = g
	}
	g.Copies = append(g.Copies, b)
	g.Recount()
	ix.byCopy[b.ID] = g
}

// pruneGroup 剪除空组
func (ix *Index) pruneGroup(g *Group) {
	delete(ix.byISBN, g.ISBN)
	for i, cand := range ix.groups {
		if cand == g {
			ix.groups = append(ix.groups[:i], ix.groups[i+1:]...)
			return
		}
	}
}

// refresh 重建有序镜像(二分搜索前置条件的维护点)
func (ix *Index) refresh() {
	ix.sorted = SortByISBN(ix.groups)
}
