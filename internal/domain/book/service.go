package book

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Indexer 库存索引回调接口
// 设计说明:
// 1. 目录服务是副本记录的唯一属主,库存索引只维护按ISBN的分组视图
// 2. 目录的每次变更都同步通知索引,保证分组/计数/有序镜像与副本数据一致
// 3. 接口由inventory包实现,这里只声明目录需要的最小能力(依赖倒置)
type Indexer interface {
	// AddCopy 新副本入组
	AddCopy(b *Book)
	// RemoveCopy 副本出组(组空则剪除)
	RemoveCopy(copyID string)
	// UpdateCopy 副本字段变更(ISBN变化时需要换组)
	UpdateCopy(b *Book)
}

// Service 图书目录服务(CatalogStore)
// 设计说明:
// 1. 启动时从仓储全量加载到内存,每次变更后先改内存再写回存储
// 2. 单写者模型:进程内只允许构造一个Service实例,不做内部加锁(见DESIGN.md)
// 3. 存储写回失败时回滚内存变更,保证内存状态不被半次操作污染
type Service struct {
	repo    Repository
	copies  []*Book          // 插入序副本列表
	byID    map[string]*Book // 副本编号 → 副本
	indexer Indexer          // 库存索引(延迟注入,见SetIndexer)
}

// NewService 创建目录服务并加载副本数据
// 仓储Load已负责跳过损坏记录,这里只做编号去重(重复编号保留先出现的记录)
func NewService(ctx context.Context, repo Repository) (*Service, error) {
	loaded, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	s := &Service{
		repo: repo,
		byID: make(map[string]*Book, len(loaded)),
	}
	for _, b := range loaded {
		if _, exists := s.byID[b.ID]; exists {
			continue
		}
		s.copies = append(s.copies, b)
		s.byID[b.ID] = b
	}
	return s, nil
}

// SetIndexer 注入库存索引
// 目录与索引互相持有(索引读副本数据,目录通知索引),
// 构造完成后由组装方(main)调用一次,之后不再更换
func (s *Service) SetIndexer(ix Indexer) {
	s.indexer = ix
}

// All 返回全部副本(插入序)
// 返回内部切片的浅拷贝,调用方不能通过它增删副本
func (s *Service) All() []*Book {
	out := make([]*Book, len(s.copies))
	copy(out, s.copies)
	return out
}

// FindByID 按副本编号查找
func (s *Service) FindByID(id string) (*Book, error) {
	b, ok := s.byID[id]
	if !ok {
		return nil, ErrBookNotFound
	}
	return b, nil
}

// Create 新增副本
// 流程:校验(NewBook) → 生成/查重编号 → 入内存 → 写回存储 → 通知索引
// 存储失败时撤销内存变更,不会留下半个副本
func (s *Service) Create(ctx context.Context, id, isbn, title, author string, weight float64, price int64) (*Book, error) {
	if id == "" {
		id = s.nextID()
	} else if _, exists := s.byID[id]; exists {
		return nil, ErrIDDuplicate
	}

	b, err := NewBook(id, isbn, title, author, weight, price)
	if err != nil {
		return nil, err
	}

	s.copies = append(s.copies, b)
	s.byID[b.ID] = b

	if err := s.repo.Save(ctx, s.copies); err != nil {
		s.copies = s.copies[:len(s.copies)-1]
		delete(s.byID, b.ID)
		return nil, err
	}

	if s.indexer != nil {
		s.indexer.AddCopy(b)
	}
	return b, nil
}

// Update 更新副本字段
// ISBN变化会触发索引换组;校验失败或存储失败时内存保持原值
func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*Book, error) {
	b, ok := s.byID[id]
	if !ok {
		return nil, ErrBookNotFound
	}

	// 先在副本的拷贝上应用变更,校验通过后再覆盖原值
	backup := *b
	if err := b.Update(params); err != nil {
		*b = backup
		return nil, err
	}

	if err := s.repo.Save(ctx, s.copies); err != nil {
		*b = backup
		return nil, err
	}

	if s.indexer != nil {
		s.indexer.UpdateCopy(b)
	}
	return b, nil
}

// Delete 删除副本
// 注意:借阅/预约引用检查(删除卫兵)由应用层的删除用例负责,
// 这里只做纯粹的目录删除(与库存索引同步)
func (s *Service) Delete(ctx context.Context, id string) error {
	b, ok := s.byID[id]
	if !ok {
		return ErrBookNotFound
	}

	idx := -1
	for i, c := range s.copies {
		if c.ID == id {
			idx = i
			break
		}
	}
	remaining := make([]*Book, 0, len(s.copies)-1)
	remaining = append(remaining, s.copies[:idx]...)
	remaining = append(remaining, s.copies[idx+1:]...)

	if err := s.repo.Save(ctx, remaining); err != nil {
		return err
	}

	s.copies = remaining
	delete(s.byID, b.ID)
	if s.indexer != nil {
		s.indexer.RemoveCopy(id)
	}
	return nil
}

// MarkBorrowed 标记副本借出/归还并持久化
// 由库存索引在borrow/returnCopy时调用;写回失败回滚借出标记
func (s *Service) MarkBorrowed(ctx context.Context, id string, borrowed bool) error {
	b, ok := s.byID[id]
	if !ok {
		return ErrBookNotFound
	}

	prev := b.Borrowed
	b.SetBorrowed(borrowed)
	if err := s.repo.Save(ctx, s.copies); err != nil {
		b.Borrowed = prev
		return err
	}
	return nil
}

// nextID 生成下一个副本编号
// 与历史数据的编号风格保持一致:B + 三位零填充序号(如B001);
// 编号冲突时追加数字后缀(如B007-1)消除歧义
func (s *Service) nextID() string {
	maxN := 0
	for id := range s.byID {
		if !strings.HasPrefix(id, "B") {
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

	id := fmt.Sprintf("B%03d", maxN+1)
	for counter := 1; ; counter++ {
		if _, exists := s.byID[id]; !exists {
			return id
		}
		id = fmt.Sprintf("B%03d-%d", maxN+1, counter)
	}
}
