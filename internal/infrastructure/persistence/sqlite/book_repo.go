package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// bookRepository 图书仓储实现(SQLite)
// 设计说明:
// 1. 实现domain/book/repository.go定义的全量Load/Save契约
// 2. Save在一个事务里清表重写:内存快照就是事实全集,
//    逐行diff不值得在单机场景下做
// 3. 负责domain实体与GORM模型之间的转换
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Load 加载全部图书副本(按入库顺序)
func (r *bookRepository) Load(ctx context.Context) ([]*book.Book, error) {
	var models []BookModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	var books []*book.Book
	for i := range models {
		if models[i].CopyID == "" {
			continue
		}
		books = append(books, toBookEntity(&models[i]))
	}
	return books, nil
}

// Save 全量写回图书副本(事务内清表重写)
func (r *bookRepository) Save(ctx context.Context, books []*book.Book) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&BookModel{}).Error; err != nil {
			return err
		}
		if len(books) == 0 {
			return nil
		}
		models := make([]*BookModel, len(books))
		for i, b := range books {
			models[i] = toBookModel(b)
		}
		return tx.Create(models).Error
	})
	if err != nil {
		return apperrors.Wrap(err, "写回图书失败")
	}
	return nil
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(m *BookModel) *book.Book {
	return &book.Book{
		ID:        m.CopyID,
		ISBN:      m.ISBN,
		Title:     m.Title,
		Author:    m.Author,
		Weight:    m.Weight,
		Price:     m.Price,
		Borrowed:  m.Borrowed,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// toBookModel 领域实体 → GORM模型
func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		CopyID:    b.ID,
		ISBN:      b.ISBN,
		Title:     b.Title,
		Author:    b.Author,
		Weight:    b.Weight,
		Price:     b.Price,
		Borrowed:  b.Borrowed,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
