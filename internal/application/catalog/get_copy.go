package catalog

import (
	"github.com/xiebiao/library/internal/domain/book"
)

// GetCopyUseCase 按副本编号查单本用例
type GetCopyUseCase struct {
	catalog *book.Service
}

// NewGetCopyUseCase 创建查单本用例
func NewGetCopyUseCase(catalog *book.Service) *GetCopyUseCase {
	return &GetCopyUseCase{catalog: catalog}
}

// CopyDetail 单本副本的完整快照DTO
// 与检索结果里的CopyView不同,这里带书目信息,面向按编号直查的场景
type CopyDetail struct {
	ID       string  `json:"id"`
	ISBN     string  `json:"isbn"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	Weight   float64 `json:"weight"`
	Price    int64   `json:"price"`
	Borrowed bool    `json:"borrowed"`
}

// Execute 按副本编号查询,不存在返回ErrBookNotFound
func (uc *GetCopyUseCase) Execute(copyID string) (*CopyDetail, error) {
	b, err := uc.catalog.FindByID(copyID)
	if err != nil {
		return nil, err
	}
	return &CopyDetail{
		ID:       b.ID,
		ISBN:     b.ISBN,
		Title:    b.Title,
		Author:   b.Author,
		Weight:   b.Weight,
		Price:    b.Price,
		Borrowed: b.Borrowed,
	}, nil
}
