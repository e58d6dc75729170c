package catalog

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// UpdateCopyUseCase 修改馆藏信息用例
type UpdateCopyUseCase struct {
	catalog *book.Service
}

// NewUpdateCopyUseCase 创建修改用例
func NewUpdateCopyUseCase(catalog *book.Service) *UpdateCopyUseCase {
	return &UpdateCopyUseCase{catalog: catalog}
}

// UpdateCopyRequest 修改请求DTO
// 字符串字段留空表示不修改;数值字段用指针区分"不改"和"改成零值"
type UpdateCopyRequest struct {
	ID     string
	ISBN   string
	Title  string
	Author string
	Weight *float64
	Price  *int64
}

// UpdateCopyResponse 修改响应DTO
type UpdateCopyResponse struct {
	ID     string `json:"id"`
	ISBN   string `json:"isbn"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// Execute 执行修改
// ISBN变更时目录服务会通知库存索引把副本挪到新的分组
func (uc *UpdateCopyUseCase) Execute(ctx context.Context, req UpdateCopyRequest) (*UpdateCopyResponse, error) {
	b, err := uc.catalog.Update(ctx, req.ID, book.UpdateParams{
		ISBN:   req.ISBN,
		Title:  req.Title,
		Author: req.Author,
		Weight: req.Weight,
		Price:  req.Price,
	})
	if err != nil {
		return nil, err
	}
	return &UpdateCopyResponse{
		ID:     b.ID,
		ISBN:   b.ISBN,
		Title:  b.Title,
		Author: b.Author,
	}, nil
}
