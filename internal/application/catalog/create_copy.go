package catalog

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// CreateCopyUseCase 入库用例
// 把一本物理副本登记进馆藏:目录服务落账后会通过Indexer回调
// 同步更新库存索引,用例层不需要再碰索引
type CreateCopyUseCase struct {
	catalog *book.Service
}

// NewCreateCopyUseCase 创建入库用例
func NewCreateCopyUseCase(catalog *book.Service) *CreateCopyUseCase {
	return &CreateCopyUseCase{catalog: catalog}
}

// CreateCopyRequest 入库请求DTO
type CreateCopyRequest struct {
	ID     string // 副本编号,留空时自动生成(B001递增)
	ISBN   string
	Title  string
	Author string
	Weight float64 // 千克
	Price  int64   // 分
}

// CreateCopyResponse 入库响应DTO
type CreateCopyResponse struct {
	ID     string `json:"id"`
	ISBN   string `json:"isbn"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// Execute 执行入库
func (uc *CreateCopyUseCase) Execute(ctx context.Context, req CreateCopyRequest) (*CreateCopyResponse, error) {
	b, err := uc.catalog.Create(ctx, req.ID, req.ISBN, req.Title, req.Author, req.Weight, req.Price)
	if err != nil {
		return nil, err
	}
	return &CreateCopyResponse{
		ID:     b.ID,
		ISBN:   b.ISBN,
		Title:  b.Title,
		Author: b.Author,
	}, nil
}
