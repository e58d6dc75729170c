package file

import (
	"context"
	"time"

	json "github.com/goccy/go-json"

	"github.com/xiebiao/library/internal/domain/book"
)

// bookRecord 图书副本的落盘结构
// 与领域实体分离:文件格式的演进不牵连领域层
type bookRecord struct {
	ID        string    `json:"id"`
	ISBN      string    `json:"isbn"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Weight    float64   `json:"weight"`
	Price     int64     `json:"price"`
	Borrowed  bool      `json:"borrowed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// bookStore 图书仓储实现(JSON文件)
type bookStore struct {
	path string
}

// NewBookStore 创建图书文件仓储
func NewBookStore(path string) book.Repository {
	return &bookStore{path: path}
}

// Load 加载全部图书副本
// 单条记录损坏或缺少主键时跳过该条,不影响其余记录
func (s *bookStore) Load(ctx context.Context) ([]*book.Book, error) {
	raws, err := loadRecords(s.path)
	if err != nil {
		return nil, err
	}

	var books []*book.Book
	for _, raw := range raws {
		var rec bookRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		if rec.ID == "" || rec.ISBN == "" {
			continue
		}
		books = append(books, toBookEntity(&rec))
	}
	return books, nil
}

// Save 全量写回图书副本
func (s *bookStore) Save(ctx context.Context, books []*book.Book) error {
	records := make([]*bookRecord, len(books))
	for i, b := range books {
		records[i] = toBookRecord(b)
	}
	return saveRecords(s.path, records)
}

// toBookEntity 落盘记录 → 领域实体
func toBookEntity(rec *bookRecord) *book.Book {
	return &book.Book{
		ID:        rec.ID,
		ISBN:      rec.ISBN,
		Title:     rec.Title,
		Author:    rec.Author,
		Weight:    rec.Weight,
		Price:     rec.Price,
		Borrowed:  rec.Borrowed,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

// toBookRecord 领域实体 → 落盘记录
func toBookRecord(b *book.Book) *bookRecord {
	return &bookRecord{
		ID:        b.ID,
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
