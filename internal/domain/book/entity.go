package book

import (
	"regexp"
	"strings"
	"time"
)

// Book 图书副本实体(聚合根)
// 设计说明:
// 1. 一条Book记录对应一本物理副本,同一ISBN可以有多条记录
// 2. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 3. Borrowed标记该副本当前是否被借出;按ISBN聚合的可借数量由库存索引推导
// 4. ID是副本级业务主键(如B001),ISBN是分组键,两者用途不同
type Book struct {
	ID        string  // 副本编号(业务主键,如B001)
	ISBN      string  // ISBN号(国际标准书号,分组键)
	Title     string  // 书名
	Author    string  // 作者
	Weight    float64 // 重量(千克),必须>0
	Price     int64   // 价格(单位:分),必须>0
	Borrowed  bool    // 是否已借出
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBook 创建新图书副本(工厂方法)
// 业务规则在这里统一校验,保证不会构造出非法实体:
// - ISBN: 非空,去掉分隔符后全为数字且不超过13位
// - 书名/作者: 非空且不能只有空白
// - 重量: > 0
// - 价格: > 0
func NewBook(id, isbn, title, author string, weight float64, price int64) (*Book, error) {
	isbn = strings.TrimSpace(isbn)
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)

	if !IsValidISBN(isbn) {
		return nil, ErrInvalidISBN
	}
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if author == "" {
		return nil, ErrEmptyAuthor
	}
	if weight <= 0 {
		return nil, ErrInvalidWeight
	}
	if price <= 0 {
		return nil, ErrInvalidPrice
	}

	now := time.Now()
	return &Book{
		ID:        id,
		ISBN:      isbn,
		Title:     title,
		Author:    author,
		Weight:    weight,
		Price:     price,
		Borrowed:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Update 更新副本可编辑字段
// 空字符串/零值表示不修改对应字段;修改项仍需通过与NewBook相同的校验
func (b *Book) Update(params UpdateParams) error {
	if params.ISBN != "" {
		isbn := strings.TrimSpace(params.ISBN)
		if !IsValidISBN(isbn) {
			return ErrInvalidISBN
		}
		b.ISBN = isbn
	}
	if params.Title != "" {
		title := strings.TrimSpace(params.Title)
		if title == "" {
			return ErrEmptyTitle
		}
		b.Title = title
	}
	if params.Author != "" {
		author := strings.TrimSpace(params.Author)
		if author == "" {
			return ErrEmptyAuthor
		}
		b.Author = author
	}
	if params.Weight != nil {
		if *params.Weight <= 0 {
			return ErrInvalidWeight
		}
		b.Weight = *params.Weight
	}
	if params.Price != nil {
		if *params.Price <= 0 {
			return ErrInvalidPrice
		}
		b.Price = *params.Price
	}
	b.UpdatedAt = time.Now()
	return nil
}

// UpdateParams 副本更新参数
// 指针字段用于区分"不修改"与"改为零值"(价格/重量不允许为零,指针nil即不修改)
type UpdateParams struct {
	ISBN   string
	Title  string
	Author string
	Weight *float64
	Price  *int64
}

// SetBorrowed 标记副本借出/归还
func (b *Book) SetBorrowed(borrowed bool) {
	b.Borrowed = borrowed
	b.UpdatedAt = time.Now()
}

var nonDigitRE = regexp.MustCompile(`[^0-9]`)

// IsValidISBN 校验ISBN格式
// 规则(与数据文件中的历史记录保持兼容):
// - 允许带分隔符(如978-3-16-148410-0)
// - 去掉分隔符后必须全为数字,至少1位,至多13位
func IsValidISBN(isbn string) bool {
	if strings.TrimSpace(isbn) == "" {
		return false
	}
	digits := nonDigitRE.ReplaceAllString(isbn, "")
	return len(digits) >= 1 && len(digits) <= 13
}
