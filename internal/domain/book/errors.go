package book

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书副本不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书副本不存在")

	// ErrIDDuplicate 副本编号已存在
	ErrIDDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "副本编号已存在")

	// ErrInvalidISBN ISBN格式不正确
	ErrInvalidISBN = apperrors.New(apperrors.ErrCodeInvalidParams, "ISBN格式不正确(去掉分隔符后应为1-13位数字)")

	// ErrEmptyTitle 书名为空
	ErrEmptyTitle = apperrors.New(apperrors.ErrCodeInvalidParams, "书名不能为空")

	// ErrEmptyAuthor 作者为空
	ErrEmptyAuthor = apperrors.New(apperrors.ErrCodeInvalidParams, "作者不能为空")

	// ErrInvalidWeight 无效的重量
	ErrInvalidWeight = apperrors.New(apperrors.ErrCodeInvalidParams, "重量必须大于0")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "价格必须大于0")
)
