package inventory

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 库存领域错误定义
var (
	// ErrISBNNotFound ISBN不在库存中
	ErrISBNNotFound = apperrors.New(apperrors.ErrCodeISBNNotFound, "该ISBN不在库存中")

	// ErrCopyNotFound 库存中不存在该副本
	ErrCopyNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "库存中不存在该副本")

	// ErrOutOfStock 无可借副本
	ErrOutOfStock = apperrors.New(apperrors.ErrCodeOutOfStock, "该ISBN当前无可借副本")
)
