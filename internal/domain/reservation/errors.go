package reservation

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 预约领域错误定义
var (
	// ErrReservationNotFound 预约记录不存在
	ErrReservationNotFound = apperrors.New(apperrors.ErrCodeReservationNotFound, "预约记录不存在")

	// ErrStockAvailable 尚有库存,不接受预约(直接借即可)
	ErrStockAvailable = apperrors.New(apperrors.ErrCodeStockAvailable, "该书尚有可借副本,请直接借阅")

	// ErrInvalidStatusTransition 预约状态流转不合法
	ErrInvalidStatusTransition = apperrors.New(apperrors.ErrCodeBusinessError, "预约状态流转不合法")

	// ErrEmptyUserID 预约人为空
	ErrEmptyUserID = apperrors.New(apperrors.ErrCodeInvalidParams, "预约人不能为空")

	// ErrInvalidISBN ISBN格式不正确
	ErrInvalidISBN = apperrors.New(apperrors.ErrCodeInvalidParams, "ISBN格式不正确(去掉分隔符后应为1-13位数字)")
)
