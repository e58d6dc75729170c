package loan

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 借阅领域错误定义
var (
	// ErrLoanNotFound 借阅记录不存在
	ErrLoanNotFound = apperrors.New(apperrors.ErrCodeLoanNotFound, "借阅记录不存在")

	// ErrEmptyUserID 借阅人为空
	ErrEmptyUserID = apperrors.New(apperrors.ErrCodeInvalidParams, "借阅人不能为空")

	// ErrInvalidISBN ISBN格式不正确
	ErrInvalidISBN = apperrors.New(apperrors.ErrCodeInvalidParams, "ISBN格式不正确(去掉分隔符后应为1-13位数字)")

	// ErrLoanStillActive 在借的单子不能直接删除
	ErrLoanStillActive = apperrors.New(apperrors.ErrCodeConflict, "借阅单还在借出中,先归还(或走删除用例自动归还转交)再删除")
)
