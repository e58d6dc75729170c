package errors

import (
	"errors"
	"fmt"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于调用方判断错误类型（CLI根据Code决定提示方式）
// 2. Message是用户友好的提示信息
// 3. Err是内部错误，仅记录到日志，不展示给用户（防止泄露实现细节）
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf 格式化创建AppError
// 用途：错误信息需要携带上下文（如冲突的借阅单号列表）时使用
func Newf(code int, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap 包装系统错误（如文件IO错误、数据库错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeStorage,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeStorage,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 调用方错误（参数错误、业务规则校验失败、资源不存在）
// - 5xxxx: 引擎内部错误（存储IO异常等）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal = 50000 // 内部错误
	ErrCodeStorage  = 50001 // 存储错误（文件IO/数据库异常）

	// 资源错误（40400-40499）
	ErrCodeNotFound            = 40400 // 资源不存在（通用）
	ErrCodeBookNotFound        = 40401 // 图书副本不存在
	ErrCodeLoanNotFound        = 40402 // 借阅记录不存在
	ErrCodeReservationNotFound = 40403 // 预约记录不存在
	ErrCodeISBNNotFound        = 40404 // ISBN不在库存中

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError       = 40000 // 业务错误（通用）
	ErrCodeOutOfStock          = 40001 // 无可借副本
	ErrCodeStockAvailable      = 40002 // 尚有可借副本，不允许预约
	ErrCodeDuplicateActiveLoan = 40003 // 用户已持有该ISBN的未归还借阅
	ErrCodeConflict            = 40004 // 删除被未归还借阅/待处理预约阻塞
	ErrCodeDuplicateEntry      = 40009 // 重复记录（通用）

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900 // 参数校验失败
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal = New(ErrCodeInternal, "系统内部错误")
	ErrStorage  = New(ErrCodeStorage, "存储读写错误")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "参数错误")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成存储错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

// HasCode 判断错误链中是否存在指定错误码的AppError
// 用途：调用方只关心错误类别（如是否为"资源不存在"）时使用
func HasCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
