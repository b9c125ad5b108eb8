package ledger

import (
	"errors"
	"net/http"
)

// 账本操作的全部失败类别。每个前置条件检查都发生在任何写入之前；
// 检查失败时操作立即以对应的错误中止，状态不发生任何变化。
// ErrTransferFailed 是唯一可能在部分计算之后出现的错误，但它同样会
// 回滚同一操作内已暂存的全部写入（见treasury.Issue）。
var (
	ErrAlreadyRegistered  = errors.New("用户已注册")
	ErrNotRegistered      = errors.New("用户未注册")
	ErrInvalidInput       = errors.New("无效的输入参数")
	ErrInvalidIndex       = errors.New("无效的僵尸索引")
	ErrOutOfOrder         = errors.New("必须按顺序完成课程")
	ErrInvalidLessonID    = errors.New("无效的课程编号")
	ErrInvalidScore       = errors.New("分数必须在1到100之间")
	ErrAlreadyCompleted   = errors.New("课程已完成")
	ErrInsufficientWins   = errors.New("胜场数不足，无法升级")
	ErrUnauthorized       = errors.New("只有合约所有者可以执行此操作")
	ErrNotFound           = errors.New("僵尸不存在")
	ErrInsufficientBudget = errors.New("执行预算不足，请提高预算后重新提交")
	ErrTransferFailed     = errors.New("金库储备不足，转账失败")
	ErrShuttingDown       = errors.New("账本正在关闭，不再接受新的操作")
	ErrQueueFull          = errors.New("账本操作队列已满，请稍后重试")
)

// HTTPStatus 将账本错误映射为HTTP状态码，未知错误一律视为内部错误。
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAlreadyRegistered),
		errors.Is(err, ErrOutOfOrder),
		errors.Is(err, ErrAlreadyCompleted),
		errors.Is(err, ErrInsufficientWins):
		return http.StatusConflict
	case errors.Is(err, ErrNotRegistered),
		errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInvalidLessonID),
		errors.Is(err, ErrInvalidScore),
		errors.Is(err, ErrInsufficientBudget):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidIndex),
		errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrTransferFailed),
		errors.Is(err, ErrShuttingDown),
		errors.Is(err, ErrQueueFull):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
