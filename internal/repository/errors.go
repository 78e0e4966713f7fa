package repository

import "errors"

// ==================== 错误定义 ====================

// 租户数据访问层的错误分类
// 上层通过 errors.Is 判断，映射为对应的 HTTP 状态和提示
var (
	ErrNotAuthenticated = errors.New("未登录或会话已失效")
	ErrAccessDenied     = errors.New("无权限操作该数据")
	ErrNotFound         = errors.New("记录不存在")
)
