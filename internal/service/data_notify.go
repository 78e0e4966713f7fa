package service

import (
	"errors"

	"baseti_shopapp_v1_202609/internal/repository"
	"baseti_shopapp_v1_202609/pkg/notify"
)

// ==================== 数据操作通知 ====================

// 每次数据操作都向通知侧信道发一条结果，前端据此弹 toast。
// 越权统一报 Access Denied，口径与路由守卫一致，不暴露行是否存在

func notifyDone(n notify.Notifier, title, description string) {
	if n == nil {
		return
	}
	n.Notify(notify.Success(title, description))
}

func notifyFailed(n notify.Notifier, action string, err error) {
	if n == nil {
		return
	}
	switch {
	case errors.Is(err, repository.ErrAccessDenied):
		n.Notify(notify.Destructive("Access Denied", action+"被拒绝，资源不属于当前商家"))
	case errors.Is(err, repository.ErrNotAuthenticated):
		n.Notify(notify.Destructive("Access Denied", "请先登录再"+action))
	default:
		n.Notify(notify.Destructive("操作失败", action+"失败，请稍后重试"))
	}
}
