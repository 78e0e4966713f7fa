package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"baseti_shopapp_v1_202609/pkg/notify"
)

// NotificationController 通知出口
// 前端轮询取走待展示的 toast
type NotificationController struct {
	notifier *notify.MemoryNotifier
}

func NewNotificationController(notifier *notify.MemoryNotifier) *NotificationController {
	return &NotificationController{notifier: notifier}
}

// Drain
// @Summary 取走全部待展示通知
// @Description 读取即消费，同一条通知只会被取到一次
// @Tags Notification (通知)
// @Produce json
// @Success 200 {array} notify.Notification "通知列表"
// @Router /api/notifications [get]
func (ctrl *NotificationController) Drain(c *gin.Context) {
	items := ctrl.notifier.Drain()
	if items == nil {
		items = []notify.Notification{}
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}
