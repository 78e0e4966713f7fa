package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"baseti_shopapp_v1_202609/internal/middleware"
	"baseti_shopapp_v1_202609/internal/service"
)

type DashboardController struct {
	dashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// Stats
// @Summary 运营看板
// @Description 库存/订单/收入/客户/排期的汇总数据
// @Tags Dashboard (看板)
// @Produce json
// @Success 200 {object} service.DashboardStats "汇总数据"
// @Router /api/dashboard [get]
func (ctrl *DashboardController) Stats(c *gin.Context) {
	stats, err := ctrl.dashboardService.Stats(c.Request.Context(), middleware.GetTenantContext(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}
