package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"baseti_shopapp_v1_202609/internal/api/dto"
	"baseti_shopapp_v1_202609/internal/middleware"
	"baseti_shopapp_v1_202609/internal/service"
)

type SocialController struct {
	socialService *service.SocialService
}

func NewSocialController(socialService *service.SocialService) *SocialController {
	return &SocialController{socialService: socialService}
}

// GetList
// @Summary 社媒连接列表
// @Tags Social (社媒模块)
// @Produce json
// @Success 200 {object} map[string]interface{} "{"data": [...]}"
// @Router /api/social/connections [get]
func (ctrl *SocialController) GetList(c *gin.Context) {
	list, err := ctrl.socialService.List(c.Request.Context(), middleware.GetTenantContext(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

// Connect
// @Summary 绑定社媒账号
// @Description 绑定后立即做一次可达性检查并回写状态
// @Tags Social (社媒模块)
// @Accept json
// @Produce json
// @Param request body dto.CreateConnectionRequest true "绑定参数"
// @Success 200 {object} model.SocialConnection "连接信息"
// @Router /api/social/connections [post]
func (ctrl *SocialController) Connect(c *gin.Context) {
	var req dto.CreateConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conn, err := ctrl.socialService.Connect(c.Request.Context(), middleware.GetTenantContext(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": conn})
}

// Update
// @Summary 更新社媒连接
// @Tags Social (社媒模块)
// @Accept json
// @Produce json
// @Param id path int true "连接 ID"
// @Param request body dto.UpdateConnectionRequest true "更新字段"
// @Success 200 {object} model.SocialConnection "连接信息"
// @Router /api/social/connections/{id} [put]
func (ctrl *SocialController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conn, err := ctrl.socialService.Update(c.Request.Context(), middleware.GetTenantContext(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": conn})
}

// Verify
// @Summary 手动触发健康检查
// @Tags Social (社媒模块)
// @Produce json
// @Param id path int true "连接 ID"
// @Success 200 {object} model.SocialConnection "检查后的连接信息"
// @Router /api/social/connections/{id}/verify [post]
func (ctrl *SocialController) Verify(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	conn, err := ctrl.socialService.Verify(c.Request.Context(), middleware.GetTenantContext(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": conn})
}

// Disconnect
// @Summary 解绑社媒账号
// @Tags Social (社媒模块)
// @Produce json
// @Param id path int true "连接 ID"
// @Success 200 {object} map[string]string "{"message": "success"}"
// @Router /api/social/connections/{id} [delete]
func (ctrl *SocialController) Disconnect(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctrl.socialService.Disconnect(c.Request.Context(), middleware.GetTenantContext(c), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success"})
}
