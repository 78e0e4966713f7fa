package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"baseti_shopapp_v1_202609/internal/api/dto"
	"baseti_shopapp_v1_202609/internal/middleware"
	"baseti_shopapp_v1_202609/internal/service"
)

type BusinessController struct {
	businessService *service.BusinessService
	tenantService   *service.TenantService
}

func NewBusinessController(businessService *service.BusinessService, tenantService *service.TenantService) *BusinessController {
	return &BusinessController{
		businessService: businessService,
		tenantService:   tenantService,
	}
}

// ==========================================
// 1. 商家自助 (Profile)
// ==========================================

// GetProfile
// @Summary 获取当前商家资料
// @Tags Business (商家模块)
// @Produce json
// @Success 200 {object} model.Business "商家资料"
// @Router /api/business/profile [get]
func (ctrl *BusinessController) GetProfile(c *gin.Context) {
	tc := middleware.GetTenantContext(c)

	business, err := ctrl.businessService.GetProfile(c.Request.Context(), tc)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": business})
}

// UpdateProfile
// @Summary 更新商家资料
// @Description 店名/路径/描述/Logo 等，改 slug 时查重
// @Tags Business (商家模块)
// @Accept json
// @Produce json
// @Param request body dto.UpdateBusinessRequest true "更新参数"
// @Success 200 {object} model.Business "更新后的资料"
// @Failure 400 {object} map[string]string "slug 已被占用"
// @Router /api/business/profile [put]
func (ctrl *BusinessController) UpdateProfile(c *gin.Context) {
	var req dto.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tc := middleware.GetTenantContext(c)
	business, err := ctrl.businessService.UpdateProfile(c.Request.Context(), tc, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": business})
}

// GetTenantContext
// @Summary 当前租户上下文
// @Description 返回租户 ID、角色和权限表，前端据此渲染菜单
// @Tags Business (商家模块)
// @Produce json
// @Success 200 {object} model.TenantContext "租户上下文"
// @Router /api/business/context [get]
func (ctrl *BusinessController) GetTenantContext(c *gin.Context) {
	tc := middleware.GetTenantContext(c)
	c.JSON(http.StatusOK, gin.H{
		"data":        tc,
		"permissions": tc.Permissions(),
	})
}

// ==========================================
// 2. 平台管理 (超管)
// ==========================================

// ListBusinesses
// @Summary 商家列表
// @Tags Admin (平台管理)
// @Produce json
// @Param keyword query string false "店名模糊搜索"
// @Param page query int false "页码 (默认1)"
// @Param page_size query int false "每页数量 (默认20)"
// @Success 200 {object} map[string]interface{} "{"data": [...], "total": 100, "page": 1}"
// @Router /api/admin/businesses [get]
func (ctrl *BusinessController) ListBusinesses(c *gin.Context) {
	var q dto.BusinessListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, total, err := ctrl.businessService.ListBusinesses(c.Request.Context(), q)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  list,
		"total": total,
		"page":  q.Page,
	})
}

// SetCurrentTenant
// @Summary 切换当前租户 (impersonation)
// @Description 超管选中某商家后，后续数据操作都套用该商家的租户过滤；tenant_id 为空回到平台视角
// @Tags Admin (平台管理)
// @Accept json
// @Produce json
// @Param request body dto.SetTenantRequest true "目标租户"
// @Success 200 {object} model.TenantContext "切换后的租户上下文"
// @Failure 400 {object} map[string]string "非管理员"
// @Router /api/admin/tenant [put]
func (ctrl *BusinessController) SetCurrentTenant(c *gin.Context) {
	var req dto.SetTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tc, err := ctrl.tenantService.SetCurrentTenant(c.Request.Context(), middleware.GetUserKey(c), req.TenantID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": tc})
}

// SetRole
// @Summary 调整商家账号角色
// @Tags Admin (平台管理)
// @Accept json
// @Produce json
// @Param id path string true "商家 OwnerID"
// @Param request body dto.SetRoleRequest true "目标角色"
// @Success 200 {object} map[string]string "{"message": "success"}"
// @Router /api/admin/businesses/{id}/role [put]
func (ctrl *BusinessController) SetRole(c *gin.Context) {
	var req dto.SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ctrl.businessService.SetRole(c.Request.Context(), c.Param("id"), req.Role); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success"})
}

// SetActive
// @Summary 商家启停
// @Tags Admin (平台管理)
// @Accept json
// @Produce json
// @Param id path string true "商家 OwnerID"
// @Param request body dto.SetActiveRequest true "启停参数"
// @Success 200 {object} map[string]string "{"message": "success"}"
// @Router /api/admin/businesses/{id}/active [put]
func (ctrl *BusinessController) SetActive(c *gin.Context) {
	var req dto.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ctrl.businessService.SetActive(c.Request.Context(), c.Param("id"), *req.IsActive); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success"})
}
