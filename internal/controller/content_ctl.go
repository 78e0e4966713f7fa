package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"baseti_shopapp_v1_202609/internal/api/dto"
	"baseti_shopapp_v1_202609/internal/middleware"
	"baseti_shopapp_v1_202609/internal/service"
)

type ContentController struct {
	contentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{contentService: contentService}
}

// GetList
// @Summary 内容排期分页列表
// @Tags Content (内容模块)
// @Produce json
// @Param page query int false "页码 (默认1)"
// @Param page_size query int false "每页数量 (默认20)"
// @Success 200 {object} map[string]interface{} "{"data": [...], "total": 100, "page": 1}"
// @Router /api/content/plans [get]
func (ctrl *ContentController) GetList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	list, total, err := ctrl.contentService.List(c.Request.Context(), middleware.GetTenantContext(c), page, pageSize)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  list,
		"total": total,
		"page":  page,
	})
}

// GetUpcoming
// @Summary 未来 7 天待发布排期
// @Tags Content (内容模块)
// @Produce json
// @Success 200 {object} map[string]interface{} "{"data": [...]}"
// @Router /api/content/plans/upcoming [get]
func (ctrl *ContentController) GetUpcoming(c *gin.Context) {
	list, err := ctrl.contentService.ListUpcoming(c.Request.Context(), middleware.GetTenantContext(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

// Create
// @Summary 新建内容排期
// @Tags Content (内容模块)
// @Accept json
// @Produce json
// @Param request body dto.CreateContentPlanRequest true "排期参数"
// @Success 200 {object} model.ContentPlan "新建的排期"
// @Router /api/content/plans [post]
func (ctrl *ContentController) Create(c *gin.Context) {
	var req dto.CreateContentPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := ctrl.contentService.Create(c.Request.Context(), middleware.GetTenantContext(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": plan})
}

// Update
// @Summary 更新内容排期
// @Tags Content (内容模块)
// @Accept json
// @Produce json
// @Param id path int true "排期 ID"
// @Param request body dto.UpdateContentPlanRequest true "更新字段"
// @Success 200 {object} model.ContentPlan "更新后的排期"
// @Router /api/content/plans/{id} [put]
func (ctrl *ContentController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateContentPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := ctrl.contentService.Update(c.Request.Context(), middleware.GetTenantContext(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": plan})
}

// Delete
// @Summary 删除内容排期
// @Tags Content (内容模块)
// @Produce json
// @Param id path int true "排期 ID"
// @Success 200 {object} map[string]string "{"message": "success"}"
// @Router /api/content/plans/{id} [delete]
func (ctrl *ContentController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctrl.contentService.Delete(c.Request.Context(), middleware.GetTenantContext(c), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success"})
}

// GenerateCaption
// @Summary AI 生成社媒文案
// @Description 按商品信息生成平台定制的标题/文案/话题标签
// @Tags Content (内容模块)
// @Accept json
// @Produce json
// @Param request body dto.GenerateCaptionRequest true "生成参数"
// @Success 200 {object} dto.GeneratedCaption "生成结果"
// @Failure 500 {object} map[string]string "AI 生成失败"
// @Router /api/content/generate [post]
func (ctrl *ContentController) GenerateCaption(c *gin.Context) {
	var req dto.GenerateCaptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := ctrl.contentService.GenerateCaption(c.Request.Context(), middleware.GetTenantContext(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}
