package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"baseti_shopapp_v1_202609/internal/api/dto"
	"baseti_shopapp_v1_202609/internal/middleware"
	"baseti_shopapp_v1_202609/internal/service"
)

type ProductController struct {
	productService *service.ProductService
}

func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// ==========================================
// 1. 读操作 (List / Detail / Stats)
// ==========================================

// GetList
// @Summary 商品分页列表
// @Description 支持名称模糊搜索和状态过滤，只返回当前租户的商品
// @Tags Product (商品模块)
// @Produce json
// @Param keyword query string false "名称模糊搜索"
// @Param state query string false "状态 (active/inactive/draft)"
// @Param page query int false "页码 (默认1)"
// @Param page_size query int false "每页数量 (默认20)"
// @Success 200 {object} map[string]interface{} "{"data": [...], "total": 100, "page": 1}"
// @Router /api/products [get]
func (ctrl *ProductController) GetList(c *gin.Context) {
	var q dto.ProductListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, total, err := ctrl.productService.List(c.Request.Context(), middleware.GetTenantContext(c), q)
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

// GetDetail
// @Summary 商品详情
// @Tags Product (商品模块)
// @Produce json
// @Param id path int true "商品 ID"
// @Success 200 {object} model.Product "商品"
// @Failure 404 {object} map[string]string "不存在或无权访问"
// @Router /api/products/{id} [get]
func (ctrl *ProductController) GetDetail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := ctrl.productService.Get(c.Request.Context(), middleware.GetTenantContext(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": product})
}

// InventoryStats
// @Summary 库存统计
// @Description 商品数/在售数/低库存数/库存成本/潜在营收
// @Tags Product (商品模块)
// @Produce json
// @Success 200 {object} repository.InventoryStats "统计结果"
// @Router /api/products/stats [get]
func (ctrl *ProductController) InventoryStats(c *gin.Context) {
	stats, err := ctrl.productService.InventoryStats(c.Request.Context(), middleware.GetTenantContext(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}

// ==========================================
// 2. 写操作 (Create / Update / Delete)
// ==========================================

// Create
// @Summary 新建商品
// @Tags Product (商品模块)
// @Accept json
// @Produce json
// @Param request body dto.CreateProductRequest true "商品参数"
// @Success 200 {object} model.Product "新建的商品"
// @Failure 400 {object} map[string]string "参数错误"
// @Router /api/products [post]
func (ctrl *ProductController) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := ctrl.productService.Create(c.Request.Context(), middleware.GetTenantContext(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": product})
}

// Update
// @Summary 更新商品
// @Tags Product (商品模块)
// @Accept json
// @Produce json
// @Param id path int true "商品 ID"
// @Param request body dto.UpdateProductRequest true "更新字段"
// @Success 200 {object} model.Product "更新后的商品"
// @Failure 403 {object} map[string]string "越权"
// @Router /api/products/{id} [put]
func (ctrl *ProductController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := ctrl.productService.Update(c.Request.Context(), middleware.GetTenantContext(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": product})
}

// Delete
// @Summary 删除商品
// @Tags Product (商品模块)
// @Produce json
// @Param id path int true "商品 ID"
// @Success 200 {object} map[string]string "{"message": "success"}"
// @Router /api/products/{id} [delete]
func (ctrl *ProductController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctrl.productService.Delete(c.Request.Context(), middleware.GetTenantContext(c), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success"})
}

// AdjustStock
// @Summary 库存增减
// @Description delta 可为负，扣减不会把库存扣成负数
// @Tags Product (商品模块)
// @Accept json
// @Produce json
// @Param id path int true "商品 ID"
// @Param request body dto.AdjustStockRequest true "增减量"
// @Success 200 {object} model.Product "调整后的商品"
// @Failure 400 {object} map[string]string "库存不足"
// @Router /api/products/{id}/stock [post]
func (ctrl *ProductController) AdjustStock(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := ctrl.productService.AdjustStock(c.Request.Context(), middleware.GetTenantContext(c), id, req.Delta)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": product})
}

// UploadImage
// @Summary 上传商品主图
// @Tags Product (商品模块)
// @Accept json
// @Produce json
// @Param id path int true "商品 ID"
// @Param request body dto.UploadImageRequest true "Base64 图片"
// @Success 200 {object} model.Product "更新后的商品"
// @Router /api/products/{id}/image [post]
func (ctrl *ProductController) UploadImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UploadImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := ctrl.productService.UploadImage(c.Request.Context(), middleware.GetTenantContext(c), id, req.ImageBase64)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": product})
}
