package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"baseti_shopapp_v1_202609/internal/api/dto"
	"baseti_shopapp_v1_202609/internal/middleware"
	"baseti_shopapp_v1_202609/internal/service"
)

type CustomerController struct {
	customerService *service.CustomerService
}

func NewCustomerController(customerService *service.CustomerService) *CustomerController {
	return &CustomerController{customerService: customerService}
}

// GetList
// @Summary 客户分页列表
// @Tags Customer (客户模块)
// @Produce json
// @Param keyword query string false "姓名/电话模糊搜索"
// @Param page query int false "页码 (默认1)"
// @Param page_size query int false "每页数量 (默认20)"
// @Success 200 {object} map[string]interface{} "{"data": [...], "total": 100, "page": 1}"
// @Router /api/customers [get]
func (ctrl *CustomerController) GetList(c *gin.Context) {
	var q dto.CustomerListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, total, err := ctrl.customerService.List(c.Request.Context(), middleware.GetTenantContext(c), q)
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
// @Summary 客户详情
// @Tags Customer (客户模块)
// @Produce json
// @Param id path int true "客户 ID"
// @Success 200 {object} model.Customer "客户"
// @Router /api/customers/{id} [get]
func (ctrl *CustomerController) GetDetail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	customer, err := ctrl.customerService.Get(c.Request.Context(), middleware.GetTenantContext(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": customer})
}

// Create
// @Summary 新建客户
// @Tags Customer (客户模块)
// @Accept json
// @Produce json
// @Param request body dto.CreateCustomerRequest true "客户参数"
// @Success 200 {object} model.Customer "新建的客户"
// @Router /api/customers [post]
func (ctrl *CustomerController) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := ctrl.customerService.Create(c.Request.Context(), middleware.GetTenantContext(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": customer})
}

// Update
// @Summary 更新客户
// @Tags Customer (客户模块)
// @Accept json
// @Produce json
// @Param id path int true "客户 ID"
// @Param request body dto.UpdateCustomerRequest true "更新字段"
// @Success 200 {object} model.Customer "更新后的客户"
// @Router /api/customers/{id} [put]
func (ctrl *CustomerController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := ctrl.customerService.Update(c.Request.Context(), middleware.GetTenantContext(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": customer})
}

// Delete
// @Summary 删除客户
// @Tags Customer (客户模块)
// @Produce json
// @Param id path int true "客户 ID"
// @Success 200 {object} map[string]string "{"message": "success"}"
// @Router /api/customers/{id} [delete]
func (ctrl *CustomerController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctrl.customerService.Delete(c.Request.Context(), middleware.GetTenantContext(c), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success"})
}
