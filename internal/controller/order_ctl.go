package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"baseti_shopapp_v1_202609/internal/api/dto"
	"baseti_shopapp_v1_202609/internal/middleware"
	"baseti_shopapp_v1_202609/internal/service"
)

type OrderController struct {
	orderService *service.OrderService
}

func NewOrderController(orderService *service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// GetList
// @Summary 订单分页列表
// @Tags Order (订单模块)
// @Produce json
// @Param status query string false "状态过滤 (pending/paid/shipped/delivered/cancelled)"
// @Param page query int false "页码 (默认1)"
// @Param page_size query int false "每页数量 (默认20)"
// @Success 200 {object} map[string]interface{} "{"data": [...], "total": 100, "page": 1}"
// @Router /api/orders [get]
func (ctrl *OrderController) GetList(c *gin.Context) {
	var q dto.OrderListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, total, err := ctrl.orderService.List(c.Request.Context(), middleware.GetTenantContext(c), q)
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
// @Summary 订单详情 (含订单行)
// @Tags Order (订单模块)
// @Produce json
// @Param id path int true "订单 ID"
// @Success 200 {object} model.Order "订单"
// @Router /api/orders/{id} [get]
func (ctrl *OrderController) GetDetail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	order, err := ctrl.orderService.Get(c.Request.Context(), middleware.GetTenantContext(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": order})
}

// Create
// @Summary 后台手工建单
// @Description 单价按商品当前价快照，库存同步扣减
// @Tags Order (订单模块)
// @Accept json
// @Produce json
// @Param request body dto.CreateOrderRequest true "下单参数"
// @Success 200 {object} model.Order "新订单"
// @Failure 400 {object} map[string]string "商品不可售/库存不足"
// @Router /api/orders [post]
func (ctrl *OrderController) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := ctrl.orderService.Create(c.Request.Context(), middleware.GetTenantContext(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": order})
}

// UpdateStatus
// @Summary 订单状态流转
// @Description 按状态机流转: pending→paid/cancelled, paid→shipped/cancelled, shipped→delivered
// @Tags Order (订单模块)
// @Accept json
// @Produce json
// @Param id path int true "订单 ID"
// @Param request body dto.UpdateOrderStatusRequest true "目标状态"
// @Success 200 {object} model.Order "流转后的订单"
// @Failure 400 {object} map[string]string "非法流转"
// @Router /api/orders/{id}/status [put]
func (ctrl *OrderController) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := ctrl.orderService.UpdateStatus(c.Request.Context(), middleware.GetTenantContext(c), id, req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": order})
}
