package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"baseti_shopapp_v1_202609/internal/api/dto"
	"baseti_shopapp_v1_202609/internal/service"
)

// StorefrontController 店铺前台，全部接口公开访问
type StorefrontController struct {
	businessService *service.BusinessService
	productService  *service.ProductService
	orderService    *service.OrderService
	cartService     *service.CartService
}

func NewStorefrontController(
	businessService *service.BusinessService,
	productService *service.ProductService,
	orderService *service.OrderService,
	cartService *service.CartService,
) *StorefrontController {
	return &StorefrontController{
		businessService: businessService,
		productService:  productService,
		orderService:    orderService,
		cartService:     cartService,
	}
}

// GetShop
// @Summary 店铺主页信息
// @Tags Storefront (店铺前台)
// @Produce json
// @Param slug path string true "店铺路径"
// @Success 200 {object} model.Business "店铺信息"
// @Failure 404 {object} map[string]string "店铺不存在或已停用"
// @Router /api/shops/{slug} [get]
func (ctrl *StorefrontController) GetShop(c *gin.Context) {
	business, err := ctrl.businessService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": business})
}

// GetProducts
// @Summary 店铺在售商品列表
// @Tags Storefront (店铺前台)
// @Produce json
// @Param slug path string true "店铺路径"
// @Param page query int false "页码 (默认1)"
// @Param page_size query int false "每页数量 (默认20)"
// @Success 200 {object} map[string]interface{} "{"data": [...], "total": 100, "page": 1}"
// @Router /api/shops/{slug}/products [get]
func (ctrl *StorefrontController) GetProducts(c *gin.Context) {
	business, err := ctrl.businessService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	list, total, err := ctrl.productService.ListPublic(c.Request.Context(), business.OwnerID, page, pageSize)
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

// GetProduct
// @Summary 店铺商品详情
// @Tags Storefront (店铺前台)
// @Produce json
// @Param slug path string true "店铺路径"
// @Param id path int true "商品 ID"
// @Success 200 {object} model.Product "商品"
// @Failure 404 {object} map[string]string "商品不存在或已下架"
// @Router /api/shops/{slug}/products/{id} [get]
func (ctrl *StorefrontController) GetProduct(c *gin.Context) {
	business, err := ctrl.businessService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := ctrl.productService.GetPublic(c.Request.Context(), business.OwnerID, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": product})
}

// Checkout
// @Summary 结算下单
// @Description 服务端按商品当前价重新核价并扣库存，成功后清空该设备的购物车
// @Tags Storefront (店铺前台)
// @Accept json
// @Produce json
// @Param slug path string true "店铺路径"
// @Param request body dto.CheckoutRequest true "结算参数"
// @Success 200 {object} dto.CheckoutResponse "订单号与应付金额"
// @Failure 400 {object} map[string]string "库存不足/商品不可售"
// @Router /api/shops/{slug}/checkout [post]
func (ctrl *StorefrontController) Checkout(c *gin.Context) {
	business, err := ctrl.businessService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}

	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := ctrl.orderService.Checkout(c.Request.Context(), business.OwnerID, req)
	if err != nil {
		fail(c, err)
		return
	}

	// 下单成功后清掉该设备的购物车
	if device := c.GetHeader(headerDeviceID); device != "" {
		_ = ctrl.cartService.Clear(device)
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.CheckoutResponse{
		OrderNo:     order.OrderNo,
		TotalAmount: order.TotalAmount,
		Status:      order.Status,
	}})
}

// TrackOrder
// @Summary 按订单号查单
// @Tags Storefront (店铺前台)
// @Produce json
// @Param order_no path string true "订单号"
// @Success 200 {object} model.Order "订单"
// @Failure 404 {object} map[string]string "订单不存在"
// @Router /api/orders/track/{order_no} [get]
func (ctrl *StorefrontController) TrackOrder(c *gin.Context) {
	order, err := ctrl.orderService.GetByOrderNo(c.Request.Context(), c.Param("order_no"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": order})
}
