package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"baseti_shopapp_v1_202609/internal/api/dto"
	"baseti_shopapp_v1_202609/internal/model"
	"baseti_shopapp_v1_202609/internal/service"
)

// 设备标识请求头，前端生成后长期复用
const headerDeviceID = "X-Device-Id"

type CartController struct {
	cartService     *service.CartService
	productService  *service.ProductService
	businessService *service.BusinessService
}

func NewCartController(
	cartService *service.CartService,
	productService *service.ProductService,
	businessService *service.BusinessService,
) *CartController {
	return &CartController{
		cartService:     cartService,
		productService:  productService,
		businessService: businessService,
	}
}

func deviceID(c *gin.Context) (string, bool) {
	id := c.GetHeader(headerDeviceID)
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 " + headerDeviceID + " 请求头"})
		return "", false
	}
	return id, true
}

// Get
// @Summary 当前购物车
// @Tags Cart (购物车)
// @Produce json
// @Param X-Device-Id header string true "设备标识"
// @Success 200 {object} dto.CartResponse "购物车"
// @Router /api/shops/{slug}/cart [get]
func (ctrl *CartController) Get(c *gin.Context) {
	device, ok := deviceID(c)
	if !ok {
		return
	}

	cart := ctrl.cartService.Get(device)
	c.JSON(http.StatusOK, gin.H{"data": dto.NewCartResponse(cart)})
}

// AddItem
// @Summary 加购商品
// @Description 同商品已在车中则数量 +1，否则以数量 1 追加；名称和单价取加购时快照
// @Tags Cart (购物车)
// @Accept json
// @Produce json
// @Param X-Device-Id header string true "设备标识"
// @Param slug path string true "店铺路径"
// @Param request body dto.AddCartItemRequest true "商品"
// @Success 200 {object} dto.CartResponse "购物车"
// @Failure 404 {object} map[string]string "商品不存在或已下架"
// @Router /api/shops/{slug}/cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	device, ok := deviceID(c)
	if !ok {
		return
	}

	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	business, err := ctrl.businessService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}

	product, err := ctrl.productService.GetPublic(c.Request.Context(), business.OwnerID, req.ProductID)
	if err != nil {
		fail(c, err)
		return
	}

	cart, err := ctrl.cartService.AddItem(device, model.CartItem{
		ProductID:  product.ID,
		Name:       product.Name,
		UnitPrice:  product.PriceAmount,
		ImageUrl:   product.ImageUrl,
		BusinessID: business.OwnerID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.NewCartResponse(cart)})
}

// UpdateQuantity
// @Summary 修改购物车商品数量
// @Description 数量下限 1，传入更小的值不做变更
// @Tags Cart (购物车)
// @Accept json
// @Produce json
// @Param X-Device-Id header string true "设备标识"
// @Param id path int true "商品 ID"
// @Param request body dto.UpdateCartQuantityRequest true "目标数量"
// @Success 200 {object} dto.CartResponse "购物车"
// @Router /api/shops/{slug}/cart/items/{id} [put]
func (ctrl *CartController) UpdateQuantity(c *gin.Context) {
	device, ok := deviceID(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateCartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart, err := ctrl.cartService.UpdateQuantity(device, id, req.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.NewCartResponse(cart)})
}

// RemoveItem
// @Summary 移除购物车商品
// @Tags Cart (购物车)
// @Produce json
// @Param X-Device-Id header string true "设备标识"
// @Param id path int true "商品 ID"
// @Success 200 {object} dto.CartResponse "购物车"
// @Router /api/shops/{slug}/cart/items/{id} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	device, ok := deviceID(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	cart, err := ctrl.cartService.RemoveItem(device, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.NewCartResponse(cart)})
}

// Clear
// @Summary 清空购物车
// @Tags Cart (购物车)
// @Produce json
// @Param X-Device-Id header string true "设备标识"
// @Success 200 {object} map[string]string "{"message": "success"}"
// @Router /api/shops/{slug}/cart [delete]
func (ctrl *CartController) Clear(c *gin.Context) {
	device, ok := deviceID(c)
	if !ok {
		return
	}

	if err := ctrl.cartService.Clear(device); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success"})
}
