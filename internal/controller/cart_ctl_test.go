package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"baseti_shopapp_v1_202609/internal/api/dto"
	"baseti_shopapp_v1_202609/internal/model"
	"baseti_shopapp_v1_202609/internal/service"
	"baseti_shopapp_v1_202609/pkg/localstore"
	"baseti_shopapp_v1_202609/pkg/notify"
)

// ==================== 测试辅助 ====================

// setupCartCtlRouter 购物车路由
// 商品查询按固定价目表模拟，购物车服务用真实实现
func setupCartCtlRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	cartService := service.NewCartService(localstore.NewMemStore(), notify.NewMemoryNotifier(10))

	catalog := map[int64]model.CartItem{
		1: {ProductID: 1, Name: "帆布包", UnitPrice: 150000, BusinessID: "biz_a"},
		2: {ProductID: 2, Name: "陶瓷杯", UnitPrice: 60000, BusinessID: "biz_a"},
	}

	r := gin.New()
	r.Use(gin.Recovery())

	shop := r.Group("/api/shops/:slug")
	{
		shop.GET("/cart", func(c *gin.Context) {
			device, ok := deviceID(c)
			if !ok {
				return
			}
			c.JSON(http.StatusOK, gin.H{"data": dto.NewCartResponse(cartService.Get(device))})
		})

		shop.POST("/cart/items", func(c *gin.Context) {
			device, ok := deviceID(c)
			if !ok {
				return
			}
			var req dto.AddCartItemRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			item, ok := catalog[req.ProductID]
			if !ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "商品不存在或已下架"})
				return
			}
			cart, err := cartService.AddItem(device, item)
			if err != nil {
				fail(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"data": dto.NewCartResponse(cart)})
		})

		shop.PUT("/cart/items/:id", func(c *gin.Context) {
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
			cart, err := cartService.UpdateQuantity(device, id, req.Quantity)
			if err != nil {
				fail(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"data": dto.NewCartResponse(cart)})
		})
	}

	return r
}

type cartEnvelope struct {
	Data dto.CartResponse `json:"data"`
}

func doCartRequest(t *testing.T, r *gin.Engine, method, path, device string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("编码请求体失败: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if device != "" {
		req.Header.Set(headerDeviceID, device)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ==================== 测试 ====================

func TestCartRequiresDeviceHeader(t *testing.T) {
	r := setupCartCtlRouter()

	w := doCartRequest(t, r, http.MethodGet, "/api/shops/baseti/cart", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartAddAndGet(t *testing.T) {
	r := setupCartCtlRouter()

	w := doCartRequest(t, r, http.MethodPost, "/api/shops/baseti/cart/items", "dev-1",
		dto.AddCartItemRequest{ProductID: 1})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp cartEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Items, 1)
	assert.Equal(t, 1, resp.Data.TotalItems)
	assert.Equal(t, int64(150000), resp.Data.Subtotal)

	// 再加一次同商品: 合并行
	w = doCartRequest(t, r, http.MethodPost, "/api/shops/baseti/cart/items", "dev-1",
		dto.AddCartItemRequest{ProductID: 1})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doCartRequest(t, r, http.MethodGet, "/api/shops/baseti/cart", "dev-1", nil)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Items, 1)
	assert.Equal(t, 2, resp.Data.TotalItems)

	// 其他设备看不到
	w = doCartRequest(t, r, http.MethodGet, "/api/shops/baseti/cart", "dev-2", nil)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Items, 0)
}

func TestCartAddUnknownProduct(t *testing.T) {
	r := setupCartCtlRouter()

	w := doCartRequest(t, r, http.MethodPost, "/api/shops/baseti/cart/items", "dev-1",
		dto.AddCartItemRequest{ProductID: 999})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartUpdateQuantity(t *testing.T) {
	r := setupCartCtlRouter()

	doCartRequest(t, r, http.MethodPost, "/api/shops/baseti/cart/items", "dev-1",
		dto.AddCartItemRequest{ProductID: 2})

	w := doCartRequest(t, r, http.MethodPut, "/api/shops/baseti/cart/items/2", "dev-1",
		dto.UpdateCartQuantityRequest{Quantity: 3})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp cartEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Data.Items[0].Quantity)
	assert.Equal(t, int64(180000), resp.Data.Subtotal)

	// 不在车里的商品
	w = doCartRequest(t, r, http.MethodPut, "/api/shops/baseti/cart/items/999", "dev-1",
		dto.UpdateCartQuantityRequest{Quantity: 2})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
