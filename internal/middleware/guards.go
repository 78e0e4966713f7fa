package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"baseti_shopapp_v1_202609/internal/model"
)

// ==================== 路由守卫 ====================

// TenantResolver 租户解析入口
// 由 TenantService 实现，中间件不反向依赖 service 包
type TenantResolver interface {
	Current(ctx context.Context, userKey string, platformAdmin bool) (*model.TenantContext, error)
}

// Context Key
const ContextKeyTenant = "tenant_ctx"

// accessDenied 守卫统一的拒绝响应
// 不渲染任何受保护内容，附带 destructive 通知供前端 toast
func accessDenied(c *gin.Context, status int, description string) {
	c.JSON(status, gin.H{
		"code":    status,
		"message": "Access Denied",
		"notification": gin.H{
			"title":       "Access Denied",
			"description": description,
			"variant":     "destructive",
		},
	})
	c.Abort()
}

// resolveTenant 解析并注入租户上下文，失败时中断请求
func resolveTenant(c *gin.Context, resolver TenantResolver) (*model.TenantContext, bool) {
	userKey := GetUserKey(c)
	if userKey == "" {
		accessDenied(c, http.StatusUnauthorized, "请先登录")
		return nil, false
	}

	// 平台超管允许没有选中租户 (平台视角)，普通用户必须有商家资料
	tc, err := resolver.Current(c.Request.Context(), userKey, IsPlatformAdmin(c))
	if err != nil || tc == nil || (tc.TenantID == "" && !tc.IsAdmin) {
		accessDenied(c, http.StatusUnauthorized, "未找到商家资料，请先完成注册")
		return nil, false
	}

	c.Set(ContextKeyTenant, tc)
	return tc, true
}

// RequireTenant 要求有效租户身份
func RequireTenant(resolver TenantResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := resolveTenant(c, resolver); !ok {
			return
		}
		c.Next()
	}
}

// RequireAdmin 要求管理员身份 (owner/admin 角色或平台超管)
func RequireAdmin(resolver TenantResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tc, ok := resolveTenant(c, resolver)
		if !ok {
			return
		}
		if !tc.IsAdmin {
			accessDenied(c, http.StatusForbidden, "仅管理员可访问")
			return
		}
		c.Next()
	}
}

// RequirePermission 要求指定权限键
// 权限表是唯一判定来源，见 model.DefaultPermissions
func RequirePermission(resolver TenantResolver, key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tc, ok := resolveTenant(c, resolver)
		if !ok {
			return
		}
		if !tc.HasPermission(key) {
			accessDenied(c, http.StatusForbidden, "当前角色无此操作权限")
			return
		}
		c.Next()
	}
}

// GetTenantContext 从 Context 获取租户上下文
func GetTenantContext(c *gin.Context) *model.TenantContext {
	if tc, exists := c.Get(ContextKeyTenant); exists {
		return tc.(*model.TenantContext)
	}
	return nil
}
