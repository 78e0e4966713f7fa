package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"baseti_shopapp_v1_202609/internal/api/dto"
	"baseti_shopapp_v1_202609/internal/middleware"
	"baseti_shopapp_v1_202609/internal/service"
)

type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(s *service.AuthService) *AuthController {
	return &AuthController{authService: s}
}

// Register
// @Summary 注册商家账号
// @Description 创建用户并自动生成商家资料，注册成功直接返回登录态
// @Tags Auth (认证模块)
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "注册参数"
// @Success 200 {object} dto.LoginResponse "登录态"
// @Failure 400 {object} map[string]string "参数错误/邮箱已注册"
// @Router /api/auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := ctrl.authService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// Login
// @Summary 登录
// @Tags Auth (认证模块)
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录参数"
// @Success 200 {object} dto.LoginResponse "登录态"
// @Failure 401 {object} map[string]string "账号或密码错误"
// @Router /api/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := ctrl.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrUserDisabled) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// Logout
// @Summary 登出
// @Tags Auth (认证模块)
// @Produce json
// @Success 200 {object} map[string]string "{"message": "success"}"
// @Router /api/auth/logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	ctrl.authService.Logout(middleware.GetUserKey(c))
	c.JSON(http.StatusOK, gin.H{"message": "success"})
}

// RefreshToken
// @Summary 刷新访问令牌
// @Tags Auth (认证模块)
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "刷新令牌"
// @Success 200 {object} dto.RefreshTokenResponse "新令牌对"
// @Failure 401 {object} map[string]string "令牌无效"
// @Router /api/auth/refresh [post]
func (ctrl *AuthController) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := ctrl.authService.RefreshToken(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// Me
// @Summary 当前用户信息
// @Tags Auth (认证模块)
// @Produce json
// @Success 200 {object} dto.UserInfo "用户信息"
// @Router /api/auth/me [get]
func (ctrl *AuthController) Me(c *gin.Context) {
	info, err := ctrl.authService.GetProfile(c.Request.Context(), middleware.GetUserKey(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": info})
}

// ChangePassword
// @Summary 修改密码
// @Tags Auth (认证模块)
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "新旧密码"
// @Success 200 {object} map[string]string "{"message": "success"}"
// @Failure 400 {object} map[string]string "旧密码错误"
// @Router /api/auth/password [put]
func (ctrl *AuthController) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ctrl.authService.ChangePassword(c.Request.Context(), middleware.GetUserKey(c), &req); err != nil {
		if errors.Is(err, service.ErrInvalidOldPassword) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "success"})
}
