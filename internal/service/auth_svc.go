package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"baseti_shopapp_v1_202609/internal/api/dto"
	"baseti_shopapp_v1_202609/internal/middleware"
	"baseti_shopapp_v1_202609/internal/model"
	"baseti_shopapp_v1_202609/internal/repository"
)

// ==================== AuthService 认证服务 ====================

// AuthService 注册/登录/续期
// 注册即建店: 创建登录账号的同时创建商家资料，主键取用户身份标识
type AuthService struct {
	userRepo     repository.UserRepository
	businessRepo repository.BusinessRepository
	bus          *AuthEventBus
}

// NewAuthService 创建认证服务
func NewAuthService(
	userRepo repository.UserRepository,
	businessRepo repository.BusinessRepository,
	bus *AuthEventBus,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		businessRepo: businessRepo,
		bus:          bus,
	}
}

// Register 商家注册
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.SysUser{
		UserKey:  uuid.NewString(),
		Email:    req.Email,
		Password: string(hashedPassword),
		Status:   model.UserStatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// 商家资料: OwnerID 即用户身份标识
	business := &model.Business{
		OwnerID:     user.UserKey,
		DisplayName: req.BusinessName,
		Slug:        s.uniqueSlug(ctx, req.BusinessName),
		Phone:       req.Phone,
		Email:       req.Email,
		Role:        model.RoleOwner,
		IsActive:    true,
	}
	if err := s.businessRepo.Create(ctx, business); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user, AuthSignedIn)
}

// Login 登录
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if user.Status != model.UserStatusActive {
		return nil, ErrUserDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	_ = s.userRepo.UpdateLastLogin(ctx, user.ID)

	return s.issueTokens(ctx, user, AuthSignedIn)
}

// Logout 登出，广播 SIGNED_OUT 清掉租户上下文
func (s *AuthService) Logout(userKey string) {
	if s.bus != nil {
		s.bus.Publish(AuthSignedOut, &AuthSession{UserKey: userKey})
	}
}

// RefreshToken 刷新 Token
func (s *AuthService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error) {
	claims, err := middleware.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.Subject != "refresh" {
		return nil, ErrInvalidToken
	}

	// 确保用户仍然有效
	user, err := s.userRepo.GetByUserKey(ctx, claims.UserKey)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != model.UserStatusActive {
		return nil, ErrUserDisabled
	}

	accessToken, refreshToken, err := middleware.GenerateTokenPair(user.UserKey, user.Email, user.IsPlatformAdmin)
	if err != nil {
		return nil, err
	}

	if s.bus != nil {
		s.bus.Publish(AuthTokenRefreshed, &AuthSession{
			UserKey:       user.UserKey,
			Email:         user.Email,
			PlatformAdmin: user.IsPlatformAdmin,
		})
	}

	cfg := middleware.GetJWTConfig()
	return &dto.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(cfg.AccessTokenTTL),
	}, nil
}

// ChangePassword 修改密码
func (s *AuthService) ChangePassword(ctx context.Context, userKey string, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByUserKey(ctx, userKey)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return ErrInvalidOldPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(ctx, user.ID, string(hashedPassword))
}

// GetProfile 获取当前用户信息
func (s *AuthService) GetProfile(ctx context.Context, userKey string) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByUserKey(ctx, userKey)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.toUserInfo(user), nil
}

// ==================== 辅助方法 ====================

func (s *AuthService) issueTokens(ctx context.Context, user *model.SysUser, event AuthEvent) (*dto.LoginResponse, error) {
	accessToken, refreshToken, err := middleware.GenerateTokenPair(user.UserKey, user.Email, user.IsPlatformAdmin)
	if err != nil {
		return nil, err
	}

	if s.bus != nil {
		s.bus.Publish(event, &AuthSession{
			UserKey:       user.UserKey,
			Email:         user.Email,
			PlatformAdmin: user.IsPlatformAdmin,
		})
	}

	cfg := middleware.GetJWTConfig()
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(cfg.AccessTokenTTL),
		User:         s.toUserInfo(user),
	}, nil
}

// uniqueSlug 由商家名生成唯一店铺路径
func (s *AuthService) uniqueSlug(ctx context.Context, name string) string {
	base := strings.ToLower(strings.TrimSpace(name))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, base)
	base = strings.Trim(base, "-")
	if base == "" {
		base = "shop"
	}

	slug := base
	for i := 0; i < 5; i++ {
		exists, err := s.businessRepo.ExistsBySlug(ctx, slug)
		if err != nil || !exists {
			return slug
		}
		slug = base + "-" + uuid.NewString()[:8]
	}
	return slug
}

func (s *AuthService) toUserInfo(user *model.SysUser) *dto.UserInfo {
	return &dto.UserInfo{
		UserKey:       user.UserKey,
		Email:         user.Email,
		PlatformAdmin: user.IsPlatformAdmin,
		CreatedAt:     user.CreatedAt,
		LastLoginAt:   user.LastLoginAt,
	}
}

// ==================== 错误定义 ====================

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrUserDisabled       = errors.New("用户已禁用")
	ErrInvalidToken       = errors.New("Token 无效")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrInvalidOldPassword = errors.New("旧密码错误")
	ErrEmailExists        = errors.New("邮箱已注册")
)
