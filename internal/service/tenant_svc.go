package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"baseti_shopapp_v1_202609/internal/model"
	"baseti_shopapp_v1_202609/internal/repository"
	"baseti_shopapp_v1_202609/pkg/logger"
	"baseti_shopapp_v1_202609/pkg/notify"
)

// ==================== TenantService 租户上下文 ====================

// TenantService 解析并持有每个会话的租户身份
// 显式构造、依赖注入，不做包级全局状态；
// 每个登录用户一份上下文，登出时删除，auth 事件触发重新解析
type TenantService struct {
	businessRepo repository.BusinessRepository
	notifier     notify.Notifier

	// 平台超管身份 (配置注入)，该 userKey 无条件视为管理员
	platformAdminKey string

	mu       sync.Mutex
	sessions map[string]*tenantSession
}

// tenantSession 单个会话的解析状态
type tenantSession struct {
	// 解析代号: 每次开始解析时递增；写回结果前比对，
	// 保证"最后开始的解析"胜出 (auth 事件可重入)
	generation uint64
	tc         *model.TenantContext
}

// NewTenantService 创建租户上下文服务，并订阅认证事件
func NewTenantService(
	businessRepo repository.BusinessRepository,
	notifier notify.Notifier,
	bus *AuthEventBus,
	platformAdminKey string,
) *TenantService {
	s := &TenantService{
		businessRepo:     businessRepo,
		notifier:         notifier,
		platformAdminKey: platformAdminKey,
		sessions:         make(map[string]*tenantSession),
	}

	if bus != nil {
		bus.Subscribe(s.onAuthEvent)
	}
	return s
}

// onAuthEvent 认证事件回调
func (s *TenantService) onAuthEvent(event AuthEvent, session *AuthSession) {
	switch event {
	case AuthSignedOut:
		if session != nil {
			s.clear(session.UserKey)
		}
	case AuthSignedIn, AuthTokenRefreshed, AuthUserUpdated:
		if session != nil {
			// 解析失败已在 Resolve 内部通知，这里无需二次处理
			_, _ = s.Resolve(context.Background(), session)
		}
	}
}

// Resolve 解析会话的租户身份
// 无会话 → (nil, nil)，解析视为完成，调用方引导去登录；
// 查资料失败 → destructive 通知 + 空上下文；
// 角色缺省补 owner，isAdmin = 角色 owner/admin 或平台超管身份
func (s *TenantService) Resolve(ctx context.Context, session *AuthSession) (*model.TenantContext, error) {
	if session == nil || session.UserKey == "" {
		return nil, nil
	}

	gen := s.beginResolve(session.UserKey)

	business, err := s.businessRepo.GetByOwnerID(ctx, session.UserKey)
	if err != nil {
		logger.Error("解析商家资料失败",
			zap.String("user_key", session.UserKey),
			zap.Error(err))
		s.notifier.Notify(notify.Destructive("加载失败", "无法加载商家资料，请稍后重试"))
		s.commitResolve(session.UserKey, gen, nil)
		return nil, err
	}

	platformAdmin := session.PlatformAdmin || session.UserKey == s.platformAdminKey

	var tc *model.TenantContext
	if business == nil {
		// 无商家资料: 平台超管仍可进入 (不选租户即平台视角)，普通用户视为未注册
		if platformAdmin {
			tc = &model.TenantContext{IsAdmin: true}
		}
	} else {
		role := business.EffectiveRole()
		tc = &model.TenantContext{
			TenantID:    business.OwnerID,
			DisplayName: business.DisplayName,
			Role:        role,
			IsAdmin:     role == model.RoleOwner || role == model.RoleAdmin || platformAdmin,
		}
	}

	// 有更晚开始的解析时放弃本次结果
	if !s.commitResolve(session.UserKey, gen, tc) {
		return s.cached(session.UserKey), nil
	}
	return tc, nil
}

// Current 取当前会话的租户上下文，未缓存时同步解析一次
func (s *TenantService) Current(ctx context.Context, userKey string, platformAdmin bool) (*model.TenantContext, error) {
	if tc := s.cached(userKey); tc != nil {
		return tc, nil
	}
	return s.Resolve(ctx, &AuthSession{UserKey: userKey, PlatformAdmin: platformAdmin})
}

// ==================== 管理员切换租户 ====================

var ErrAdminOnly = errors.New("仅管理员可切换租户")

// SetCurrentTenant 管理员切换当前作用租户 (impersonation)
// tenantID 为空时回到平台视角；非管理员调用为 no-op 并报错
func (s *TenantService) SetCurrentTenant(ctx context.Context, userKey, tenantID string) (*model.TenantContext, error) {
	current := s.cached(userKey)
	if current == nil || !current.IsAdmin {
		return current, ErrAdminOnly
	}

	tc := &model.TenantContext{
		TenantID: tenantID,
		Role:     current.Role,
		IsAdmin:  true,
	}

	// 刷新被切换商家的名称；查询失败时不切换，保留原上下文
	if tenantID != "" {
		business, err := s.businessRepo.GetByOwnerID(ctx, tenantID)
		if err != nil {
			logger.Warn("刷新被切换商家名称失败",
				zap.String("tenant_id", tenantID),
				zap.Error(err))
			return current, err
		}
		if business != nil {
			tc.DisplayName = business.DisplayName
		}
	}

	s.store(userKey, tc)
	return tc, nil
}

// Actor 由租户上下文构造数据访问身份
func Actor(tc *model.TenantContext) repository.Actor {
	if tc == nil {
		return repository.Actor{}
	}
	return repository.Actor{TenantID: tc.TenantID, IsAdmin: tc.IsAdmin}
}

// ==================== 会话状态管理 ====================

func (s *TenantService) beginResolve(userKey string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userKey]
	if !ok {
		sess = &tenantSession{}
		s.sessions[userKey] = sess
	}
	sess.generation++
	return sess.generation
}

// commitResolve 写回解析结果；代号已过期时返回 false
func (s *TenantService) commitResolve(userKey string, gen uint64, tc *model.TenantContext) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userKey]
	if !ok || sess.generation != gen {
		return false
	}
	sess.tc = tc
	return true
}

func (s *TenantService) cached(userKey string) *model.TenantContext {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[userKey]; ok {
		return sess.tc
	}
	return nil
}

func (s *TenantService) store(userKey string, tc *model.TenantContext) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userKey]
	if !ok {
		sess = &tenantSession{}
		s.sessions[userKey] = sess
	}
	sess.tc = tc
}

func (s *TenantService) clear(userKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userKey)
}
