package service

import "sync"

// ==================== 认证事件 ====================

// AuthEvent 认证状态事件
type AuthEvent string

const (
	AuthSignedIn       AuthEvent = "SIGNED_IN"
	AuthSignedOut      AuthEvent = "SIGNED_OUT"
	AuthTokenRefreshed AuthEvent = "TOKEN_REFRESHED"
	AuthUserUpdated    AuthEvent = "USER_UPDATED"
)

// AuthSession 事件携带的会话快照
// SIGNED_OUT 事件携带被登出的会话，订阅方据此清理状态
type AuthSession struct {
	UserKey       string
	Email         string
	PlatformAdmin bool
}

// AuthEventBus 认证事件总线 (观察者模式)
// 登录/登出/续期都走这里广播，租户上下文订阅后触发重新解析；
// 投递顺序保证见 TenantService: 以"最后开始的解析"为准
type AuthEventBus struct {
	mu   sync.RWMutex
	subs []func(event AuthEvent, session *AuthSession)
}

// NewAuthEventBus 创建事件总线
func NewAuthEventBus() *AuthEventBus {
	return &AuthEventBus{}
}

// Subscribe 注册订阅者
func (b *AuthEventBus) Subscribe(fn func(event AuthEvent, session *AuthSession)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}

// Publish 同步广播事件
func (b *AuthEventBus) Publish(event AuthEvent, session *AuthSession) {
	b.mu.RLock()
	subs := make([]func(AuthEvent, *AuthSession), len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, fn := range subs {
		fn(event, session)
	}
}
