package task

import (
	"log"

	"baseti_shopapp_v1_202609/internal/repository"
	"baseti_shopapp_v1_202609/internal/service"
	"baseti_shopapp_v1_202609/pkg/notify"
)

// ==================== TaskManager 定时任务管理器 ====================

// TaskManager 统一管理后台巡检任务
type TaskManager struct {
	socialTask   *SocialCheckTask
	lowStockTask *LowStockTask
}

// TaskManagerDeps 任务管理器依赖
type TaskManagerDeps struct {
	BusinessRepo repository.BusinessRepository
	ProductRepo  repository.ProductRepository
	SocialRepo   repository.SocialConnectionRepository

	SocialService *service.SocialService
	Notifier      notify.Notifier
}

// TaskManagerConfig 任务开关
type TaskManagerConfig struct {
	SocialCheckEnabled bool
	LowStockEnabled    bool
}

// DefaultConfig 默认配置
func DefaultConfig() *TaskManagerConfig {
	return &TaskManagerConfig{
		SocialCheckEnabled: true,
		LowStockEnabled:    true,
	}
}

// NewTaskManager 创建任务管理器
func NewTaskManager(deps *TaskManagerDeps, cfg *TaskManagerConfig) *TaskManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	tm := &TaskManager{}

	if cfg.SocialCheckEnabled && deps.SocialService != nil {
		tm.socialTask = NewSocialCheckTask(deps.SocialRepo, deps.SocialService)
	}
	if cfg.LowStockEnabled && deps.Notifier != nil {
		tm.lowStockTask = NewLowStockTask(deps.BusinessRepo, deps.ProductRepo, deps.Notifier)
	}

	return tm
}

// Start 启动所有任务
func (tm *TaskManager) Start() {
	log.Println("[TaskManager] 正在启动巡检任务...")

	if tm.socialTask != nil {
		tm.socialTask.Start()
	}
	if tm.lowStockTask != nil {
		tm.lowStockTask.Start()
	}

	log.Println("[TaskManager] 巡检任务已全部启动")
}

// Stop 停止所有任务
func (tm *TaskManager) Stop() {
	if tm.socialTask != nil {
		tm.socialTask.Stop()
	}
	if tm.lowStockTask != nil {
		tm.lowStockTask.Stop()
	}
}

// Status 任务状态
func (tm *TaskManager) Status() map[string]bool {
	return map[string]bool{
		"social_check": tm.socialTask != nil,
		"low_stock":    tm.lowStockTask != nil,
	}
}
