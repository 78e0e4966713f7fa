package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
	"gorm.io/datatypes"

	"baseti_shopapp_v1_202609/internal/api/dto"
	"baseti_shopapp_v1_202609/internal/model"
	"baseti_shopapp_v1_202609/internal/repository"
	"baseti_shopapp_v1_202609/pkg/notify"
)

// ==================== 错误定义 ====================

var ErrConnectionNotFound = errors.New("社媒连接不存在")

// 各平台主页地址模板，巡检时探活用
var platformURLTemplates = map[string]string{
	model.PlatformInstagram: "https://www.instagram.com/%s/",
	model.PlatformFacebook:  "https://www.facebook.com/%s",
	model.PlatformTiktok:    "https://www.tiktok.com/@%s",
	model.PlatformWhatsapp:  "https://wa.me/%s",
}

// ==================== 社媒服务 ====================

type SocialService struct {
	connRepo repository.SocialConnectionRepository
	client   *resty.Client
	notifier notify.Notifier
}

func NewSocialService(connRepo repository.SocialConnectionRepository, notifier notify.Notifier) *SocialService {
	return &SocialService{
		connRepo: connRepo,
		client:   resty.New(),
		notifier: notifier,
	}
}

func (s *SocialService) List(ctx context.Context, tc *model.TenantContext) ([]model.SocialConnection, error) {
	connections, _, err := s.connRepo.Fetch(ctx, Actor(tc), repository.QueryOptions{})
	return connections, err
}

// Connect 绑定社媒账号，绑定后立即做一次健康检查
func (s *SocialService) Connect(ctx context.Context, tc *model.TenantContext, req dto.CreateConnectionRequest) (*model.SocialConnection, error) {
	conn := &model.SocialConnection{
		Platform: req.Platform,
		Handle:   req.Handle,
		Url:      req.Url,
		Status:   model.ConnectionStatusPending,
	}
	if conn.Url == "" {
		conn.Url = ProfileURL(req.Platform, req.Handle)
	}
	if req.Settings != "" {
		conn.Settings = datatypes.JSON(req.Settings)
	}

	if err := s.connRepo.Insert(ctx, Actor(tc), conn); err != nil {
		notifyFailed(s.notifier, "绑定社媒账号", err)
		return nil, err
	}
	notifyDone(s.notifier, "社媒账号已绑定", conn.Handle)

	s.CheckConnection(ctx, conn)
	return s.get(ctx, tc, conn.ID)
}

func (s *SocialService) Update(ctx context.Context, tc *model.TenantContext, id int64, req dto.UpdateConnectionRequest) (*model.SocialConnection, error) {
	fields := map[string]interface{}{}
	if req.Handle != nil {
		fields["handle"] = *req.Handle
	}
	if req.Url != nil {
		fields["url"] = *req.Url
	}
	if req.Settings != nil {
		fields["settings"] = datatypes.JSON(*req.Settings)
	}

	if len(fields) > 0 {
		// 换了账号就要重新巡检
		fields["status"] = model.ConnectionStatusPending
		if err := s.connRepo.Update(ctx, Actor(tc), id, fields); err != nil {
			notifyFailed(s.notifier, "更新社媒连接", err)
			return nil, err
		}
		notifyDone(s.notifier, "社媒连接已更新", "")
	}
	return s.get(ctx, tc, id)
}

func (s *SocialService) Disconnect(ctx context.Context, tc *model.TenantContext, id int64) error {
	if err := s.connRepo.Delete(ctx, Actor(tc), id); err != nil {
		notifyFailed(s.notifier, "解绑社媒账号", err)
		return err
	}
	notifyDone(s.notifier, "社媒账号已解绑", "")
	return nil
}

// Verify 手动触发一次健康检查
func (s *SocialService) Verify(ctx context.Context, tc *model.TenantContext, id int64) (*model.SocialConnection, error) {
	conn, err := s.get(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	s.CheckConnection(ctx, conn)
	return s.get(ctx, tc, id)
}

// CheckConnection 探活并回写状态 (巡检任务也走这里)
func (s *SocialService) CheckConnection(ctx context.Context, conn *model.SocialConnection) {
	url := conn.Url
	if url == "" {
		url = ProfileURL(conn.Platform, conn.Handle)
	}

	status := model.ConnectionStatusConnected
	lastError := ""

	resp, err := s.client.R().SetContext(ctx).Head(url)
	if err != nil {
		status = model.ConnectionStatusFailed
		lastError = err.Error()
	} else if resp.StatusCode() >= 400 {
		status = model.ConnectionStatusFailed
		lastError = fmt.Sprintf("HTTP %d", resp.StatusCode())
	}

	_ = s.connRepo.MarkChecked(ctx, conn.ID, status, lastError)
}

func (s *SocialService) get(ctx context.Context, tc *model.TenantContext, id int64) (*model.SocialConnection, error) {
	conn, err := s.connRepo.GetByID(ctx, Actor(tc), id)
	if err != nil {
		notifyFailed(s.notifier, "查看社媒连接", err)
		return nil, err
	}
	if conn == nil {
		return nil, ErrConnectionNotFound
	}
	return conn, nil
}

// ProfileURL 由平台和账号名拼出主页地址
func ProfileURL(platform, handle string) string {
	tmpl, ok := platformURLTemplates[platform]
	if !ok {
		return ""
	}
	return fmt.Sprintf(tmpl, handle)
}
