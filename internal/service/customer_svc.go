package service

import (
	"context"
	"errors"

	"baseti_shopapp_v1_202609/internal/api/dto"
	"baseti_shopapp_v1_202609/internal/model"
	"baseti_shopapp_v1_202609/internal/repository"
	"baseti_shopapp_v1_202609/pkg/notify"
)

var ErrCustomerNotFound = errors.New("客户不存在")

// ==================== 客户服务 ====================

type CustomerService struct {
	customerRepo repository.CustomerRepository
	notifier     notify.Notifier
}

func NewCustomerService(customerRepo repository.CustomerRepository, notifier notify.Notifier) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		notifier:     notifier,
	}
}

func (s *CustomerService) List(ctx context.Context, tc *model.TenantContext, q dto.CustomerListQuery) ([]model.Customer, int64, error) {
	if q.Keyword != "" {
		return s.customerRepo.Search(ctx, Actor(tc), q.Keyword, q.Page, q.PageSize)
	}
	return s.customerRepo.Fetch(ctx, Actor(tc), repository.QueryOptions{
		Page:     q.Page,
		PageSize: q.PageSize,
	})
}

func (s *CustomerService) Get(ctx context.Context, tc *model.TenantContext, id int64) (*model.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, Actor(tc), id)
	if err != nil {
		notifyFailed(s.notifier, "查看客户", err)
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

func (s *CustomerService) Create(ctx context.Context, tc *model.TenantContext, req dto.CreateCustomerRequest) (*model.Customer, error) {
	customer := &model.Customer{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
		Note:  req.Note,
	}
	if err := s.customerRepo.Insert(ctx, Actor(tc), customer); err != nil {
		notifyFailed(s.notifier, "创建客户", err)
		return nil, err
	}
	notifyDone(s.notifier, "客户已创建", customer.Name)
	return customer, nil
}

func (s *CustomerService) Update(ctx context.Context, tc *model.TenantContext, id int64, req dto.UpdateCustomerRequest) (*model.Customer, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Note != nil {
		fields["note"] = *req.Note
	}

	if len(fields) > 0 {
		if err := s.customerRepo.Update(ctx, Actor(tc), id, fields); err != nil {
			notifyFailed(s.notifier, "更新客户", err)
			return nil, err
		}
		notifyDone(s.notifier, "客户已更新", "")
	}
	return s.Get(ctx, tc, id)
}

func (s *CustomerService) Delete(ctx context.Context, tc *model.TenantContext, id int64) error {
	if err := s.customerRepo.Delete(ctx, Actor(tc), id); err != nil {
		notifyFailed(s.notifier, "删除客户", err)
		return err
	}
	notifyDone(s.notifier, "客户已删除", "")
	return nil
}
