package service

import (
	"context"
	"errors"
	"testing"

	"baseti_shopapp_v1_202609/internal/api/dto"
	"baseti_shopapp_v1_202609/internal/model"
	"baseti_shopapp_v1_202609/pkg/utils"
)

func TestIsValidSlug(t *testing.T) {
	cases := []struct {
		slug string
		want bool
	}{
		{"baseti-shop", true},
		{"shop123", true},
		{"", false},
		{"My-Shop", false},
		{"shop_1", false},
		{"店铺", false},
	}
	for _, c := range cases {
		if got := isValidSlug(c.slug); got != c.want {
			t.Errorf("isValidSlug(%q) = %v, want %v", c.slug, got, c.want)
		}
	}
}

func TestUpdateProfileSlug(t *testing.T) {
	repo := newStubBusinessRepo(
		&model.Business{OwnerID: "user_1", DisplayName: "Baseti 小店", Slug: "baseti", IsActive: true},
		&model.Business{OwnerID: "user_2", DisplayName: "别家", Slug: "taken", IsActive: true},
	)
	svc := NewBusinessService(repo, nil)
	ctx := context.Background()
	tc := &model.TenantContext{TenantID: "user_1", Role: model.RoleOwner, IsAdmin: true}

	bad := "Bad Slug!"
	if _, err := svc.UpdateProfile(ctx, tc, dto.UpdateBusinessRequest{Slug: &bad}); !errors.Is(err, ErrInvalidSlug) {
		t.Errorf("err = %v, want ErrInvalidSlug", err)
	}

	taken := "taken"
	if _, err := svc.UpdateProfile(ctx, tc, dto.UpdateBusinessRequest{Slug: &taken}); !errors.Is(err, ErrSlugTaken) {
		t.Errorf("err = %v, want ErrSlugTaken", err)
	}

	// 大小写归一后落库
	mixed := "  New-Shop "
	if _, err := svc.UpdateProfile(ctx, tc, dto.UpdateBusinessRequest{Slug: &mixed}); err != nil {
		t.Fatalf("UpdateProfile 失败: %v", err)
	}
}

func TestGetBySlugCaches(t *testing.T) {
	repo := newStubBusinessRepo(
		&model.Business{OwnerID: "user_1", DisplayName: "Baseti 小店", Slug: "baseti", IsActive: true},
	)
	svc := NewBusinessService(repo, nil)
	ctx := context.Background()

	utils.DeleteCache(storefrontCacheKey("baseti"))

	got, err := svc.GetBySlug(ctx, "baseti")
	if err != nil {
		t.Fatalf("GetBySlug 失败: %v", err)
	}
	if got.DisplayName != "Baseti 小店" {
		t.Errorf("display_name = %s", got.DisplayName)
	}

	// 命中缓存后不再依赖仓储
	repo.err = errors.New("db down")
	got, err = svc.GetBySlug(ctx, "baseti")
	if err != nil || got == nil {
		t.Fatalf("缓存命中时不应报错: %v", err)
	}

	repo.err = nil
	if _, err := svc.GetBySlug(ctx, "missing"); !errors.Is(err, ErrBusinessNotFound) {
		t.Errorf("err = %v, want ErrBusinessNotFound", err)
	}
}

func TestSetActiveInvalidatesCache(t *testing.T) {
	business := &model.Business{OwnerID: "user_1", DisplayName: "Baseti 小店", Slug: "baseti-active", IsActive: true}
	repo := newStubBusinessRepo(business)
	svc := NewBusinessService(repo, nil)
	ctx := context.Background()

	if _, err := svc.GetBySlug(ctx, "baseti-active"); err != nil {
		t.Fatalf("GetBySlug 失败: %v", err)
	}

	if err := svc.SetActive(ctx, "user_1", false); err != nil {
		t.Fatalf("SetActive 失败: %v", err)
	}

	if _, ok := utils.GetCache(storefrontCacheKey("baseti-active")); ok {
		t.Error("停用商家后前台缓存应被踢掉")
	}
}
