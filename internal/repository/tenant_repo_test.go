package repository

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"baseti_shopapp_v1_202609/internal/model"
)

// ==================== 测试模型 ====================

type TestTenantNote struct {
	model.TenantModel

	Title string
}

func (TestTenantNote) TableName() string { return "tenant_notes" }

func setupTenantTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&TestTenantNote{}); err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}
	return db
}

func seedNotes(t *testing.T, repo TenantRepository[TestTenantNote]) {
	ctx := context.Background()
	rows := []struct {
		tenant string
		title  string
	}{
		{"biz_a", "a1"},
		{"biz_a", "a2"},
		{"biz_b", "b1"},
	}
	for _, r := range rows {
		note := &TestTenantNote{Title: r.title}
		if err := repo.Insert(ctx, Actor{TenantID: r.tenant}, note); err != nil {
			t.Fatalf("插入测试数据失败: %v", err)
		}
	}
}

// ==================== 租户过滤 ====================

func TestFetchTenantIsolation(t *testing.T) {
	repo := NewTenantRepository[TestTenantNote](setupTenantTestDB(t))
	seedNotes(t, repo)
	ctx := context.Background()

	rows, total, err := repo.Fetch(ctx, Actor{TenantID: "biz_a"}, QueryOptions{})
	if err != nil {
		t.Fatalf("Fetch 失败: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Errorf("total = %d, len = %d, want 2, 2", total, len(rows))
	}
	for _, row := range rows {
		if row.BusinessID != "biz_a" {
			t.Errorf("查到了其他租户的行: business_id = %s", row.BusinessID)
		}
	}
}

func TestFetchRequiresIdentity(t *testing.T) {
	repo := NewTenantRepository[TestTenantNote](setupTenantTestDB(t))
	seedNotes(t, repo)

	_, _, err := repo.Fetch(context.Background(), Actor{}, QueryOptions{})
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("err = %v, want ErrNotAuthenticated", err)
	}
}

func TestFetchAdminPlatformView(t *testing.T) {
	repo := NewTenantRepository[TestTenantNote](setupTenantTestDB(t))
	seedNotes(t, repo)
	ctx := context.Background()

	// 管理员未选租户: 平台视角，不过滤
	_, total, err := repo.Fetch(ctx, Actor{IsAdmin: true}, QueryOptions{})
	if err != nil {
		t.Fatalf("Fetch 失败: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}

	// 管理员选中租户 (impersonation): 查询同样套用租户过滤
	_, total, err = repo.Fetch(ctx, Actor{TenantID: "biz_b", IsAdmin: true}, QueryOptions{})
	if err != nil {
		t.Fatalf("Fetch 失败: %v", err)
	}
	if total != 1 {
		t.Errorf("total = %d, want 1", total)
	}
}

func TestFetchPagination(t *testing.T) {
	repo := NewTenantRepository[TestTenantNote](setupTenantTestDB(t))
	seedNotes(t, repo)

	rows, total, err := repo.Fetch(context.Background(), Actor{TenantID: "biz_a"}, QueryOptions{
		Page:      1,
		PageSize:  1,
		OrderBy:   "title",
		Ascending: true,
	})
	if err != nil {
		t.Fatalf("Fetch 失败: %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}
	if len(rows) != 1 || rows[0].Title != "a1" {
		t.Errorf("rows = %+v, want 只含 a1", rows)
	}
}

// ==================== 插入盖章 ====================

func TestInsertStampsBusinessID(t *testing.T) {
	repo := NewTenantRepository[TestTenantNote](setupTenantTestDB(t))
	ctx := context.Background()

	// 调用方伪造的归属被无条件覆盖
	note := &TestTenantNote{Title: "forged"}
	note.BusinessID = "biz_other"
	if err := repo.Insert(ctx, Actor{TenantID: "biz_a"}, note); err != nil {
		t.Fatalf("Insert 失败: %v", err)
	}
	if note.BusinessID != "biz_a" {
		t.Errorf("business_id = %s, want biz_a", note.BusinessID)
	}

	if err := repo.Insert(ctx, Actor{}, &TestTenantNote{Title: "anon"}); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("err = %v, want ErrNotAuthenticated", err)
	}
}

// ==================== 更新归属校验 ====================

func TestUpdateOwnership(t *testing.T) {
	db := setupTenantTestDB(t)
	repo := NewTenantRepository[TestTenantNote](db)
	seedNotes(t, repo)
	ctx := context.Background()

	var other TestTenantNote
	if err := db.Where("business_id = ?", "biz_b").First(&other).Error; err != nil {
		t.Fatalf("查询测试数据失败: %v", err)
	}

	// 跨租户更新 0 行命中，报越权
	err := repo.Update(ctx, Actor{TenantID: "biz_a"}, other.ID, map[string]interface{}{"title": "hacked"})
	if !errors.Is(err, ErrAccessDenied) {
		t.Errorf("err = %v, want ErrAccessDenied", err)
	}

	var check TestTenantNote
	db.First(&check, other.ID)
	if check.Title != "b1" {
		t.Errorf("title = %s, 跨租户更新不应生效", check.Title)
	}

	// 本租户更新正常
	if err := repo.Update(ctx, Actor{TenantID: "biz_b"}, other.ID, map[string]interface{}{"title": "renamed"}); err != nil {
		t.Fatalf("Update 失败: %v", err)
	}
	db.First(&check, other.ID)
	if check.Title != "renamed" {
		t.Errorf("title = %s, want renamed", check.Title)
	}

	// 管理员更新不存在的行按不存在处理
	if err := repo.Update(ctx, Actor{IsAdmin: true}, 99999, map[string]interface{}{"title": "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateCannotRewriteBusinessID(t *testing.T) {
	db := setupTenantTestDB(t)
	repo := NewTenantRepository[TestTenantNote](db)
	seedNotes(t, repo)
	ctx := context.Background()

	var note TestTenantNote
	if err := db.Where("business_id = ?", "biz_a").First(&note).Error; err != nil {
		t.Fatalf("查询测试数据失败: %v", err)
	}

	err := repo.Update(ctx, Actor{TenantID: "biz_a"}, note.ID, map[string]interface{}{
		"title":       "kept",
		"business_id": "biz_b",
	})
	if err != nil {
		t.Fatalf("Update 失败: %v", err)
	}

	var check TestTenantNote
	db.First(&check, note.ID)
	if check.BusinessID != "biz_a" {
		t.Errorf("business_id = %s, 归属不可经更新改写", check.BusinessID)
	}
	if check.Title != "kept" {
		t.Errorf("title = %s, want kept", check.Title)
	}
}

func TestUpdateOnlyBusinessIDIsNoOp(t *testing.T) {
	db := setupTenantTestDB(t)
	repo := NewTenantRepository[TestTenantNote](db)
	seedNotes(t, repo)
	ctx := context.Background()

	var note TestTenantNote
	if err := db.Where("business_id = ?", "biz_a").First(&note).Error; err != nil {
		t.Fatalf("查询测试数据失败: %v", err)
	}

	// 剥离 business_id 后更新集为空, 应按 no-op 处理而不是误报越权
	err := repo.Update(ctx, Actor{TenantID: "biz_a"}, note.ID, map[string]interface{}{
		"business_id": "biz_b",
	})
	if err != nil {
		t.Fatalf("Update = %v, want nil", err)
	}

	var check TestTenantNote
	db.First(&check, note.ID)
	if check.BusinessID != "biz_a" {
		t.Errorf("business_id = %s, 归属不可经更新改写", check.BusinessID)
	}
}

// ==================== 删除归属校验 ====================

func TestDeleteOwnership(t *testing.T) {
	db := setupTenantTestDB(t)
	repo := NewTenantRepository[TestTenantNote](db)
	seedNotes(t, repo)
	ctx := context.Background()

	var other TestTenantNote
	if err := db.Where("business_id = ?", "biz_b").First(&other).Error; err != nil {
		t.Fatalf("查询测试数据失败: %v", err)
	}

	if err := repo.Delete(ctx, Actor{TenantID: "biz_a"}, other.ID); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("err = %v, want ErrAccessDenied", err)
	}

	if err := repo.Delete(ctx, Actor{TenantID: "biz_b"}, other.ID); err != nil {
		t.Fatalf("Delete 失败: %v", err)
	}

	_, total, err := repo.Fetch(ctx, Actor{TenantID: "biz_b"}, QueryOptions{})
	if err != nil {
		t.Fatalf("Fetch 失败: %v", err)
	}
	if total != 0 {
		t.Errorf("total = %d, want 0", total)
	}

	if err := repo.Delete(ctx, Actor{IsAdmin: true}, other.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// ==================== 单行查询 ====================

func TestGetByIDOwnership(t *testing.T) {
	db := setupTenantTestDB(t)
	repo := NewTenantRepository[TestTenantNote](db)
	seedNotes(t, repo)
	ctx := context.Background()

	var own TestTenantNote
	if err := db.Where("business_id = ?", "biz_a").First(&own).Error; err != nil {
		t.Fatalf("查询测试数据失败: %v", err)
	}

	got, err := repo.GetByID(ctx, Actor{TenantID: "biz_a"}, own.ID)
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}
	if got == nil || got.Title != own.Title {
		t.Errorf("got = %+v, want %s", got, own.Title)
	}

	// 非管理员: 行不存在和行不属于自己返回同一个错误，不暴露存在性
	var other TestTenantNote
	db.Where("business_id = ?", "biz_b").First(&other)

	if _, err := repo.GetByID(ctx, Actor{TenantID: "biz_a"}, other.ID); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("跨租户查询 err = %v, want ErrAccessDenied", err)
	}
	if _, err := repo.GetByID(ctx, Actor{TenantID: "biz_a"}, 99999); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("不存在的行 err = %v, want ErrAccessDenied", err)
	}

	// 管理员: 跨租户可查，查不到返回 (nil, nil)
	got, err = repo.GetByID(ctx, Actor{IsAdmin: true}, other.ID)
	if err != nil || got == nil {
		t.Fatalf("管理员查询失败: got = %v, err = %v", got, err)
	}
	got, err = repo.GetByID(ctx, Actor{IsAdmin: true}, 99999)
	if err != nil || got != nil {
		t.Errorf("管理员查不到应返回 (nil, nil), got = %v, err = %v", got, err)
	}
}

// ==================== 事务 ====================

func TestTransactionRollback(t *testing.T) {
	repo := NewTenantRepository[TestTenantNote](setupTenantTestDB(t))
	ctx := context.Background()
	actor := Actor{TenantID: "biz_a"}

	wantErr := errors.New("boom")
	err := repo.Transaction(ctx, func(txRepo TenantRepository[TestTenantNote]) error {
		if err := txRepo.Insert(ctx, actor, &TestTenantNote{Title: "tx"}); err != nil {
			return err
		}
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want boom", err)
	}

	_, total, err := repo.Fetch(ctx, actor, QueryOptions{})
	if err != nil {
		t.Fatalf("Fetch 失败: %v", err)
	}
	if total != 0 {
		t.Errorf("total = %d, 事务回滚后不应有数据", total)
	}
}
