package service

import (
	"errors"
	"testing"

	"intergalactic/internal/dto"
	"intergalactic/internal/model"
)

func TestCreateCategory(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCategoryService(db)

	category, err := svc.Create(&dto.CategoryCreateRequest{Name: "科技", Description: "技术相关"})
	if err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}
	if !category.IsActive {
		t.Fatalf("新分类默认应为活跃")
	}

	// 分类名唯一
	if _, err := svc.Create(&dto.CategoryCreateRequest{Name: "科技"}); err == nil {
		t.Fatalf("重名分类应被拒绝")
	}
}

func TestUpdateCategory(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCategoryService(db)

	tech, err := svc.Create(&dto.CategoryCreateRequest{Name: "科技"})
	if err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}
	if _, err := svc.Create(&dto.CategoryCreateRequest{Name: "旅行"}); err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}

	active := true
	inactive := false

	// 改名为已占用的名字
	if _, err := svc.Update(tech.ID, &dto.CategoryUpdateRequest{
		Name:     "旅行",
		IsActive: &active,
	}); err == nil {
		t.Fatalf("改名为已占用名字应被拒绝")
	}

	// 停用分类
	updated, err := svc.Update(tech.ID, &dto.CategoryUpdateRequest{
		Name:        "科技杂谈",
		Description: "换个名字",
		IsActive:    &inactive,
	})
	if err != nil {
		t.Fatalf("更新分类失败: %v", err)
	}
	if updated.Name != "科技杂谈" || updated.IsActive {
		t.Fatalf("更新未生效: name=%q active=%v", updated.Name, updated.IsActive)
	}

	if _, err := svc.Update(9999, &dto.CategoryUpdateRequest{
		Name:     "不存在",
		IsActive: &active,
	}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("期望ErrCategoryNotFound，得到: %v", err)
	}
}

func TestSeedInactiveCategoryPersisted(t *testing.T) {
	db := newTestDB(t)

	seeded := seedCategory(t, db, "hidden", false)

	// 停用状态必须落库，不能被default值吞掉
	var got model.Category
	if err := db.First(&got, seeded.ID).Error; err != nil {
		t.Fatalf("读取分类失败: %v", err)
	}
	if got.IsActive {
		t.Fatalf("停用的分类落库后is_active应为false")
	}
}

func TestListActiveCategories(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCategoryService(db)

	seedCategory(t, db, "travel", true)
	seedCategory(t, db, "food", true)
	seedCategory(t, db, "hidden", false)

	resp, err := svc.ListActive()
	if err != nil {
		t.Fatalf("获取分类列表失败: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("应只有2个活跃分类，得到%d", resp.Total)
	}
	// 按名称排序
	if resp.List[0].Name != "food" || resp.List[1].Name != "travel" {
		t.Fatalf("分类排序不匹配: %s, %s", resp.List[0].Name, resp.List[1].Name)
	}
}
