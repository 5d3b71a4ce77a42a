package service

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"intergalactic/internal/database"
	"intergalactic/internal/dto"
	"intergalactic/internal/logger"
	"intergalactic/internal/model"
)

var (
	categoryService     *CategoryService
	categoryServiceOnce sync.Once
)

// CategoryService 分类服务
type CategoryService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// NewCategoryService 创建分类服务实例
func NewCategoryService() *CategoryService {
	categoryServiceOnce.Do(func() {
		categoryService = &CategoryService{
			db:     database.GetDB(),
			logger: logger.GetSugaredLogger(),
		}
	})
	return categoryService
}

// Create 创建分类
func (s *CategoryService) Create(req *dto.CategoryCreateRequest) (*model.Category, error) {
	var count int64
	if err := s.db.Model(&model.Category{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("分类名已存在")
	}

	category := &model.Category{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, err
	}

	return category, nil
}

// Update 更新分类
// 停用分类会让其下所有发布从公开列表消失，可见性由查询端保证
func (s *CategoryService) Update(id uint, req *dto.CategoryUpdateRequest) (*model.Category, error) {
	category, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if category.Name != req.Name {
		var count int64
		if err := s.db.Model(&model.Category{}).Where("name = ? AND id != ?", req.Name, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errors.New("分类名已存在")
		}
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
		"is_active":   *req.IsActive,
	}

	if err := s.db.Model(category).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetByID(id)
}

// GetByID 根据ID获取分类
func (s *CategoryService) GetByID(id uint) (*model.Category, error) {
	var category model.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// ListActive 活跃分类列表，用于导航
func (s *CategoryService) ListActive() (*dto.CategoryListResponse, error) {
	var categories []model.Category
	if err := s.db.Where("is_active = ?", true).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	list := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		list = append(list, dto.CategoryResponse{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			IsActive:    c.IsActive,
			CreatedAt:   c.CreatedAt.Format(time.RFC3339),
		})
	}

	return &dto.CategoryListResponse{
		Total: int64(len(list)),
		List:  list,
	}, nil
}
