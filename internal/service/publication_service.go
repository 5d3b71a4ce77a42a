package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"intergalactic/internal/database"
	"intergalactic/internal/dto"
	"intergalactic/internal/logger"
	"intergalactic/internal/model"
	"intergalactic/pkg/cache"
	"intergalactic/pkg/markdown"
)

var (
	publicationService     *PublicationService
	publicationServiceOnce sync.Once
)

// AllCategories 分类页的哨兵ID，表示"全部活跃分类下的全部活跃发布"
const AllCategories uint = 0

// PublicationService 发布服务
type PublicationService struct {
	db        *gorm.DB
	logger    *zap.SugaredLogger
	views     *ViewService
	search    *SearchService
	sensitive *SensitiveService
	cache     *cache.PublicationCacheService
}

// NewPublicationService 创建发布服务实例
func NewPublicationService() *PublicationService {
	publicationServiceOnce.Do(func() {
		publicationService = &PublicationService{
			db:        database.GetDB(),
			logger:    logger.GetSugaredLogger(),
			views:     NewViewService(),
			search:    NewSearchService(),
			sensitive: NewSensitiveService(),
			cache:     cache.GetManager().GetPublicationCache(),
		}
	})
	return publicationService
}

// visibleQuery 公开可见的发布：自身活跃、不在审核中、且分类活跃
func (s *PublicationService) visibleQuery() *gorm.DB {
	return s.db.Model(&model.Publication{}).
		Joins("JOIN categories ON categories.id = publications.category_id").
		Where("publications.is_active = ? AND publications.on_moderator_check = ? AND categories.is_active = ?",
			true, false, true)
}

// Home 首页发布列表，最新的排在前面
func (s *PublicationService) Home(req *dto.PublicationListRequest) (*dto.PublicationListResponse, error) {
	return s.list(s.visibleQuery().Order("publications.created_at DESC"), req)
}

// ByCategory 分类页发布列表，最早的排在前面
// categoryID为哨兵值0时返回全部活跃分类下的发布，排序不变
func (s *PublicationService) ByCategory(categoryID uint, req *dto.PublicationListRequest) (*dto.PublicationListResponse, error) {
	if categoryID != AllCategories {
		var category model.Category
		if err := s.db.First(&category, categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}

	query := s.visibleQuery().Order("publications.created_at ASC")
	if categoryID != AllCategories {
		query = query.Where("publications.category_id = ?", categoryID)
	}
	return s.list(query, req)
}

// list 通用分页查询，附带每条发布的计数
func (s *PublicationService) list(query *gorm.DB, req *dto.PublicationListRequest) (*dto.PublicationListResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var publications []model.Publication
	if err := query.
		Preload("Author").
		Preload("Category").
		Offset((req.Page - 1) * req.PageSize).
		Limit(req.PageSize).
		Find(&publications).Error; err != nil {
		return nil, err
	}

	items := make([]dto.PublicationListItem, 0, len(publications))
	for _, p := range publications {
		likeCount, dislikeCount, commentCount, err := s.counters(p.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, dto.PublicationListItem{
			ID:           p.ID,
			CategoryID:   p.CategoryID,
			CategoryName: p.Category.Name,
			AuthorID:     p.AuthorID,
			AuthorName:   p.Author.Username,
			Title:        p.Title,
			ShortDesc:    p.ShortDesc,
			Image:        p.Image,
			LikeCount:    likeCount,
			DislikeCount: dislikeCount,
			CommentCount: commentCount,
			CreatedAt:    p.CreatedAt,
		})
	}

	return &dto.PublicationListResponse{
		Total: total,
		List:  items,
	}, nil
}

// counters 单条发布的点赞/点踩/评论计数
func (s *PublicationService) counters(publicationID uint) (likes, dislikes, comments int64, err error) {
	if err = s.db.Model(&model.Reaction{}).
		Where("publication_id = ? AND kind = ? AND status = ?", publicationID, model.ReactionKindLike, true).
		Count(&likes).Error; err != nil {
		return
	}
	if err = s.db.Model(&model.Reaction{}).
		Where("publication_id = ? AND kind = ? AND status = ?", publicationID, model.ReactionKindDislike, true).
		Count(&dislikes).Error; err != nil {
		return
	}
	err = s.db.Model(&model.Comment{}).
		Where("publication_id = ?", publicationID).
		Count(&comments).Error
	return
}

// GetByID 获取发布详情
// viewerID为nil表示未登录访问，is_liked/is_disliked保持false
func (s *PublicationService) GetByID(publicationID uint, viewerID *uint) (*dto.PublicationDetailResponse, error) {
	// 布隆过滤器说不存在就不用查库了
	if s.cache != nil {
		if mayExist, err := s.cache.MayExist(context.Background(), publicationID); err == nil && !mayExist {
			return nil, ErrPublicationNotFound
		}
	}

	resp := s.cachedDetail(publicationID)
	if resp == nil {
		built, err := s.buildDetail(publicationID)
		if err != nil {
			return nil, err
		}
		resp = built
		s.storeDetail(publicationID, resp)
	}

	if viewerID != nil {
		var count int64
		if err := s.db.Model(&model.Reaction{}).
			Where("sender_id = ? AND publication_id = ? AND kind = ? AND status = ?",
				*viewerID, publicationID, model.ReactionKindLike, true).
			Count(&count).Error; err != nil {
			return nil, err
		}
		resp.IsLiked = count > 0

		if err := s.db.Model(&model.Reaction{}).
			Where("sender_id = ? AND publication_id = ? AND kind = ? AND status = ?",
				*viewerID, publicationID, model.ReactionKindDislike, true).
			Count(&count).Error; err != nil {
			return nil, err
		}
		resp.IsDisliked = count > 0
	}

	// 浏览量：Redis即时计数 + 已落库部分
	if s.views != nil {
		s.views.Increment(publicationID)
		viewCount, err := s.views.Count(publicationID)
		if err != nil {
			s.logger.Warnf("获取浏览量失败: %v", err)
		} else {
			resp.ViewCount = viewCount
		}
	}

	return resp, nil
}

// buildDetail 从数据库组装与访问者无关的详情部分
func (s *PublicationService) buildDetail(publicationID uint) (*dto.PublicationDetailResponse, error) {
	var publication model.Publication
	err := s.db.Preload("Author").Preload("Category").First(&publication, publicationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPublicationNotFound
		}
		return nil, err
	}

	likeCount, dislikeCount, commentCount, err := s.counters(publicationID)
	if err != nil {
		return nil, err
	}

	var ratings []int
	if err := s.db.Model(&model.ArticleRating{}).
		Where("publication_id = ?", publicationID).
		Pluck("rating", &ratings).Error; err != nil {
		return nil, err
	}

	resp := &dto.PublicationDetailResponse{
		ID:           publication.ID,
		CategoryID:   publication.CategoryID,
		CategoryName: publication.Category.Name,
		AuthorID:     publication.AuthorID,
		AuthorName:   publication.Author.Username,
		Title:        publication.Title,
		ShortDesc:    publication.ShortDesc,
		Text:         publication.Text,
		Image:        publication.Image,
		IsActive:     publication.IsActive,
		OnModeration: publication.OnModeratorCheck,
		LikeCount:    likeCount,
		DislikeCount: dislikeCount,
		CommentCount: commentCount,
		Rating:       round2(mean(ratings)),
		CreatedAt:    publication.CreatedAt,
	}

	// 正文按Markdown渲染为净化后的HTML
	if publication.Text != "" {
		html, err := markdown.ToHTML(publication.Text)
		if err != nil {
			s.logger.Warnf("渲染发布正文失败: %v", err)
		} else {
			resp.HTML = html
		}
	}

	return resp, nil
}

// cachedDetail 尝试读取详情缓存，未命中或缓存不可用时返回nil
// 缓存里只有与访问者无关的部分，is_liked和浏览量每次现算
func (s *PublicationService) cachedDetail(publicationID uint) *dto.PublicationDetailResponse {
	if s.cache == nil {
		return nil
	}
	var cached dto.PublicationDetailResponse
	if err := s.cache.GetPublicationDetail(context.Background(), publicationID, &cached); err != nil {
		return nil
	}
	return &cached
}

// storeDetail 写入详情缓存，失败只记日志
func (s *PublicationService) storeDetail(publicationID uint, detail *dto.PublicationDetailResponse) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetPublicationDetail(context.Background(), publicationID, detail); err != nil {
		s.logger.Warnf("写入发布详情缓存失败: %v", err)
	}
}

// invalidateDetail 发布变更后清除详情缓存
func (s *PublicationService) invalidateDetail(publicationID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePublicationDetail(context.Background(), publicationID); err != nil {
		s.logger.Warnf("清除发布详情缓存失败: %v", err)
	}
}

// Create 创建发布
// 命中敏感词的发布直接进入审核队列
func (s *PublicationService) Create(authorID uint, req *dto.PublicationCreateRequest) (*model.Publication, error) {
	var category model.Category
	if err := s.db.First(&category, req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	publication := &model.Publication{
		CategoryID: req.CategoryID,
		AuthorID:   authorID,
		Title:      req.Title,
		ShortDesc:  req.ShortDesc,
		Text:       req.Text,
		Image:      req.Image,
		IsActive:   true,
	}

	if s.sensitive != nil && s.sensitive.ContainsSensitiveWord(req.Title+" "+req.Text) {
		publication.OnModeratorCheck = true
	}

	if err := s.db.Create(publication).Error; err != nil {
		return nil, err
	}

	// 新ID登记到布隆过滤器，否则详情查询会被当作不存在挡掉
	if s.cache != nil {
		if err := s.cache.AddPublication(context.Background(), publication.ID); err != nil {
			s.logger.Warnf("登记发布ID到布隆过滤器失败: %v", err)
		}
	}

	s.indexForSearch(publication.ID)
	return publication, nil
}

// Update 更新发布，只有作者本人可以修改
func (s *PublicationService) Update(publicationID, userID uint, req *dto.PublicationUpdateRequest) (*model.Publication, error) {
	var publication model.Publication
	if err := s.db.First(&publication, publicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPublicationNotFound
		}
		return nil, err
	}

	if publication.AuthorID != userID {
		return nil, ErrNoPermission
	}

	var category model.Category
	if err := s.db.First(&category, req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{
		"category_id": req.CategoryID,
		"title":       req.Title,
		"short_desc":  req.ShortDesc,
		"text":        req.Text,
		"image":       req.Image,
	}

	// 修改后的内容重新过一遍敏感词检查
	if s.sensitive != nil && s.sensitive.ContainsSensitiveWord(req.Title+" "+req.Text) {
		updates["on_moderator_check"] = true
	}

	if err := s.db.Model(&publication).Updates(updates).Error; err != nil {
		return nil, err
	}

	s.invalidateDetail(publicationID)
	s.indexForSearch(publicationID)

	if err := s.db.Preload("Author").Preload("Category").First(&publication, publicationID).Error; err != nil {
		return nil, err
	}
	return &publication, nil
}

// Deactivate 软下线发布，核心流程不做物理删除
func (s *PublicationService) Deactivate(publicationID, userID uint, isAdmin bool) error {
	var publication model.Publication
	if err := s.db.First(&publication, publicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPublicationNotFound
		}
		return err
	}

	if publication.AuthorID != userID && !isAdmin {
		return ErrNoPermission
	}

	if err := s.db.Model(&publication).Update("is_active", false).Error; err != nil {
		return err
	}

	s.invalidateDetail(publicationID)
	s.indexForSearch(publicationID)
	return nil
}

// Moderate 审核发布
// 通过：清除审核标记并恢复活跃；拒绝：清除审核标记、下线并记录审核意见
func (s *PublicationService) Moderate(publicationID uint, req *dto.ModerationRequest) error {
	var publication model.Publication
	if err := s.db.First(&publication, publicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPublicationNotFound
		}
		return err
	}

	updates := map[string]interface{}{
		"on_moderator_check": false,
	}
	if req.Approve {
		updates["is_active"] = true
		updates["moderator_refuse"] = ""
	} else {
		updates["is_active"] = false
		updates["moderator_refuse"] = req.Comment
	}

	if err := s.db.Model(&publication).Updates(updates).Error; err != nil {
		return err
	}

	s.invalidateDetail(publicationID)
	s.indexForSearch(publicationID)
	return nil
}

// indexForSearch 同步发布到搜索索引，失败只记日志不影响主流程
func (s *PublicationService) indexForSearch(publicationID uint) {
	if s.search == nil || !s.search.Enabled() {
		return
	}
	if err := s.search.IndexPublication(publicationID); err != nil {
		s.logger.Warnf("同步发布到搜索索引失败: %v", err)
	}
}
