package service

import (
	"errors"
	"testing"
	"time"

	"intergalactic/internal/dto"
	"intergalactic/internal/model"
)

func TestHomeVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPublicationService(db)

	author := seedUser(t, db, "author")
	activeCat := seedCategory(t, db, "活跃分类", true)
	inactiveCat := seedCategory(t, db, "停用分类", false)

	visible := seedPublication(t, db, author, activeCat, "可见", time.Now())

	// 自身下线
	inactive := seedPublication(t, db, author, activeCat, "已下线", time.Now())
	if err := db.Model(inactive).Update("is_active", false).Error; err != nil {
		t.Fatalf("下线发布失败: %v", err)
	}

	// 审核中
	moderated := seedPublication(t, db, author, activeCat, "审核中", time.Now())
	if err := db.Model(moderated).Update("on_moderator_check", true).Error; err != nil {
		t.Fatalf("标记审核失败: %v", err)
	}

	// 分类停用
	seedPublication(t, db, author, inactiveCat, "分类停用", time.Now())

	resp, err := svc.Home(&dto.PublicationListRequest{})
	if err != nil {
		t.Fatalf("获取首页列表失败: %v", err)
	}
	if resp.Total != 1 || len(resp.List) != 1 {
		t.Fatalf("首页应只有1条可见发布，total=%d len=%d", resp.Total, len(resp.List))
	}
	if resp.List[0].ID != visible.ID {
		t.Fatalf("可见发布ID不匹配: %d != %d", resp.List[0].ID, visible.ID)
	}
}

func TestHomeAndCategoryOrdering(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPublicationService(db)

	author := seedUser(t, db, "author")
	category := seedCategory(t, db, "科技", true)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	oldest := seedPublication(t, db, author, category, "最早", base)
	middle := seedPublication(t, db, author, category, "中间", base.Add(time.Hour))
	newest := seedPublication(t, db, author, category, "最新", base.Add(2*time.Hour))

	// 首页新的在前
	home, err := svc.Home(&dto.PublicationListRequest{})
	if err != nil {
		t.Fatalf("获取首页列表失败: %v", err)
	}
	if len(home.List) != 3 {
		t.Fatalf("首页应有3条发布，得到%d", len(home.List))
	}
	wantHome := []uint{newest.ID, middle.ID, oldest.ID}
	for i, want := range wantHome {
		if home.List[i].ID != want {
			t.Fatalf("首页第%d条应为%d，得到%d", i, want, home.List[i].ID)
		}
	}

	// 分类页早的在前
	byCat, err := svc.ByCategory(category.ID, &dto.PublicationListRequest{})
	if err != nil {
		t.Fatalf("获取分类列表失败: %v", err)
	}
	wantCat := []uint{oldest.ID, middle.ID, newest.ID}
	for i, want := range wantCat {
		if byCat.List[i].ID != want {
			t.Fatalf("分类页第%d条应为%d，得到%d", i, want, byCat.List[i].ID)
		}
	}
}

func TestByCategorySentinelAndUnknown(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPublicationService(db)

	author := seedUser(t, db, "author")
	c1 := seedCategory(t, db, "旅行", true)
	c2 := seedCategory(t, db, "美食", true)
	seedPublication(t, db, author, c1, "旅行帖", time.Now())
	seedPublication(t, db, author, c2, "美食帖", time.Now())

	// 哨兵值0返回所有活跃分类下的发布
	all, err := svc.ByCategory(AllCategories, &dto.PublicationListRequest{})
	if err != nil {
		t.Fatalf("获取全部分类列表失败: %v", err)
	}
	if all.Total != 2 {
		t.Fatalf("全部分类应有2条发布，得到%d", all.Total)
	}

	one, err := svc.ByCategory(c1.ID, &dto.PublicationListRequest{})
	if err != nil {
		t.Fatalf("获取分类列表失败: %v", err)
	}
	if one.Total != 1 {
		t.Fatalf("单个分类应有1条发布，得到%d", one.Total)
	}

	if _, err := svc.ByCategory(9999, &dto.PublicationListRequest{}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("期望ErrCategoryNotFound，得到: %v", err)
	}
}

func TestGetByIDDetail(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPublicationService(db)
	reactions := newTestReactionService(db)
	ratings := newTestRatingService(db)

	author := seedUser(t, db, "author")
	viewer := seedUser(t, db, "viewer")
	other := seedUser(t, db, "other")
	category := seedCategory(t, db, "科技", true)
	publication := seedPublication(t, db, author, category, "详情页", time.Now())

	if _, err := reactions.ToggleLike(viewer.ID, publication.ID); err != nil {
		t.Fatalf("点赞失败: %v", err)
	}
	if _, err := reactions.ToggleDislike(other.ID, publication.ID); err != nil {
		t.Fatalf("点踩失败: %v", err)
	}
	if err := ratings.RatePublication(viewer.ID, publication.ID, 3); err != nil {
		t.Fatalf("评分失败: %v", err)
	}
	if err := ratings.RatePublication(other.ID, publication.ID, 4); err != nil {
		t.Fatalf("评分失败: %v", err)
	}

	detail, err := svc.GetByID(publication.ID, &viewer.ID)
	if err != nil {
		t.Fatalf("获取详情失败: %v", err)
	}
	if detail.AuthorName != "author" || detail.CategoryName != "科技" {
		t.Fatalf("作者或分类信息不匹配: %s / %s", detail.AuthorName, detail.CategoryName)
	}
	if detail.LikeCount != 1 || detail.DislikeCount != 1 {
		t.Fatalf("计数不匹配: like=%d dislike=%d", detail.LikeCount, detail.DislikeCount)
	}
	if detail.Rating != 3.5 {
		t.Fatalf("评分应为3.5，得到%v", detail.Rating)
	}
	if !detail.IsLiked || detail.IsDisliked {
		t.Fatalf("viewer视角 is_liked=%v is_disliked=%v", detail.IsLiked, detail.IsDisliked)
	}

	// 未登录访问不带个人状态
	anon, err := svc.GetByID(publication.ID, nil)
	if err != nil {
		t.Fatalf("获取详情失败: %v", err)
	}
	if anon.IsLiked || anon.IsDisliked {
		t.Fatalf("匿名视角不应带个人状态")
	}

	if _, err := svc.GetByID(9999, nil); !errors.Is(err, ErrPublicationNotFound) {
		t.Fatalf("期望ErrPublicationNotFound，得到: %v", err)
	}
}

func TestCreatePublication(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPublicationService(db)

	author := seedUser(t, db, "author")
	category := seedCategory(t, db, "科技", true)

	publication, err := svc.Create(author.ID, &dto.PublicationCreateRequest{
		CategoryID: category.ID,
		Title:      "新发布",
		ShortDesc:  "简介",
		Text:       "正文内容",
	})
	if err != nil {
		t.Fatalf("创建发布失败: %v", err)
	}
	if publication.ID == 0 {
		t.Fatalf("创建后应有ID")
	}
	if !publication.IsActive || publication.OnModeratorCheck {
		t.Fatalf("新发布应活跃且不在审核中: active=%v moderation=%v",
			publication.IsActive, publication.OnModeratorCheck)
	}

	if _, err := svc.Create(author.ID, &dto.PublicationCreateRequest{
		CategoryID: 9999,
		Title:      "坏分类",
		Text:       "正文",
	}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("期望ErrCategoryNotFound，得到: %v", err)
	}
}

func TestUpdatePublicationPermission(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPublicationService(db)

	author := seedUser(t, db, "author")
	stranger := seedUser(t, db, "stranger")
	category := seedCategory(t, db, "科技", true)
	publication := seedPublication(t, db, author, category, "原标题", time.Now())

	req := &dto.PublicationUpdateRequest{
		CategoryID: category.ID,
		Title:      "新标题",
		Text:       "新正文",
	}

	if _, err := svc.Update(publication.ID, stranger.ID, req); !errors.Is(err, ErrNoPermission) {
		t.Fatalf("非作者修改应被拒绝，得到: %v", err)
	}

	updated, err := svc.Update(publication.ID, author.ID, req)
	if err != nil {
		t.Fatalf("作者修改失败: %v", err)
	}
	if updated.Title != "新标题" || updated.Text != "新正文" {
		t.Fatalf("修改未生效: %s / %s", updated.Title, updated.Text)
	}
}

func TestDeactivatePublication(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPublicationService(db)

	author := seedUser(t, db, "author")
	stranger := seedUser(t, db, "stranger")
	category := seedCategory(t, db, "科技", true)
	publication := seedPublication(t, db, author, category, "要下线", time.Now())

	if err := svc.Deactivate(publication.ID, stranger.ID, false); !errors.Is(err, ErrNoPermission) {
		t.Fatalf("他人下线应被拒绝，得到: %v", err)
	}

	// 管理员可以下线任何发布
	if err := svc.Deactivate(publication.ID, stranger.ID, true); err != nil {
		t.Fatalf("管理员下线失败: %v", err)
	}

	var got model.Publication
	if err := db.First(&got, publication.ID).Error; err != nil {
		t.Fatalf("下线后记录应保留: %v", err)
	}
	if got.IsActive {
		t.Fatalf("下线后is_active应为false")
	}
}

func TestModeratePublication(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPublicationService(db)

	author := seedUser(t, db, "author")
	category := seedCategory(t, db, "科技", true)

	pending := seedPublication(t, db, author, category, "待审核", time.Now())
	if err := db.Model(pending).Update("on_moderator_check", true).Error; err != nil {
		t.Fatalf("标记审核失败: %v", err)
	}

	if err := svc.Moderate(pending.ID, &dto.ModerationRequest{Approve: true}); err != nil {
		t.Fatalf("审核通过失败: %v", err)
	}
	var approved model.Publication
	db.First(&approved, pending.ID)
	if approved.OnModeratorCheck || !approved.IsActive {
		t.Fatalf("通过后 moderation=%v active=%v", approved.OnModeratorCheck, approved.IsActive)
	}

	rejected := seedPublication(t, db, author, category, "要拒绝", time.Now())
	if err := svc.Moderate(rejected.ID, &dto.ModerationRequest{Approve: false, Comment: "内容违规"}); err != nil {
		t.Fatalf("审核拒绝失败: %v", err)
	}
	var got model.Publication
	db.First(&got, rejected.ID)
	if got.OnModeratorCheck || got.IsActive {
		t.Fatalf("拒绝后 moderation=%v active=%v", got.OnModeratorCheck, got.IsActive)
	}
	if got.ModeratorRefuse != "内容违规" {
		t.Fatalf("审核意见未记录: %q", got.ModeratorRefuse)
	}

	if err := svc.Moderate(9999, &dto.ModerationRequest{Approve: true}); !errors.Is(err, ErrPublicationNotFound) {
		t.Fatalf("期望ErrPublicationNotFound，得到: %v", err)
	}
}
