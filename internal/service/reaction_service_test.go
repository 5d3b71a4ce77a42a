package service

import (
	"errors"
	"testing"
	"time"

	"intergalactic/internal/model"
)

func TestToggleLikeActivateAndCancel(t *testing.T) {
	db := newTestDB(t)
	svc := newTestReactionService(db)

	author := seedUser(t, db, "author")
	viewer := seedUser(t, db, "viewer")
	category := seedCategory(t, db, "旅行", true)
	publication := seedPublication(t, db, author, category, "第一篇", time.Now())

	// 第一次点赞：激活
	resp, err := svc.ToggleLike(viewer.ID, publication.ID)
	if err != nil {
		t.Fatalf("点赞失败: %v", err)
	}
	if !resp.Active {
		t.Fatalf("期望激活状态，得到未激活")
	}
	if resp.Changed {
		t.Fatalf("没有相反反应时changed应为false")
	}
	if resp.LikeCount != 1 || resp.DislikeCount != 0 {
		t.Fatalf("计数错误: likes=%d dislikes=%d", resp.LikeCount, resp.DislikeCount)
	}

	// 第二次点赞：取消
	resp, err = svc.ToggleLike(viewer.ID, publication.ID)
	if err != nil {
		t.Fatalf("取消点赞失败: %v", err)
	}
	if resp.Active {
		t.Fatalf("期望取消后未激活")
	}
	if resp.LikeCount != 0 {
		t.Fatalf("取消后点赞数应为0，得到%d", resp.LikeCount)
	}

	// 记录不删除，只翻转状态
	var rows int64
	db.Model(&model.Reaction{}).Where("sender_id = ? AND publication_id = ?", viewer.ID, publication.ID).Count(&rows)
	if rows != 1 {
		t.Fatalf("反应记录应保留1行，得到%d", rows)
	}
}

func TestToggleMutualExclusion(t *testing.T) {
	db := newTestDB(t)
	svc := newTestReactionService(db)

	author := seedUser(t, db, "author")
	viewer := seedUser(t, db, "viewer")
	category := seedCategory(t, db, "美食", true)
	publication := seedPublication(t, db, author, category, "第一篇", time.Now())

	if _, err := svc.ToggleLike(viewer.ID, publication.ID); err != nil {
		t.Fatalf("点赞失败: %v", err)
	}

	// 点踩应清除激活的点赞，changed=true
	resp, err := svc.ToggleDislike(viewer.ID, publication.ID)
	if err != nil {
		t.Fatalf("点踩失败: %v", err)
	}
	if !resp.Active {
		t.Fatalf("点踩应处于激活状态")
	}
	if !resp.Changed {
		t.Fatalf("清除了激活的点赞，changed应为true")
	}
	if resp.LikeCount != 0 || resp.DislikeCount != 1 {
		t.Fatalf("计数错误: likes=%d dislikes=%d", resp.LikeCount, resp.DislikeCount)
	}

	liked, err := svc.IsLiked(viewer.ID, publication.ID)
	if err != nil {
		t.Fatalf("查询点赞状态失败: %v", err)
	}
	if liked {
		t.Fatalf("点踩激活后点赞应已被清除")
	}

	// 再点赞回来，相反方向同样互斥
	resp, err = svc.ToggleLike(viewer.ID, publication.ID)
	if err != nil {
		t.Fatalf("再次点赞失败: %v", err)
	}
	if !resp.Active || !resp.Changed {
		t.Fatalf("期望激活且changed=true，得到 active=%v changed=%v", resp.Active, resp.Changed)
	}
	if resp.LikeCount != 1 || resp.DislikeCount != 0 {
		t.Fatalf("计数错误: likes=%d dislikes=%d", resp.LikeCount, resp.DislikeCount)
	}
}

func TestToggleNoChangeWhenOppositeInactive(t *testing.T) {
	db := newTestDB(t)
	svc := newTestReactionService(db)

	author := seedUser(t, db, "author")
	viewer := seedUser(t, db, "viewer")
	category := seedCategory(t, db, "科技", true)
	publication := seedPublication(t, db, author, category, "第一篇", time.Now())

	// 点踩后取消，留下一条未激活的点踩记录
	if _, err := svc.ToggleDislike(viewer.ID, publication.ID); err != nil {
		t.Fatalf("点踩失败: %v", err)
	}
	if _, err := svc.ToggleDislike(viewer.ID, publication.ID); err != nil {
		t.Fatalf("取消点踩失败: %v", err)
	}

	// 未激活的相反记录不算清除
	resp, err := svc.ToggleLike(viewer.ID, publication.ID)
	if err != nil {
		t.Fatalf("点赞失败: %v", err)
	}
	if resp.Changed {
		t.Fatalf("相反反应未激活时changed应为false")
	}
}

func TestToggleUnknownTargets(t *testing.T) {
	db := newTestDB(t)
	svc := newTestReactionService(db)

	viewer := seedUser(t, db, "viewer")

	if _, err := svc.ToggleLike(viewer.ID, 9999); !errors.Is(err, ErrPublicationNotFound) {
		t.Fatalf("期望ErrPublicationNotFound，得到: %v", err)
	}

	author := seedUser(t, db, "author")
	category := seedCategory(t, db, "历史", true)
	publication := seedPublication(t, db, author, category, "第一篇", time.Now())

	if _, err := svc.ToggleLike(9999, publication.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("期望ErrUserNotFound，得到: %v", err)
	}
}

func TestCountsAcrossUsers(t *testing.T) {
	db := newTestDB(t)
	svc := newTestReactionService(db)

	author := seedUser(t, db, "author")
	category := seedCategory(t, db, "音乐", true)
	publication := seedPublication(t, db, author, category, "第一篇", time.Now())

	for _, name := range []string{"u1", "u2", "u3"} {
		u := seedUser(t, db, name)
		if _, err := svc.ToggleLike(u.ID, publication.ID); err != nil {
			t.Fatalf("用户%s点赞失败: %v", name, err)
		}
	}
	hater := seedUser(t, db, "u4")
	if _, err := svc.ToggleDislike(hater.ID, publication.ID); err != nil {
		t.Fatalf("点踩失败: %v", err)
	}

	likes, err := svc.CountLikes(publication.ID)
	if err != nil {
		t.Fatalf("统计点赞失败: %v", err)
	}
	dislikes, err := svc.CountDislikes(publication.ID)
	if err != nil {
		t.Fatalf("统计点踩失败: %v", err)
	}
	if likes != 3 || dislikes != 1 {
		t.Fatalf("计数错误: likes=%d dislikes=%d", likes, dislikes)
	}
}
