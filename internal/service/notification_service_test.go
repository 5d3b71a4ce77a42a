package service

import (
	"errors"
	"testing"
	"time"

	"intergalactic/internal/dto"
)

func TestInbox(t *testing.T) {
	db := newTestDB(t)
	svc := newTestNotificationService(db)
	reactions := newTestReactionService(db)
	comments := newTestCommentService(db)

	author := seedUser(t, db, "author")
	fan := seedUser(t, db, "fan")
	hater := seedUser(t, db, "hater")
	category := seedCategory(t, db, "科技", true)
	publication := seedPublication(t, db, author, category, "第一篇", time.Now())

	if _, err := reactions.ToggleLike(fan.ID, publication.ID); err != nil {
		t.Fatalf("点赞失败: %v", err)
	}
	if _, err := reactions.ToggleDislike(hater.ID, publication.ID); err != nil {
		t.Fatalf("点踩失败: %v", err)
	}
	if _, err := comments.Create(fan.ID, &dto.CommentCreateRequest{
		PublicationID: publication.ID,
		Content:       "支持一下",
	}); err != nil {
		t.Fatalf("创建评论失败: %v", err)
	}
	// 作者给自己的发布评论不算通知
	if _, err := comments.Create(author.ID, &dto.CommentCreateRequest{
		PublicationID: publication.ID,
		Content:       "谢谢大家",
	}); err != nil {
		t.Fatalf("创建评论失败: %v", err)
	}

	inbox, err := svc.Inbox(author.ID)
	if err != nil {
		t.Fatalf("获取收件箱失败: %v", err)
	}
	if len(inbox.Reactions) != 2 || len(inbox.Comments) != 1 || inbox.Total != 3 {
		t.Fatalf("收件箱内容不匹配: reactions=%d comments=%d total=%d",
			len(inbox.Reactions), len(inbox.Comments), inbox.Total)
	}

	// 取消的反应从收件箱消失
	if _, err := reactions.ToggleLike(fan.ID, publication.ID); err != nil {
		t.Fatalf("取消点赞失败: %v", err)
	}
	inbox, err = svc.Inbox(author.ID)
	if err != nil {
		t.Fatalf("获取收件箱失败: %v", err)
	}
	if len(inbox.Reactions) != 1 || inbox.Total != 2 {
		t.Fatalf("取消后收件箱应只剩1条反应，得到reactions=%d total=%d",
			len(inbox.Reactions), inbox.Total)
	}
}

func TestMarkReactionRead(t *testing.T) {
	db := newTestDB(t)
	svc := newTestNotificationService(db)
	reactions := newTestReactionService(db)

	author := seedUser(t, db, "author")
	fan := seedUser(t, db, "fan")
	category := seedCategory(t, db, "科技", true)
	publication := seedPublication(t, db, author, category, "第一篇", time.Now())

	if _, err := reactions.ToggleLike(fan.ID, publication.ID); err != nil {
		t.Fatalf("点赞失败: %v", err)
	}
	unread, err := svc.UnreadReactions(author.ID)
	if err != nil {
		t.Fatalf("获取未读反应失败: %v", err)
	}
	if len(unread) != 1 {
		t.Fatalf("应有1条未读反应，得到%d", len(unread))
	}

	// 非接收者不能标记
	if err := svc.MarkReactionRead(unread[0].ID, fan.ID); !errors.Is(err, ErrNoPermission) {
		t.Fatalf("非接收者标记应被拒绝，得到: %v", err)
	}

	if err := svc.MarkReactionRead(unread[0].ID, author.ID); err != nil {
		t.Fatalf("标记已读失败: %v", err)
	}
	unread, err = svc.UnreadReactions(author.ID)
	if err != nil {
		t.Fatalf("获取未读反应失败: %v", err)
	}
	if len(unread) != 0 {
		t.Fatalf("标记后不应再有未读反应，得到%d", len(unread))
	}

	if err := svc.MarkReactionRead(9999, author.ID); !errors.Is(err, ErrReactionNotFound) {
		t.Fatalf("期望ErrReactionNotFound，得到: %v", err)
	}
}

func TestMarkCommentRead(t *testing.T) {
	db := newTestDB(t)
	svc := newTestNotificationService(db)
	comments := newTestCommentService(db)

	author := seedUser(t, db, "author")
	fan := seedUser(t, db, "fan")
	category := seedCategory(t, db, "科技", true)
	publication := seedPublication(t, db, author, category, "第一篇", time.Now())

	comment, err := comments.Create(fan.ID, &dto.CommentCreateRequest{
		PublicationID: publication.ID,
		Content:       "好文章",
	})
	if err != nil {
		t.Fatalf("创建评论失败: %v", err)
	}

	if err := svc.MarkCommentRead(comment.ID, fan.ID); !errors.Is(err, ErrNoPermission) {
		t.Fatalf("非接收者标记应被拒绝，得到: %v", err)
	}
	if err := svc.MarkCommentRead(comment.ID, author.ID); err != nil {
		t.Fatalf("标记已读失败: %v", err)
	}

	unread, err := svc.UnreadComments(author.ID)
	if err != nil {
		t.Fatalf("获取未读评论失败: %v", err)
	}
	if len(unread) != 0 {
		t.Fatalf("标记后不应再有未读评论，得到%d", len(unread))
	}

	if err := svc.MarkCommentRead(9999, author.ID); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("期望ErrCommentNotFound，得到: %v", err)
	}
}
