package service

import (
	"errors"
	"testing"
	"time"

	"intergalactic/internal/dto"
	"intergalactic/internal/model"
)

func TestCreateComment(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCommentService(db)

	author := seedUser(t, db, "author")
	commenter := seedUser(t, db, "commenter")
	category := seedCategory(t, db, "科技", true)
	publication := seedPublication(t, db, author, category, "第一篇", time.Now())

	comment, err := svc.Create(commenter.ID, &dto.CommentCreateRequest{
		PublicationID: publication.ID,
		Content:       "  写得不错  ",
	})
	if err != nil {
		t.Fatalf("创建评论失败: %v", err)
	}
	if comment.Content != "写得不错" {
		t.Fatalf("内容应去除首尾空白: %q", comment.Content)
	}
	if comment.ReceiverID != author.ID {
		t.Fatalf("接收者应为发布作者: %d != %d", comment.ReceiverID, author.ID)
	}
	if comment.ParentID != nil {
		t.Fatalf("顶层评论不应有父评论")
	}

	// 纯空白内容拒绝
	if _, err := svc.Create(commenter.ID, &dto.CommentCreateRequest{
		PublicationID: publication.ID,
		Content:       "   \t\n ",
	}); !errors.Is(err, ErrEmptyComment) {
		t.Fatalf("期望ErrEmptyComment，得到: %v", err)
	}

	if _, err := svc.Create(commenter.ID, &dto.CommentCreateRequest{
		PublicationID: 9999,
		Content:       "无处安放",
	}); !errors.Is(err, ErrPublicationNotFound) {
		t.Fatalf("期望ErrPublicationNotFound，得到: %v", err)
	}
}

func TestReplyComment(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCommentService(db)

	author := seedUser(t, db, "author")
	commenter := seedUser(t, db, "commenter")
	replier := seedUser(t, db, "replier")
	category := seedCategory(t, db, "科技", true)
	publication := seedPublication(t, db, author, category, "第一篇", time.Now())

	parent, err := svc.Create(commenter.ID, &dto.CommentCreateRequest{
		PublicationID: publication.ID,
		Content:       "楼主说得对",
	})
	if err != nil {
		t.Fatalf("创建评论失败: %v", err)
	}

	reply, err := svc.Reply(replier.ID, &dto.CommentReplyRequest{
		ParentID: parent.ID,
		Content:  "同意楼上",
	})
	if err != nil {
		t.Fatalf("回复评论失败: %v", err)
	}
	if reply.PublicationID != publication.ID {
		t.Fatalf("回复应挂在父评论所属发布下: %d != %d", reply.PublicationID, publication.ID)
	}
	if reply.ReceiverID != commenter.ID {
		t.Fatalf("回复接收者应为父评论作者: %d != %d", reply.ReceiverID, commenter.ID)
	}
	if reply.ParentID == nil || *reply.ParentID != parent.ID {
		t.Fatalf("父评论引用未设置")
	}

	if _, err := svc.Reply(replier.ID, &dto.CommentReplyRequest{
		ParentID: 9999,
		Content:  "回复不存在的评论",
	}); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("期望ErrCommentNotFound，得到: %v", err)
	}
}

func TestDeleteComment(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCommentService(db)

	author := seedUser(t, db, "author")
	commenter := seedUser(t, db, "commenter")
	stranger := seedUser(t, db, "stranger")
	category := seedCategory(t, db, "科技", true)
	publication := seedPublication(t, db, author, category, "第一篇", time.Now())

	comment, err := svc.Create(commenter.ID, &dto.CommentCreateRequest{
		PublicationID: publication.ID,
		Content:       "一条评论",
	})
	if err != nil {
		t.Fatalf("创建评论失败: %v", err)
	}

	if err := svc.Delete(comment.ID, stranger.ID, false); !errors.Is(err, ErrNoPermission) {
		t.Fatalf("他人删除应被拒绝，得到: %v", err)
	}
	if err := svc.Delete(comment.ID, commenter.ID, false); err != nil {
		t.Fatalf("本人删除失败: %v", err)
	}

	var count int64
	db.Model(&model.Comment{}).Where("id = ?", comment.ID).Count(&count)
	if count != 0 {
		t.Fatalf("删除后不应再查到评论")
	}

	// 管理员可以删除任何评论
	other, err := svc.Create(commenter.ID, &dto.CommentCreateRequest{
		PublicationID: publication.ID,
		Content:       "另一条评论",
	})
	if err != nil {
		t.Fatalf("创建评论失败: %v", err)
	}
	if err := svc.Delete(other.ID, stranger.ID, true); err != nil {
		t.Fatalf("管理员删除失败: %v", err)
	}
}

func TestListComments(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCommentService(db)

	author := seedUser(t, db, "author")
	commenter := seedUser(t, db, "commenter")
	category := seedCategory(t, db, "科技", true)
	publication := seedPublication(t, db, author, category, "第一篇", time.Now())

	for _, content := range []string{"第一条", "第二条", "第三条"} {
		if _, err := svc.Create(commenter.ID, &dto.CommentCreateRequest{
			PublicationID: publication.ID,
			Content:       content,
		}); err != nil {
			t.Fatalf("创建评论失败: %v", err)
		}
	}

	resp, err := svc.List(&dto.CommentListRequest{PublicationID: publication.ID})
	if err != nil {
		t.Fatalf("获取评论列表失败: %v", err)
	}
	if resp.Total != 3 || len(resp.List) != 3 {
		t.Fatalf("评论数不匹配: total=%d len=%d", resp.Total, len(resp.List))
	}
	// 按时间正序
	want := []string{"第一条", "第二条", "第三条"}
	for i, w := range want {
		if resp.List[i].Content != w {
			t.Fatalf("第%d条应为%q，得到%q", i, w, resp.List[i].Content)
		}
		if resp.List[i].UserName != "commenter" {
			t.Fatalf("评论人应为commenter，得到%q", resp.List[i].UserName)
		}
	}

	if _, err := svc.List(&dto.CommentListRequest{PublicationID: 9999}); !errors.Is(err, ErrPublicationNotFound) {
		t.Fatalf("期望ErrPublicationNotFound，得到: %v", err)
	}
}
