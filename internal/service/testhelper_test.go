package service

import (
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"intergalactic/internal/model"
)

// newTestDB 每个测试一个独立的内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}

	// 内存库限制单连接，避免新连接拿到空库
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取底层连接失败: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := model.InitTables(db); err != nil {
		t.Fatalf("初始化测试表失败: %v", err)
	}
	return db
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username: username,
		Password: "hashed",
		Email:    fmt.Sprintf("%s@example.com", username),
		Nickname: username,
		Role:     "user",
		Status:   1,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("创建测试用户失败: %v", err)
	}
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, name string, active bool) *model.Category {
	t.Helper()
	category := &model.Category{
		Name:     name,
		IsActive: true,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("创建测试分类失败: %v", err)
	}
	// is_active带default标签，零值在Create时会被忽略，停用必须走Update
	if !active {
		if err := db.Model(category).Update("is_active", false).Error; err != nil {
			t.Fatalf("停用测试分类失败: %v", err)
		}
		category.IsActive = false
	}
	return category
}

func seedPublication(t *testing.T, db *gorm.DB, author *model.User, category *model.Category, title string, createdAt time.Time) *model.Publication {
	t.Helper()
	publication := &model.Publication{
		CategoryID: category.ID,
		AuthorID:   author.ID,
		Title:      title,
		Text:       "正文内容",
		IsActive:   true,
	}
	publication.CreatedAt = createdAt
	publication.UpdatedAt = createdAt
	if err := db.Create(publication).Error; err != nil {
		t.Fatalf("创建测试发布失败: %v", err)
	}
	return publication
}

func newTestReactionService(db *gorm.DB) *ReactionService {
	return &ReactionService{db: db, logger: testLogger()}
}

func newTestRatingService(db *gorm.DB) *RatingService {
	return &RatingService{db: db, logger: testLogger()}
}

func newTestPublicationService(db *gorm.DB) *PublicationService {
	return &PublicationService{db: db, logger: testLogger()}
}

func newTestCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db, logger: testLogger()}
}

func newTestNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db, logger: testLogger()}
}

func newTestCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db, logger: testLogger()}
}
